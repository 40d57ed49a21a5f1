// internal/workers/loan/query-loan-data/queries/loan.go
package queries

import (
	"context"
	"database/sql"
	"time"

	"loan-workers/internal/repository"
)

// LoanApplication returns a single application. A missing row surfaces as
// repository.ErrNotFound.
func LoanApplication(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	id, err := int64Param(params, "loanApplicationId")
	if err != nil {
		return nil, 0, 0, err
	}

	start := time.Now()

	app, err := repository.NewLoanStore(db).Get(ctx, id)
	if err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return app, 1, execTime, nil
}

// internal/workers/loan/query-loan-data/queries/registry.go
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loan-workers/internal/models"
)

var (
	ErrMissingParam     = errors.New("missing required parameter")
	ErrUnknownQueryType = errors.New("unknown query type")
)

// QueryFunc returns: data, rowCount, executionTime (ms), error
type QueryFunc func(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error)

var Registry = map[models.QueryType]QueryFunc{
	models.QueryTypeLoanApplication:      LoanApplication,
	models.QueryTypeApplicationDocuments: ApplicationDocuments,
	models.QueryTypeUserDocuments:        UserDocuments,
}

func Execute(ctx context.Context, db *sql.DB, queryType models.QueryType, params map[string]interface{}) (interface{}, int, int64, error) {
	fn, exists := Registry[queryType]
	if !exists {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrUnknownQueryType, queryType)
	}
	return fn(ctx, db, params)
}

func int64Param(params map[string]interface{}, key string) (int64, error) {
	v, ok := params[key].(int64)
	if !ok || v <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	return v, nil
}

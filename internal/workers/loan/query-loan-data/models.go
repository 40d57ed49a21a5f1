// internal/workers/loan/query-loan-data/models.go
package queryloandata

import "loan-workers/internal/models"

type Input struct {
	QueryType         string `json:"queryType" validate:"required"`
	LoanApplicationID int64  `json:"loanApplicationId,omitempty"`
	UserID            int64  `json:"userId,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

var (
	QueryTypeLoanApplication      = models.QueryTypeLoanApplication
	QueryTypeApplicationDocuments = models.QueryTypeApplicationDocuments
	QueryTypeUserDocuments        = models.QueryTypeUserDocuments
)

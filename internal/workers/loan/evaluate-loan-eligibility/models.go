// internal/workers/loan/evaluate-loan-eligibility/models.go
package evaluateloaneligibility

import "loan-workers/internal/models"

type Input struct {
	LoanApplicationID int64 `json:"loanApplicationId" validate:"required,gt=0"`
}

// Output carries the full decision and its status at the top level so
// gateways can route on it directly.
type Output struct {
	Decision models.Decision `json:"decision"`
	Status   string          `json:"status"`
}

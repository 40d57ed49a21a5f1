// internal/workers/loan/create-loan-application/models.go
package createloanapplication

type Input struct {
	UserID         int64   `json:"userId" validate:"required,gt=0"`
	LoanAmount     float64 `json:"loanAmount" validate:"gt=0"`
	LoanType       string  `json:"loanType" validate:"required"`
	MonthlyIncome  float64 `json:"monthlyIncome" validate:"gt=0"`
	EmploymentType string  `json:"employmentType" validate:"required"`
}

type Output struct {
	LoanApplicationID int64  `json:"loanApplicationId"`
	Status            string `json:"status"`
}

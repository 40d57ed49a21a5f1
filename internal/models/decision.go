// internal/models/decision.go
package models

// Decision is the outcome of an eligibility evaluation. It is returned to the
// workflow as-is and its Status is written to the application row.
type Decision struct {
	Status           LoanStatus       `json:"status"`
	Reason           string           `json:"reason,omitempty"`
	MissingDocuments []DocumentType   `json:"missingDocuments,omitempty"`
	Details          *DecisionDetails `json:"details,omitempty"`
}

// DecisionDetails echoes the figures an approval was based on.
type DecisionDetails struct {
	LoanAmount     float64 `json:"loanAmount"`
	MonthlyIncome  float64 `json:"monthlyIncome"`
	EmploymentType string  `json:"employmentType"`
}


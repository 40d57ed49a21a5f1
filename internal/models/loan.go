// internal/models/loan.go
package models

import "time"

type LoanStatus string

const (
	LoanStatusPending        LoanStatus = "pending"
	LoanStatusApproved       LoanStatus = "approved"
	LoanStatusRejected       LoanStatus = "rejected"
	LoanStatusMoreInfoNeeded LoanStatus = "more_info_needed"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusPending, LoanStatusApproved, LoanStatusRejected, LoanStatusMoreInfoNeeded:
		return true
	}
	return false
}

func (s LoanStatus) String() string {
	return string(s)
}

// LoanApplication is a row of the loan_applications table. Version is bumped on
// every status write and guards against concurrent evaluations.
type LoanApplication struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	LoanAmount     float64    `json:"loanAmount"`
	LoanType       string     `json:"loanType"`
	MonthlyIncome  float64    `json:"monthlyIncome"`
	EmploymentType string     `json:"employmentType"`
	Status         LoanStatus `json:"status"`
	Version        int64      `json:"version"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

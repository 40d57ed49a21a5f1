// internal/eligibility/evaluator.go
package eligibility

import (
	"fmt"
	"strconv"

	"loan-workers/internal/models"
)

const (
	reasonApproved    = "Loan application approved"
	reasonNotFound    = "Loan application not found"
	reasonEvalFailure = "Error in evaluation"
)

// Evaluator runs the eligibility gates over an application and its documents.
// It holds no state besides its Rules and is safe for concurrent use.
type Evaluator struct {
	rules Rules
}

// NewEvaluator keeps its own copy of rules.RequiredDocuments.
func NewEvaluator(rules Rules) *Evaluator {
	rules.RequiredDocuments = append([]models.DocumentType(nil), rules.RequiredDocuments...)
	return &Evaluator{rules: rules}
}

// Evaluate always returns a decision. The gates run in order and the first
// failing gate decides:
//
//  1. every required document type is present, else MORE_INFO_NEEDED
//  2. every document has its critical fields, else MORE_INFO_NEEDED
//  3. the submitted monthly income reaches the minimum, else REJECTED
//  4. the loan amount is within income times the multiplier, else REJECTED
//
// Income gates use the application's submitted income. The income extracted
// from the income proof is not compared against it.
func (e *Evaluator) Evaluate(app *models.LoanApplication, docs []models.Document) (decision models.Decision) {
	defer func() {
		if r := recover(); r != nil {
			decision = Fault(fmt.Errorf("%v", r))
		}
	}()

	if app == nil {
		return NotFound()
	}

	completeness := CheckCompleteness(docs, e.rules.RequiredDocuments)
	if !completeness.AllPresent {
		return models.Decision{
			Status:           models.LoanStatusMoreInfoNeeded,
			Reason:           completeness.Reason(),
			MissingDocuments: completeness.Missing,
		}
	}

	if v := ValidateDocuments(docs); !v.Verified {
		return models.Decision{Status: models.LoanStatusMoreInfoNeeded, Reason: v.Reason}
	}

	if app.MonthlyIncome < e.rules.MinMonthlyIncome {
		return models.Decision{
			Status: models.LoanStatusRejected,
			Reason: fmt.Sprintf("Monthly income (%s) is below minimum requirement (%s)",
				formatAmount(app.MonthlyIncome), formatAmount(e.rules.MinMonthlyIncome)),
		}
	}

	if maxLoan := e.rules.MaxLoanAmount(app.MonthlyIncome); app.LoanAmount > maxLoan {
		return models.Decision{
			Status: models.LoanStatusRejected,
			Reason: fmt.Sprintf("Requested loan amount (%s) exceeds maximum eligible amount (%s)",
				formatAmount(app.LoanAmount), formatAmount(maxLoan)),
		}
	}

	return models.Decision{
		Status: models.LoanStatusApproved,
		Reason: reasonApproved,
		Details: &models.DecisionDetails{
			LoanAmount:     app.LoanAmount,
			MonthlyIncome:  app.MonthlyIncome,
			EmploymentType: app.EmploymentType,
		},
	}
}

// Fault converts an internal failure into a REJECTED decision.
func Fault(err error) models.Decision {
	return models.Decision{
		Status: models.LoanStatusRejected,
		Reason: fmt.Sprintf("%s: %v", reasonEvalFailure, err),
	}
}

// NotFound is the decision for an application that does not exist.
func NotFound() models.Decision {
	return models.Decision{Status: models.LoanStatusRejected, Reason: reasonNotFound}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

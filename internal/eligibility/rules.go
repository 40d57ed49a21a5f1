// internal/eligibility/rules.go
package eligibility

import (
	"fmt"

	"loan-workers/internal/models"
)

// Rules holds the thresholds an Evaluator decides with. A Rules value is never
// modified after construction; callers that need different thresholds build a
// new one.
type Rules struct {
	MinMonthlyIncome  float64
	MaxLoanMultiplier float64
	RequiredDocuments []models.DocumentType
}

func DefaultRules() Rules {
	return Rules{
		MinMonthlyIncome:  25000,
		MaxLoanMultiplier: 24,
		RequiredDocuments: []models.DocumentType{
			models.DocumentTypeAadhaar,
			models.DocumentTypePAN,
			models.DocumentTypeIncomeProof,
		},
	}
}

// NewRules builds Rules from configured values, copying required so later
// changes to the caller's slice are not observed.
func NewRules(minMonthlyIncome, maxLoanMultiplier float64, required []string) (Rules, error) {
	r := Rules{
		MinMonthlyIncome:  minMonthlyIncome,
		MaxLoanMultiplier: maxLoanMultiplier,
		RequiredDocuments: make([]models.DocumentType, 0, len(required)),
	}
	for _, name := range required {
		t := models.DocumentType(name)
		if !t.Valid() {
			return Rules{}, fmt.Errorf("unknown required document type %q, expected one of %v", name, models.AllDocumentTypes)
		}
		r.RequiredDocuments = append(r.RequiredDocuments, t)
	}
	return r, r.Validate()
}

func (r Rules) Validate() error {
	if r.MinMonthlyIncome < 0 {
		return fmt.Errorf("min monthly income must not be negative, got %v", r.MinMonthlyIncome)
	}
	if r.MaxLoanMultiplier <= 0 {
		return fmt.Errorf("max loan multiplier must be positive, got %v", r.MaxLoanMultiplier)
	}
	seen := make(map[models.DocumentType]bool, len(r.RequiredDocuments))
	for _, t := range r.RequiredDocuments {
		if seen[t] {
			return fmt.Errorf("required document type %q listed twice", t)
		}
		seen[t] = true
	}
	return nil
}

// MaxLoanAmount is the largest loan the rules allow for monthlyIncome.
func (r Rules) MaxLoanAmount(monthlyIncome float64) float64 {
	return monthlyIncome * r.MaxLoanMultiplier
}

// internal/eligibility/validator.go
package eligibility

import (
	"fmt"

	"loan-workers/internal/document"
	"loan-workers/internal/models"
)

const (
	reasonIncompleteAadhaar = "Incomplete Aadhaar card information"
	reasonIncompletePAN     = "Incomplete PAN card information"
	reasonIncompleteIncome  = "Incomplete income proof information"
	reasonVerifyError       = "Error verifying document data"
)

type ValidationResult struct {
	Verified bool
	Reason   string
}

// ValidateDocuments checks the critical fields of each document in stored
// order and stops at the first failure. A document whose stored fields
// cannot be decoded fails validation.
func ValidateDocuments(docs []models.Document) ValidationResult {
	for _, d := range docs {
		fields, err := document.DecodeFields(d.DocumentType, d.ExtractedData)
		if err != nil {
			return ValidationResult{Reason: fmt.Sprintf("%s: %v", reasonVerifyError, err)}
		}
		if reason := checkCriticalFields(d.DocumentType, fields); reason != "" {
			return ValidationResult{Reason: reason}
		}
	}
	return ValidationResult{Verified: true}
}

func checkCriticalFields(docType models.DocumentType, f models.ExtractedFields) string {
	switch docType {
	case models.DocumentTypeAadhaar:
		if f.String(models.FieldName) == "" || f.String(models.FieldDOB) == "" ||
			f.String(models.FieldAadhaarNumber) == "" {
			return reasonIncompleteAadhaar
		}
	case models.DocumentTypePAN:
		if f.String(models.FieldName) == "" || f.String(models.FieldDOB) == "" ||
			f.String(models.FieldPANNumber) == "" {
			return reasonIncompletePAN
		}
	case models.DocumentTypeIncomeProof:
		if f.Number(models.FieldMonthlyIncome) <= 0 || f.String(models.FieldEmploymentType) == "" {
			return reasonIncompleteIncome
		}
	case models.DocumentTypeBankStatement, models.DocumentTypeOther:
	}
	return ""
}

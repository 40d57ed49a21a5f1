// internal/eligibility/helpers_test.go
package eligibility

import (
	"testing"

	"github.com/stretchr/testify/require"

	"loan-workers/internal/document"
	"loan-workers/internal/models"
)

const (
	aadhaarText = "Name: John Doe\nDOB: 01/01/1990\nGender: M\nAadhaar: 1234 5678 9012"
	panText     = "Name: John Doe\nFather's Name: James Doe\nDate of Birth: 01/01/1990\nPAN: ABCDE1234F"
	incomeText  = "Monthly Income: Rs. 50,000\nEmployment Type: Salaried\nEmployer: Tech Corp"
)

// extractedDoc builds a stored document the way the upload path does.
func extractedDoc(t *testing.T, id int64, docType models.DocumentType, text string) models.Document {
	t.Helper()
	raw, err := document.EncodeFields(document.Extract(docType, text))
	require.NoError(t, err)
	return models.Document{ID: id, UserID: 1, DocumentType: docType, ExtractedData: raw}
}

func completeDocs(t *testing.T) []models.Document {
	t.Helper()
	return []models.Document{
		extractedDoc(t, 1, models.DocumentTypeAadhaar, aadhaarText),
		extractedDoc(t, 2, models.DocumentTypePAN, panText),
		extractedDoc(t, 3, models.DocumentTypeIncomeProof, incomeText),
	}
}

func application(loanAmount, monthlyIncome float64) *models.LoanApplication {
	return &models.LoanApplication{
		ID:             42,
		UserID:         1,
		LoanAmount:     loanAmount,
		LoanType:       "personal",
		MonthlyIncome:  monthlyIncome,
		EmploymentType: "Salaried",
		Status:         models.LoanStatusPending,
		Version:        1,
	}
}

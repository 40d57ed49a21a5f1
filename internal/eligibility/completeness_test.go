// internal/eligibility/completeness_test.go
package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loan-workers/internal/models"
)

func docsOfType(types ...models.DocumentType) []models.Document {
	docs := make([]models.Document, len(types))
	for i, t := range types {
		docs[i] = models.Document{ID: int64(i + 1), DocumentType: t}
	}
	return docs
}

func TestCheckCompleteness(t *testing.T) {
	required := DefaultRules().RequiredDocuments

	tests := []struct {
		name        string
		docs        []models.Document
		wantMissing []models.DocumentType
		wantReason  string
	}{
		{
			name:        "all present",
			docs:        docsOfType(models.DocumentTypeIncomeProof, models.DocumentTypePAN, models.DocumentTypeAadhaar),
			wantMissing: []models.DocumentType{},
		},
		{
			name:        "income proof missing",
			docs:        docsOfType(models.DocumentTypeAadhaar, models.DocumentTypePAN),
			wantMissing: []models.DocumentType{models.DocumentTypeIncomeProof},
			wantReason:  "income_proof",
		},
		{
			name:        "missing order follows required order",
			docs:        docsOfType(models.DocumentTypeBankStatement, models.DocumentTypePAN),
			wantMissing: []models.DocumentType{models.DocumentTypeAadhaar, models.DocumentTypeIncomeProof},
			wantReason:  "aadhaar, income_proof",
		},
		{
			name:        "no documents",
			docs:        nil,
			wantMissing: []models.DocumentType{models.DocumentTypeAadhaar, models.DocumentTypePAN, models.DocumentTypeIncomeProof},
			wantReason:  "aadhaar, pan, income_proof",
		},
		{
			name:        "optional types do not count",
			docs:        docsOfType(models.DocumentTypeBankStatement, models.DocumentTypeOther),
			wantMissing: []models.DocumentType{models.DocumentTypeAadhaar, models.DocumentTypePAN, models.DocumentTypeIncomeProof},
			wantReason:  "aadhaar, pan, income_proof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckCompleteness(tt.docs, required)
			assert.Equal(t, len(tt.wantMissing) == 0, got.AllPresent)
			assert.Equal(t, tt.wantMissing, got.Missing)
			assert.Equal(t, tt.wantReason, got.Reason())
		})
	}
}

func TestCheckCompleteness_CustomRequiredSet(t *testing.T) {
	got := CheckCompleteness(docsOfType(models.DocumentTypeAadhaar), []models.DocumentType{models.DocumentTypeAadhaar})
	assert.True(t, got.AllPresent)
}

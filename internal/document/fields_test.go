// internal/document/fields_test.go
package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-workers/internal/models"
)

func TestFields_RoundTrip(t *testing.T) {
	inputs := map[models.DocumentType]string{
		models.DocumentTypeAadhaar:       aadhaarText,
		models.DocumentTypePAN:           panText,
		models.DocumentTypeIncomeProof:   "Monthly Income: Rs. 1,23,456.78\nEmployment Type: Salaried",
		models.DocumentTypeBankStatement: "Opening Balance 10,000",
	}

	for docType, text := range inputs {
		t.Run(docType.String(), func(t *testing.T) {
			fields := Extract(docType, text)

			raw, err := EncodeFields(fields)
			require.NoError(t, err)

			decoded, err := DecodeFields(docType, raw)
			require.NoError(t, err)
			assert.Equal(t, fields, decoded)
		})
	}
}

func TestFields_RoundTripKeepsFractionalIncome(t *testing.T) {
	fields := models.ExtractedFields{
		models.FieldMonthlyIncome:  52345.675,
		models.FieldEmploymentType: "Salaried",
	}

	raw, err := EncodeFields(fields)
	require.NoError(t, err)

	decoded, err := DecodeFields(models.DocumentTypeIncomeProof, raw)
	require.NoError(t, err)
	assert.Equal(t, 52345.675, decoded.Number(models.FieldMonthlyIncome))
}

func TestEncodeFields_Nil(t *testing.T) {
	raw, err := EncodeFields(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
}

func TestDecodeFields_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		docType models.DocumentType
		raw     string
	}{
		{"not json", models.DocumentTypeAadhaar, "{name: John"},
		{"json null", models.DocumentTypeAadhaar, "null"},
		{"json array", models.DocumentTypePAN, `["ABCDE1234F"]`},
		{"income as string", models.DocumentTypeIncomeProof, `{"monthly_income":"50000"}`},
		{"negative income", models.DocumentTypeIncomeProof, `{"monthly_income":-1}`},
		{"name as number", models.DocumentTypeAadhaar, `{"name":42}`},
		{"unknown type", models.DocumentType("passport"), `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFields(tt.docType, tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedFields))
		})
	}
}

func TestDecodeFields_PartialObjectAccepted(t *testing.T) {
	fields, err := DecodeFields(models.DocumentTypeAadhaar, `{"name":"John Doe"}`)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", fields.String(models.FieldName))
	assert.Equal(t, "", fields.String(models.FieldDOB))
}

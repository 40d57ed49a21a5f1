// internal/common/validation/validation_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

type sampleInput struct {
	UserID     int64   `json:"userId" validate:"required,gt=0"`
	LoanAmount float64 `json:"loanAmount" validate:"gt=0"`
	LoanType   string  `json:"loanType" validate:"required"`
	Channel    string  `json:"channel,omitempty" validate:"omitempty,oneof=web branch"`
}

// ==========================
// Struct validation
// ==========================

func TestValidateStruct_Valid(t *testing.T) {
	res := ValidateStruct(sampleInput{UserID: 1, LoanAmount: 1000, LoanType: "personal"})
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateStruct_ReportsJSONFieldNames(t *testing.T) {
	res := ValidateStruct(sampleInput{LoanAmount: -5, Channel: "fax"})

	require.False(t, res.Valid)
	assert.True(t, res.HasErrors("userId"))
	assert.True(t, res.HasErrors("loanAmount"))
	assert.True(t, res.HasErrors("loanType"))
	assert.True(t, res.HasErrors("channel"))
	assert.Contains(t, res.Error(), "loanAmount: must be greater than 0")
	assert.Contains(t, res.Error(), "userId: required field missing")
}

// ==========================
// JSON schema validation
// ==========================

func TestValidateDocument(t *testing.T) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(`{
		"type": "object",
		"required": ["loanApplicationId"],
		"properties": {"loanApplicationId": {"type": "integer", "minimum": 1}}
	}`))
	require.NoError(t, err)

	ok, err := ValidateDocument(schema, map[string]interface{}{"loanApplicationId": 3})
	require.NoError(t, err)
	assert.True(t, ok.Valid)

	bad, err := ValidateDocument(schema, map[string]interface{}{"loanApplicationId": "3"})
	require.NoError(t, err)
	assert.False(t, bad.Valid)
	require.Len(t, bad.Errors, 1)
	assert.Equal(t, "loanApplicationId", bad.Errors[0].Field)
	assert.Equal(t, "INVALID_TYPE", bad.Errors[0].Code)

	missing, err := ValidateDocument(schema, map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, missing.Valid)
	assert.Equal(t, "REQUIRED", missing.Errors[0].Code)
}

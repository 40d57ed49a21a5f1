// internal/models/document.go
package models

import (
	"slices"
	"time"
)

// DocumentType is the closed set of document tags accepted at upload.
type DocumentType string

const (
	DocumentTypeAadhaar       DocumentType = "aadhaar"
	DocumentTypePAN           DocumentType = "pan"
	DocumentTypeIncomeProof   DocumentType = "income_proof"
	DocumentTypeBankStatement DocumentType = "bank_statement"
	DocumentTypeOther         DocumentType = "other"
)

// AllDocumentTypes lists every DocumentType in declaration order.
var AllDocumentTypes = []DocumentType{
	DocumentTypeAadhaar,
	DocumentTypePAN,
	DocumentTypeIncomeProof,
	DocumentTypeBankStatement,
	DocumentTypeOther,
}

func (t DocumentType) Valid() bool {
	return slices.Contains(AllDocumentTypes, t)
}

func (t DocumentType) String() string {
	return string(t)
}

// Field names of ExtractedFields.
const (
	FieldName           = "name"
	FieldDOB            = "dob"
	FieldGender         = "gender"
	FieldAadhaarNumber  = "aadhaar_number"
	FieldAddress        = "address"
	FieldFatherName     = "father_name"
	FieldPANNumber      = "pan_number"
	FieldMonthlyIncome  = "monthly_income"
	FieldEmploymentType = "employment_type"
	FieldEmployerName   = "employer_name"
	FieldDocumentType   = "document_type"
)

// ExtractedFields maps a field name to a string, or to a float64 for monthly_income.
type ExtractedFields map[string]interface{}

// String returns the string value stored under key, or "" when absent or not a string.
func (f ExtractedFields) String(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

// Number returns the numeric value stored under key, or 0 when absent or not a number.
func (f ExtractedFields) Number(key string) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Document is a row of the documents table. ExtractedData holds the JSON
// encoding of the fields computed once at upload.
type Document struct {
	ID                int64        `json:"id"`
	UserID            int64        `json:"userId"`
	LoanApplicationID *int64       `json:"loanApplicationId,omitempty"`
	DocumentType      DocumentType `json:"documentType"`
	FilePath          string       `json:"filePath"`
	ExtractedData     string       `json:"extractedData"`
	IsVerified        bool         `json:"isVerified"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// VideoInteraction records one answered question and whether a face was found.
type VideoInteraction struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	VideoPath    string    `json:"videoPath"`
	QuestionID   int64     `json:"questionId"`
	ResponseText string    `json:"responseText,omitempty"`
	FaceVerified bool      `json:"faceVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}

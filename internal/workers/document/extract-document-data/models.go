// internal/workers/document/extract-document-data/models.go
package extractdocumentdata

import "loan-workers/internal/models"

type Input struct {
	UserID            int64  `json:"userId" validate:"required,gt=0"`
	LoanApplicationID *int64 `json:"loanApplicationId,omitempty" validate:"omitempty,gt=0"`
	DocumentType      string `json:"documentType" validate:"required,oneof=aadhaar pan income_proof bank_statement other"`
	FilePath          string `json:"filePath" validate:"required"`
}

type Output struct {
	DocumentID    int64                  `json:"documentId"`
	DocumentType  string                 `json:"documentType"`
	ExtractedData models.ExtractedFields `json:"extractedData"`
}

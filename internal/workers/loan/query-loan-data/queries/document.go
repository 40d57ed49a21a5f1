// internal/workers/loan/query-loan-data/queries/document.go
package queries

import (
	"context"
	"database/sql"
	"time"

	"loan-workers/internal/document"
	"loan-workers/internal/models"
	"loan-workers/internal/repository"
)

// DocumentView is a stored document with its extracted data decoded.
// ExtractedDataValid is false when the stored JSON no longer fits its type.
type DocumentView struct {
	ID                 int64                  `json:"id"`
	UserID             int64                  `json:"userId"`
	LoanApplicationID  *int64                 `json:"loanApplicationId,omitempty"`
	DocumentType       models.DocumentType    `json:"documentType"`
	FilePath           string                 `json:"filePath"`
	ExtractedData      models.ExtractedFields `json:"extractedData"`
	ExtractedDataValid bool                   `json:"extractedDataValid"`
	IsVerified         bool                   `json:"isVerified"`
	CreatedAt          time.Time              `json:"createdAt"`
}

func ApplicationDocuments(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	id, err := int64Param(params, "loanApplicationId")
	if err != nil {
		return nil, 0, 0, err
	}

	start := time.Now()
	docs, err := repository.NewDocumentStore(db).ListByApplication(ctx, id)
	if err != nil {
		return nil, 0, 0, err
	}

	views := toViews(docs)
	return views, len(views), time.Since(start).Milliseconds(), nil
}

func UserDocuments(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	id, err := int64Param(params, "userId")
	if err != nil {
		return nil, 0, 0, err
	}

	start := time.Now()
	docs, err := repository.NewDocumentStore(db).ListByUser(ctx, id)
	if err != nil {
		return nil, 0, 0, err
	}

	views := toViews(docs)
	return views, len(views), time.Since(start).Milliseconds(), nil
}

func toViews(docs []models.Document) []DocumentView {
	views := make([]DocumentView, 0, len(docs))
	for _, d := range docs {
		fields, err := document.DecodeFields(d.DocumentType, d.ExtractedData)
		if err != nil {
			fields = models.ExtractedFields{}
		}
		views = append(views, DocumentView{
			ID:                 d.ID,
			UserID:             d.UserID,
			LoanApplicationID:  d.LoanApplicationID,
			DocumentType:       d.DocumentType,
			FilePath:           d.FilePath,
			ExtractedData:      fields,
			ExtractedDataValid: err == nil,
			IsVerified:         d.IsVerified,
			CreatedAt:          d.CreatedAt,
		})
	}
	return views
}

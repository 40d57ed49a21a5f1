// internal/repository/document_store.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"loan-workers/internal/models"
)

const documentColumns = `id, user_id, loan_application_id, document_type,
		       file_path, extracted_data, is_verified, created_at`

type DocumentStore struct {
	db *sql.DB
}

func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Create(ctx context.Context, doc *models.Document) error {
	var appID sql.NullInt64
	if doc.LoanApplicationID != nil {
		appID = sql.NullInt64{Int64: *doc.LoanApplicationID, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO documents (
			user_id, loan_application_id, document_type,
			file_path, extracted_data, is_verified, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		doc.UserID,
		appID,
		doc.DocumentType,
		doc.FilePath,
		doc.ExtractedData,
		doc.IsVerified,
		time.Now().UTC(),
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// ListByApplication returns the application's documents in insertion order.
func (s *DocumentStore) ListByApplication(ctx context.Context, applicationID int64) ([]models.Document, error) {
	return s.list(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE loan_application_id = $1
		ORDER BY id`, applicationID)
}

func (s *DocumentStore) ListByUser(ctx context.Context, userID int64) ([]models.Document, error) {
	return s.list(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE user_id = $1
		ORDER BY id`, userID)
}

func (s *DocumentStore) list(ctx context.Context, query string, arg int64) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var (
			d       models.Document
			appID   sql.NullInt64
			docType string
		)
		if err := rows.Scan(&d.ID, &d.UserID, &appID, &docType,
			&d.FilePath, &d.ExtractedData, &d.IsVerified, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.DocumentType = models.DocumentType(docType)
		if appID.Valid {
			id := appID.Int64
			d.LoanApplicationID = &id
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

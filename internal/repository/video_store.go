// internal/repository/video_store.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"loan-workers/internal/models"
)

type VideoStore struct {
	db *sql.DB
}

func NewVideoStore(db *sql.DB) *VideoStore {
	return &VideoStore{db: db}
}

func (s *VideoStore) Create(ctx context.Context, v *models.VideoInteraction) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO video_interactions (
			user_id, video_path, question_id, response_text, face_verified, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		v.UserID,
		v.VideoPath,
		v.QuestionID,
		v.ResponseText,
		v.FaceVerified,
		time.Now().UTC(),
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert video interaction: %w", err)
	}
	return nil
}

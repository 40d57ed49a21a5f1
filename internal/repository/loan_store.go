// internal/repository/loan_store.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"loan-workers/internal/models"
)

type LoanStore struct {
	db *sql.DB
}

func NewLoanStore(db *sql.DB) *LoanStore {
	return &LoanStore{db: db}
}

// Create inserts app as a new pending application and fills in its ID,
// Status, Version and CreatedAt.
func (s *LoanStore) Create(ctx context.Context, app *models.LoanApplication) error {
	app.Status = models.LoanStatusPending
	app.Version = 1

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO loan_applications (
			user_id, loan_amount, loan_type, status,
			monthly_income, employment_type, version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		app.UserID,
		app.LoanAmount,
		app.LoanType,
		app.Status,
		app.MonthlyIncome,
		app.EmploymentType,
		app.Version,
		time.Now().UTC(),
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert loan application: %w", err)
	}
	return nil
}

func (s *LoanStore) Get(ctx context.Context, id int64) (*models.LoanApplication, error) {
	var (
		app       models.LoanApplication
		status    string
		updatedAt sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, loan_amount, loan_type, status,
		       monthly_income, employment_type, version, created_at, updated_at
		FROM loan_applications
		WHERE id = $1`, id).Scan(
		&app.ID, &app.UserID, &app.LoanAmount, &app.LoanType, &status,
		&app.MonthlyIncome, &app.EmploymentType, &app.Version, &app.CreatedAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: loan application %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select loan application %d: %w", id, err)
	}

	app.Status = models.LoanStatus(status)
	if !app.Status.Valid() {
		return nil, fmt.Errorf("loan application %d has unknown status %q", id, status)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		app.UpdatedAt = &t
	}
	return &app, nil
}

// UpdateStatus writes status only if the row is still at expectedVersion.
// A concurrent writer that got there first makes it return ErrStatusConflict.
func (s *LoanStore) UpdateStatus(ctx context.Context, id, expectedVersion int64, status models.LoanStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE loan_applications
		SET status = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4`,
		status, time.Now().UTC(), id, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update loan application %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update loan application %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: loan application %d is no longer at version %d", ErrStatusConflict, id, expectedVersion)
	}
	return nil
}

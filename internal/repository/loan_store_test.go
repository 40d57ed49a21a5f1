// internal/repository/loan_store_test.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-workers/internal/models"
)

var loanColumns = []string{
	"id", "user_id", "loan_amount", "loan_type", "status",
	"monthly_income", "employment_type", "version", "created_at", "updated_at",
}

func TestLoanStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO loan_applications`).
		WithArgs(int64(7), 500000.0, "personal", models.LoanStatusPending, 50000.0, "Salaried", int64(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))

	app := &models.LoanApplication{
		UserID:         7,
		LoanAmount:     500000,
		LoanType:       "personal",
		MonthlyIncome:  50000,
		EmploymentType: "Salaried",
		Status:         models.LoanStatusApproved,
	}
	err = NewLoanStore(db).Create(context.Background(), app)

	require.NoError(t, err)
	assert.Equal(t, int64(42), app.ID)
	assert.Equal(t, models.LoanStatusPending, app.Status)
	assert.Equal(t, int64(1), app.Version)
	assert.Equal(t, created, app.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanStore_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT (.+) FROM loan_applications WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(loanColumns).
				AddRow(int64(42), int64(7), 500000.0, "personal", "pending", 50000.0, "Salaried", int64(1), created, nil))

		app, err := NewLoanStore(db).Get(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), app.ID)
		assert.Equal(t, models.LoanStatusPending, app.Status)
		assert.Equal(t, 50000.0, app.MonthlyIncome)
		assert.Nil(t, app.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM loan_applications`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		app, err := NewLoanStore(db).Get(context.Background(), 99)

		assert.Nil(t, app)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("unknown status", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM loan_applications`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(loanColumns).
				AddRow(int64(42), int64(7), 500000.0, "personal", "on_hold", 50000.0, "Salaried", int64(1), time.Now(), nil))

		app, err := NewLoanStore(db).Get(context.Background(), 42)

		assert.Nil(t, app)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), `unknown status "on_hold"`)
	})

	t.Run("database error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM loan_applications`).
			WillReturnError(errors.New("connection reset"))

		_, err = NewLoanStore(db).Get(context.Background(), 1)

		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestLoanStore_UpdateStatus(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "version matches", rowsAffected: 1},
		{name: "stale version", rowsAffected: 0, wantErr: ErrStatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`UPDATE loan_applications SET status = \$1, version = version \+ 1, updated_at = \$2 WHERE id = \$3 AND version = \$4`).
				WithArgs(models.LoanStatusApproved, sqlmock.AnyArg(), int64(42), int64(3)).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err = NewLoanStore(db).UpdateStatus(context.Background(), 42, 3, models.LoanStatusApproved)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

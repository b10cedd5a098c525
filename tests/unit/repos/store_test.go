package repos

import (
	"context"
	"errors"
	"testing"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"
	"greenloop-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestStore_ExecTx(t *testing.T) {
	t.Run("Commits when fn succeeds", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		store := postgres.NewStore(db)
		err = store.ExecTx(context.Background(), func(r *repository.Repositories) error {
			return nil
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back and returns fn error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		store := postgres.NewStore(db)
		err = store.ExecTx(context.Background(), func(r *repository.Repositories) error {
			return domain.ErrAlreadySettled
		})
		assert.ErrorIs(t, err, domain.ErrAlreadySettled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Sentinel survives a failed rollback", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

		store := postgres.NewStore(db)
		err = store.ExecTx(context.Background(), func(r *repository.Repositories) error {
			return domain.ErrAlreadySettled
		})
		// The sweeper's benign-skip check must still match.
		assert.ErrorIs(t, err, domain.ErrAlreadySettled)
	})
}

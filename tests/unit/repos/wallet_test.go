package repos

import (
	"context"
	"testing"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestWalletRepository_AdjustBalances(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewWalletRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE wallets").
			WithArgs(int64(-5000), int64(0), int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AdjustBalances(ctx, 11, -5000, 0)
		assert.NoError(t, err)
	})

	t.Run("Balance would go negative", func(t *testing.T) {
		mock.ExpectExec("UPDATE wallets").
			WithArgs(int64(-5000), int64(0), int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.AdjustBalances(ctx, 11, -5000, 0)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	})

	t.Run("Wallet missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE wallets").
			WithArgs(int64(100), int64(0), int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.AdjustBalances(ctx, 99, 100, 0)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestWalletRepository_GetByPrincipal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewWalletRepository(db)
	ctx := context.Background()

	t.Run("Not found maps to domain error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM wallets").
			WithArgs(int64(1), domain.WalletTypeCustomer).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		wallet, err := repo.GetByPrincipal(ctx, 1, domain.WalletTypeCustomer)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, wallet)
	})
}

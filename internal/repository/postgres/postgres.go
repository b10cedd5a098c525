package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"greenloop-backend/internal/logger"
	"greenloop-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can
// run against the root connection or inside an open transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db    *sql.DB
	repos *repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		repos: newRepositories(db),
	}
}

func newRepositories(db DBTX) *repository.Repositories {
	return &repository.Repositories{
		Borrows:       NewBorrowRepository(db),
		Wallets:       NewWalletRepository(db),
		Ledger:        NewLedgerRepository(db),
		Products:      NewProductRepository(db),
		Customers:     NewCustomerRepository(db),
		Businesses:    NewBusinessRepository(db),
		Policies:      NewPolicyRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

func (s *Store) Repos() *repository.Repositories {
	return s.repos
}

// ExecTx runs fn inside a single database transaction. Any error from
// fn rolls the whole scope back; nothing is partially applied.
func (s *Store) ExecTx(ctx context.Context, fn func(r *repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(newRepositories(tx)); err != nil {
		// Keep fn's error in the chain so sentinel checks still match;
		// a failed rollback is only logged.
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Failed to roll back transaction", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"
)

type walletRepository struct {
	db DBTX
}

func NewWalletRepository(db DBTX) repository.WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	query := `SELECT id, principal_id, type, available_balance, holding_balance, created_on, updated_on
	          FROM wallets WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *walletRepository) GetByPrincipal(ctx context.Context, principalID int64, walletType domain.WalletType) (*domain.Wallet, error) {
	query := `SELECT id, principal_id, type, available_balance, holding_balance, created_on, updated_on
	          FROM wallets WHERE principal_id = $1 AND type = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, principalID, walletType))
}

func (r *walletRepository) scanOne(row *sql.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(&w.ID, &w.PrincipalID, &w.Type, &w.AvailableBalance, &w.HoldingBalance, &w.CreatedOn, &w.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// AdjustBalances applies both deltas in a single guarded UPDATE. The
// WHERE clause refuses any adjustment that would drive a balance
// negative, so the non-negativity invariant holds even under
// concurrent settlements.
func (r *walletRepository) AdjustBalances(ctx context.Context, walletID int64, availableDelta, holdingDelta int64) error {
	query := `UPDATE wallets
	          SET available_balance = available_balance + $1,
	              holding_balance = holding_balance + $2,
	              updated_on = NOW()
	          WHERE id = $3
	            AND available_balance + $1 >= 0
	            AND holding_balance + $2 >= 0`
	res, err := r.db.ExecContext(ctx, query, availableDelta, holdingDelta, walletID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the wallet is missing or a balance would go negative;
		// distinguish for the error taxonomy.
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM wallets WHERE id = $1)`, walletID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInvariantViolation
	}
	return nil
}

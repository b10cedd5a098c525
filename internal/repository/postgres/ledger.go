package postgres

import (
	"context"
	"database/sql"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"
)

type ledgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const ledgerColumns = `id, wallet_id, amount, type, direction, source_bucket, target_bucket, status,
	       borrow_id, settlement_ref, COALESCE(description, ''), created_on`

func (r *ledgerRepository) CreateEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries
	          (wallet_id, amount, type, direction, source_bucket, target_bucket, status,
	           borrow_id, settlement_ref, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	          RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		entry.WalletID, entry.Amount, entry.Type, entry.Direction,
		nullableBucket(entry.SourceBucket), nullableBucket(entry.TargetBucket),
		entry.Status, entry.BorrowID, nullableString(entry.SettlementRef), entry.Description,
	).Scan(&entry.ID, &entry.CreatedOn)
}

func (r *ledgerRepository) ListByWallet(ctx context.Context, walletID int64, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + ledgerColumns + `
	          FROM ledger_entries WHERE wallet_id = $1
	          ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, walletID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM ledger_entries WHERE wallet_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, walletID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}

func (r *ledgerRepository) ListByBorrow(ctx context.Context, borrowID int64) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + `
	          FROM ledger_entries WHERE borrow_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, borrowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *ledgerRepository) scanAll(rows *sql.Rows) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var source, target, ref sql.NullString
		if err := rows.Scan(
			&e.ID, &e.WalletID, &e.Amount, &e.Type, &e.Direction,
			&source, &target, &e.Status, &e.BorrowID, &ref, &e.Description, &e.CreatedOn,
		); err != nil {
			return nil, err
		}
		e.SourceBucket = domain.BalanceBucket(source.String)
		e.TargetBucket = domain.BalanceBucket(target.String)
		e.SettlementRef = ref.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullableBucket(b domain.BalanceBucket) any {
	if b == "" {
		return nil
	}
	return string(b)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

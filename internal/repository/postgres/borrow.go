package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"
)

type borrowRepository struct {
	db DBTX
}

func NewBorrowRepository(db DBTX) repository.BorrowRepository {
	return &borrowRepository{db: db}
}

const borrowColumns = `id, customer_id, business_id, product_id, deposit_amount, borrow_date, due_date, state,
	       reward_point_changed, ranking_point_changed, eco_point_changed, co2_changed, late_processed,
	       created_on, updated_on`

func (r *borrowRepository) Create(ctx context.Context, bt *domain.BorrowTransaction) error {
	query := `INSERT INTO borrow_transactions
	          (customer_id, business_id, product_id, deposit_amount, borrow_date, due_date, state,
	           eco_point_changed, co2_changed, late_processed, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, FALSE, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query,
		bt.CustomerID, bt.BusinessID, bt.ProductID, bt.DepositAmount,
		bt.BorrowDate, bt.DueDate, bt.State,
	).Scan(&bt.ID, &bt.CreatedOn, &bt.UpdatedOn)
}

func (r *borrowRepository) GetByID(ctx context.Context, id int64) (*domain.BorrowTransaction, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrow_transactions WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *borrowRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.BorrowTransaction, error) {
	query := `SELECT ` + borrowColumns + ` FROM borrow_transactions WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *borrowRepository) scanOne(row *sql.Row) (*domain.BorrowTransaction, error) {
	var bt domain.BorrowTransaction
	err := row.Scan(
		&bt.ID, &bt.CustomerID, &bt.BusinessID, &bt.ProductID, &bt.DepositAmount,
		&bt.BorrowDate, &bt.DueDate, &bt.State,
		&bt.RewardPointChanged, &bt.RankingPointChanged, &bt.EcoPointChanged, &bt.Co2Changed,
		&bt.LateProcessed, &bt.CreatedOn, &bt.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *borrowRepository) Update(ctx context.Context, bt *domain.BorrowTransaction) error {
	query := `UPDATE borrow_transactions
	          SET state = $1, reward_point_changed = $2, ranking_point_changed = $3,
	              eco_point_changed = $4, co2_changed = $5, late_processed = $6, updated_on = NOW()
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		bt.State, bt.RewardPointChanged, bt.RankingPointChanged,
		bt.EcoPointChanged, bt.Co2Changed, bt.LateProcessed, bt.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *borrowRepository) ListByCustomer(ctx context.Context, customerID int64, state string, page, pageSize int32) ([]domain.BorrowTransaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + borrowColumns + `
	          FROM borrow_transactions
	          WHERE customer_id = $1 AND ($2 = '' OR state = $2)
	          ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, customerID, state, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	txs, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM borrow_transactions WHERE customer_id = $1 AND ($2 = '' OR state = $2)`
	if err := r.db.QueryRowContext(ctx, countQuery, customerID, state).Scan(&count); err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}

func (r *borrowRepository) CountOpenByCustomer(ctx context.Context, customerID int64) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM borrow_transactions
	          WHERE customer_id = $1 AND state IN ($2, $3)`
	err := r.db.QueryRowContext(ctx, query, customerID,
		domain.BorrowStatePendingPickup, domain.BorrowStateBorrowing).Scan(&count)
	return count, err
}

func (r *borrowRepository) ListOverdueCandidates(ctx context.Context, cutoff time.Time, limit int32) ([]domain.BorrowTransaction, error) {
	query := `SELECT ` + borrowColumns + `
	          FROM borrow_transactions
	          WHERE state = $1 AND late_processed = FALSE AND due_date <= $2
	          ORDER BY due_date ASC LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, domain.BorrowStateBorrowing, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *borrowRepository) scanAll(rows *sql.Rows) ([]domain.BorrowTransaction, error) {
	var txs []domain.BorrowTransaction
	for rows.Next() {
		var bt domain.BorrowTransaction
		if err := rows.Scan(
			&bt.ID, &bt.CustomerID, &bt.BusinessID, &bt.ProductID, &bt.DepositAmount,
			&bt.BorrowDate, &bt.DueDate, &bt.State,
			&bt.RewardPointChanged, &bt.RankingPointChanged, &bt.EcoPointChanged, &bt.Co2Changed,
			&bt.LateProcessed, &bt.CreatedOn, &bt.UpdatedOn,
		); err != nil {
			return nil, err
		}
		txs = append(txs, bt)
	}
	return txs, rows.Err()
}

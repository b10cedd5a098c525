package postgres

import (
	"context"
	"database/sql"
	"errors"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"
)

type customerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT id, name, email, COALESCE(device_token, ''), ranking_points, reward_points,
	                 return_success_count, return_failed_count, created_on
	          FROM customers WHERE id = $1`
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.DeviceToken, &c.RankingPoints, &c.RewardPoints,
		&c.ReturnSuccessCount, &c.ReturnFailedCount, &c.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyPointDelta increments the gamification counters in place.
// Ranking points are deliberately unguarded and may go negative.
func (r *customerRepository) ApplyPointDelta(ctx context.Context, customerID int64, reward, ranking, successDelta, failedDelta int32) error {
	query := `UPDATE customers
	          SET reward_points = reward_points + $1,
	              ranking_points = ranking_points + $2,
	              return_success_count = return_success_count + $3,
	              return_failed_count = return_failed_count + $4
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, reward, ranking, successDelta, failedDelta, customerID)
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

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type businessRepository struct {
	db DBTX
}

func NewBusinessRepository(db DBTX) repository.BusinessRepository {
	return &businessRepository{db: db}
}

const businessColumns = `id, name, email, eco_points, co2_reduced, reward_points, created_on`

func (r *businessRepository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *businessRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *businessRepository) scanOne(row *sql.Row) (*domain.Business, error) {
	var b domain.Business
	err := row.Scan(&b.ID, &b.Name, &b.Email, &b.EcoPoints, &b.Co2Reduced, &b.RewardPoints, &b.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ApplySettlement draws down the reward pool and moves the
// sustainability counters. The pool guard backs up the gating decision
// made inside the same transaction under FOR UPDATE.
func (r *businessRepository) ApplySettlement(ctx context.Context, businessID int64, rewardPoolDelta int32, ecoDelta, co2Delta decimal.Decimal) error {
	query := `UPDATE businesses
	          SET reward_points = reward_points + $1,
	              eco_points = eco_points + $2,
	              co2_reduced = co2_reduced + $3
	          WHERE id = $4 AND reward_points + $1 >= 0`
	res, err := r.db.ExecContext(ctx, query, rewardPoolDelta, ecoDelta, co2Delta, businessID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM businesses WHERE id = $1)`, businessID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInvariantViolation
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"
)

type policyRepository struct {
	db DBTX
}

func NewPolicyRepository(db DBTX) repository.PolicyRepository {
	return &policyRepository{db: db}
}

// Policy documents live in a single-row-per-name table as JSON and are
// decoded into typed structs here. A missing or malformed document is a
// configuration error, never retried.
func (r *policyRepository) getDocument(ctx context.Context, name string, out any) error {
	var raw []byte
	query := `SELECT document FROM policies WHERE name = $1`
	err := r.db.QueryRowContext(ctx, query, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrPolicyNotFound, name)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s policy: %w", name, err)
	}
	return nil
}

func (r *policyRepository) GetBorrowPolicy(ctx context.Context) (*domain.BorrowPolicy, error) {
	var p domain.BorrowPolicy
	if err := r.getDocument(ctx, domain.PolicyNameBorrow, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *policyRepository) GetRewardPolicy(ctx context.Context) (*domain.RewardPolicy, error) {
	var p domain.RewardPolicy
	if err := r.getDocument(ctx, domain.PolicyNameReward, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *policyRepository) GetDamagePolicy(ctx context.Context) (*domain.DamagePolicy, error) {
	var p domain.DamagePolicy
	if err := r.getDocument(ctx, domain.PolicyNameDamage, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

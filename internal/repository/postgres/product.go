package postgres

import (
	"context"
	"database/sql"
	"errors"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"
)

type productRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) repository.ProductRepository {
	return &productRepository{db: db}
}

// GetDetail loads the product with its group, size and material in one
// query; settlement needs the whole bundle to price eco impact and
// check the reuse limit.
func (r *productRepository) GetDetail(ctx context.Context, productID int64) (*domain.ProductDetail, error) {
	query := `SELECT p.id, p.group_id, p.size_id, p.condition, p.status, p.reuse_count, p.created_on, p.updated_on,
	                 g.id, g.business_id, g.material_id, g.name, g.deposit_amount,
	                 s.id, s.name, s.plastic_weight_grams,
	                 m.id, m.name, m.reuse_limit, m.co2_emission_per_kg
	          FROM products p
	          JOIN product_groups g ON p.group_id = g.id
	          JOIN product_sizes s ON p.size_id = s.id
	          JOIN materials m ON g.material_id = m.id
	          WHERE p.id = $1`
	var d domain.ProductDetail
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&d.Product.ID, &d.Product.GroupID, &d.Product.SizeID, &d.Product.Condition,
		&d.Product.Status, &d.Product.ReuseCount, &d.Product.CreatedOn, &d.Product.UpdatedOn,
		&d.Group.ID, &d.Group.BusinessID, &d.Group.MaterialID, &d.Group.Name, &d.Group.DepositAmount,
		&d.Size.ID, &d.Size.Name, &d.Size.PlasticWeightGrams,
		&d.Material.ID, &d.Material.Name, &d.Material.ReuseLimit, &d.Material.Co2EmissionPerKg,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `UPDATE products
	          SET condition = $1, status = $2, reuse_count = $3, updated_on = NOW()
	          WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, product.Condition, product.Status, product.ReuseCount, product.ID)
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

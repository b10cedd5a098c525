package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCondition string

const (
	ProductConditionGood    ProductCondition = "GOOD"
	ProductConditionDamaged ProductCondition = "DAMAGED"
	ProductConditionLost    ProductCondition = "LOST"
	ProductConditionExpired ProductCondition = "EXPIRED"
)

type ProductStatus string

const (
	ProductStatusAvailable    ProductStatus = "AVAILABLE"
	ProductStatusNonAvailable ProductStatus = "NON_AVAILABLE"
)

// Product is one physical reusable unit.
type Product struct {
	ID        int64            `json:"id"`
	GroupID   int64            `json:"group_id"`
	SizeID    int64            `json:"size_id"`
	Condition ProductCondition `json:"condition"`
	Status    ProductStatus    `json:"status"`
	ReuseCount int32           `json:"reuse_count"`
	CreatedOn  time.Time       `json:"created_on"`
	UpdatedOn  time.Time       `json:"updated_on"`
}

// ProductGroup ties units of one design to a business, a material and
// the deposit charged per loan.
type ProductGroup struct {
	ID            int64  `json:"id"`
	BusinessID    int64  `json:"business_id"`
	MaterialID    int64  `json:"material_id"`
	Name          string `json:"name"`
	DepositAmount int64  `json:"deposit_amount"`
}

type ProductSize struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Plastic-equivalent weight in grams, basis of the eco metrics.
	PlasticWeightGrams decimal.Decimal `json:"plastic_weight_grams"`
}

type Material struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	ReuseLimit     int32           `json:"reuse_limit"`
	Co2EmissionPerKg decimal.Decimal `json:"co2_emission_per_kg"`
}

// ProductDetail is the joined bundle the settlement path loads in one read.
type ProductDetail struct {
	Product  Product      `json:"product"`
	Group    ProductGroup `json:"group"`
	Size     ProductSize  `json:"size"`
	Material Material     `json:"material"`
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceRecord is a single (product, shop, brand, price) observation.
// An empty Brand is the unbranded, one-price-per-shop form of a record.
// Currency is the symbol captured when the price was written; there is no conversion.
type PriceRecord struct {
	ID        uuid.UUID       `json:"id" validate:"required"`
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	ShopID    uuid.UUID       `json:"shop_id" validate:"required"`
	Brand     string          `json:"brand,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency" validate:"notblank,max=5"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate ensures the price record adheres to domain rules
func (r *PriceRecord) Validate() error {
	if err := validateFields("price record", r); err != nil {
		return err
	}

	if r.Price.IsNegative() {
		return errors.New("price record price must not be negative")
	}

	return nil
}

// SameOffer reports whether r and other describe the same branded offer,
// i.e. the same product at the same shop under the same brand
func (r *PriceRecord) SameOffer(other *PriceRecord) bool {
	return r.ProductID == other.ProductID &&
		r.ShopID == other.ShopID &&
		r.Brand == other.Brand
}

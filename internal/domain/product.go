package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ProductCategory represents the category tag of a product
type ProductCategory string

const (
	ProductCategoryDairy        ProductCategory = "DAIRY"
	ProductCategoryBakery       ProductCategory = "BAKERY"
	ProductCategoryProduce      ProductCategory = "PRODUCE"
	ProductCategoryMeat         ProductCategory = "MEAT"
	ProductCategoryFrozen       ProductCategory = "FROZEN"
	ProductCategoryBeverages    ProductCategory = "BEVERAGES"
	ProductCategoryPantry       ProductCategory = "PANTRY"
	ProductCategoryHousehold    ProductCategory = "HOUSEHOLD"
	ProductCategoryPersonalCare ProductCategory = "PERSONAL_CARE"
	ProductCategoryOther        ProductCategory = "OTHER"
)

// Valid reports whether c is one of the known product categories
func (c ProductCategory) Valid() bool {
	switch c {
	case ProductCategoryDairy, ProductCategoryBakery, ProductCategoryProduce,
		ProductCategoryMeat, ProductCategoryFrozen, ProductCategoryBeverages,
		ProductCategoryPantry, ProductCategoryHousehold, ProductCategoryPersonalCare,
		ProductCategoryOther:
		return true
	}
	return false
}

// Product represents a catalog product.
// IsAvailable false means the product is still needed (it is on the shopping list).
type Product struct {
	ID          uuid.UUID       `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"notblank"`
	Category    ProductCategory `json:"category"`
	IsAvailable bool            `json:"is_available"`
}

// Validate ensures the product adheres to domain rules
func (p *Product) Validate() error {
	if err := validateFields("product", p); err != nil {
		return err
	}

	if !p.Category.Valid() {
		return errors.New("product category is invalid")
	}

	return nil
}

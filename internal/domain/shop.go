package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ShopCategory represents the kind of shop
type ShopCategory string

const (
	ShopCategorySupermarket ShopCategory = "SUPERMARKET"
	ShopCategoryDiscounter  ShopCategory = "DISCOUNTER"
	ShopCategoryDrugstore   ShopCategory = "DRUGSTORE"
	ShopCategoryMarket      ShopCategory = "MARKET"
	ShopCategoryOnline      ShopCategory = "ONLINE"
	ShopCategoryOther       ShopCategory = "OTHER"
)

// Valid reports whether c is one of the known shop categories
func (c ShopCategory) Valid() bool {
	switch c {
	case ShopCategorySupermarket, ShopCategoryDiscounter, ShopCategoryDrugstore,
		ShopCategoryMarket, ShopCategoryOnline, ShopCategoryOther:
		return true
	}
	return false
}

// Shop represents a place where products can be bought
type Shop struct {
	ID         uuid.UUID    `json:"id" validate:"required"`
	Name       string       `json:"name" validate:"notblank"`
	Category   ShopCategory `json:"category"`
	Address    string       `json:"address,omitempty"`
	IsOnline   bool         `json:"is_online"`
	URL        string       `json:"url,omitempty" validate:"omitempty,url"`
	IsFavorite bool         `json:"is_favorite"`
}

// Validate ensures the shop adheres to domain rules
func (s *Shop) Validate() error {
	if err := validateFields("shop", s); err != nil {
		return err
	}

	if !s.Category.Valid() {
		return errors.New("shop category is invalid")
	}

	// Online shops are only reachable through their URL
	if s.IsOnline && s.URL == "" {
		return errors.New("online shop must have a url")
	}

	return nil
}

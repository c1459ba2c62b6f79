package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the whole application state, saved and loaded as one blob
type Snapshot struct {
	Products     []Product     `json:"products"`
	Shops        []Shop        `json:"shops"`
	PriceRecords []PriceRecord `json:"price_records"`
	SavedAt      time.Time     `json:"saved_at"`
}

// Clone returns a deep copy of the snapshot.
// Price comparison always runs on a clone so callers never share live state.
func (s *Snapshot) Clone() Snapshot {
	clone := Snapshot{
		Products:     make([]Product, len(s.Products)),
		Shops:        make([]Shop, len(s.Shops)),
		PriceRecords: make([]PriceRecord, len(s.PriceRecords)),
		SavedAt:      s.SavedAt,
	}
	copy(clone.Products, s.Products)
	copy(clone.Shops, s.Shops)
	copy(clone.PriceRecords, s.PriceRecords)
	return clone
}

// IsEmpty reports whether the snapshot holds no catalog data at all
func (s *Snapshot) IsEmpty() bool {
	return len(s.Products) == 0 && len(s.Shops) == 0 && len(s.PriceRecords) == 0
}

// ProductByID returns the product with the given ID, or nil
func (s *Snapshot) ProductByID(id uuid.UUID) *Product {
	return FindProduct(s.Products, id)
}

// ShopByID returns the shop with the given ID, or nil
func (s *Snapshot) ShopByID(id uuid.UUID) *Shop {
	return FindShop(s.Shops, id)
}

// NeededProducts returns the products still to buy, in catalog order
func (s *Snapshot) NeededProducts() []Product {
	needed := make([]Product, 0)
	for _, p := range s.Products {
		if !p.IsAvailable {
			needed = append(needed, p)
		}
	}
	return needed
}

// FindProduct returns a pointer into products for the given ID, or nil
func FindProduct(products []Product, id uuid.UUID) *Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}

// FindShop returns a pointer into shops for the given ID, or nil
func FindShop(shops []Shop, id uuid.UUID) *Shop {
	for i := range shops {
		if shops[i].ID == id {
			return &shops[i]
		}
	}
	return nil
}

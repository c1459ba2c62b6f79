package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ListItem is an entry of the older, separate shopping list model.
// ProductID is nil for free-text items that were never linked to a catalog product.
type ListItem struct {
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
}

// Validate ensures the list item adheres to domain rules
func (i *ListItem) Validate() error {
	if i.Quantity < 1 {
		return errors.New("list item quantity must be at least 1")
	}

	if i.ProductID == nil && i.Name == "" {
		return errors.New("list item must have a product or a name")
	}

	return nil
}

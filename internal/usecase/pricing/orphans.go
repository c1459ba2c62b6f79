package pricing

import (
	"github.com/google/uuid"

	"github.com/pricewise/pricewise-backend/internal/domain"
)

// OrphanReason explains why a price record cannot be used
type OrphanReason string

const (
	OrphanMissingProduct OrphanReason = "MISSING_PRODUCT"
	OrphanMissingShop    OrphanReason = "MISSING_SHOP"
)

// Orphan is a price record whose product or shop no longer exists.
// The comparison functions skip these records silently; FindOrphans makes them visible.
type Orphan struct {
	Record  domain.PriceRecord
	Reasons []OrphanReason
}

// FindOrphans returns the price records of the snapshot with dangling references
func FindOrphans(snapshot *domain.Snapshot) []Orphan {
	products := make(map[uuid.UUID]struct{}, len(snapshot.Products))
	for _, p := range snapshot.Products {
		products[p.ID] = struct{}{}
	}
	shops := make(map[uuid.UUID]struct{}, len(snapshot.Shops))
	for _, s := range snapshot.Shops {
		shops[s.ID] = struct{}{}
	}

	orphans := make([]Orphan, 0)
	for _, r := range snapshot.PriceRecords {
		var reasons []OrphanReason
		if _, ok := products[r.ProductID]; !ok {
			reasons = append(reasons, OrphanMissingProduct)
		}
		if _, ok := shops[r.ShopID]; !ok {
			reasons = append(reasons, OrphanMissingShop)
		}
		if len(reasons) > 0 {
			orphans = append(orphans, Orphan{Record: r, Reasons: reasons})
		}
	}

	return orphans
}

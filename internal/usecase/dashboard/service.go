package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise-backend/internal/domain"
	"github.com/pricewise/pricewise-backend/internal/usecase/optimizer"
	"github.com/pricewise/pricewise-backend/internal/usecase/pricing"
)

// SnapshotSource provides read access to the current catalog state
type SnapshotSource interface {
	Snapshot() domain.Snapshot
}

// Overview summarizes the catalog for the home screen
type Overview struct {
	ProductCount     int
	NeededCount      int
	ShopCount        int
	PriceRecordCount int
	OrphanCount      int
	BestShop         *optimizer.ShopRanking // nil when no shop carries a needed product
	PotentialSavings decimal.Decimal        // savings available by buying favorite-shop products elsewhere
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	Catalog SnapshotSource
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(catalog SnapshotSource) *DashboardService {
	return &DashboardService{
		Catalog: catalog,
	}
}

// GetOverview calculates the catalog overview
// Logic:
//   - Counts: products, needed products, shops, price records, orphan records
//   - BestShop: first entry of the shop ranking for the needed products
//   - PotentialSavings: sum of CheaperElsewhere savings over all favorite shops
func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := s.Catalog.Snapshot()
	needed := snapshot.NeededProducts()

	overview := &Overview{
		ProductCount:     len(snapshot.Products),
		NeededCount:      len(needed),
		ShopCount:        len(snapshot.Shops),
		PriceRecordCount: len(snapshot.PriceRecords),
		OrphanCount:      len(pricing.FindOrphans(&snapshot)),
		BestShop:         optimizer.BestShop(needed, snapshot.PriceRecords, snapshot.Shops),
		PotentialSavings: decimal.Zero,
	}

	ix := pricing.NewIndex(snapshot.PriceRecords)
	for _, shop := range snapshot.Shops {
		if !shop.IsFavorite {
			continue
		}
		for _, alt := range ix.CheaperElsewhere(shop.ID, snapshot.Shops, snapshot.Products) {
			overview.PotentialSavings = overview.PotentialSavings.Add(alt.Comparison.Savings)
		}
	}

	return overview, nil
}

package seeder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise-backend/internal/domain"
	"github.com/pricewise/pricewise-backend/internal/usecase/catalog"
)

// Fixed UUIDs for the demo catalog so repeated seeding is recognizable
var (
	DEMO_SHOP_ALDI = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	DEMO_SHOP_LIDL = uuid.MustParse("00000000-0000-0000-0000-000000000102")

	DEMO_PRODUCT_MILK  = uuid.MustParse("00000000-0000-0000-0000-000000000201")
	DEMO_PRODUCT_BREAD = uuid.MustParse("00000000-0000-0000-0000-000000000202")
	DEMO_PRODUCT_EGGS  = uuid.MustParse("00000000-0000-0000-0000-000000000203")
)

const demoCurrency = "€"

// CatalogWriter is the part of the catalog the seeder needs
type CatalogWriter interface {
	Snapshot() domain.Snapshot
	ImportShop(ctx context.Context, shop domain.Shop) error
	ImportProduct(ctx context.Context, product domain.Product) error
	RecordPrice(ctx context.Context, input catalog.RecordPriceInput) (*domain.PriceRecord, error)
}

// CatalogSeeder fills an empty catalog with demo shops, products and prices
type CatalogSeeder struct {
	catalog CatalogWriter
}

// NewCatalogSeeder creates a new CatalogSeeder instance
func NewCatalogSeeder(catalog CatalogWriter) *CatalogSeeder {
	return &CatalogSeeder{
		catalog: catalog,
	}
}

// Seed inserts the demo catalog if the catalog is empty.
// Returns false without changes when data already exists.
func (s *CatalogSeeder) Seed(ctx context.Context) (bool, error) {
	current := s.catalog.Snapshot()
	if !current.IsEmpty() {
		return false, nil
	}

	shops := []domain.Shop{
		{ID: DEMO_SHOP_ALDI, Name: "Aldi", Category: domain.ShopCategoryDiscounter, IsFavorite: true},
		{ID: DEMO_SHOP_LIDL, Name: "Lidl", Category: domain.ShopCategoryDiscounter},
	}
	for _, shop := range shops {
		if err := s.catalog.ImportShop(ctx, shop); err != nil {
			return false, fmt.Errorf("failed to seed shop %s: %w", shop.Name, err)
		}
	}

	products := []domain.Product{
		{ID: DEMO_PRODUCT_MILK, Name: "Milk", Category: domain.ProductCategoryDairy},
		{ID: DEMO_PRODUCT_BREAD, Name: "Bread", Category: domain.ProductCategoryBakery},
		{ID: DEMO_PRODUCT_EGGS, Name: "Eggs", Category: domain.ProductCategoryDairy, IsAvailable: true},
	}
	for _, product := range products {
		if err := s.catalog.ImportProduct(ctx, product); err != nil {
			return false, fmt.Errorf("failed to seed product %s: %w", product.Name, err)
		}
	}

	prices := []catalog.RecordPriceInput{
		{ProductID: DEMO_PRODUCT_MILK, ShopID: DEMO_SHOP_ALDI, Brand: "Alpro", Price: decimal.RequireFromString("1.20")},
		{ProductID: DEMO_PRODUCT_MILK, ShopID: DEMO_SHOP_LIDL, Brand: "Oatly", Price: decimal.RequireFromString("1.00")},
		{ProductID: DEMO_PRODUCT_BREAD, ShopID: DEMO_SHOP_ALDI, Price: decimal.RequireFromString("1.29")},
		{ProductID: DEMO_PRODUCT_EGGS, ShopID: DEMO_SHOP_LIDL, Price: decimal.RequireFromString("2.19")},
	}
	for _, price := range prices {
		price.Currency = demoCurrency
		if _, err := s.catalog.RecordPrice(ctx, price); err != nil {
			return false, fmt.Errorf("failed to seed price: %w", err)
		}
	}

	return true, nil
}

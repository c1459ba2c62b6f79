package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise-backend/internal/domain"
	"github.com/pricewise/pricewise-backend/internal/usecase/pricing"
)

// AddProductInput represents the input for adding a product
type AddProductInput struct {
	Name        string
	Category    domain.ProductCategory
	IsAvailable bool
}

// AddShopInput represents the input for adding a shop
type AddShopInput struct {
	Name       string
	Category   domain.ShopCategory
	Address    string
	IsOnline   bool
	URL        string
	IsFavorite bool
}

// RecordPriceInput represents the input for recording a price
type RecordPriceInput struct {
	ProductID uuid.UUID
	ShopID    uuid.UUID
	Brand     string
	Price     decimal.Decimal
	Currency  string
}

// CatalogService owns the application state: products, shops and price records.
// State only changes through its methods; every change is saved as a whole
// snapshot before it becomes visible. Readers get deep copies.
type CatalogService struct {
	repo   domain.SnapshotRepository
	key    string
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	state domain.Snapshot
}

// NewCatalogService creates a new CatalogService instance storing its snapshot under key
func NewCatalogService(repo domain.SnapshotRepository, key string, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		repo:   repo,
		key:    key,
		logger: logger,
		now:    time.Now,
	}
}

// Load replaces the in-memory state with the saved snapshot.
// A key that was never saved starts an empty catalog.
func (s *CatalogService) Load(ctx context.Context) error {
	snapshot, err := s.repo.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		snapshot = &domain.Snapshot{}
		s.logger.Info("no saved catalog, starting empty", "key", s.key)
	}

	if orphans := pricing.FindOrphans(snapshot); len(orphans) > 0 {
		s.logger.Warn("catalog contains orphan price records", "key", s.key, "count", len(orphans))
	}

	s.mu.Lock()
	s.state = snapshot.Clone()
	s.mu.Unlock()

	s.logger.Info("catalog loaded",
		"key", s.key,
		"products", len(snapshot.Products),
		"shops", len(snapshot.Shops),
		"price_records", len(snapshot.PriceRecords),
	)
	return nil
}

// Snapshot returns a deep copy of the current state
func (s *CatalogService) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// NeededProducts returns the products that are not available yet
func (s *CatalogService) NeededProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.NeededProducts()
}

// AddProduct adds a new product to the catalog
func (s *CatalogService) AddProduct(ctx context.Context, input AddProductInput) (*domain.Product, error) {
	product := domain.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		IsAvailable: input.IsAvailable,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		next.Products = append(next.Products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ImportProduct adds a product keeping its ID, e.g. when seeding fixed data
func (s *CatalogService) ImportProduct(ctx context.Context, product domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		if next.ProductByID(product.ID) != nil {
			return fmt.Errorf("product %s: %w", product.ID, domain.ErrDuplicateID)
		}
		next.Products = append(next.Products, product)
		return nil
	})
}

// UpdateProduct replaces the stored product with the same ID
func (s *CatalogService) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if err := product.Validate(); err != nil {
		return nil, err
	}

	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		existing := next.ProductByID(product.ID)
		if existing == nil {
			return domain.ErrProductNotFound
		}
		*existing = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SetProductAvailability marks a product as available (owned) or needed
func (s *CatalogService) SetProductAvailability(ctx context.Context, id uuid.UUID, available bool) (*domain.Product, error) {
	var updated domain.Product
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		existing := next.ProductByID(id)
		if existing == nil {
			return domain.ErrProductNotFound
		}
		existing.IsAvailable = available
		updated = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product and all of its price records
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		kept := next.Products[:0]
		found := false
		for _, p := range next.Products {
			if p.ID == id {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		if !found {
			return domain.ErrProductNotFound
		}
		next.Products = kept
		next.PriceRecords = removeRecords(next.PriceRecords, func(r domain.PriceRecord) bool {
			return r.ProductID == id
		})
		return nil
	})
}

// AddShop adds a new shop to the catalog
func (s *CatalogService) AddShop(ctx context.Context, input AddShopInput) (*domain.Shop, error) {
	shop := domain.Shop{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(input.Name),
		Category:   input.Category,
		Address:    strings.TrimSpace(input.Address),
		IsOnline:   input.IsOnline,
		URL:        strings.TrimSpace(input.URL),
		IsFavorite: input.IsFavorite,
	}
	if err := shop.Validate(); err != nil {
		return nil, err
	}

	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		next.Shops = append(next.Shops, shop)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// ImportShop adds a shop keeping its ID
func (s *CatalogService) ImportShop(ctx context.Context, shop domain.Shop) error {
	if err := shop.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		if next.ShopByID(shop.ID) != nil {
			return fmt.Errorf("shop %s: %w", shop.ID, domain.ErrDuplicateID)
		}
		next.Shops = append(next.Shops, shop)
		return nil
	})
}

// UpdateShop replaces the stored shop with the same ID
func (s *CatalogService) UpdateShop(ctx context.Context, shop domain.Shop) (*domain.Shop, error) {
	if err := shop.Validate(); err != nil {
		return nil, err
	}

	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		existing := next.ShopByID(shop.ID)
		if existing == nil {
			return domain.ErrShopNotFound
		}
		*existing = shop
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// DeleteShop removes a shop and all price records at that shop
func (s *CatalogService) DeleteShop(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		kept := next.Shops[:0]
		found := false
		for _, shop := range next.Shops {
			if shop.ID == id {
				found = true
				continue
			}
			kept = append(kept, shop)
		}
		if !found {
			return domain.ErrShopNotFound
		}
		next.Shops = kept
		next.PriceRecords = removeRecords(next.PriceRecords, func(r domain.PriceRecord) bool {
			return r.ShopID == id
		})
		return nil
	})
}

// RecordPrice stores the price of a product at a shop for a brand.
// An existing record for the same product, shop and brand is updated in place,
// so each branded offer has at most one record.
func (s *CatalogService) RecordPrice(ctx context.Context, input RecordPriceInput) (*domain.PriceRecord, error) {
	candidate := domain.PriceRecord{
		ID:        uuid.New(),
		ProductID: input.ProductID,
		ShopID:    input.ShopID,
		Brand:     strings.TrimSpace(input.Brand),
		Price:     input.Price,
		Currency:  strings.TrimSpace(input.Currency),
		UpdatedAt: s.now().UTC(),
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	var stored domain.PriceRecord
	err := s.mutate(ctx, func(next *domain.Snapshot) error {
		if next.ProductByID(candidate.ProductID) == nil {
			return domain.ErrProductNotFound
		}
		if next.ShopByID(candidate.ShopID) == nil {
			return domain.ErrShopNotFound
		}

		for i := range next.PriceRecords {
			existing := &next.PriceRecords[i]
			if existing.SameOffer(&candidate) {
				existing.Price = candidate.Price
				existing.Currency = candidate.Currency
				existing.UpdatedAt = candidate.UpdatedAt
				stored = *existing
				return nil
			}
		}

		next.PriceRecords = append(next.PriceRecords, candidate)
		stored = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeletePriceRecord removes a single price record
func (s *CatalogService) DeletePriceRecord(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		before := len(next.PriceRecords)
		next.PriceRecords = removeRecords(next.PriceRecords, func(r domain.PriceRecord) bool {
			return r.ID == id
		})
		if len(next.PriceRecords) == before {
			return domain.ErrPriceRecordNotFound
		}
		return nil
	})
}

// mutate applies fn to a copy of the state, saves the copy and then publishes it.
// If fn or the save fails the current state is left untouched.
func (s *CatalogService) mutate(ctx context.Context, fn func(next *domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.SavedAt = s.now().UTC()

	if err := s.repo.Save(ctx, s.key, &next); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	s.state = next
	return nil
}

func removeRecords(records []domain.PriceRecord, drop func(domain.PriceRecord) bool) []domain.PriceRecord {
	kept := records[:0]
	for _, r := range records {
		if !drop(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

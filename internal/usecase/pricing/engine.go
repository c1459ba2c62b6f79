package pricing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Offer is the cheapest known price for a product and the shop offering it
type Offer struct {
	Shop   *domain.Shop
	Price  decimal.Decimal
	Record *domain.PriceRecord
}

// ComparisonResult describes how the price at one shop compares to the best price anywhere
type ComparisonResult struct {
	CurrentPrice     decimal.Decimal
	CheapestPrice    decimal.Decimal
	CheapestShopID   uuid.UUID
	CheapestShopName string
	Savings          decimal.Decimal // CurrentPrice - CheapestPrice, may be zero or negative
	SavingsPercent   decimal.Decimal // relative to CurrentPrice, zero when CurrentPrice is zero
	IsCheapest       bool
	CurrentRecord    *domain.PriceRecord
	CheapestRecord   *domain.PriceRecord
}

// ShopOption groups every record of a product at one shop
type ShopOption struct {
	Shop     *domain.Shop
	MinPrice decimal.Decimal
	Records  []*domain.PriceRecord // ascending by price
}

// Range is the lowest and highest recorded price of a product
type Range struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Alternative is a product that can be bought cheaper at another shop
type Alternative struct {
	Product        *domain.Product
	LocalRecord    *domain.PriceRecord
	CheapestShop   *domain.Shop
	CheapestRecord *domain.PriceRecord
	Comparison     ComparisonResult
}

// CheapestAtShop returns the lowest priced record of a product at one shop.
// Returns nil if the shop has no price for the product.
// On equal prices the record that comes first in records wins.
func CheapestAtShop(productID, shopID uuid.UUID, records []domain.PriceRecord) *domain.PriceRecord {
	var cheapest *domain.PriceRecord
	for i := range records {
		r := &records[i]
		if r.ProductID != productID || r.ShopID != shopID {
			continue
		}
		if cheapest == nil || r.Price.LessThan(cheapest.Price) {
			cheapest = r
		}
	}
	return cheapest
}

// CheapestAnywhere returns the lowest priced record of a product across all shops.
// Returns nil if there is no record, or if the cheapest record points to a shop
// that is not in the catalog.
func CheapestAnywhere(productID uuid.UUID, records []domain.PriceRecord, shops []domain.Shop) *Offer {
	var cheapest *domain.PriceRecord
	for i := range records {
		r := &records[i]
		if r.ProductID != productID {
			continue
		}
		if cheapest == nil || r.Price.LessThan(cheapest.Price) {
			cheapest = r
		}
	}
	return resolveOffer(cheapest, shops)
}

// Compare compares the price of a product at shopID with the cheapest price anywhere.
// Returns nil if the shop has no price for the product or no usable cheapest price exists.
func Compare(productID, shopID uuid.UUID, records []domain.PriceRecord, shops []domain.Shop) *ComparisonResult {
	current := CheapestAtShop(productID, shopID, records)
	if current == nil {
		return nil
	}

	best := CheapestAnywhere(productID, records, shops)
	if best == nil {
		return nil
	}

	result := newComparison(current, best)
	return &result
}

// AllOptionsForProduct lists every shop carrying the product, cheapest shop first.
// Records of shops missing from the catalog are skipped.
func AllOptionsForProduct(productID uuid.UUID, records []domain.PriceRecord, shops []domain.Shop) []ShopOption {
	options := make([]ShopOption, 0)
	position := make(map[uuid.UUID]int)

	for i := range records {
		r := &records[i]
		if r.ProductID != productID {
			continue
		}

		if idx, ok := position[r.ShopID]; ok {
			options[idx].Records = append(options[idx].Records, r)
			continue
		}

		shop := domain.FindShop(shops, r.ShopID)
		if shop == nil {
			continue
		}
		position[r.ShopID] = len(options)
		options = append(options, ShopOption{Shop: shop, Records: []*domain.PriceRecord{r}})
	}

	for i := range options {
		group := options[i].Records
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].Price.LessThan(group[b].Price)
		})
		options[i].MinPrice = group[0].Price
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].MinPrice.LessThan(options[j].MinPrice)
	})

	return options
}

// PriceRange returns the lowest and highest price recorded for a product over all shops.
// Returns nil if the product has no records.
func PriceRange(productID uuid.UUID, records []domain.PriceRecord) *Range {
	var result *Range
	for _, r := range records {
		if r.ProductID != productID {
			continue
		}
		if result == nil {
			result = &Range{Min: r.Price, Max: r.Price}
			continue
		}
		if r.Price.LessThan(result.Min) {
			result.Min = r.Price
		}
		if r.Price.GreaterThan(result.Max) {
			result.Max = r.Price
		}
	}
	return result
}

// CheaperElsewhere lists the products carried at shopID that are strictly cheaper
// at another shop, biggest savings first.
func CheaperElsewhere(shopID uuid.UUID, records []domain.PriceRecord, shops []domain.Shop, products []domain.Product) []Alternative {
	return NewIndex(records).CheaperElsewhere(shopID, shops, products)
}

func resolveOffer(cheapest *domain.PriceRecord, shops []domain.Shop) *Offer {
	if cheapest == nil {
		return nil
	}

	shop := domain.FindShop(shops, cheapest.ShopID)
	if shop == nil {
		return nil
	}

	return &Offer{Shop: shop, Price: cheapest.Price, Record: cheapest}
}

// newComparison builds the result for a local record against the best offer.
// IsCheapest is record identity: with two shops tied on the best price only the
// one holding the chosen cheapest record is flagged.
func newComparison(current *domain.PriceRecord, best *Offer) ComparisonResult {
	savings := current.Price.Sub(best.Price)

	percent := decimal.Zero
	if current.Price.IsPositive() {
		percent = savings.Div(current.Price).Mul(hundred)
	}

	return ComparisonResult{
		CurrentPrice:     current.Price,
		CheapestPrice:    best.Price,
		CheapestShopID:   best.Shop.ID,
		CheapestShopName: best.Shop.Name,
		Savings:          savings,
		SavingsPercent:   percent,
		IsCheapest:       current == best.Record,
		CurrentRecord:    current,
		CheapestRecord:   best.Record,
	}
}

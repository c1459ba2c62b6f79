package pricing

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pricewise/pricewise-backend/internal/domain"
)

// Index groups price records by product and shop so repeated lookups in one
// computation do not rescan the whole record list.
// Lookups follow the same tie-break as the plain functions: first record in input order.
type Index struct {
	byProduct     map[uuid.UUID][]*domain.PriceRecord
	byProductShop map[uuid.UUID]map[uuid.UUID][]*domain.PriceRecord
	shopProducts  map[uuid.UUID][]uuid.UUID // distinct products per shop, first-seen order
}

// NewIndex builds an index over records.
// The index keeps pointers into records, which must not change while it is in use.
func NewIndex(records []domain.PriceRecord) *Index {
	ix := &Index{
		byProduct:     make(map[uuid.UUID][]*domain.PriceRecord),
		byProductShop: make(map[uuid.UUID]map[uuid.UUID][]*domain.PriceRecord),
		shopProducts:  make(map[uuid.UUID][]uuid.UUID),
	}

	for i := range records {
		r := &records[i]
		ix.byProduct[r.ProductID] = append(ix.byProduct[r.ProductID], r)

		perShop, ok := ix.byProductShop[r.ProductID]
		if !ok {
			perShop = make(map[uuid.UUID][]*domain.PriceRecord)
			ix.byProductShop[r.ProductID] = perShop
		}
		if _, seen := perShop[r.ShopID]; !seen {
			ix.shopProducts[r.ShopID] = append(ix.shopProducts[r.ShopID], r.ProductID)
		}
		perShop[r.ShopID] = append(perShop[r.ShopID], r)
	}

	return ix
}

// CheapestAtShop is the indexed form of the package level CheapestAtShop
func (ix *Index) CheapestAtShop(productID, shopID uuid.UUID) *domain.PriceRecord {
	return minByPrice(ix.byProductShop[productID][shopID])
}

// CheapestRecord returns the lowest priced record of a product across all shops,
// without resolving the shop
func (ix *Index) CheapestRecord(productID uuid.UUID) *domain.PriceRecord {
	return minByPrice(ix.byProduct[productID])
}

// CheapestAnywhere is the indexed form of the package level CheapestAnywhere
func (ix *Index) CheapestAnywhere(productID uuid.UUID, shops []domain.Shop) *Offer {
	return resolveOffer(ix.CheapestRecord(productID), shops)
}

// Compare is the indexed form of the package level Compare
func (ix *Index) Compare(productID, shopID uuid.UUID, shops []domain.Shop) *ComparisonResult {
	current := ix.CheapestAtShop(productID, shopID)
	if current == nil {
		return nil
	}

	best := ix.CheapestAnywhere(productID, shops)
	if best == nil {
		return nil
	}

	result := newComparison(current, best)
	return &result
}

// ProductsAtShop returns the distinct product IDs that have a price at shopID
func (ix *Index) ProductsAtShop(shopID uuid.UUID) []uuid.UUID {
	return ix.shopProducts[shopID]
}

// CheaperElsewhere is the indexed form of the package level CheaperElsewhere
func (ix *Index) CheaperElsewhere(shopID uuid.UUID, shops []domain.Shop, products []domain.Product) []Alternative {
	alternatives := make([]Alternative, 0)

	for _, productID := range ix.ProductsAtShop(shopID) {
		cmp := ix.Compare(productID, shopID, shops)
		if cmp == nil {
			continue
		}

		// Savings must be strictly positive, IsCheapest alone is not enough
		// when another shop ties on the best price
		if cmp.IsCheapest || !cmp.Savings.IsPositive() {
			continue
		}

		product := domain.FindProduct(products, productID)
		if product == nil {
			continue
		}

		alternatives = append(alternatives, Alternative{
			Product:        product,
			LocalRecord:    cmp.CurrentRecord,
			CheapestShop:   domain.FindShop(shops, cmp.CheapestShopID),
			CheapestRecord: cmp.CheapestRecord,
			Comparison:     *cmp,
		})
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].Comparison.Savings.GreaterThan(alternatives[j].Comparison.Savings)
	})

	return alternatives
}

// minByPrice returns the first record holding the minimum price, or nil
func minByPrice(candidates []*domain.PriceRecord) *domain.PriceRecord {
	var cheapest *domain.PriceRecord
	for _, r := range candidates {
		if cheapest == nil || r.Price.LessThan(cheapest.Price) {
			cheapest = r
		}
	}
	return cheapest
}

package optimizer

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise-backend/internal/domain"
	"github.com/pricewise/pricewise-backend/internal/usecase/pricing"
)

// ShopRanking describes how well one shop covers the shopping list
type ShopRanking struct {
	Shop                  domain.Shop
	ProductsAvailable     int             // needed products with a price at this shop
	CheapestProductsCount int             // needed products for which this shop is the cheapest anywhere
	EstimatedTotal        decimal.Decimal // sum of this shop's cheapest price per available product
}

// ListTotal is the cost of a shopping list at a shop
type ListTotal struct {
	Total         decimal.Decimal
	PricedCount   int
	UnpricedCount int
}

// RankShopsForList ranks the shops by how many of the needed products they carry.
// Logic:
//  1. For every shop and every needed product, look up the shop's cheapest record
//  2. Count the product as available and add its price to the estimated total
//  3. Count it as cheapest when the shop holds the cheapest-anywhere offer
//  4. Drop shops carrying none of the products
//  5. Sort by ProductsAvailable desc, then CheapestProductsCount desc (catalog order on ties)
//
// The records are indexed once per call.
func RankShopsForList(needed []domain.Product, records []domain.PriceRecord, shops []domain.Shop) []ShopRanking {
	ix := pricing.NewIndex(records)

	// Cheapest shop per product does not depend on the shop being ranked
	cheapestShop := make(map[uuid.UUID]uuid.UUID, len(needed))
	for _, p := range needed {
		if offer := ix.CheapestAnywhere(p.ID, shops); offer != nil {
			cheapestShop[p.ID] = offer.Shop.ID
		}
	}

	rankings := make([]ShopRanking, 0)
	for _, shop := range shops {
		ranking := ShopRanking{Shop: shop, EstimatedTotal: decimal.Zero}

		for _, p := range needed {
			local := ix.CheapestAtShop(p.ID, shop.ID)
			if local == nil {
				continue
			}

			ranking.ProductsAvailable++
			ranking.EstimatedTotal = ranking.EstimatedTotal.Add(local.Price)

			if id, ok := cheapestShop[p.ID]; ok && id == shop.ID {
				ranking.CheapestProductsCount++
			}
		}

		if ranking.ProductsAvailable == 0 {
			continue
		}
		rankings = append(rankings, ranking)
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].ProductsAvailable != rankings[j].ProductsAvailable {
			return rankings[i].ProductsAvailable > rankings[j].ProductsAvailable
		}
		return rankings[i].CheapestProductsCount > rankings[j].CheapestProductsCount
	})

	return rankings
}

// BestShop returns the best one-stop shop for the needed products, or nil if no
// shop carries any of them
func BestShop(needed []domain.Product, records []domain.PriceRecord, shops []domain.Shop) *ShopRanking {
	rankings := RankShopsForList(needed, records, shops)
	if len(rankings) == 0 {
		return nil
	}
	return &rankings[0]
}

// ListTotalAtShop sums price times quantity for the list items priced at shopID.
// Items without a product or without a price at the shop are counted as unpriced.
func ListTotalAtShop(items []domain.ListItem, shopID uuid.UUID, records []domain.PriceRecord) ListTotal {
	ix := pricing.NewIndex(records)
	total := ListTotal{Total: decimal.Zero}

	for _, item := range items {
		if item.ProductID == nil {
			total.UnpricedCount++
			continue
		}

		local := ix.CheapestAtShop(*item.ProductID, shopID)
		if local == nil {
			total.UnpricedCount++
			continue
		}

		total.PricedCount++
		total.Total = total.Total.Add(local.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

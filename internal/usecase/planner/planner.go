package planner

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise-backend/internal/domain"
	"github.com/pricewise/pricewise-backend/internal/usecase/pricing"
)

// PlannedItem is a product to pick up at a stop, with the record that sets its price
type PlannedItem struct {
	Product domain.Product
	Record  domain.PriceRecord
}

// TripStop is one shop to visit and what to buy there
type TripStop struct {
	Shop     domain.Shop
	Items    []PlannedItem
	Subtotal decimal.Decimal
}

// TripPlan splits a shopping list over the shops where each product is cheapest
type TripPlan struct {
	Stops       []TripStop
	Unavailable []domain.Product // needed products without any usable price
	Total       decimal.Decimal
}

// PlanTrip assigns every needed product to the shop offering it cheapest.
//
// Logic:
//   - Look up the cheapest-anywhere offer for each needed product
//   - Group the products by the shop of that offer
//   - Products without an offer (no record, or record of a deleted shop) go to Unavailable
//   - Order stops by item count desc, then subtotal desc, then first appearance
func PlanTrip(needed []domain.Product, records []domain.PriceRecord, shops []domain.Shop) TripPlan {
	ix := pricing.NewIndex(records)

	plan := TripPlan{
		Stops:       make([]TripStop, 0),
		Unavailable: make([]domain.Product, 0),
		Total:       decimal.Zero,
	}
	stopIndex := make(map[uuid.UUID]int)

	for _, product := range needed {
		offer := ix.CheapestAnywhere(product.ID, shops)
		if offer == nil {
			plan.Unavailable = append(plan.Unavailable, product)
			continue
		}

		idx, ok := stopIndex[offer.Shop.ID]
		if !ok {
			idx = len(plan.Stops)
			stopIndex[offer.Shop.ID] = idx
			plan.Stops = append(plan.Stops, TripStop{Shop: *offer.Shop, Subtotal: decimal.Zero})
		}

		stop := &plan.Stops[idx]
		stop.Items = append(stop.Items, PlannedItem{Product: product, Record: *offer.Record})
		stop.Subtotal = stop.Subtotal.Add(offer.Price)
		plan.Total = plan.Total.Add(offer.Price)
	}

	sort.SliceStable(plan.Stops, func(i, j int) bool {
		a, b := plan.Stops[i], plan.Stops[j]
		if len(a.Items) != len(b.Items) {
			return len(a.Items) > len(b.Items)
		}
		return a.Subtotal.GreaterThan(b.Subtotal)
	})

	return plan
}

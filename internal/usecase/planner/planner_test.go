package planner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricewise/pricewise-backend/internal/domain"
)

func rec(productID, shopID uuid.UUID, brand, amount string) domain.PriceRecord {
	return domain.PriceRecord{
		ID:        uuid.New(),
		ProductID: productID,
		ShopID:    shopID,
		Brand:     brand,
		Price:     decimal.RequireFromString(amount),
		Currency:  "€",
	}
}

func TestPlanTrip_SplitsAcrossCheapestShops(t *testing.T) {
	aldi := domain.Shop{ID: uuid.New(), Name: "Aldi", Category: domain.ShopCategoryDiscounter}
	lidl := domain.Shop{ID: uuid.New(), Name: "Lidl", Category: domain.ShopCategoryDiscounter}

	milk := domain.Product{ID: uuid.New(), Name: "Milk", Category: domain.ProductCategoryDairy}
	bread := domain.Product{ID: uuid.New(), Name: "Bread", Category: domain.ProductCategoryBakery}
	eggs := domain.Product{ID: uuid.New(), Name: "Eggs", Category: domain.ProductCategoryDairy}
	salt := domain.Product{ID: uuid.New(), Name: "Salt", Category: domain.ProductCategoryPantry}

	records := []domain.PriceRecord{
		rec(milk.ID, aldi.ID, "Alpro", "1.20"),
		rec(milk.ID, lidl.ID, "Oatly", "1.00"),
		rec(bread.ID, aldi.ID, "", "1.10"),
		rec(bread.ID, lidl.ID, "", "1.40"),
		rec(eggs.ID, lidl.ID, "", "2.20"),
	}

	plan := PlanTrip([]domain.Product{milk, bread, eggs, salt}, records, []domain.Shop{aldi, lidl})

	require.Len(t, plan.Stops, 2)

	assert.Equal(t, "Lidl", plan.Stops[0].Shop.Name, "most items first")
	require.Len(t, plan.Stops[0].Items, 2)
	assert.Equal(t, "Milk", plan.Stops[0].Items[0].Product.Name)
	assert.Equal(t, "Oatly", plan.Stops[0].Items[0].Record.Brand)
	assert.Equal(t, "Eggs", plan.Stops[0].Items[1].Product.Name)
	assert.True(t, plan.Stops[0].Subtotal.Equal(decimal.RequireFromString("3.20")))

	assert.Equal(t, "Aldi", plan.Stops[1].Shop.Name)
	require.Len(t, plan.Stops[1].Items, 1)
	assert.True(t, plan.Stops[1].Subtotal.Equal(decimal.RequireFromString("1.10")))

	require.Len(t, plan.Unavailable, 1)
	assert.Equal(t, "Salt", plan.Unavailable[0].Name)

	assert.True(t, plan.Total.Equal(decimal.RequireFromString("4.30")))
}

func TestPlanTrip_DeletedShopMakesProductUnavailable(t *testing.T) {
	aldi := domain.Shop{ID: uuid.New(), Name: "Aldi", Category: domain.ShopCategoryDiscounter}
	milk := domain.Product{ID: uuid.New(), Name: "Milk", Category: domain.ProductCategoryDairy}

	records := []domain.PriceRecord{
		rec(milk.ID, uuid.New(), "", "0.10"),
		rec(milk.ID, aldi.ID, "", "1.00"),
	}

	plan := PlanTrip([]domain.Product{milk}, records, []domain.Shop{aldi})

	assert.Empty(t, plan.Stops)
	require.Len(t, plan.Unavailable, 1)
	assert.True(t, plan.Total.IsZero())
}

func TestPlanTrip_EqualItemCountOrdersBySubtotal(t *testing.T) {
	aldi := domain.Shop{ID: uuid.New(), Name: "Aldi", Category: domain.ShopCategoryDiscounter}
	rewe := domain.Shop{ID: uuid.New(), Name: "Rewe", Category: domain.ShopCategorySupermarket}
	cheese := domain.Product{ID: uuid.New(), Name: "Cheese", Category: domain.ProductCategoryDairy}
	water := domain.Product{ID: uuid.New(), Name: "Water", Category: domain.ProductCategoryBeverages}

	records := []domain.PriceRecord{
		rec(water.ID, aldi.ID, "", "0.29"),
		rec(cheese.ID, rewe.ID, "", "4.99"),
	}

	plan := PlanTrip([]domain.Product{water, cheese}, records, []domain.Shop{aldi, rewe})

	require.Len(t, plan.Stops, 2)
	assert.Equal(t, "Rewe", plan.Stops[0].Shop.Name)
	assert.Equal(t, "Aldi", plan.Stops[1].Shop.Name)
}

func TestPlanTrip_NothingNeeded(t *testing.T) {
	plan := PlanTrip(nil, nil, nil)

	assert.Empty(t, plan.Stops)
	assert.Empty(t, plan.Unavailable)
	assert.True(t, plan.Total.IsZero())
}

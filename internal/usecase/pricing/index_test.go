package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricewise/pricewise-backend/internal/domain"
)

func TestIndex_MatchesPlainFunctions(t *testing.T) {
	records := []domain.PriceRecord{
		record(milkID, aldiID, "Alpro", "1.20"),
		record(milkID, aldiID, "Milsani", "1.20"),
		record(milkID, lidlID, "Oatly", "1.00"),
		record(breadID, reweID, "", "2.10"),
		record(breadID, lidlID, "", "2.10"),
		record(milkID, reweID, "", "1.00"),
	}
	shops := testShops()
	ix := NewIndex(records)

	for _, productID := range []uuid.UUID{milkID, breadID, uuid.New()} {
		for _, shopID := range []uuid.UUID{aldiID, lidlID, reweID} {
			assert.Same(t, CheapestAtShop(productID, shopID, records), ix.CheapestAtShop(productID, shopID))

			plain := Compare(productID, shopID, records, shops)
			indexed := ix.Compare(productID, shopID, shops)
			if plain == nil {
				assert.Nil(t, indexed)
				continue
			}
			require.NotNil(t, indexed)
			assert.Equal(t, *plain, *indexed)
		}

		plainOffer := CheapestAnywhere(productID, records, shops)
		indexedOffer := ix.CheapestAnywhere(productID, shops)
		if plainOffer == nil {
			assert.Nil(t, indexedOffer)
			continue
		}
		require.NotNil(t, indexedOffer)
		assert.Same(t, plainOffer.Record, indexedOffer.Record)
	}
}

func TestIndex_ProductsAtShop(t *testing.T) {
	records := []domain.PriceRecord{
		record(breadID, aldiID, "", "2.10"),
		record(milkID, aldiID, "Alpro", "1.20"),
		record(breadID, aldiID, "Harry", "2.30"),
		record(milkID, lidlID, "Oatly", "1.00"),
	}

	ix := NewIndex(records)

	assert.Equal(t, []uuid.UUID{breadID, milkID}, ix.ProductsAtShop(aldiID))
	assert.Equal(t, []uuid.UUID{milkID}, ix.ProductsAtShop(lidlID))
	assert.Empty(t, ix.ProductsAtShop(reweID))
}

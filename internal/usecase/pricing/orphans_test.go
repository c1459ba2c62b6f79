package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricewise/pricewise-backend/internal/domain"
)

func TestFindOrphans(t *testing.T) {
	deletedShop := uuid.New()
	deletedProduct := uuid.New()

	snapshot := &domain.Snapshot{
		Products: testProducts(),
		Shops:    testShops(),
		PriceRecords: []domain.PriceRecord{
			record(milkID, aldiID, "", "1.00"),
			record(milkID, deletedShop, "", "0.90"),
			record(deletedProduct, lidlID, "", "2.00"),
			record(deletedProduct, deletedShop, "", "2.00"),
		},
	}

	orphans := FindOrphans(snapshot)

	require.Len(t, orphans, 3)
	assert.Equal(t, []OrphanReason{OrphanMissingShop}, orphans[0].Reasons)
	assert.Equal(t, []OrphanReason{OrphanMissingProduct}, orphans[1].Reasons)
	assert.Equal(t, []OrphanReason{OrphanMissingProduct, OrphanMissingShop}, orphans[2].Reasons)
	assert.Equal(t, snapshot.PriceRecords[1].ID, orphans[0].Record.ID)
}

func TestFindOrphans_CleanSnapshot(t *testing.T) {
	snapshot := &domain.Snapshot{
		Products:     testProducts(),
		Shops:        testShops(),
		PriceRecords: milkScenario(),
	}

	assert.Empty(t, FindOrphans(snapshot))
}

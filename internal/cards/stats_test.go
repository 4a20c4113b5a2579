package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethsmith/csc-trading-cards/internal/models"
)

func TestCollectionStats_Empty(t *testing.T) {
	stats := CollectionStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.UniquePlayers)
	require.Len(t, stats.ByRarity, 5)
	for _, rarity := range models.Rarities {
		assert.Equal(t, 0, stats.ByRarity[rarity])
	}
}

func TestCollectionStats_Counts(t *testing.T) {
	cards := []models.Card{
		{Id: "c1", Player: testPlayer("p1", "Ace"), Rarity: models.RarityNormal},
		{Id: "c2", Player: testPlayer("p1", "Ace"), Rarity: models.RarityNormal},
		{Id: "c3", Player: testPlayer("p2", "Bravo"), Rarity: models.RarityFoil},
		{Id: "c4", Player: testPlayer("p3", "Cyclone"), Rarity: models.RarityPrismatic},
	}

	stats := CollectionStats(cards)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.UniquePlayers)
	assert.Equal(t, 2, stats.ByRarity[models.RarityNormal])
	assert.Equal(t, 1, stats.ByRarity[models.RarityFoil])
	assert.Equal(t, 0, stats.ByRarity[models.RarityHolo])
	assert.Equal(t, 0, stats.ByRarity[models.RarityGold])
	assert.Equal(t, 1, stats.ByRarity[models.RarityPrismatic])
}

func TestCollectionStats_UniquePlayersCollapseDuplicates(t *testing.T) {
	cards := []models.Card{
		{Id: "c1", Player: testPlayer("p1", "Ace"), Rarity: models.RarityNormal},
		{Id: "c2", Player: testPlayer("p1", "Ace"), Rarity: models.RarityGold},
		{Id: "c3", Player: testPlayer("p1", "Ace"), Rarity: models.RarityHolo},
	}

	stats := CollectionStats(cards)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.UniquePlayers)
}

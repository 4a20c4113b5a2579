package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethsmith/csc-trading-cards/internal/models"
)

func testRoster() []models.Player {
	return []models.Player{
		testPlayer("p1", "Ace"),
		testPlayer("p2", "Bravo"),
		testPlayer("p3", "Cyclone"),
	}
}

func TestEngine_OpenPack_Size(t *testing.T) {
	e := NewEngine(NewSource(1))
	pack := e.OpenPack(testRoster(), 5)

	require.Len(t, pack, 5)
	for _, c := range pack {
		assert.True(t, c.Rarity.Valid())
		assert.NotEmpty(t, c.Id)
	}
}

func TestEngine_OpenPack_SkipsIneligiblePlayers(t *testing.T) {
	noStats := models.Player{Id: "p4", Name: "Ghost"}
	noGames := testPlayer("p5", "Rookie")
	noGames.Stats.GameCount = 0

	roster := append(testRoster(), noStats, noGames)
	e := NewEngine(NewSource(3))

	for i := 0; i < 50; i++ {
		for _, c := range e.OpenPack(roster, 5) {
			assert.NotEqual(t, "p4", c.Player.Id)
			assert.NotEqual(t, "p5", c.Player.Id)
		}
	}
}

func TestEngine_OpenPack_EmptyPoolYieldsEmptyPack(t *testing.T) {
	e := NewEngine(NewSource(1))

	assert.Empty(t, e.OpenPack(nil, 5))
	assert.Empty(t, e.OpenPack([]models.Player{{Id: "p1", Name: "Ghost"}}, 5))
	assert.NotNil(t, e.OpenPack(nil, 5))
}

func TestEngine_OpenPack_ZeroSize(t *testing.T) {
	e := NewEngine(NewSource(1))
	assert.Empty(t, e.OpenPack(testRoster(), 0))
}

func TestEngine_OpenPack_AllowsDuplicatePlayers(t *testing.T) {
	// Single eligible player: every slot must land on them.
	roster := []models.Player{testPlayer("solo", "Solo")}
	e := NewEngine(NewSource(1))

	pack := e.OpenPack(roster, 5)
	require.Len(t, pack, 5)
	for _, c := range pack {
		assert.Equal(t, "solo", c.Player.Id)
	}
}

func TestEngine_OpenPack_Deterministic(t *testing.T) {
	a := NewEngine(NewSource(77)).OpenPack(testRoster(), 10)
	b := NewEngine(NewSource(77)).OpenPack(testRoster(), 10)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Player.Id, b[i].Player.Id)
		assert.Equal(t, a[i].Rarity, b[i].Rarity)
	}
}

func TestEngine_OpenPackGuaranteed_MeetsMinimums(t *testing.T) {
	e := NewEngine(NewSource(1))
	pack := e.OpenPackGuaranteed(testRoster(), 5, map[models.Rarity]int{
		models.RarityHolo: 1,
		models.RarityGold: 1,
	})

	require.Len(t, pack, 5)
	counts := make(map[models.Rarity]int)
	for _, c := range pack {
		counts[c.Rarity]++
	}
	assert.GreaterOrEqual(t, counts[models.RarityHolo], 1)
	assert.GreaterOrEqual(t, counts[models.RarityGold], 1)
}

func TestEngine_OpenPackGuaranteed_CappedAtSize(t *testing.T) {
	e := NewEngine(NewSource(1))
	pack := e.OpenPackGuaranteed(testRoster(), 3, map[models.Rarity]int{
		models.RarityNormal: 10,
	})
	assert.Len(t, pack, 3)
}

func TestEngine_OpenPackGuaranteed_NoGuaranteesBehavesLikeOpenPack(t *testing.T) {
	pack := NewEngine(NewSource(9)).OpenPackGuaranteed(testRoster(), 5, nil)
	require.Len(t, pack, 5)
	for _, c := range pack {
		assert.True(t, c.Rarity.Valid())
	}
}

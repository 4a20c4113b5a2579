package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethsmith/csc-trading-cards/internal/cards"
	"github.com/ethsmith/csc-trading-cards/internal/models"
	. "github.com/ethsmith/csc-trading-cards/internal/services"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
	"github.com/ethsmith/csc-trading-cards/internal/testutil"
)

type stubPlayers struct {
	list []models.Player
}

func (s *stubPlayers) GetPlayers() []models.Player { return s.list }
func (s *stubPlayers) EligibleCount() int {
	count := 0
	for i := range s.list {
		if s.list[i].Eligible() {
			count++
		}
	}
	return count
}
func (s *stubPlayers) Refresh() error { return nil }

func eligiblePlayer(id, name string) models.Player {
	return models.Player{
		Id:   id,
		Name: name,
		Tier: models.Tier{Name: "Elite"},
		Stats: &models.PlayerStats{
			Name:      name,
			Rating:    1.1,
			GameCount: 10,
		},
	}
}

func gameConf() *structures.Config {
	return &structures.Config{
		Game: structures.GameConfig{
			PackSize:      5,
			CardsPerPack:  3,
			StartingPacks: 2,
		},
	}
}

type collectionFixture struct {
	svc   CollectionServiceInterface
	store *models.CollectionStore
	cold  *testutil.MockColdStorage
}

func newCollectionFixture(roster ...models.Player) *collectionFixture {
	store := models.NewCollectionStore()
	cold := testutil.NewMockColdStorage()
	svc := NewCollectionServiceWithEngine(gameConf(), store, cold, &stubPlayers{list: roster},
		cards.NewEngine(cards.NewSource(1)))
	return &collectionFixture{svc: svc, store: store, cold: cold}
}

func TestCollectionService_FirstContactCreditsStartingPacks(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))

	assert.Equal(t, 2, f.svc.GetBalance("u1"))
	assert.Empty(t, f.svc.GetCollection("u1"))

	// a later call must not re-credit
	assert.Equal(t, 2, f.svc.GetBalance("u1"))
}

func TestCollectionService_OpenPack(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"), eligiblePlayer("p2", "Bravo"))

	result, err := f.svc.OpenPack("u1")
	require.NoError(t, err)
	assert.Len(t, result.Cards, 5)
	assert.Equal(t, 1, result.Balance)
	assert.Len(t, f.svc.GetCollection("u1"), 5)
}

func TestCollectionService_OpenPack_NoPacksLeft(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))

	for i := 0; i < 2; i++ {
		_, err := f.svc.OpenPack("u1")
		require.NoError(t, err)
	}

	_, err := f.svc.OpenPack("u1")
	assert.ErrorIs(t, err, ErrNoPacks)
	assert.Len(t, f.svc.GetCollection("u1"), 10)
}

func TestCollectionService_OpenPack_NoEligiblePlayersDoesNotSpend(t *testing.T) {
	f := newCollectionFixture(models.Player{Id: "p1", Name: "Ghost"})

	_, err := f.svc.OpenPack("u1")
	assert.ErrorIs(t, err, ErrNoEligiblePlayers)
	assert.Equal(t, 2, f.svc.GetBalance("u1"))
}

func TestCollectionService_GetStatsAndView(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))
	_, err := f.svc.OpenPack("u1")
	require.NoError(t, err)

	stats := f.svc.GetStats("u1")
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.UniquePlayers)

	view := f.svc.GetView("u1", cards.Query{PerPage: 2, Page: 1})
	assert.Len(t, view.Cards, 2)
	assert.Equal(t, 5, view.TotalCards)

	assert.Equal(t, []string{"Elite"}, f.svc.GetTierOptions("u1"))
}

func seedDuplicates(store *models.CollectionStore, userId string, n int) []string {
	ids := make([]string, 0, n)
	dupes := make([]models.Card, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("dup-%d", i)
		ids = append(ids, id)
		dupes = append(dupes, models.Card{
			Id:         id,
			Player:     eligiblePlayer("p9", "Nova"),
			Rarity:     models.RarityNormal,
			ObtainedAt: int64(100 + i),
			SnapshotId: "snap-nova",
		})
	}
	store.Append(userId, dupes)
	return ids
}

func TestCollectionService_GetTradeable(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))
	seedDuplicates(f.store, "u1", 4)

	result := f.svc.GetTradeable("u1")
	assert.Len(t, result.Tradeable, 3)
	assert.Equal(t, 1, result.PacksAvailable)
}

func TestCollectionService_TradeIn(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))
	ids := seedDuplicates(f.store, "u1", 4)

	// the oldest copy (dup-0) is kept; trade the three newer ones
	balance, err := f.svc.TradeIn("u1", ids[1:])
	require.NoError(t, err)
	assert.Equal(t, 3, balance)

	remaining := f.svc.GetCollection("u1")
	require.Len(t, remaining, 1)
	assert.Equal(t, "dup-0", remaining[0].Id)
}

func TestCollectionService_TradeIn_RejectsKeptCopy(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))
	ids := seedDuplicates(f.store, "u1", 4)

	// dup-0 is the kept oldest copy and never tradeable
	_, err := f.svc.TradeIn("u1", []string{ids[0], ids[1], ids[2]})
	require.Error(t, err)
	assert.Len(t, f.svc.GetCollection("u1"), 4)
	assert.Equal(t, 2, f.svc.GetBalance("u1"))
}

func TestCollectionService_TradeIn_WrongCount(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))
	ids := seedDuplicates(f.store, "u1", 4)

	_, err := f.svc.TradeIn("u1", ids[1:3])
	assert.Error(t, err)
}

func TestCollectionService_MintGuaranteed(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))

	minted, err := f.svc.MintGuaranteed("u1", 2, 3, map[models.Rarity]int{models.RarityGold: 1})
	require.NoError(t, err)
	assert.Len(t, minted, 6)

	golds := 0
	for _, c := range minted {
		if c.Rarity == models.RarityGold {
			golds++
		}
	}
	assert.GreaterOrEqual(t, golds, 2)

	// guaranteed mints never touch the balance
	assert.Equal(t, 2, f.svc.GetBalance("u1"))
}

func TestCollectionService_MintGuaranteed_NoEligiblePlayers(t *testing.T) {
	f := newCollectionFixture()

	_, err := f.svc.MintGuaranteed("u1", 1, 3, nil)
	assert.ErrorIs(t, err, ErrNoEligiblePlayers)
}

func TestCollectionService_GrantPacks(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))

	assert.Equal(t, 7, f.svc.GrantPacks("u1", 5))
	assert.Equal(t, 7, f.svc.GetBalance("u1"))
}

func TestCollectionService_HydratesFromColdStorage(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))
	f.cold.Evict("u1", &models.UserRecord{
		Cards:   []models.Card{{Id: "cold-1", Player: eligiblePlayer("p1", "Ace"), Rarity: models.RarityFoil}},
		Balance: 9,
	})

	cards := f.svc.GetCollection("u1")
	require.Len(t, cards, 1)
	assert.Equal(t, "cold-1", cards[0].Id)
	assert.Equal(t, 9, f.svc.GetBalance("u1"))
	assert.False(t, f.cold.Has("u1"), "record moved out of cold storage")
}

func TestCollectionService_Totals(t *testing.T) {
	f := newCollectionFixture(eligiblePlayer("p1", "Ace"))
	_, err := f.svc.OpenPack("u1")
	require.NoError(t, err)
	_, err = f.svc.OpenPack("u2")
	require.NoError(t, err)

	assert.Equal(t, 10, f.svc.TotalCards())
	assert.Equal(t, 2, f.svc.TotalUsers())
}

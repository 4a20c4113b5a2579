package cards

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethsmith/csc-trading-cards/internal/models"
)

var cardIdPattern = regexp.MustCompile(`^card-\d+-[0-9a-z]{7}$`)

func testPlayer(id, name string) models.Player {
	return models.Player{
		Id:   id,
		Name: name,
		Tier: models.Tier{Name: "Elite"},
		Stats: &models.PlayerStats{
			Name:      name,
			Rating:    1.1,
			GameCount: 12,
		},
	}
}

func TestFactory_NewCard_IdFormat(t *testing.T) {
	f := NewFactory(NewSource(1))
	card := f.NewCard(testPlayer("p1", "Ace"), models.RarityFoil)

	assert.Regexp(t, cardIdPattern, card.Id)
	assert.Equal(t, "p1", card.Player.Id)
	assert.Equal(t, models.RarityFoil, card.Rarity)
}

func TestFactory_NewCard_TimestampMatchesClock(t *testing.T) {
	at := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	f := NewFactoryAt(NewSource(1), func() time.Time { return at })

	card := f.NewCard(testPlayer("p1", "Ace"), models.RarityNormal)

	assert.Equal(t, at.UnixMilli(), card.ObtainedAt)
	parts := strings.SplitN(card.Id, "-", 3)
	require.Len(t, parts, 3)
	millis, err := strconv.ParseInt(parts[1], 10, 64)
	require.NoError(t, err)
	assert.Equal(t, at.UnixMilli(), millis)
}

func TestFactory_NewCard_UniqueIdsWithinSession(t *testing.T) {
	f := NewFactory(NewSource(99))
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		card := f.NewCard(testPlayer("p1", "Ace"), models.RarityNormal)
		require.False(t, seen[card.Id], "duplicate id %s", card.Id)
		seen[card.Id] = true
	}
}

func TestFactory_NewCard_Deterministic(t *testing.T) {
	at := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return at }

	a := NewFactoryAt(NewSource(5), clock).NewCard(testPlayer("p1", "Ace"), models.RarityGold)
	b := NewFactoryAt(NewSource(5), clock).NewCard(testPlayer("p1", "Ace"), models.RarityGold)

	assert.Equal(t, a, b)
}

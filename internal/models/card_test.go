package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard_GroupKey(t *testing.T) {
	withSnapshot := Card{SnapshotId: "snap-1", Player: Player{Id: "p1"}}
	assert.Equal(t, "snap-1", withSnapshot.GroupKey())

	withoutSnapshot := Card{Player: Player{Id: "p1"}}
	assert.Equal(t, "p1", withoutSnapshot.GroupKey())
}

func TestOwnedCard_ToCard(t *testing.T) {
	oc := OwnedCard{
		Id:             "oc-1",
		DiscordUserId:  "u1",
		CardSnapshotId: "snap-1",
		Rarity:         RarityHolo,
		ObtainedAt:     "2026-02-01T10:30:00Z",
		Snapshot: CardSnapshot{
			Id:              "snap-1",
			CscPlayerId:     "p1",
			PlayerName:      "Ace",
			AvatarUrl:       "https://cdn.example/ace.png",
			Season:          12,
			StatType:        "regulation",
			Tier:            "Elite",
			TeamName:        "Hawks",
			FranchiseName:   "Harbor Hawks",
			FranchisePrefix: "HH",
			Rating:          1.21,
			Kr:              0.78,
			Adr:             82.5,
			Kast:            71.2,
			Impact:          1.1,
			GameCount:       14,
			Kills:           210,
			Deaths:          180,
			Assists:         66,
		},
	}

	card := oc.ToCard()

	assert.Equal(t, "oc-1", card.Id)
	assert.Equal(t, RarityHolo, card.Rarity)
	assert.Equal(t, "snap-1", card.SnapshotId)
	assert.Equal(t, 12, card.Season)
	assert.Equal(t, "regulation", card.StatType)

	expected := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, expected, card.ObtainedAt)

	assert.Equal(t, "p1", card.Player.Id)
	assert.Equal(t, "Ace", card.Player.Name)
	assert.Equal(t, "Elite", card.Player.Tier.Name)
	require.NotNil(t, card.Player.Team)
	assert.Equal(t, "Hawks", card.Player.Team.Name)
	assert.Equal(t, "HH", card.Player.Team.Franchise.Prefix)
	require.NotNil(t, card.Player.Stats)
	assert.Equal(t, 1.21, card.Player.Stats.Rating)
	assert.Equal(t, 14, card.Player.Stats.GameCount)
}

func TestOwnedCard_ToCard_BrokenTimestampSortsOldest(t *testing.T) {
	oc := OwnedCard{Id: "oc-1", ObtainedAt: "not-a-timestamp"}
	card := oc.ToCard()
	assert.Equal(t, int64(0), card.ObtainedAt)
}

func TestOwnedCard_ToCard_SnapshotIdFallback(t *testing.T) {
	oc := OwnedCard{
		Id:       "oc-1",
		Snapshot: CardSnapshot{Id: "snap-9"},
	}
	assert.Equal(t, "snap-9", oc.ToCard().SnapshotId)
}

func TestOwnedCard_ToCard_NoTeam(t *testing.T) {
	oc := OwnedCard{Id: "oc-1", ObtainedAt: "2026-02-01T10:30:00Z"}
	assert.Nil(t, oc.ToCard().Player.Team)
}

func TestPlayer_Eligible(t *testing.T) {
	assert.False(t, (&Player{Id: "p1"}).Eligible(), "missing stats")
	assert.False(t, (&Player{Id: "p1", Stats: &PlayerStats{GameCount: 0}}).Eligible(), "no games")
	assert.True(t, (&Player{Id: "p1", Stats: &PlayerStats{GameCount: 1}}).Eligible())
}

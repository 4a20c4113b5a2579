package cards

import "github.com/ethsmith/csc-trading-cards/internal/models"

// Stats summarizes a card set. ByRarity always carries all five rarities,
// zero-filled when absent.
type Stats struct {
	Total         int                   `json:"total"`
	ByRarity      map[models.Rarity]int `json:"byRarity"`
	UniquePlayers int                   `json:"uniquePlayers"`
}

// CollectionStats computes totals, per-rarity counts and the number of
// distinct players referenced, in a single pass.
func CollectionStats(cards []models.Card) Stats {
	byRarity := make(map[models.Rarity]int, len(models.Rarities))
	for _, r := range models.Rarities {
		byRarity[r] = 0
	}

	players := make(map[string]struct{})
	for i := range cards {
		byRarity[cards[i].Rarity]++
		players[cards[i].Player.Id] = struct{}{}
	}

	return Stats{
		Total:         len(cards),
		ByRarity:      byRarity,
		UniquePlayers: len(players),
	}
}

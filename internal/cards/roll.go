package cards

import "github.com/ethsmith/csc-trading-cards/internal/models"

// RollRarity draws one rarity from the configured weight table: a uniform
// value in [0, totalWeight) walks the rarities in enumeration order,
// subtracting each weight until the remainder drops to or below zero.
// Floating-point drift that leaves no rarity selected falls back to normal.
func RollRarity(src Source) models.Rarity {
	remainder := src.Float64() * models.TotalRarityWeight()

	for _, rarity := range models.Rarities {
		remainder -= models.RarityWeights[rarity]
		if remainder <= 0 {
			return rarity
		}
	}

	return models.RarityNormal
}

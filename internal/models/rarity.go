package models

type Rarity string

const (
	RarityNormal    Rarity = "normal"
	RarityFoil      Rarity = "foil"
	RarityHolo      Rarity = "holo"
	RarityGold      Rarity = "gold"
	RarityPrismatic Rarity = "prismatic"
)

// Rarities is the canonical enumeration order. The weighted roll walks this
// slice in order, so it must stay stable.
var Rarities = []Rarity{
	RarityNormal,
	RarityFoil,
	RarityHolo,
	RarityGold,
	RarityPrismatic,
}

// RarityWeights are drop chances in percent. They sum to 100.
var RarityWeights = map[Rarity]float64{
	RarityNormal:    69.5,
	RarityFoil:      20,
	RarityHolo:      8,
	RarityGold:      2,
	RarityPrismatic: 0.5,
}

var rarityRank = map[Rarity]int{
	RarityNormal:    1,
	RarityFoil:      2,
	RarityHolo:      3,
	RarityGold:      4,
	RarityPrismatic: 5,
}

// Rank returns the ordering position of a rarity, normal=1 .. prismatic=5.
// Unknown rarities rank below normal.
func (r Rarity) Rank() int {
	return rarityRank[r]
}

func (r Rarity) Valid() bool {
	_, ok := rarityRank[r]
	return ok
}

// ParseRarity returns the rarity for s, or false when s is not one of the
// five known tiers.
func ParseRarity(s string) (Rarity, bool) {
	r := Rarity(s)
	return r, r.Valid()
}

// TotalRarityWeight is the sum of all drop weights. It is strictly positive,
// which the roll algorithm relies on to terminate.
func TotalRarityWeight() float64 {
	var total float64
	for _, r := range Rarities {
		total += RarityWeights[r]
	}
	return total
}

package cards

import "math/rand"

// Source yields uniform floats in [0, 1). Every random decision in the core
// (rarity rolls, player picks, id suffixes) draws from an injected Source so
// tests can substitute a seeded one and get reproducible packs.
type Source interface {
	Float64() float64
}

func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

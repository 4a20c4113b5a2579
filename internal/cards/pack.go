package cards

import "github.com/ethsmith/csc-trading-cards/internal/models"

// Engine produces packs of cards. It holds the random source for both the
// rarity rolls and the uniform player picks, and a factory for minting.
type Engine struct {
	src     Source
	factory *Factory
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src, factory: NewFactory(src)}
}

// NewEngineWithFactory lets callers supply a factory with a fixed clock.
func NewEngineWithFactory(src Source, factory *Factory) *Engine {
	return &Engine{src: src, factory: factory}
}

func eligible(players []models.Player) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.Eligible() {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) pick(pool []models.Player) models.Player {
	idx := int(e.src.Float64() * float64(len(pool)))
	if idx >= len(pool) {
		idx = len(pool) - 1
	}
	return pool[idx]
}

// OpenPack draws size cards: each slot independently picks an eligible
// player uniformly at random (with replacement) and rolls a rarity. Output
// order is draw order. An empty or fully ineligible pool yields an empty
// pack, never an error.
func (e *Engine) OpenPack(players []models.Player, size int) []models.Card {
	pool := eligible(players)
	if len(pool) == 0 || size <= 0 {
		return []models.Card{}
	}

	pack := make([]models.Card, 0, size)
	for i := 0; i < size; i++ {
		pack = append(pack, e.factory.NewCard(e.pick(pool), RollRarity(e.src)))
	}
	return pack
}

// OpenPackGuaranteed draws size cards with minimum per-rarity counts. The
// guaranteed slots are minted first in rarity enumeration order, capped at
// size in total; remaining slots roll normally. Player picks stay uniform
// for every slot.
func (e *Engine) OpenPackGuaranteed(players []models.Player, size int, guarantees map[models.Rarity]int) []models.Card {
	pool := eligible(players)
	if len(pool) == 0 || size <= 0 {
		return []models.Card{}
	}

	pack := make([]models.Card, 0, size)
	for _, rarity := range models.Rarities {
		for n := guarantees[rarity]; n > 0 && len(pack) < size; n-- {
			pack = append(pack, e.factory.NewCard(e.pick(pool), rarity))
		}
	}
	for len(pack) < size {
		pack = append(pack, e.factory.NewCard(e.pick(pool), RollRarity(e.src)))
	}
	return pack
}

package cards

import (
	"fmt"
	"time"

	"github.com/ethsmith/csc-trading-cards/internal/models"
)

const idSuffixLen = 7

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Factory mints card instances. The clock and random source are injected so
// ids and timestamps are deterministic under test; any (player, rarity) pair
// is legal input.
type Factory struct {
	src Source
	now func() time.Time
}

func NewFactory(src Source) *Factory {
	return &Factory{src: src, now: time.Now}
}

// NewFactoryAt builds a factory with a fixed clock, for tests and replays.
func NewFactoryAt(src Source, now func() time.Time) *Factory {
	return &Factory{src: src, now: now}
}

// NewCard mints a fresh card for the player at the given rarity. Ids combine
// the millisecond timestamp with a random base36 suffix, which keeps them
// collision-resistant within a session.
func (f *Factory) NewCard(player models.Player, rarity models.Rarity) models.Card {
	now := f.now().UnixMilli()
	return models.Card{
		Id:         fmt.Sprintf("card-%d-%s", now, f.suffix()),
		Player:     player,
		Rarity:     rarity,
		ObtainedAt: now,
	}
}

func (f *Factory) suffix() string {
	buf := make([]byte, idSuffixLen)
	for i := range buf {
		buf[i] = base36[int(f.src.Float64()*float64(len(base36)))%len(base36)]
	}
	return string(buf)
}

package services

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/players"
)

type PlayersServiceInterface interface {
	GetPlayers() []models.Player
	EligibleCount() int
	Refresh() error
}

// PlayersService caches the latest player list from the configured source.
// The scheduler refreshes it on an interval; reads between refreshes see a
// consistent snapshot.
type PlayersService struct {
	mu         sync.RWMutex
	source     players.SourceInterface
	list       []models.Player
	refreshing atomic.Bool
}

func NewPlayersService(source players.SourceInterface) PlayersServiceInterface {
	return &PlayersService{source: source}
}

func (ps *PlayersService) GetPlayers() []models.Player {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	out := make([]models.Player, len(ps.list))
	copy(out, ps.list)
	return out
}

func (ps *PlayersService) EligibleCount() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	count := 0
	for i := range ps.list {
		if ps.list[i].Eligible() {
			count++
		}
	}
	return count
}

// Refresh reloads the player list. Scheduler ticks can outpace a slow
// remote source, so overlapping refreshes collapse into one; on failure
// the previous list stays in place.
func (ps *PlayersService) Refresh() error {
	if !ps.refreshing.CompareAndSwap(false, true) {
		return nil
	}
	defer ps.refreshing.Store(false)

	list, err := ps.source.Load()
	if err != nil {
		return err
	}
	ps.mu.Lock()
	ps.list = list
	ps.mu.Unlock()
	return nil
}

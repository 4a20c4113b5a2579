package services

import (
	"errors"
	"time"

	"github.com/ethsmith/csc-trading-cards/internal/cards"
	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

var (
	ErrNoPacks           = errors.New("no unopened packs available")
	ErrNoEligiblePlayers = errors.New("no eligible players available")
)

// PackResult is the outcome of one pack open: the minted cards in draw
// order and the remaining balance.
type PackResult struct {
	Cards   []models.Card `json:"cards"`
	Balance int           `json:"packBalance"`
}

type CollectionServiceInterface interface {
	GetCollection(userId string) []models.Card
	GetStats(userId string) cards.Stats
	GetView(userId string, q cards.Query) cards.Result
	GetTierOptions(userId string) []string
	GetTradeable(userId string) cards.TradeableResult
	GetBalance(userId string) int
	OpenPack(userId string) (*PackResult, error)
	MintGuaranteed(userId string, packCount, size int, guarantees map[models.Rarity]int) ([]models.Card, error)
	TradeIn(userId string, cardIds []string) (int, error)
	GrantPacks(userId string, n int) int
	TotalCards() int
	TotalUsers() int
}

// CollectionService orchestrates the pure card core over the collection
// store. It owns no card logic itself: rolls, views and duplicate detection
// all come from the cards package, state transitions from the store.
type CollectionService struct {
	conf    *structures.Config
	store   *models.CollectionStore
	cold    models.ColdStorageInterface
	players PlayersServiceInterface
	engine  *cards.Engine
}

func NewCollectionService(conf *structures.Config, store *models.CollectionStore, cold models.ColdStorageInterface, players PlayersServiceInterface) CollectionServiceInterface {
	return NewCollectionServiceWithEngine(conf, store, cold, players,
		cards.NewEngine(cards.NewSource(time.Now().UnixNano())))
}

// NewCollectionServiceWithEngine lets tests supply a seeded engine.
func NewCollectionServiceWithEngine(conf *structures.Config, store *models.CollectionStore, cold models.ColdStorageInterface, players PlayersServiceInterface, engine *cards.Engine) CollectionServiceInterface {
	return &CollectionService{
		conf:    conf,
		store:   store,
		cold:    cold,
		players: players,
		engine:  engine,
	}
}

// hydrate brings a cold-stored user back into the hot store and makes sure
// the record exists, crediting the starting balance to first-time users.
func (cs *CollectionService) hydrate(userId string) {
	if !cs.store.Has(userId) && cs.cold.Has(userId) {
		if rec, ok := cs.cold.Restore(userId); ok {
			cs.store.Admit(userId, rec)
		}
	}
	cs.store.Ensure(userId, cs.conf.Game.StartingPacks)
}

func (cs *CollectionService) GetCollection(userId string) []models.Card {
	cs.hydrate(userId)
	return cs.store.Cards(userId)
}

func (cs *CollectionService) GetStats(userId string) cards.Stats {
	return cards.CollectionStats(cs.GetCollection(userId))
}

func (cs *CollectionService) GetView(userId string, q cards.Query) cards.Result {
	return cards.View(cs.GetCollection(userId), q)
}

func (cs *CollectionService) GetTierOptions(userId string) []string {
	return cards.TierOptions(cs.GetCollection(userId))
}

func (cs *CollectionService) GetTradeable(userId string) cards.TradeableResult {
	return cards.FindTradeable(cs.GetCollection(userId), cs.conf.Game.CardsPerPack)
}

func (cs *CollectionService) GetBalance(userId string) int {
	cs.hydrate(userId)
	return cs.store.Balance(userId)
}

// OpenPack spends one pack and mints PackSize cards. The balance is only
// spent when at least one eligible player exists, so a failed open never
// costs a pack.
func (cs *CollectionService) OpenPack(userId string) (*PackResult, error) {
	cs.hydrate(userId)

	pool := cs.players.GetPlayers()
	if cs.players.EligibleCount() == 0 {
		return nil, ErrNoEligiblePlayers
	}

	minted, balance, ok := cs.store.SpendAndAppend(userId, func() []models.Card {
		return cs.engine.OpenPack(pool, cs.conf.Game.PackSize)
	})
	if !ok {
		return nil, ErrNoPacks
	}
	return &PackResult{Cards: minted, Balance: balance}, nil
}

// MintGuaranteed mints packCount packs of size cards each with the given
// per-rarity minimums, appending them without touching the pack balance.
// Used for redemption codes that carry guarantees.
func (cs *CollectionService) MintGuaranteed(userId string, packCount, size int, guarantees map[models.Rarity]int) ([]models.Card, error) {
	cs.hydrate(userId)

	pool := cs.players.GetPlayers()
	if cs.players.EligibleCount() == 0 {
		return nil, ErrNoEligiblePlayers
	}

	minted := make([]models.Card, 0, packCount*size)
	for i := 0; i < packCount; i++ {
		minted = append(minted, cs.engine.OpenPackGuaranteed(pool, size, guarantees)...)
	}
	cs.store.Append(userId, minted)
	return minted, nil
}

// TradeIn converts exactly CardsPerPack tradeable duplicates into one pack.
// The selection is validated against the duplicate detector's surplus before
// anything is removed; an invalid selection removes nothing.
func (cs *CollectionService) TradeIn(userId string, cardIds []string) (int, error) {
	cs.hydrate(userId)

	tradeable := cards.FindTradeable(cs.store.Cards(userId), cs.conf.Game.CardsPerPack)
	if err := cards.ValidateTradeIn(cardIds, tradeable.Tradeable, cs.conf.Game.CardsPerPack); err != nil {
		return cs.store.Balance(userId), err
	}

	balance, ok := cs.store.RemoveAndCredit(userId, cardIds, 1)
	if !ok {
		return balance, errors.New("selection no longer owned")
	}
	return balance, nil
}

func (cs *CollectionService) GrantPacks(userId string, n int) int {
	cs.hydrate(userId)
	return cs.store.AddPacks(userId, n)
}

func (cs *CollectionService) TotalCards() int {
	return cs.store.TotalCards()
}

func (cs *CollectionService) TotalUsers() int {
	return len(cs.store.Users())
}

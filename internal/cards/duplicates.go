package cards

import (
	"fmt"
	"sort"

	"github.com/ethsmith/csc-trading-cards/internal/models"
)

// TradeableResult lists the duplicate surplus eligible for trade-in and how
// many packs it can fund.
type TradeableResult struct {
	Tradeable      []models.Card `json:"tradeable"`
	PacksAvailable int           `json:"packsAvailable"`
}

// FindTradeable finds duplicate normal-rarity cards. Cards group by their
// underlying snapshot (player when unsnapshotted); within each group the
// oldest copy is kept forever and the rest are tradeable surplus. Higher
// rarities never participate, however duplicated.
func FindTradeable(cards []models.Card, cardsPerPack int) TradeableResult {
	groups := make(map[string][]models.Card)
	var order []string
	for i := range cards {
		if cards[i].Rarity != models.RarityNormal {
			continue
		}
		key := cards[i].GroupKey()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], cards[i])
	}

	tradeable := make([]models.Card, 0)
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ObtainedAt < group[j].ObtainedAt
		})
		tradeable = append(tradeable, group[1:]...)
	}

	packs := 0
	if cardsPerPack > 0 {
		packs = len(tradeable) / cardsPerPack
	}
	return TradeableResult{Tradeable: tradeable, PacksAvailable: packs}
}

// ValidateTradeIn checks a trade-in selection: it must contain exactly
// cardsPerPack distinct ids and every id must be tradeable surplus.
func ValidateTradeIn(selected []string, tradeable []models.Card, cardsPerPack int) error {
	ids := make(map[string]bool, len(selected))
	for _, id := range selected {
		ids[id] = true
	}
	if len(ids) != cardsPerPack {
		return fmt.Errorf("selection must contain exactly %d cards, got %d", cardsPerPack, len(ids))
	}

	eligible := make(map[string]bool, len(tradeable))
	for i := range tradeable {
		eligible[tradeable[i].Id] = true
	}
	for id := range ids {
		if !eligible[id] {
			return fmt.Errorf("card %s is not tradeable", id)
		}
	}
	return nil
}

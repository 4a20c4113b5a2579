package cards

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ethsmith/csc-trading-cards/internal/models"
)

type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortRarity SortKey = "rarity"
	SortRating SortKey = "rating"
	SortName   SortKey = "name"
)

var sortKeys = map[SortKey]bool{
	SortNewest: true,
	SortOldest: true,
	SortRarity: true,
	SortRating: true,
	SortName:   true,
}

func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(s)
	return k, sortKeys[k]
}

// FilterAll disables a filter dimension.
const FilterAll = "all"

// Query describes one view over a card set. Filters are AND-combined and
// applied before sorting; Page is a request that View clamps to the valid
// range.
type Query struct {
	Rarity  string
	Tier    string
	Search  string
	Sort    SortKey
	PerPage int
	Page    int
}

// Result is a page of a filtered, sorted card set. Page is the effective
// (clamped) page, never the raw request.
type Result struct {
	Cards      []models.Card `json:"cards"`
	TotalCards int           `json:"totalCards"`
	TotalPages int           `json:"totalPages"`
	Page       int           `json:"page"`
}

func matches(c *models.Card, q *Query) bool {
	if q.Rarity != "" && q.Rarity != FilterAll && string(c.Rarity) != q.Rarity {
		return false
	}
	if q.Tier != "" && q.Tier != FilterAll && c.Player.Tier.Name != q.Tier {
		return false
	}
	if q.Search != "" && !strings.Contains(strings.ToLower(c.Player.Name), strings.ToLower(q.Search)) {
		return false
	}
	return true
}

func sortCards(cards []models.Card, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].ObtainedAt < cards[j].ObtainedAt
		})
	case SortRarity:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Rarity.Rank() > cards[j].Rarity.Rank()
		})
	case SortRating:
		sort.SliceStable(cards, func(i, j int) bool {
			return rating(&cards[i]) > rating(&cards[j])
		})
	case SortName:
		col := collate.New(language.English)
		sort.SliceStable(cards, func(i, j int) bool {
			return col.CompareString(cards[i].Player.Name, cards[j].Player.Name) < 0
		})
	default: // newest
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].ObtainedAt > cards[j].ObtainedAt
		})
	}
}

func rating(c *models.Card) float64 {
	if c.Player.Stats == nil {
		return 0
	}
	return c.Player.Stats.Rating
}

// View filters, sorts and paginates a card set. A PerPage of zero or less
// puts everything on one page. A requested page past the end clamps to the
// last page rather than returning empty.
func View(cards []models.Card, q Query) Result {
	filtered := make([]models.Card, 0, len(cards))
	for i := range cards {
		if matches(&cards[i], &q) {
			filtered = append(filtered, cards[i])
		}
	}

	sortCards(filtered, q.Sort)

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = len(filtered)
		if perPage == 0 {
			perPage = 1
		}
	}

	totalPages := (len(filtered) + perPage - 1) / perPage
	page := q.Page
	if page < 1 {
		page = 1
	}
	if maxPage := max(1, totalPages); page > maxPage {
		page = maxPage
	}

	start := (page - 1) * perPage
	end := min(start+perPage, len(filtered))
	if start > len(filtered) {
		start = len(filtered)
	}

	return Result{
		Cards:      filtered[start:end],
		TotalCards: len(filtered),
		TotalPages: totalPages,
		Page:       page,
	}
}

// TierOptions derives the tier filter choices from the cards present, in
// first-appearance order.
func TierOptions(cards []models.Card) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for i := range cards {
		name := cards[i].Player.Tier.Name
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

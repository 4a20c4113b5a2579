package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

var (
	ErrCodeNotFound     = errors.New("unknown code")
	ErrCodeUnredeemable = errors.New("code already redeemed or expired")
)

// codeAlphabet omits ambiguous characters (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

type GenerateOptions struct {
	PackCount    int            `json:"packCount"`
	CardsPerPack int            `json:"cardsPerPack"`
	Guarantees   map[string]int `json:"guaranteedRarities"`
	ExpiresIn    time.Duration  `json:"-"`
}

// RedeemResult reports one redemption. Plain codes credit the balance and
// return no cards; guaranteed codes mint their packs immediately so the
// guarantee is honored at roll time.
type RedeemResult struct {
	Message    string        `json:"message"`
	PacksAdded int           `json:"packsAdded"`
	Balance    int           `json:"packBalance"`
	Cards      []models.Card `json:"cards,omitempty"`
}

type CodeServiceInterface interface {
	Generate(createdBy string, opts GenerateOptions) (*models.PackCode, error)
	Info(code string) (*models.PackCode, bool)
	Redeem(code, userId string) (*RedeemResult, error)
	Outstanding() int
}

type CodeService struct {
	conf       *structures.Config
	codes      *models.CodeStore
	collection CollectionServiceInterface
	players    PlayersServiceInterface
}

func NewCodeService(conf *structures.Config, codes *models.CodeStore, collection CollectionServiceInterface, players PlayersServiceInterface) CodeServiceInterface {
	return &CodeService{conf: conf, codes: codes, collection: collection, players: players}
}

func newCode() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 0, 19)
	out = append(out, 'C', 'S', 'C')
	for i, b := range buf {
		if i%4 == 0 {
			out = append(out, '-')
		}
		out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return string(out), nil
}

func (s *CodeService) Generate(createdBy string, opts GenerateOptions) (*models.PackCode, error) {
	packCount := opts.PackCount
	if packCount <= 0 {
		packCount = 1
	}
	cardsPerPack := opts.CardsPerPack
	if cardsPerPack <= 0 {
		cardsPerPack = s.conf.Game.PackSize
	}

	var guarantees map[models.Rarity]int
	if len(opts.Guarantees) > 0 {
		guarantees = make(map[models.Rarity]int, len(opts.Guarantees))
		total := 0
		for name, n := range opts.Guarantees {
			rarity, ok := models.ParseRarity(name)
			if !ok {
				return nil, fmt.Errorf("unknown rarity %q in guarantees", name)
			}
			if n < 0 {
				return nil, fmt.Errorf("negative guarantee for rarity %q", name)
			}
			guarantees[rarity] = n
			total += n
		}
		if total > cardsPerPack {
			return nil, fmt.Errorf("guarantees total %d exceeds pack size %d", total, cardsPerPack)
		}
	}

	code, err := newCode()
	if err != nil {
		return nil, err
	}

	pc := &models.PackCode{
		Code:         code,
		PackCount:    packCount,
		CardsPerPack: cardsPerPack,
		Guarantees:   guarantees,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
	}
	if opts.ExpiresIn > 0 {
		expires := pc.CreatedAt.Add(opts.ExpiresIn)
		pc.ExpiresAt = &expires
	}

	s.codes.Put(pc)
	return pc, nil
}

func (s *CodeService) Info(code string) (*models.PackCode, bool) {
	return s.codes.Get(code)
}

// Redeem consumes a code for the user. The code store marks the code
// redeemed atomically, so concurrent redemptions of the same code resolve
// to exactly one winner.
func (s *CodeService) Redeem(code, userId string) (*RedeemResult, error) {
	peek, ok := s.codes.Get(code)
	if !ok {
		return nil, ErrCodeNotFound
	}
	// A guaranteed code mints at redemption time; refuse before consuming
	// the code when no pack could be minted.
	if len(peek.Guarantees) > 0 && s.players.EligibleCount() == 0 {
		return nil, ErrNoEligiblePlayers
	}

	pc, ok := s.codes.Redeem(code, userId)
	if !ok {
		return nil, ErrCodeUnredeemable
	}

	if len(pc.Guarantees) > 0 {
		minted, err := s.collection.MintGuaranteed(userId, pc.PackCount, pc.CardsPerPack, pc.Guarantees)
		if err != nil {
			return nil, err
		}
		return &RedeemResult{
			Message: fmt.Sprintf("Opened %d guaranteed pack(s)", pc.PackCount),
			Balance: s.collection.GetBalance(userId),
			Cards:   minted,
		}, nil
	}

	balance := s.collection.GrantPacks(userId, pc.PackCount)
	return &RedeemResult{
		Message:    fmt.Sprintf("Added %d pack(s) to your balance", pc.PackCount),
		PacksAdded: pc.PackCount,
		Balance:    balance,
	}, nil
}

func (s *CodeService) Outstanding() int {
	return s.codes.Outstanding()
}

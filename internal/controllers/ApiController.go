package controllers

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"github.com/ethsmith/csc-trading-cards/internal/cards"
	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/providers"
	"github.com/ethsmith/csc-trading-cards/internal/services"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// userHeader carries the user identity resolved by the auth gateway in
// front of this service. The service trusts it; sessions and OAuth live
// upstream.
const userHeader = "X-User-Id"

type ApiController struct {
	logger     providers.Logger
	conf       *structures.Config
	collection services.CollectionServiceInterface
	codes      services.CodeServiceInterface
	players    services.PlayersServiceInterface
	cache      providers.CacheProviderInterface
	limiter    providers.RateLimiterInterface
	metrics    providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, conf *structures.Config, collection services.CollectionServiceInterface, codes services.CodeServiceInterface, players services.PlayersServiceInterface, cache providers.CacheProviderInterface, limiter providers.RateLimiterInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:     logger,
		conf:       conf,
		collection: collection,
		codes:      codes,
		players:    players,
		cache:      cache,
		limiter:    limiter,
		metrics:    metrics,
	}
}

func getUser(r *http.Request) string {
	return r.Header.Get(userHeader)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// requireUser resolves the acting user or answers 401.
func (ac *ApiController) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := getUser(r)
	if user == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity")
		return "", false
	}
	return user, true
}

func (ac *ApiController) GetPlayers(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "players", func() (any, error) {
		return map[string]any{"players": ac.players.GetPlayers()}, nil
	})
}

// GetCollection serves the acting user's collection, or another user's when
// the "user" query parameter is present (trade browsing).
func (ac *ApiController) GetCollection(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.requireUser(w, r)
	if !ok {
		return
	}
	target := r.URL.Query().Get("user")
	if target == "" {
		target = user
	}
	ac.serveFromCacheOrCompute(w, "collection:"+target, func() (any, error) {
		return map[string]any{
			"cards":           ac.collection.GetCollection(target),
			"isOwnCollection": target == user,
		}, nil
	})
}

func (ac *ApiController) GetCollectionStats(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.requireUser(w, r)
	if !ok {
		return
	}
	target := r.URL.Query().Get("user")
	if target == "" {
		target = user
	}
	ac.serveFromCacheOrCompute(w, "stats:"+target, func() (any, error) {
		return ac.collection.GetStats(target), nil
	})
}

// GetCollectionView runs the filter/sort/paginate engine over a collection.
// Invalid rarity or sort values are a contract violation, answered 400;
// out-of-range pages clamp silently.
func (ac *ApiController) GetCollectionView(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.requireUser(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	target := q.Get("user")
	if target == "" {
		target = user
	}

	rarity := q.Get("rarity")
	if rarity != "" && rarity != cards.FilterAll {
		if _, ok := models.ParseRarity(rarity); !ok {
			writeError(w, http.StatusBadRequest, "invalid rarity filter")
			return
		}
	}

	sortKey := cards.SortNewest
	if s := q.Get("sort"); s != "" {
		parsed, ok := cards.ParseSortKey(s)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid sort key")
			return
		}
		sortKey = parsed
	}

	query := cards.Query{
		Rarity:  rarity,
		Tier:    q.Get("tier"),
		Search:  q.Get("q"),
		Sort:    sortKey,
		PerPage: cast.ToInt(q.Get("perPage")),
		Page:    cast.ToInt(q.Get("page")),
	}

	cacheKey := "view:" + target + ":" + r.URL.RawQuery
	ac.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		result := ac.collection.GetView(target, query)
		return map[string]any{
			"cards":      result.Cards,
			"totalCards": result.TotalCards,
			"totalPages": result.TotalPages,
			"page":       result.Page,
			"tiers":      ac.collection.GetTierOptions(target),
		}, nil
	})
}

func (ac *ApiController) GetPackBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"packBalance": ac.collection.GetBalance(user)})
}

func (ac *ApiController) GetTradeable(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.requireUser(w, r)
	if !ok {
		return
	}
	ac.serveFromCacheOrCompute(w, "tradeable:"+user, func() (any, error) {
		result := ac.collection.GetTradeable(user)
		return map[string]any{
			"tradeable":      result.Tradeable,
			"packsAvailable": result.PacksAvailable,
			"cardsPerPack":   ac.conf.Game.CardsPerPack,
		}, nil
	})
}

func (ac *ApiController) OpenPack(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.requireUser(w, r)
	if !ok {
		return
	}
	if !ac.limiter.Allow(user) {
		writeError(w, http.StatusTooManyRequests, "slow down")
		return
	}

	result, err := ac.collection.OpenPack(user)
	switch {
	case errors.Is(err, services.ErrNoPacks):
		writeError(w, http.StatusBadRequest, "no unopened packs available")
		return
	case errors.Is(err, services.ErrNoEligiblePlayers):
		writeError(w, http.StatusServiceUnavailable, "no eligible players available")
		return
	case err != nil:
		ac.logger.Errorf(providers.TypeApp, "Pack open failed for %s: %s", user, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.metrics.IncPacksOpened()
	for i := range result.Cards {
		ac.metrics.IncCardsMinted(string(result.Cards[i].Rarity))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cards":       result.Cards,
		"packBalance": result.Balance,
		"message":     "Pack opened",
	})
}

type tradeInRequest struct {
	CardIds []string `json:"cardIds"`
}

func (ac *ApiController) TradeIn(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.requireUser(w, r)
	if !ok {
		return
	}
	if !ac.limiter.Allow(user) {
		writeError(w, http.StatusTooManyRequests, "slow down")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload tradeInRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance, err := ac.collection.TradeIn(user, payload.CardIds)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ac.metrics.IncTradeIns()
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Traded duplicates for 1 pack",
		"packBalance": balance,
	})
}

type redeemRequest struct {
	Code string `json:"code"`
}

func (ac *ApiController) RedeemCode(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.requireUser(w, r)
	if !ok {
		return
	}
	if !ac.limiter.Allow(user) {
		writeError(w, http.StatusTooManyRequests, "slow down")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := ac.codes.Redeem(payload.Code, user)
	switch {
	case errors.Is(err, services.ErrCodeNotFound):
		writeError(w, http.StatusNotFound, "unknown code")
		return
	case errors.Is(err, services.ErrCodeUnredeemable):
		writeError(w, http.StatusConflict, "code already redeemed or expired")
		return
	case errors.Is(err, services.ErrNoEligiblePlayers):
		writeError(w, http.StatusServiceUnavailable, "no eligible players available")
		return
	case err != nil:
		ac.logger.Errorf(providers.TypeApp, "Code redemption failed for %s: %s", user, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.metrics.IncCodesRedeemed()
	for i := range result.Cards {
		ac.metrics.IncCardsMinted(string(result.Cards[i].Rarity))
	}
	writeJSON(w, http.StatusOK, result)
}

// GetCodeInfo describes a code without consuming it.
func (ac *ApiController) GetCodeInfo(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing code parameter")
		return
	}
	pc, ok := ac.codes.Info(code)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown code")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"code":               pc.Code,
		"packCount":          pc.PackCount,
		"cardsPerPack":       pc.CardsPerPack,
		"guaranteedRarities": pc.Guarantees,
		"isRedeemed":         pc.Redeemed(),
		"isExpired":          pc.Expired(time.Now()),
		"expiresAt":          pc.ExpiresAt,
	})
}

type generateRequest struct {
	PackCount          int            `json:"packCount"`
	CardsPerPack       int            `json:"cardsPerPack"`
	GuaranteedRarities map[string]int `json:"guaranteedRarities"`
	ExpiresInDays      int            `json:"expiresInDays"`
}

func (ac *ApiController) GenerateCode(w http.ResponseWriter, r *http.Request) {
	user, ok := ac.requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := services.GenerateOptions{
		PackCount:    payload.PackCount,
		CardsPerPack: payload.CardsPerPack,
		Guarantees:   payload.GuaranteedRarities,
		ExpiresIn:    time.Duration(payload.ExpiresInDays) * 24 * time.Hour,
	}
	pc, err := ac.codes.Generate(user, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"code":      pc.Code,
		"packCount": pc.PackCount,
	})
}

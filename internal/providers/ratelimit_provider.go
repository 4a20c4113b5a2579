package providers

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

// RateLimiterInterface gates mutating game actions (pack opens, code
// redemptions) per user.
type RateLimiterInterface interface {
	Allow(userId string) bool
}

type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewRateLimiter(conf *structures.Config, logger Logger) RateLimiterInterface {
	if !conf.RateLimit.Enabled || conf.RateLimit.Rps <= 0 {
		logger.Infof(TypeApp, "Rate limiting disabled")
		return &noopRateLimiter{}
	}

	burst := conf.RateLimit.Burst
	if burst <= 0 {
		burst = 1
	}

	logger.Infof(TypeApp, "Rate limiting initialized: %.2f rps, burst %d", conf.RateLimit.Rps, burst)

	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(conf.RateLimit.Rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) Allow(userId string) bool {
	rl.mu.Lock()
	lim, ok := rl.limiters[userId]
	if !ok {
		lim = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[userId] = lim
	}
	rl.mu.Unlock()
	return lim.Allow()
}

type noopRateLimiter struct{}

func (n *noopRateLimiter) Allow(_ string) bool { return true }

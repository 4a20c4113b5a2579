package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ethsmith/csc-trading-cards/internal/services"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncPacksOpened()
	IncCardsMinted(rarity string)
	IncTradeIns()
	IncCodesRedeemed()
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	packsOpened     prometheus.Counter
	cardsMinted     *prometheus.CounterVec
	tradeIns        prometheus.Counter
	codesRedeemed   prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncPacksOpened() {
	m.packsOpened.Inc()
}

func (m *MetricsProvider) IncCardsMinted(rarity string) {
	m.cardsMinted.WithLabelValues(rarity).Inc()
}

func (m *MetricsProvider) IncTradeIns() {
	m.tradeIns.Inc()
}

func (m *MetricsProvider) IncCodesRedeemed() {
	m.codesRedeemed.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, collection services.CollectionServiceInterface, codes services.CodeServiceInterface, players services.PlayersServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "csctc_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "csctc_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "csctc_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "csctc_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		packsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "csctc_packs_opened_total",
			Help: "Total number of packs opened",
		}),

		cardsMinted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "csctc_cards_minted_total",
			Help: "Total number of cards minted, by rarity",
		}, []string{"rarity"}),

		tradeIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "csctc_trade_ins_total",
			Help: "Total number of duplicate trade-in conversions",
		}),

		codesRedeemed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "csctc_codes_redeemed_total",
			Help: "Total number of redemption codes consumed",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "csctc_cards_owned",
		Help: "Current number of cards across all hot collections",
	}, func() float64 {
		return float64(collection.TotalCards())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "csctc_users_total",
		Help: "Current number of users in the hot store",
	}, func() float64 {
		return float64(collection.TotalUsers())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "csctc_codes_outstanding",
		Help: "Redemption codes that are neither redeemed nor expired",
	}, func() float64 {
		return float64(codes.Outstanding())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "csctc_players_eligible",
		Help: "Players currently eligible to appear in packs",
	}, func() float64 {
		return float64(players.EligibleCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncPacksOpened()                                  {}
func (n *noopMetrics) IncCardsMinted(_ string)                          {}
func (n *noopMetrics) IncTradeIns()                                     {}
func (n *noopMetrics) IncCodesRedeemed()                                {}

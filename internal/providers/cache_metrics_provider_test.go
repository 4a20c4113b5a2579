package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMetrics struct {
	hits   int
	misses int
}

func (m *countingMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *countingMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *countingMetrics) IncCacheHits()                                    { m.hits++ }
func (m *countingMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *countingMetrics) IncPacksOpened()                                  {}
func (m *countingMetrics) IncCardsMinted(_ string)                          {}
func (m *countingMetrics) IncTradeIns()                                     {}
func (m *countingMetrics) IncCodesRedeemed()                                {}

func TestMetricsCacheProvider_CountsHitsAndMisses(t *testing.T) {
	metrics := &countingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, 60), &cacheTestLogger{}, metrics)

	_, ok := c.Get("key")
	require.False(t, ok)
	assert.Equal(t, 1, metrics.misses)

	c.Set("key", []byte("value"))
	_, ok = c.Get("key")
	require.True(t, ok)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestInstrumentedCacheProvider_DisabledSkipsWrapping(t *testing.T) {
	metrics := &countingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, 60), &cacheTestLogger{}, metrics)

	assert.IsType(t, &noopCache{}, c)

	// a disabled cache must not register phantom misses
	c.Get("key")
	assert.Equal(t, 0, metrics.misses)
}

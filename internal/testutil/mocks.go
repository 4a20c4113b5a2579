package testutil

import (
	"sync"

	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether any log at the given level was recorded.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockPlayersSource implements players.SourceInterface with injectable behavior.
type MockPlayersSource struct {
	Players []models.Player
	Err     error
	Loads   int
}

func (m *MockPlayersSource) Load() ([]models.Player, error) {
	m.Loads++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Players, nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockColdStorage implements models.ColdStorageInterface in memory.
type MockColdStorage struct {
	mu      sync.Mutex
	Entries map[string]*models.UserRecord
	Evicts  int
}

func NewMockColdStorage() *MockColdStorage {
	return &MockColdStorage{Entries: make(map[string]*models.UserRecord)}
}

func (m *MockColdStorage) Has(userId string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Entries[userId]
	return ok
}

func (m *MockColdStorage) Evict(userId string, rec *models.UserRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries[userId] = rec
	m.Evicts++
}

func (m *MockColdStorage) Restore(userId string) (*models.UserRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.Entries[userId]
	if ok {
		delete(m.Entries, userId)
	}
	return rec, ok
}

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
	"github.com/ethsmith/csc-trading-cards/internal/testutil"
)

func newTestColdStorage(t *testing.T, dir string) *ColdStorage {
	t.Helper()
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(func() { compressor.Close() })

	conf := &structures.Config{Game: structures.GameConfig{ColdDir: dir}}
	return NewColdStorage(conf, compressor, &testutil.MockLogger{})
}

func coldRecord(balance int) *models.UserRecord {
	return &models.UserRecord{
		Cards:   []models.Card{{Id: "c1", Rarity: models.RarityNormal}},
		Balance: balance,
	}
}

func TestColdStorage_Enabled(t *testing.T) {
	assert.True(t, newTestColdStorage(t, t.TempDir()).Enabled())
	assert.False(t, newTestColdStorage(t, "").Enabled())
}

func TestColdStorage_EvictHasRestore(t *testing.T) {
	cs := newTestColdStorage(t, t.TempDir())

	assert.False(t, cs.Has("u1"))
	cs.Evict("u1", coldRecord(5))
	assert.True(t, cs.Has("u1"))

	rec, ok := cs.Restore("u1")
	require.True(t, ok)
	assert.Equal(t, 5, rec.Balance)
	assert.False(t, cs.Has("u1"))

	_, ok = cs.Restore("u1")
	assert.False(t, ok)
}

func TestColdStorage_FlushPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	cs := newTestColdStorage(t, dir)
	cs.Evict("u1", coldRecord(5))
	require.NoError(t, cs.Flush())

	_, err := os.Stat(filepath.Join(dir, coldFileName))
	require.NoError(t, err)

	fresh := newTestColdStorage(t, dir)
	require.NoError(t, fresh.RestoreIndex())
	assert.True(t, fresh.Has("u1"))

	rec, ok := fresh.Restore("u1")
	require.True(t, ok)
	assert.Equal(t, 5, rec.Balance)
	require.Len(t, rec.Cards, 1)
	assert.Equal(t, "c1", rec.Cards[0].Id)
}

func TestColdStorage_FlushRemovesRestoredEntries(t *testing.T) {
	dir := t.TempDir()

	cs := newTestColdStorage(t, dir)
	cs.Evict("u1", coldRecord(5))
	require.NoError(t, cs.Flush())

	_, ok := cs.Restore("u1")
	require.True(t, ok)
	require.NoError(t, cs.Flush())

	// last entry gone, the cold file is removed entirely
	_, err := os.Stat(filepath.Join(dir, coldFileName))
	assert.True(t, os.IsNotExist(err))

	fresh := newTestColdStorage(t, dir)
	require.NoError(t, fresh.RestoreIndex())
	assert.False(t, fresh.Has("u1"))
}

func TestColdStorage_FlushWithoutChangesIsNoop(t *testing.T) {
	dir := t.TempDir()
	cs := newTestColdStorage(t, dir)

	require.NoError(t, cs.Flush())
	_, err := os.Stat(filepath.Join(dir, coldFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestColdStorage_RestoreFromPendingBeforeFlush(t *testing.T) {
	cs := newTestColdStorage(t, t.TempDir())

	cs.Evict("u1", coldRecord(9))
	rec, ok := cs.Restore("u1")
	require.True(t, ok)
	assert.Equal(t, 9, rec.Balance)

	// the bounce never reached disk
	require.NoError(t, cs.Flush())
	fresh := newTestColdStorage(t, cs.dir)
	require.NoError(t, fresh.RestoreIndex())
	assert.False(t, fresh.Has("u1"))
}

func TestColdStorage_RestoreIndexDisabled(t *testing.T) {
	cs := newTestColdStorage(t, "")
	assert.NoError(t, cs.RestoreIndex())
	assert.False(t, cs.Has("u1"))
}

func TestColdStorage_RestoreIndexCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cold")
	cs := newTestColdStorage(t, dir)

	require.NoError(t, cs.RestoreIndex())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

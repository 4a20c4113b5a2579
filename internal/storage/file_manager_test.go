package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/testutil"
)

func newTestFileManager(t *testing.T) (*FileManager, *models.CollectionStore, *models.CodeStore, *testutil.MockLogger) {
	t.Helper()
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(compressor.Close)

	collections := models.NewCollectionStore()
	codes := models.NewCodeStore()
	logger := &testutil.MockLogger{}
	return NewFileManager(compressor, collections, codes, logger), collections, codes, logger
}

func seedStores(collections *models.CollectionStore, codes *models.CodeStore) {
	collections.Append("u1", []models.Card{
		{Id: "c1", Player: models.Player{Id: "p1", Name: "Ace"}, Rarity: models.RarityFoil, ObtainedAt: 100},
	})
	collections.AddPacks("u1", 3)
	codes.Put(&models.PackCode{
		Code:      "CSC-AAAA-BBBB-CCCC",
		PackCount: 2,
		CreatedBy: "admin",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestFileManager_SaveAndLoadRoundtrip(t *testing.T) {
	fm, collections, codes, _ := newTestFileManager(t)
	seedStores(collections, codes)

	path := filepath.Join(t.TempDir(), "collections.bin")
	require.NoError(t, fm.SaveToFile(path))

	fm2, collections2, codes2, _ := newTestFileManager(t)
	require.NoError(t, fm2.LoadFromFile(path))

	cards := collections2.Cards("u1")
	require.Len(t, cards, 1)
	assert.Equal(t, "c1", cards[0].Id)
	assert.Equal(t, models.RarityFoil, cards[0].Rarity)
	assert.Equal(t, 3, collections2.Balance("u1"))

	pc, ok := codes2.Get("CSC-AAAA-BBBB-CCCC")
	require.True(t, ok)
	assert.Equal(t, 2, pc.PackCount)
}

func TestFileManager_LoadMissingFileIsCleanStart(t *testing.T) {
	fm, collections, _, _ := newTestFileManager(t)

	err := fm.LoadFromFile(filepath.Join(t.TempDir(), "absent.bin"))
	assert.NoError(t, err)
	assert.Empty(t, collections.Users())
}

func TestFileManager_SaveLeavesNoTempFile(t *testing.T) {
	fm, collections, codes, _ := newTestFileManager(t)
	seedStores(collections, codes)

	dir := t.TempDir()
	path := filepath.Join(dir, "collections.bin")
	require.NoError(t, fm.SaveToFile(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "collections.bin", entries[0].Name())
}

func TestFileManager_MigratesLegacyFormat(t *testing.T) {
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(compressor.Close)

	// Pre-envelope format: a bare user map with no version and no codes.
	legacy := map[string]*models.UserRecord{
		"u1": {
			Cards:   []models.Card{{Id: "c1", Rarity: models.RarityNormal}},
			Balance: 7,
		},
	}
	jsonData, err := json.Marshal(legacy)
	require.NoError(t, err)
	compressed, err := compressor.Compress(jsonData)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "collections.bin")
	require.NoError(t, os.WriteFile(path, compressed, 0644))

	fm, collections, _, logger := newTestFileManager(t)
	require.NoError(t, fm.LoadFromFile(path))

	assert.Equal(t, 7, collections.Balance("u1"))
	assert.Len(t, collections.Cards("u1"), 1)
	assert.True(t, logger.HasLevel("warn"), "migration is logged")
}

func TestFileManager_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.bin")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	fm, _, _, _ := newTestFileManager(t)
	assert.Error(t, fm.LoadFromFile(path))
}

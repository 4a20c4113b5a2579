package storage

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/providers"
	"github.com/ethsmith/csc-trading-cards/internal/storage/interfaces"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

const coldFileName = "collections.cold.zst"

// ColdEntry is a single evicted user record in cold storage.
type ColdEntry struct {
	Record    *models.UserRecord `json:"record"`
	EvictedAt time.Time          `json:"evicted_at"`
}

// ColdFile is the on-disk format for evicted collections.
type ColdFile struct {
	Entries map[string]*ColdEntry `json:"entries"`
}

// ColdStorage parks collections of users inactive past the configured TTL
// on disk, keeping the hot store small. Implements
// models.ColdStorageInterface (Has, Evict, Restore); Flush is the only
// method that writes to disk, everything else is buffered or lazy.
type ColdStorage struct {
	mu         sync.RWMutex
	dir        string
	index      map[string]struct{}   // userIds known to be cold
	pending    map[string]*ColdEntry // evicted but not yet flushed
	restored   map[string]struct{}   // restored, lazily deleted on flush
	loaded     *ColdFile             // cached cold file
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewColdStorage(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *ColdStorage {
	return &ColdStorage{
		dir:        conf.Game.ColdDir,
		index:      make(map[string]struct{}),
		pending:    make(map[string]*ColdEntry),
		restored:   make(map[string]struct{}),
		compressor: compressor,
		logger:     logger,
	}
}

// Enabled reports whether cold storage has a directory to work with. When
// disabled, Has always answers false and the scheduler never evicts.
func (cs *ColdStorage) Enabled() bool {
	return cs.dir != ""
}

// Has checks whether a user's collection is in cold storage. RLock keeps
// the hot request path cheap.
func (cs *ColdStorage) Has(userId string) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	_, ok := cs.index[userId]
	return ok
}

// Evict buffers an evicted record for the next flush. No disk I/O here.
func (cs *ColdStorage) Evict(userId string, rec *models.UserRecord) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.pending[userId] = &ColdEntry{Record: rec, EvictedAt: time.Now()}
	cs.index[userId] = struct{}{}
}

// Restore retrieves a user's record from cold storage (pending buffer or
// disk). The on-disk entry is deleted lazily on the next flush.
func (cs *ColdStorage) Restore(userId string) (*models.UserRecord, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if entry, ok := cs.pending[userId]; ok {
		delete(cs.pending, userId)
		delete(cs.index, userId)
		return entry.Record, true
	}

	coldFile := cs.getOrLoadColdFile()
	if coldFile == nil {
		delete(cs.index, userId)
		return nil, false
	}

	entry, ok := coldFile.Entries[userId]
	if !ok {
		delete(cs.index, userId)
		return nil, false
	}

	cs.restored[userId] = struct{}{}
	delete(cs.index, userId)
	return entry.Record, true
}

// Flush writes pending evictions to disk and applies lazy deletes.
func (cs *ColdStorage) Flush() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if len(cs.pending) == 0 && len(cs.restored) == 0 {
		return nil
	}

	coldFile := cs.getOrLoadColdFile()
	if coldFile == nil {
		coldFile = &ColdFile{Entries: make(map[string]*ColdEntry)}
	}

	for userId := range cs.restored {
		delete(coldFile.Entries, userId)
	}
	for userId, entry := range cs.pending {
		coldFile.Entries[userId] = entry
	}

	if len(coldFile.Entries) > 0 {
		if err := cs.writeColdFile(coldFile); err != nil {
			return err
		}
		cs.loaded = coldFile
	} else {
		os.Remove(cs.coldFilePath())
		cs.loaded = nil
	}

	cs.pending = make(map[string]*ColdEntry)
	cs.restored = make(map[string]struct{})
	return nil
}

// RestoreIndex scans the cold file and rebuilds the in-memory user index.
// Called once at startup.
func (cs *ColdStorage) RestoreIndex() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.dir == "" {
		return nil
	}
	if err := os.MkdirAll(cs.dir, 0755); err != nil {
		return err
	}

	coldFile := cs.loadColdFileFromDisk()
	if coldFile == nil {
		return nil
	}

	cs.index = make(map[string]struct{}, len(coldFile.Entries))
	for userId := range coldFile.Entries {
		cs.index[userId] = struct{}{}
	}
	// Only index keys are kept resident; records load lazily on demand.
	return nil
}

func (cs *ColdStorage) Close() {
	cs.compressor.Close()
}

// getOrLoadColdFile returns the cached cold file or loads it from disk.
// Must be called under cs.mu.Lock().
func (cs *ColdStorage) getOrLoadColdFile() *ColdFile {
	if cs.loaded != nil {
		return cs.loaded
	}
	cf := cs.loadColdFileFromDisk()
	if cf != nil {
		cs.loaded = cf
	}
	return cf
}

func (cs *ColdStorage) loadColdFileFromDisk() *ColdFile {
	path := cs.coldFilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			cs.logger.Errorf(providers.TypeApp, "Failed to read cold file %s: %s", path, err)
		}
		return nil
	}

	decompressed, err := cs.compressor.Decompress(data)
	if err != nil {
		cs.logger.Errorf(providers.TypeApp, "Failed to decompress cold file %s: %s", path, err)
		return nil
	}

	var cf ColdFile
	if err := json.Unmarshal(decompressed, &cf); err != nil {
		cs.logger.Errorf(providers.TypeApp, "Failed to parse cold file %s: %s", path, err)
		return nil
	}

	if cf.Entries == nil {
		cf.Entries = make(map[string]*ColdEntry)
	}
	return &cf
}

func (cs *ColdStorage) writeColdFile(cf *ColdFile) error {
	jsonData, err := json.Marshal(cf)
	if err != nil {
		return err
	}

	compressed, err := cs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	path := cs.coldFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}

func (cs *ColdStorage) coldFilePath() string {
	return filepath.Join(cs.dir, coldFileName)
}

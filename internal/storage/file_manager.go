package storage

import (
	"os"

	json "github.com/goccy/go-json"

	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/providers"
	"github.com/ethsmith/csc-trading-cards/internal/storage/interfaces"
)

// FileManager snapshots the collection and code stores to a single
// zstd-compressed JSON file and restores them on boot.
type FileManager struct {
	collections *models.CollectionStore
	codes       *models.CodeStore
	compressor  interfaces.CompressorInterface
	logger      providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, collections *models.CollectionStore, codes *models.CodeStore, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor:  compressor,
		collections: collections,
		codes:       codes,
		logger:      logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	storage := models.StorageV2{
		Version: models.StorageVersion,
		Users:   f.collections.Snapshot(),
		Codes:   f.codes.Snapshot(),
	}

	jsonData, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores a snapshot. A missing file is a clean start. Files
// written before the versioned envelope (a bare user map) are migrated
// transparently.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var storage models.StorageV2
	if err := json.Unmarshal(decompressedData, &storage); err == nil && storage.Users != nil {
		f.collections.Restore(storage.Users)
		if storage.Codes != nil {
			f.codes.Restore(storage.Codes)
		}
		return nil
	}

	// Legacy format: a bare map of user records, no envelope and no codes.
	f.logger.Warnf(providers.TypeApp, "Inconsistent DB found, try to migrate from old data format")
	var users map[string]*models.UserRecord
	if err := json.Unmarshal(decompressedData, &users); err != nil {
		f.logger.Warnf(providers.TypeApp, "Migration failed")
		return err
	}
	f.collections.Restore(users)
	f.logger.Warnf(providers.TypeApp, "Migration from legacy format successful")
	return nil
}

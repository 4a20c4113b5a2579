package storage

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/providers"
	"github.com/ethsmith/csc-trading-cards/internal/services"
	"github.com/ethsmith/csc-trading-cards/internal/storage/interfaces"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

// Scheduler runs the periodic jobs: snapshot persistence, player list
// refresh and cold-storage eviction of inactive users.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	players     services.PlayersServiceInterface
	collections *models.CollectionStore
	fileManager *FileManager
	cold        *ColdStorage
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	saveInterval := s.config.Persistence.SaveInterval
	refreshInterval := s.config.Players.RefreshInterval

	s.cron.AddFunc(gron.Every(saveInterval*time.Second), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		s.evictInactive()

		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
	})

	if refreshInterval > 0 {
		s.cron.AddFunc(gron.Every(refreshInterval*time.Second), func() {
			s.logger.Infof(providers.TypeApp, "Refreshing player list...")
			if err := s.players.Refresh(); err != nil {
				s.logger.Errorf(providers.TypeApp, "Player refresh failed: %s", err)
				return
			}
			s.logger.Infof(providers.TypeApp, "Player list refreshed")
		})
	}

	s.cron.Start()
}

// evictInactive moves users idle past the configured TTL into cold storage.
// Must be called under opsMu.
func (s *Scheduler) evictInactive() {
	ttl := s.config.Game.InactiveTTL
	if ttl <= 0 || !s.cold.Enabled() {
		return
	}

	for _, userId := range s.collections.InactiveSince(ttl * time.Second) {
		if rec, ok := s.collections.Evict(userId); ok {
			s.cold.Evict(userId, rec)
		}
	}
	if err := s.cold.Flush(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Cold storage flush failed: %s", err)
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath); err != nil {
		return err
	}
	if err := s.cold.RestoreIndex(); err != nil {
		return err
	}
	if err := s.players.Refresh(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Initial player load failed: %s", err)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting collections to file...")
	if err := s.cold.Flush(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Cold storage flush failed: %s", err)
	}
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, players services.PlayersServiceInterface, collections *models.CollectionStore, fileManager *FileManager, cold *ColdStorage) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		players:     players,
		collections: collections,
		fileManager: fileManager,
		cold:        cold,
	}
}

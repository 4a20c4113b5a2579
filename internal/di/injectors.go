//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"github.com/ethsmith/csc-trading-cards/internal"
	"github.com/ethsmith/csc-trading-cards/internal/controllers"
	"github.com/ethsmith/csc-trading-cards/internal/models"
	"github.com/ethsmith/csc-trading-cards/internal/players"
	"github.com/ethsmith/csc-trading-cards/internal/providers"
	"github.com/ethsmith/csc-trading-cards/internal/services"
	"github.com/ethsmith/csc-trading-cards/internal/storage"
	"github.com/ethsmith/csc-trading-cards/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewRateLimiter,

		models.NewCollectionStore,
		models.NewCodeStore,

		storage.NewZstdCompressor,
		storage.NewColdStorage,
		wire.Bind(new(models.ColdStorageInterface), new(*storage.ColdStorage)),
		storage.NewFileManager,
		storage.NewScheduler,

		players.NewSource,
		services.NewPlayersService,
		services.NewCollectionService,
		services.NewCodeService,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

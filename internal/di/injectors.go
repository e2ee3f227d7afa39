//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"vcheck/internal"
	"vcheck/internal/checkin"
	"vcheck/internal/checkin/interfaces"
	"vcheck/internal/controllers"
	"vcheck/internal/providers"
	"vcheck/internal/services"
	"vcheck/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewReleaseProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		interfaces.NewRealClock,
		checkin.NewIngestionService,
		checkin.NewZstdCompressor,
		checkin.NewArchiver,
		checkin.NewScheduler,
		services.NewGateService,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}

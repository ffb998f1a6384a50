//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"sid/internal"
	"sid/internal/controllers"
	"sid/internal/fetcher"
	"sid/internal/providers"
	"sid/internal/refresh"
	"sid/internal/services"
	"sid/internal/structures"
	"sid/internal/upstream"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		upstream.NewClient,
		fetcher.NewOrchestrator,
		services.NewInsightService,
		refresh.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

// Package di provides dependency injection configuration for the FitBot server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/auth"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/config"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/di/providers"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/media/images"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/service"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/stylist"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/weather"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideImageStorages)
	do.Provide(injector, providers.ProvideImageProcessor)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// External clients
	do.Provide(injector, providers.ProvideWeatherClient)
	do.Provide(injector, providers.ProvideStylistClient)

	// Business services
	do.Provide(injector, providers.ProvideInstanceService)
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideClosetServiceHandle)
	do.Provide(injector, providers.ProvideClosetService)
	do.Provide(injector, providers.ProvideOutfitLimiter)
	do.Provide(injector, providers.ProvideOutfitService)
	do.Provide(injector, providers.ProvideWeatherService)

	// Workers
	do.Provide(injector, providers.ProvideImportService)
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.ImageStorages](injector)
	_ = do.MustInvoke[*images.Processor](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*weather.Client](injector)
	_ = do.MustInvoke[*stylist.Client](injector)

	// Business services
	_ = do.MustInvoke[*service.InstanceService](injector)
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*providers.ClosetServiceHandle](injector)
	_ = do.MustInvoke[*service.OutfitService](injector)
	_ = do.MustInvoke[*service.WeatherService](injector)
	_ = do.MustInvoke[*service.SearchService](injector)

	// Workers
	_ = do.MustInvoke[*providers.ImportServiceHandle](injector)
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	// Backfill the search index if it is empty
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}

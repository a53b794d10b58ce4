package providers

import (
	"github.com/samber/do/v2"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/auth"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/config"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/media/images"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/ratelimit"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/service"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/stylist"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/weather"
)

// ProvideInstanceService provides the server instance service.
func ProvideInstanceService(i do.Injector) (*service.InstanceService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	cfg := do.MustInvoke[*config.Config](i)

	return service.NewInstanceService(storeHandle.Store, log.Logger, cfg), nil
}

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	instanceService := do.MustInvoke[*service.InstanceService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, instanceService, log.Logger), nil
}

// ClosetServiceHandle wraps the closet service with shutdown capability so
// write-behind snapshots are flushed on exit.
type ClosetServiceHandle struct {
	*service.ClosetService
}

// Shutdown implements do.Shutdownable.
func (h *ClosetServiceHandle) Shutdown() error {
	h.ClosetService.Close()
	return nil
}

// ProvideClosetService provides the closet service.
func ProvideClosetService(i do.Injector) (*service.ClosetService, error) {
	handle := do.MustInvoke[*ClosetServiceHandle](i)
	return handle.ClosetService, nil
}

// ProvideClosetServiceHandle provides the closet service with its lifecycle.
func ProvideClosetServiceHandle(i do.Injector) (*ClosetServiceHandle, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	processor := do.MustInvoke[*images.Processor](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewClosetService(storeHandle.Store, indexHandle.SearchIndex, sseHandle.Manager, processor, log)
	return &ClosetServiceHandle{ClosetService: svc}, nil
}

// ProvideWeatherClient provides the Open-Meteo client.
func ProvideWeatherClient(i do.Injector) (*weather.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.RequestsPerMinute, log.Logger), nil
}

// ProvideWeatherService provides the weather lookup service.
func ProvideWeatherService(i do.Injector) (*service.WeatherService, error) {
	client := do.MustInvoke[*weather.Client](i)
	return service.NewWeatherService(client), nil
}

// ProvideStylistClient provides the chat completion client for outfit
// suggestions. An empty API key yields a disabled client.
func ProvideStylistClient(i do.Injector) (*stylist.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := stylist.NewClient(cfg.Stylist.BaseURL, cfg.Stylist.APIKey, cfg.Stylist.Model, log.Logger)
	if !client.Enabled() {
		log.Info("Stylist disabled: no API key configured")
	}
	return client, nil
}

// OutfitLimiterHandle wraps the per-user suggestion rate limiter.
type OutfitLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *OutfitLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideOutfitLimiter provides the per-user suggestion rate limiter.
func ProvideOutfitLimiter(i do.Injector) (*OutfitLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	rps := float64(cfg.Stylist.SuggestionsPerHour) / 3600.0
	burst := cfg.Stylist.SuggestionsPerHour / 4
	if burst < 1 {
		burst = 1
	}

	return &OutfitLimiterHandle{KeyedRateLimiter: ratelimit.New(rps, burst)}, nil
}

// ProvideOutfitService provides the outfit suggestion service.
func ProvideOutfitService(i do.Injector) (*service.OutfitService, error) {
	closetService := do.MustInvoke[*service.ClosetService](i)
	weatherClient := do.MustInvoke[*weather.Client](i)
	stylistClient := do.MustInvoke[*stylist.Client](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	limiter := do.MustInvoke[*OutfitLimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewOutfitService(
		closetService,
		weatherClient,
		stylistClient,
		storeHandle.Store,
		sseHandle.Manager,
		limiter.KeyedRateLimiter,
		log,
	), nil
}

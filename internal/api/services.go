package api

import (
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Instance *service.InstanceService
	Auth     *service.AuthService
	Session  *service.SessionService
	Closet   *service.ClosetService
	Outfit   *service.OutfitService
	Weather  *service.WeatherService
	Search   *service.SearchService
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/workshop-service/internal/api/http/handlers"
	"github.com/spec-kit/workshop-service/internal/auth"
	"github.com/spec-kit/workshop-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Prefix         string
	Health         *handlers.HealthHandler
	Workshops      *handlers.WorkshopsHandler
	Registrations  *handlers.RegistrationsHandler
	Users          *handlers.UsersHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
	RequireAdmin   bool
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group(cfg.Prefix)

	if cfg.Users != nil {
		api.Post("/auth/register", cfg.Users.Register)
		api.Post("/auth/login", cfg.Users.Login)
	}

	admin := auth.RequireAdmin(cfg.RequireAdmin, cfg.AuthMiddleware)

	api.Get("/workshops", cfg.Workshops.List)
	api.Post("/workshops", admin, cfg.Workshops.Create)
	api.Get("/workshops/:id", cfg.Workshops.Get)
	api.Put("/workshops/:id", admin, cfg.Workshops.Update)
	api.Delete("/workshops/:id", admin, cfg.Workshops.Delete)
	api.Get("/workshops/:id/registrations", admin, cfg.Workshops.Registrations)
	api.Get("/workshops/:id/registration-count", cfg.Workshops.RegistrationCount)

	api.Post("/registrations", cfg.Registrations.Create)
}

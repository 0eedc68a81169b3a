package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/workshop-service/internal/observability"
)

// ServerConfig controls construction of the Fiber application.
type ServerConfig struct {
	AppName        string
	RequestTimeout time.Duration
	BodyLimit      int
}

// NewApp builds a Fiber application with the global middlewares and the
// given routes installed.
func NewApp(cfg ServerConfig, logger *zap.Logger, metrics *observability.Metrics, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})
	RegisterMiddlewares(app, logger, metrics, cfg.RequestTimeout)
	if routes.Metrics == nil {
		routes.Metrics = metrics
	}
	RegisterRoutes(app, routes)
	return app
}

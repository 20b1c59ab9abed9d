package router

import (
	"fmt"
	"net/http"

	"farmatime/internal/interfaces/api/handler"
	"farmatime/internal/pkg/config"
	"farmatime/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	Server          config.ServerConfig
	InternalHandler *handler.InternalHandler
	UserHandler     *handler.UserHandler
	RequestHandler  *handler.RequestHandler
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Worker-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "FarmaTime API")
	})

	api := e.Group("/api")

	workerKey := WorkerKeyMiddleware(cfg.Server, cfg.Logger)
	api.POST("/internal/runJobs", cfg.InternalHandler.RunJobs, workerKey)
	// legacy path kept for the deployed cron worker
	api.POST("/request/runJobs", cfg.InternalHandler.RunJobs, workerKey)

	api.POST("/users", cfg.UserHandler.Create)
	api.PUT("/users/:id/jobs", cfg.UserHandler.UpdateJobs)
	api.GET("/users/:id/jobs", cfg.UserHandler.GetJobs)

	api.GET("/requests", cfg.RequestHandler.List)
	api.POST("/requests/check", cfg.RequestHandler.Check)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}

// WorkerKeyMiddleware guards internal routes with the static X-Worker-Key
// header. Enforced only in production and staging, so development runs work
// without a configured worker.
func WorkerKeyMiddleware(server config.ServerConfig, log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !server.WorkerKeyEnforced() {
				return next(c)
			}
			key := c.Request().Header.Get("X-Worker-Key")
			if key == "" || key != server.WorkerKey {
				log.Warn("Rejected internal request with missing or invalid worker key")
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"error":   true,
					"message": "Forbidden",
				})
			}
			return next(c)
		}
	}
}

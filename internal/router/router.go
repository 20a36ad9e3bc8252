// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/user-service/internal/handler"
	"github.com/deppfellow/user-service/internal/middleware"
	"github.com/deppfellow/user-service/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance serving the whole API.
//
// Middleware order matters:
//  1. RequestID first, so every later log line and trace can carry it.
//  2. New Relic transaction, then the custom tracing attributes.
//  3. ContextEnhancer builds the request logger (needs request id + txn).
//  4. RequestLogger writes one line per request with that logger.
//  5. Recover turns panics into 500s inside the logged span.
//  6. Secure headers, optional CORS, then the OPTIONS guard.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
	)

	if middlewares.Global.CORSEnabled() {
		router.Use(middlewares.Global.CORS())
	}

	router.Use(middlewares.Global.RejectOptions())

	registerUserRoutes(router, h)

	if s.Config.Observability.HealthChecks.Enabled {
		registerSystemRoutes(router, h)
	}

	return router
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/user-service/internal/middleware"
	"github.com/deppfellow/user-service/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes a "system" endpoint that external systems can use to verify
// the service is alive.
//
// It is only routed when observability.health_checks.enabled is set.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and dependency checks.
//
// Response includes:
// - overall status
// - timestamp (UTC) and uptime
// - environment (from config)
// - checks map (new_relic)
//
// The service has no hard dependencies, so the answer is always 200. The
// New Relic check is informational: a disabled agent is not a failure.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]interface{}{}

	if app := h.server.LoggerService.GetApplication(); app != nil {
		checks["new_relic"] = map[string]interface{}{
			"status": "enabled",
		}

		app.RecordCustomEvent("HealthCheck", map[string]interface{}{
			"operation": "health_check",
		})
	} else {
		checks["new_relic"] = map[string]interface{}{
			"status": "disabled",
		}
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"uptime":      time.Since(h.server.StartedAt()).Round(time.Second).String(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

package middleware

import (
	"net/http"

	"github.com/deppfellow/user-service/internal/errs"
	"github.com/deppfellow/user-service/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups “global” middleware and the global error handler.
//
// Its methods read config and logging from *server.Server.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORSEnabled reports whether any origin is configured.
func (global *GlobalMiddlewares) CORSEnabled() bool {
	return len(global.server.Config.Server.AllowedOrigins()) > 0
}

// CORS returns Echo’s CORS middleware configured by your server config.
//
// Only GET is ever allowed: the API is read-only.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.AllowedOrigins(),
		AllowMethods: []string{http.MethodGet},
	})
}

// RejectOptions answers 404 to OPTIONS requests that reached the route table.
//
// Echo answers OPTIONS on any known path with 204 + Allow. The API only
// serves GET, and every other method must look like an unknown route.
// CORS preflights are still answered by the CORS middleware, which runs
// before this one and does not call next for them.
func (global *GlobalMiddlewares) RejectOptions() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return errs.ErrRouteNotFound()
			}
			return next(c)
		}
	}
}

// RequestLogger returns Echo’s request logger middleware, but with a custom LogValuesFunc.
//
// Lines go through the request-scoped zerolog logger and carry request_id.
// The status is the one GlobalErrorHandler will write, even when the handler
// returned an error and nothing has been written yet.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		// LogValuesFunc is called at the end of request handling.
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error, Echo has not written the final status yet.
			// GlobalErrorHandler will decide it, so derive it the same way here.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = ResolveHTTPError(v.Error).Status
			}

			logger := GetLogger(c)

			// Pick log level based on status:
			// - 5xx = server fault -> Error
			// - 4xx = client fault -> Warn
			// - otherwise -> Info
			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo’s panic recovery middleware.
//
// Panics become errors handed to GlobalErrorHandler (500).
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisablePrintStack: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

// Secure returns Echo’s secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// ResolveHTTPError maps any error onto the response the client will get.
//
//   - *errs.HTTPError passes through unchanged.
//   - Echo's 404 (no route) and 405 (known path, other method) both become
//     errs.ErrRouteNotFound: every unserved method/path combination is 404.
//   - Other Echo errors keep their status and message.
//   - Anything else is a safe, generic 500.
func ResolveHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return errs.ErrRouteNotFound()
		}

		// Echo error message can be a string or any type; normalize it to string.
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}

		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	return errs.NewInternalServerError()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error ends up here, regardless of where it happened. It is
// translated into the errs.HTTPError JSON shape; the original error is only
// logged.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	// Keep the original error for logging.
	originalErr := err

	httpErr := ResolveHTTPError(err)

	logger := GetLogger(c)

	event := logger.Warn()
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}

	event.
		Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	// Only write response if it hasn’t already been written.
	if c.Response().Committed {
		return
	}

	if err := c.JSON(httpErr.Status, httpErr); err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/user-service/internal/config"
	"github.com/deppfellow/user-service/internal/errs"
	"github.com/deppfellow/user-service/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, out *bytes.Buffer) *server.Server {
	t.Helper()

	log := zerolog.New(out)
	srv, err := server.New(config.DefaultConfig(), &log, nil)
	require.NoError(t, err)
	return srv
}

func TestResolveHTTPError(t *testing.T) {
	badRequest := errs.NewBadRequestError("invalid id", nil, nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "http error passes through", err: badRequest, wantStatus: 400, wantCode: "BAD_REQUEST", wantMsg: "invalid id"},
		{name: "wrapped http error", err: fmt.Errorf("get user: %w", badRequest), wantStatus: 400, wantCode: "BAD_REQUEST", wantMsg: "invalid id"},
		{name: "echo not found", err: echo.ErrNotFound, wantStatus: 404, wantCode: "NOT_FOUND", wantMsg: "route not found"},
		{name: "echo method not allowed", err: echo.ErrMethodNotAllowed, wantStatus: 404, wantCode: "NOT_FOUND", wantMsg: "route not found"},
		{name: "other echo error", err: echo.NewHTTPError(http.StatusUnsupportedMediaType, "nope"), wantStatus: 415, wantCode: "UNSUPPORTED_MEDIA_TYPE", wantMsg: "nope"},
		{name: "echo error without string message", err: echo.NewHTTPError(http.StatusConflict, 42), wantStatus: 409, wantCode: "CONFLICT", wantMsg: "Conflict"},
		{name: "unknown error", err: errors.New("connection reset"), wantStatus: 500, wantCode: "INTERNAL_SERVER_ERROR", wantMsg: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveHTTPError(tt.err)

			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	var logs bytes.Buffer
	global := NewGlobalMiddlewares(newTestServer(t, &logs))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/1", nil), rec)

	global.GlobalErrorHandler(errors.New("disk on fire"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_SERVER_ERROR","error":"Internal Server Error","status":500}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestGlobalErrorHandler_CommittedResponse(t *testing.T) {
	var logs bytes.Buffer
	global := NewGlobalMiddlewares(newTestServer(t, &logs))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "partial"))

	global.GlobalErrorHandler(errs.ErrRouteNotFound(), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestRejectOptions(t *testing.T) {
	var logs bytes.Buffer
	global := NewGlobalMiddlewares(newTestServer(t, &logs))

	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}
	mw := global.RejectOptions()(next)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodOptions, "/users", nil), httptest.NewRecorder())
	err := mw(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.False(t, called)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/users", nil), httptest.NewRecorder())
	require.NoError(t, mw(c))
	assert.True(t, called)
}

func TestRequestLogger_UsesResolvedStatus(t *testing.T) {
	var logs bytes.Buffer
	srv := newTestServer(t, &logs)
	global := NewGlobalMiddlewares(srv)
	enhancer := NewContextEnhancer(srv)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(RequestID(), enhancer.EnhanceContext(), global.RequestLogger())
	e.GET("/users/:id", func(c echo.Context) error {
		return errs.NewBadRequestError("invalid id", nil, nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	var apiLine map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["message"] == "API" {
			apiLine = entry
		}
	}

	require.NotNil(t, apiLine, "request log line missing")
	assert.Equal(t, "warn", apiLine["level"])
	assert.Equal(t, float64(http.StatusBadRequest), apiLine["status"])
	assert.Equal(t, "req-1", apiLine["request_id"])
	assert.Equal(t, "/users/:id", apiLine["path"])
}

func TestGetLogger_Fallback(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	require.NotNil(t, GetLogger(c))
	assert.Equal(t, zerolog.Disabled, GetLogger(c).GetLevel())
	assert.Equal(t, zerolog.Disabled, LoggerFromContext(context.Background()).GetLevel())
}

func TestEnhanceContext_StoresLogger(t *testing.T) {
	var logs bytes.Buffer
	enhancer := NewContextEnhancer(newTestServer(t, &logs))

	e := echo.New()
	e.Use(RequestID(), enhancer.EnhanceContext())
	e.GET("/users", func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo")
		LoggerFromContext(c.Request().Context()).Info().Msg("from context")
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(RequestIDHeader, "req-2")
	e.ServeHTTP(httptest.NewRecorder(), req)

	lines := bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, "req-2", entry["request_id"])
		assert.Equal(t, "/users", entry["path"])
		assert.Equal(t, http.MethodGet, entry["method"])
	}
}

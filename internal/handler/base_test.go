package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/user-service/internal/config"
	"github.com/deppfellow/user-service/internal/errs"
	"github.com/deppfellow/user-service/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Value string `param:"value"`
}

func (r *echoRequest) Validate() error {
	if r.Value == "bad" {
		return errors.New("value is bad")
	}
	return nil
}

func newTestHandler(t *testing.T) Handler {
	t.Helper()

	log := zerolog.Nop()
	srv, err := server.New(config.DefaultConfig(), &log, nil)
	require.NoError(t, err)
	return NewHandler(srv)
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_FreshPayloadPerRequest(t *testing.T) {
	h := newTestHandler(t)

	var seen []*echoRequest
	e := echo.New()
	e.GET("/echo/:value", Handle(h,
		func(c echo.Context, req *echoRequest) (map[string]string, error) {
			seen = append(seen, req)
			return map[string]string{"value": req.Value}, nil
		},
		http.StatusOK,
		func() *echoRequest { return &echoRequest{} },
	))

	first := serve(e, "/echo/a")
	second := serve(e, "/echo/b")

	assert.Equal(t, `{"value":"a"}`, strings.TrimSpace(first.Body.String()))
	assert.Equal(t, `{"value":"b"}`, strings.TrimSpace(second.Body.String()))
	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	assert.Equal(t, "a", seen[0].Value)
}

func TestHandle_StatusCode(t *testing.T) {
	h := newTestHandler(t)

	e := echo.New()
	e.GET("/echo/:value", Handle(h,
		func(c echo.Context, req *echoRequest) (*echoRequest, error) {
			return req, nil
		},
		http.StatusAccepted,
		func() *echoRequest { return &echoRequest{} },
	))

	assert.Equal(t, http.StatusAccepted, serve(e, "/echo/x").Code)
}

func TestHandle_ValidationFailureSkipsHandler(t *testing.T) {
	h := newTestHandler(t)

	called := false
	var returned error
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		returned = err
	}
	e.GET("/echo/:value", Handle(h,
		func(c echo.Context, req *echoRequest) (string, error) {
			called = true
			return "", nil
		},
		http.StatusOK,
		func() *echoRequest { return &echoRequest{} },
	))

	serve(e, "/echo/bad")

	assert.False(t, called)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, returned, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "value is bad", httpErr.Message)
}

func TestHandle_HandlerErrorIsReturned(t *testing.T) {
	h := newTestHandler(t)
	boom := errors.New("boom")

	var returned error
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		returned = err
	}
	e.GET("/echo/:value", Handle(h,
		func(c echo.Context, req *echoRequest) (string, error) {
			return "", boom
		},
		http.StatusOK,
		func() *echoRequest { return &echoRequest{} },
	))

	serve(e, "/echo/x")

	assert.ErrorIs(t, returned, boom)
}

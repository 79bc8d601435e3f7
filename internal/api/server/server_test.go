package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/infix-calc/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubHealth bool

func (h stubHealth) Healthy(ctx context.Context) bool { return bool(h) }

func newTestServer(healthy bool) *Server {
	return New(&Config{Port: "8080", CorsOrigins: []string{"*"}}, stubHealth(healthy)).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")
}

func TestServer_Health(t *testing.T) {
	for _, tt := range []struct {
		healthy bool
		status  int
	}{
		{true, http.StatusOK},
		{false, http.StatusServiceUnavailable},
	} {
		s := newTestServer(tt.healthy)
		rec := httptest.NewRecorder()
		s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, tt.status, rec.Code)
	}
}

func TestServer_ErrorHandler(t *testing.T) {
	s := newTestServer(true)
	s.Echo.GET("/fail", func(c echo.Context) error {
		return apperr.NewValidation("expression is required")
	})
	s.Echo.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Context(t *testing.T) {
	s := newTestServer(true)
	assert.NoError(t, s.Context().Err())
	select {
	case <-s.ShutdownSignal():
		t.Fatal("shutdown signal must not be closed before Start")
	default:
	}
}

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/reg-hunter/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedHealth bool

func (h fixedHealth) Healthy(context.Context) bool { return bool(h) }

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("USE_HTTP2", "true")
	t.Setenv("BODY_LIMIT", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.UseHttp2)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
	assert.Equal(t, defaultBodyLimit, cfg.BodyLimit)
	assert.Equal(t, GracefulShutdownTimeout, cfg.ShutdownTimeout)

	t.Setenv("SHUTDOWN_TIMEOUT", "nope")
	_, err = LoadConfig()
	assert.Error(t, err)
	t.Setenv("SHUTDOWN_TIMEOUT", "")

	t.Setenv("PORT", "70000")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestServer_HealthChecks(t *testing.T) {
	tests := []struct {
		name    string
		healthy bool
		status  int
	}{
		{"healthy", true, http.StatusOK},
		{"unhealthy", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&Config{Port: "8080", CorsOrigins: []string{"*"}}).
				SetupMiddlewares().
				SetupHealthChecks("/health", fixedHealth(tt.healthy))

			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestServer_ErrorHandler(t *testing.T) {
	s := New(&Config{Port: "8080", CorsOrigins: []string{"*"}}).
		SetupErrorHandler()
	s.Echo.GET("/missing", func(c echo.Context) error {
		return apperr.NewNotFound("document", "42")
	})

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Middlewares(t *testing.T) {
	s := New(&Config{Port: "8080", CorsOrigins: []string{"*"}, BodyLimit: "1K"}).
		SetupMiddlewares().
		SetupErrorHandler()
	s.Echo.POST("/echo", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	t.Run("request id header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{}")))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("body limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 4096)))
		s.Echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

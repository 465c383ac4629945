package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProbabilityPit/internal/service/ratelimit"
	"ProbabilityPit/pkg/cache"
	"ProbabilityPit/pkg/config"
	applogger "ProbabilityPit/pkg/logger"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
}

func TestApp_ServesAndShutsDown(t *testing.T) {
	cfg := &config.Config{Environment: "test"}
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Server.CORSOrigins = []string{"*"}

	mc := cache.NewMemoryCache()
	app := New(cfg, applogger.Nop(), pingHandler{}, nil, mc, nil, ratelimit.New(1, 1, time.Minute))

	e := app.HTTPServer().Echo()
	for path, want := range map[string]int{"/ping": http.StatusOK, "/metrics": http.StatusOK, "/nope": http.StatusNotFound} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}

	require.NoError(t, app.Shutdown(context.Background()))
	_, err := mc.Exists(context.Background(), "x")
	assert.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.NoError(t, app.Shutdown(context.Background()))
	}, "second shutdown is a no-op")
}

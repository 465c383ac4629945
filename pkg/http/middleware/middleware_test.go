package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applogger "ProbabilityPit/pkg/logger"
)

func serve(e *echo.Echo, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(Recover(applogger.NewWithWriter(&buf, zerolog.InfoLevel)))
	e.GET("/boom", func(c echo.Context) error { panic("kaboom") })

	rec := serve(e, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
	assert.Contains(t, buf.String(), "kaboom")
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, http.MethodGet, "/", nil)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)

	rec = serve(e, http.MethodGet, "/", map[string]string{echo.HeaderXRequestID: "abc"})
	assert.Equal(t, "abc", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogging(applogger.NewWithWriter(&buf, zerolog.DebugLevel)))
	e.GET("/academy/:moduleId", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/fail", func(c echo.Context) error { return errors.New("db gone") })

	serve(e, http.MethodGet, "/academy/2", nil)
	assert.Contains(t, buf.String(), `"route":"/academy/:moduleId"`)
	assert.Contains(t, buf.String(), `"status":200`)

	buf.Reset()
	rec := serve(e, http.MethodGet, "/fail", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "db gone")
}

func TestCORS(t *testing.T) {
	e := echo.New()
	e.Use(CORS(CORSConfig{
		AllowOrigins: []string{"https://probabilitypit.test"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		MaxAge:       600,
	}))
	e.GET("/api/risk", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, http.MethodGet, "/api/risk", map[string]string{"Origin": "https://probabilitypit.test"})
	assert.Equal(t, "https://probabilitypit.test", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = serve(e, http.MethodGet, "/api/risk", map[string]string{"Origin": "https://evil.test"})
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = serve(e, http.MethodOptions, "/api/risk", map[string]string{
		"Origin":                        "https://probabilitypit.test",
		"Access-Control-Request-Method": "POST",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "600", rec.Header().Get(echo.HeaderAccessControlMaxAge))
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/modules/:id", func(c echo.Context) error { return c.String(http.StatusOK, "x") })

	serve(e, http.MethodGet, "/api/modules/1", nil)
	serve(e, http.MethodGet, "/api/modules/2", nil)
	serve(e, http.MethodGet, "/nope", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/modules/:id", "GET", "200")))
	n, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "templated route plus one series for the 404")
}

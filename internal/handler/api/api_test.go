package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProbabilityPit/internal/domain/models"
	domrepo "ProbabilityPit/internal/domain/repository"
	"ProbabilityPit/internal/service/ratelimit"
	"ProbabilityPit/internal/services/curriculum"
	"ProbabilityPit/internal/usecase"
	"ProbabilityPit/pkg/cache"
	xlogger "ProbabilityPit/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordCalculation(bool)          {}
func (nopMetrics) RecordLessonLoad(string, string) {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordLatency(string, float64)   {}

type mapSource map[string]string

func (mapSource) Name() string { return "map" }

func (s mapSource) Fetch(_ context.Context, file string) ([]byte, error) {
	body, ok := s[file]
	if !ok {
		return nil, domrepo.ErrContentNotFound
	}
	return []byte(body), nil
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newEcho(t *testing.T, limiter *ratelimit.Limiter) *echo.Echo {
	t.Helper()
	log := xlogger.Nop()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	src := mapSource{
		"module-01-casino-vs-exchange.md": "# MODULE 1: Casino\n\nIntro.\n\n## PART B - TEXT GUIDE\n\nGuide body.\n",
	}
	riskUC := usecase.NewRiskUsecase(nopMetrics{})
	lessonUC := usecase.NewLessonUsecase(src, mc, curriculum.NewRenderer(), nopMetrics{}, log, time.Minute)

	e := echo.New()
	NewRiskEchoHandler(log, riskUC, limiter).RegisterRoutes(e)
	NewCurriculumEchoHandler(log, lessonUC).RegisterRoutes(e)
	NewHealthHandler(src).RegisterRoutes(e)
	NewWizardWSHandler(log, riskUC, nil, time.Second).RegisterRoutes(e)
	return e
}

func do(t *testing.T, e *echo.Echo, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestRisk_Query(t *testing.T) {
	e := newEcho(t, nil)
	rec, env := do(t, e, httptest.NewRequest(http.MethodGet, "/api/risk?yes=0.60&no=0.45&estimate=0.65&bankroll=1000", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))

	var rep models.RiskReport
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, 5.0, rep.Result.VigPercent)
	assert.Equal(t, 57.1, rep.Result.DeVigged)
	assert.Equal(t, 7.9, rep.Result.EdgePoints)
	assert.True(t, rep.Result.IsProfitable)
	assert.Equal(t, "Execute Tactical Trade", rep.Verdict.ActionLabel)
	assert.Len(t, rep.Indicators, 3)
}

func TestRisk_JSONAndForm(t *testing.T) {
	e := newEcho(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/risk", strings.NewReader(`{"yes":"0.5","no":"0.5","estimate":"0.5","bankroll":"100"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, env := do(t, e, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var rep models.RiskReport
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, 0.0, rep.Result.VigPercent)
	assert.False(t, rep.Result.IsProfitable)

	form := url.Values{"yes": {"abc"}, "no": {"0.45"}, "estimate": {"0.65"}, "bankroll": {"1000"}}
	req = httptest.NewRequest(http.MethodPost, "/api/risk", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec, env = do(t, e, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	assert.Equal(t, 0.0, rep.Input.YesPrice, "unparseable input becomes zero")
}

func TestRisk_BadBody(t *testing.T) {
	e := newEcho(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/risk", strings.NewReader(`{"yes":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, env := do(t, e, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestRisk_NonFinite(t *testing.T) {
	e := newEcho(t, nil)
	rec, env := do(t, e, httptest.NewRequest(http.MethodGet, "/api/risk?yes=1e308&no=1e308&estimate=0.5&bankroll=1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), "non-finite")
}

func TestRisk_RateLimited(t *testing.T) {
	e := newEcho(t, ratelimit.New(0.001, 1, time.Minute))
	rec, _ := do(t, e, httptest.NewRequest(http.MethodGet, "/api/risk", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(t, e, httptest.NewRequest(http.MethodGet, "/api/risk", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, string(env.Data), "ERR_RATE_LIMITED")
}

func TestModules_List(t *testing.T) {
	e := newEcho(t, nil)
	rec, env := do(t, e, httptest.NewRequest(http.MethodGet, "/api/modules", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var mods []models.Module
	require.NoError(t, json.Unmarshal(env.Data, &mods))
	require.Len(t, mods, 4)
	assert.Equal(t, 1, mods[0].ID)
	assert.Equal(t, 4, mods[3].ID)
}

func TestModules_Get(t *testing.T) {
	e := newEcho(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		check      func(t *testing.T, body lessonResponse)
	}{
		{"full", "/api/modules/1", http.StatusOK, func(t *testing.T, b lessonResponse) {
			assert.Equal(t, "full", b.View)
			assert.Equal(t, b.HTML, b.Body)
			assert.False(t, b.Fallback)
			assert.Equal(t, 2, b.Next)
		}},
		{"guide", "/api/modules/1?view=guide", http.StatusOK, func(t *testing.T, b lessonResponse) {
			assert.Equal(t, "guide", b.View)
			assert.Contains(t, b.Body, "Guide body.")
			assert.NotContains(t, b.Body, "Intro.")
		}},
		{"script", "/api/modules/1?view=script", http.StatusOK, func(t *testing.T, b lessonResponse) {
			assert.Contains(t, b.Body, "Intro.")
			assert.NotContains(t, b.Body, "Guide body.")
		}},
		{"missing file falls back", "/api/modules/2", http.StatusOK, func(t *testing.T, b lessonResponse) {
			assert.True(t, b.Fallback)
			assert.Equal(t, curriculum.FallbackMarkdown, b.Markdown)
		}},
		{"bad view", "/api/modules/1?view=poster", http.StatusBadRequest, nil},
		{"non numeric", "/api/modules/abc", http.StatusBadRequest, nil},
		{"zero", "/api/modules/0", http.StatusBadRequest, nil},
		{"unknown", "/api/modules/7", http.StatusNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, e, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.check != nil {
				var body lessonResponse
				require.NoError(t, json.Unmarshal(env.Data, &body))
				tt.check(t, body)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	e := newEcho(t, nil)
	rec, env := do(t, e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","content_source":"map"}`, string(env.Data))
}

func TestWizardWS(t *testing.T) {
	srv := httptest.NewServer(newEcho(t, nil))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/risk", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var snap models.WizardSnapshot
	require.NoError(t, conn.ReadJSON(&snap))
	assert.NotEmpty(t, snap.Session)
	assert.Equal(t, models.StepMarketData, snap.Step)
	assert.Equal(t, "0.60", snap.Fields.YesPrice)
	require.NotNil(t, snap.Report)
	assert.True(t, snap.Report.Result.IsProfitable)
	session := snap.Session

	require.NoError(t, conn.WriteJSON(models.WizardMessage{Type: "set", Field: "estimate", Value: "0.40"}))
	snap = models.WizardSnapshot{}
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, session, snap.Session)
	assert.Equal(t, "0.40", snap.Fields.Estimate)
	require.NotNil(t, snap.Report)
	assert.False(t, snap.Report.Result.IsProfitable)

	require.NoError(t, conn.WriteJSON(models.WizardMessage{Type: "next"}))
	snap = models.WizardSnapshot{}
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, models.StepEdgeCalc, snap.Step)
	assert.Equal(t, 50.0, snap.Progress)

	for _, bad := range []string{`{"type":"jump"}`, `{"type":"set","field":"odds","value":"1"}`, `{"type":"set"}`, `not json`} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(bad)))
		var frame map[string]interface{}
		require.NoError(t, conn.ReadJSON(&frame))
		assert.Equal(t, "error", frame["type"], bad)
		assert.NotEmpty(t, frame["error"], bad)
	}

	require.NoError(t, conn.WriteJSON(models.WizardMessage{Type: "reset"}))
	snap = models.WizardSnapshot{}
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, models.StepMarketData, snap.Step)
	assert.Equal(t, "0.40", snap.Fields.Estimate, "reset keeps the fields")
}

func TestWizardWS_NonFiniteReportIsDropped(t *testing.T) {
	srv := httptest.NewServer(newEcho(t, nil))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/risk", nil)
	require.NoError(t, err)
	defer conn.Close()

	var snap models.WizardSnapshot
	require.NoError(t, conn.ReadJSON(&snap))
	require.NoError(t, conn.WriteJSON(models.WizardMessage{Type: "set", Field: "yes", Value: "1e308"}))
	require.NoError(t, conn.ReadJSON(&snap))
	require.NoError(t, conn.WriteJSON(models.WizardMessage{Type: "set", Field: "no", Value: "1e308"}))
	snap = models.WizardSnapshot{}
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "1e308", snap.Fields.NoPrice)
	assert.Nil(t, snap.Report)
}

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domrepo "ProbabilityPit/internal/domain/repository"
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

const moduleOne = "# MODULE 1: Casino\n\n> House always wins.\n\nIntro text.\n\n## PART B — TEXT GUIDE\n\nGuide text.\n"

func newSite(t *testing.T) *echo.Echo {
	t.Helper()
	tpl, err := NewTemplates()
	require.NoError(t, err)

	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	src := mapSource{"module-01-casino-vs-exchange.md": moduleOne}
	log := xlogger.Nop()
	raw := fstest.MapFS{"module-01-casino-vs-exchange.md": {Data: []byte(moduleOne)}}

	e := echo.New()
	e.Renderer = tpl
	NewPagesHandler(log,
		usecase.NewRiskUsecase(nopMetrics{}),
		usecase.NewLessonUsecase(src, mc, curriculum.NewRenderer(), nopMetrics{}, log, time.Minute),
		raw,
	).RegisterRoutes(e)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHome_Wizard(t *testing.T) {
	e := newSite(t)

	tests := []struct {
		name     string
		target   string
		contains []string
		absent   []string
	}{
		{
			name:     "defaults",
			target:   "/",
			contains: []string{"Step 1: The Numbers", "5.0%", "57.1%", `value="0.60"`, "Information Edge", "Numerical Warfare."},
			absent:   []string{"Step 2: Define Your Alpha"},
		},
		{
			name:     "next",
			target:   "/?action=next",
			contains: []string{"Step 2: Define Your Alpha", "&#43;7.9 pts", "&#43;EV Setup Detected", "65%"},
		},
		{
			name:     "blueprint",
			target:   "/?step=2&action=next",
			contains: []string{"The Risk Blueprint", "Execute Tactical Trade", "Quarter-Kelly sizing"},
		},
		{
			name:     "next stops at blueprint",
			target:   "/?step=3&action=next",
			contains: []string{"The Risk Blueprint"},
		},
		{
			name:     "back",
			target:   "/?step=2&action=back",
			contains: []string{"Step 1: The Numbers"},
		},
		{
			name:     "reset keeps fields",
			target:   "/?step=3&action=reset&yes=0.70",
			contains: []string{"Step 1: The Numbers", `value="0.70"`},
		},
		{
			name:     "step out of range is clamped",
			target:   "/?step=9",
			contains: []string{"The Risk Blueprint"},
		},
		{
			name:     "unprofitable",
			target:   "/?step=3&estimate=0.40",
			contains: []string{"Setup Not Recommended", "disabled"},
		},
		{
			name:     "bad input becomes zero",
			target:   "/?yes=abc&no=abc",
			contains: []string{"0.0%"},
		},
		{
			name:     "unknown action ignored",
			target:   "/?action=jump",
			contains: []string{"Step 1: The Numbers"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(e, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestAcademy(t *testing.T) {
	e := newSite(t)

	rec := get(e, "/academy")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The Quant Toolkit")
	assert.Contains(t, body, "Execution &amp; Risk Management")
	assert.Contains(t, body, `href="/academy/4"`)
	assert.Contains(t, body, "Final Objective: Niche Specialization")
	assert.Equal(t, 1, countOpen(body))

	assert.Equal(t, 0, countOpen(get(e, "/academy?open=0").Body.String()))
}

func countOpen(body string) int {
	return strings.Count(body, `<details class="card module" open>`)
}

func TestModulePage(t *testing.T) {
	e := newSite(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		contains   []string
		absent     []string
	}{
		{"full", "/academy/1", http.StatusOK, []string{`class="callout"`, "Intro text.", "Guide text.", `href="/academy/2"`, "Text Guide"}, []string{"Previous Module"}},
		{"script", "/academy/1?view=script", http.StatusOK, []string{"Intro text."}, []string{"Guide text."}},
		{"guide", "/academy/1?view=guide", http.StatusOK, []string{"Guide text."}, []string{"Intro text."}},
		{"non numeric reads as one", "/academy/abc", http.StatusOK, []string{"Intro text."}, nil},
		{"unknown id", "/academy/9", http.StatusNotFound, []string{"Failed to load content."}, []string{"Next Module", "Try Risk Manager"}},
		{"missing file", "/academy/4", http.StatusOK, []string{"Failed to load content.", `href="/academy/3"`}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(e, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code)
			body := rec.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestAssets(t *testing.T) {
	e := newSite(t)

	rec := get(e, "/static/site.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".lesson blockquote.callout")

	rec = get(e, "/static/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(e, "/curriculum/modules/module-01-casino-vs-exchange.md")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, moduleOne, rec.Body.String())
}

func TestTemplates_UnknownPage(t *testing.T) {
	tpl, err := NewTemplates()
	require.NoError(t, err)
	assert.Error(t, tpl.Render(httptest.NewRecorder(), "missing.html", nil, nil))
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": "two"}, m)

	_, err = dict("a")
	assert.Error(t, err)
	_, err = dict(1, 2)
	assert.Error(t, err)
}

func TestFuncs_Signed(t *testing.T) {
	signed := funcs()["signed"].(func(float64) string)
	assert.Equal(t, "+7.9", signed(7.94))
	assert.Equal(t, "0.0", signed(0))
	assert.Equal(t, "-2.5", signed(-2.5))
}

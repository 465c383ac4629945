package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"

	"ProbabilityPit/internal/domain/models"
	"ProbabilityPit/internal/services/risk"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page template names.
const (
	PageHome    = "home.html"
	PageAcademy = "academy.html"
	PageModule  = "module.html"
)

var pages = []string{PageHome, PageAcademy, PageModule}

// Templates is an echo.Renderer over the embedded page set. Every page is
// parsed together with layout.html and rendered through the "layout" template.
type Templates struct {
	set map[string]*template.Template
}

func NewTemplates() (*Templates, error) {
	base, err := template.New("layout.html").Funcs(funcs()).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	set := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		if set[p], err = clone.ParseFS(templateFS, "templates/"+p); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
	}
	return &Templates{set: set}, nil
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := t.set[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// Static returns the embedded css and js.
func Static() fs.FS {
	return echo.MustSubFS(staticFS, "static")
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"pct":  risk.FormatPercent,
		"size": risk.FormatSize,
		"ev":   risk.FormatEV,
		"signed": func(v float64) string {
			if v > 0 {
				return "+" + risk.FormatPercent(v)
			}
			return risk.FormatPercent(v)
		},
		"trusted":   trusted,
		"stepLabel": func(s models.WizardStep) string { return s.Label() },
		"year":      func() int { return time.Now().Year() },
		"dict":      dict,
	}
}

// trusted marks lesson HTML as safe. It has already been through the sanitizer.
func trusted(s string) template.HTML {
	return template.HTML(s)
}

// dict builds a map from alternating keys and values, for passing several values to a sub-template.
func dict(kv ...interface{}) (map[string]interface{}, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

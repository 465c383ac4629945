package web

import (
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"ProbabilityPit/internal/domain/models"
	domrepo "ProbabilityPit/internal/domain/repository"
	"ProbabilityPit/internal/services/risk"
	"ProbabilityPit/internal/usecase"
	xhttp "ProbabilityPit/pkg/http"
	xlogger "ProbabilityPit/pkg/logger"
	"ProbabilityPit/pkg/util"
)

const (
	navTool    = "tool"
	navAcademy = "academy"
)

type pageMeta struct {
	Title string
	Nav   string
}

type stepView struct {
	Step     models.WizardStep
	Active   bool
	Complete bool
}

type homePage struct {
	pageMeta
	State    models.WizardState
	Steps    []stepView
	Progress float64
	Report   models.RiskReport
	// EstimatePct is the estimate shown as a whole percentage above the slider.
	EstimatePct string
}

type academyPage struct {
	pageMeta
	Modules  []models.Module
	Expanded int
}

type viewTab struct {
	View   domrepo.LessonView
	Label  string
	Active bool
}

type modulePage struct {
	pageMeta
	Lesson models.Lesson
	Body   string
	Tabs   []viewTab
	View   domrepo.LessonView
}

// PagesHandler serves the server-rendered site.
type PagesHandler struct {
	logger  *xlogger.Logger
	risk    *usecase.RiskUsecase
	lessons *usecase.LessonUsecase
	// raw exposes the Markdown files; nil when lessons come from a remote source.
	raw fs.FS
}

func NewPagesHandler(logger *xlogger.Logger, risk *usecase.RiskUsecase, lessons *usecase.LessonUsecase, raw fs.FS) *PagesHandler {
	return &PagesHandler{logger: logger, risk: risk, lessons: lessons, raw: raw}
}

func (h *PagesHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/academy", h.Academy)
	e.GET("/academy/:moduleId", h.Module)
	e.StaticFS("/static", Static())
	if h.raw != nil {
		e.StaticFS("/curriculum/modules", h.raw)
	}
}

// Home renders the wizard. The form round-trips its fields plus step and action,
// so the wizard works without the websocket script. Unknown actions leave the state as is.
func (h *PagesHandler) Home(c echo.Context) error {
	state := wizardFromQuery(c)
	if action := c.QueryParam("action"); action != "" {
		next, err := risk.Reduce(state, models.WizardAction(action), "", "")
		if err != nil {
			h.logger.Debug("wizard action ignored", xlogger.String("action", action), xlogger.Error(err))
		}
		state = next
	}

	steps := make([]stepView, 0, 3)
	for s := models.StepMarketData; s <= models.StepBlueprint; s++ {
		steps = append(steps, stepView{Step: s, Active: s == state.Step, Complete: s < state.Step})
	}

	return c.Render(http.StatusOK, PageHome, homePage{
		pageMeta:    pageMeta{Title: "Diagnostic Tool", Nav: navTool},
		State:       state,
		Steps:       steps,
		Progress:    risk.Progress(state.Step),
		Report:      h.risk.Evaluate(state.Fields),
		EstimatePct: risk.Format(util.ParseFloatOrZero(state.Fields.Estimate)*100, 0),
	})
}

func wizardFromQuery(c echo.Context) models.WizardState {
	s := risk.NewWizard()
	s.Step = risk.ClampStep(xhttp.QueryIntDefault(c, "step", int(models.StepMarketData)))
	q := c.QueryParams()
	if q.Has("yes") {
		s.Fields.YesPrice = q.Get("yes")
	}
	if q.Has("no") {
		s.Fields.NoPrice = q.Get("no")
	}
	if q.Has("estimate") {
		s.Fields.Estimate = q.Get("estimate")
	}
	if q.Has("bankroll") {
		s.Fields.Bankroll = q.Get("bankroll")
	}
	return s
}

// Academy lists the course. ?open=<id> picks the expanded module, 1 by default and 0 for none.
func (h *PagesHandler) Academy(c echo.Context) error {
	return c.Render(http.StatusOK, PageAcademy, academyPage{
		pageMeta: pageMeta{Title: "Quant Academy", Nav: navAcademy},
		Modules:  h.lessons.Catalog(),
		Expanded: xhttp.QueryIntDefault(c, "open", 1),
	})
}

// Module renders one lesson. A non-numeric id reads as 1; an id outside the
// catalog shows the fallback document with 404.
func (h *PagesHandler) Module(c echo.Context) error {
	id := xhttp.ParamIntDefault(c, "moduleId", 1)
	view := domrepo.NormalizeView(c.QueryParam("view"))
	status := http.StatusOK

	lesson, err := h.lessons.Load(c.Request().Context(), id)
	if err != nil {
		if xhttp.StatusOf(err) != http.StatusNotFound {
			h.logger.Error("lesson page failed", xlogger.Int("module", id), xlogger.Error(err))
			return err
		}
		if lesson, err = h.lessons.Fallback(id); err != nil {
			return err
		}
		status = http.StatusNotFound
	}

	tabs := []viewTab{
		{View: domrepo.ViewFull, Label: "Full Module"},
		{View: domrepo.ViewScript, Label: "Video Script"},
	}
	if lesson.Guide != "" {
		tabs = append(tabs, viewTab{View: domrepo.ViewGuide, Label: "Text Guide"})
	}
	for i := range tabs {
		tabs[i].Active = tabs[i].View == view
	}

	title := lesson.Module.Title
	if title == "" {
		title = "Module"
	}
	return c.Render(status, PageModule, modulePage{
		pageMeta: pageMeta{Title: title, Nav: navAcademy},
		Lesson:   lesson,
		Body:     usecase.SelectView(lesson, view),
		Tabs:     tabs,
		View:     view,
	})
}

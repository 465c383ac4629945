package api

import (
	"github.com/labstack/echo/v4"

	"ProbabilityPit/internal/domain/models"
	domrepo "ProbabilityPit/internal/domain/repository"
	"ProbabilityPit/internal/usecase"
	xhttp "ProbabilityPit/pkg/http"
	xlogger "ProbabilityPit/pkg/logger"
)

// CurriculumEchoHandler exposes the module catalog and rendered lessons as JSON.
type CurriculumEchoHandler struct {
	logger  *xlogger.Logger
	lessons *usecase.LessonUsecase
}

func NewCurriculumEchoHandler(logger *xlogger.Logger, lessons *usecase.LessonUsecase) *CurriculumEchoHandler {
	return &CurriculumEchoHandler{logger: logger, lessons: lessons}
}

func (h *CurriculumEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/modules")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

func (h *CurriculumEchoHandler) List(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=300")
	return xhttp.SuccessResponse(c, h.lessons.Catalog())
}

type lessonResponse struct {
	models.Lesson
	View string `json:"view"`
	Body string `json:"body"`
}

// Get returns one lesson with the requested view rendered into Body.
func (h *CurriculumEchoHandler) Get(c echo.Context) error {
	req := &models.ModuleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	lesson, err := h.lessons.Load(c.Request().Context(), req.ID)
	if err != nil {
		h.logger.Debug("lesson load error", xlogger.Int("module", req.ID), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	view := domrepo.NormalizeView(req.View)
	if !lesson.Fallback {
		c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=60")
	}
	return xhttp.SuccessResponse(c, lessonResponse{
		Lesson: lesson,
		View:   string(view),
		Body:   usecase.SelectView(lesson, view),
	})
}

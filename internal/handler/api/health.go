package api

import (
	"github.com/labstack/echo/v4"

	domrepo "ProbabilityPit/internal/domain/repository"
	xhttp "ProbabilityPit/pkg/http"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	source domrepo.ContentSource
}

func NewHealthHandler(source domrepo.ContentSource) *HealthHandler {
	return &HealthHandler{source: source}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
}

func (h *HealthHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"status":         "ok",
		"content_source": h.source.Name(),
	})
}

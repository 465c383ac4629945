package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ProbabilityPit/internal/domain/models"
	svcmetrics "ProbabilityPit/internal/service/metrics"
	"ProbabilityPit/internal/service/ratelimit"
	"ProbabilityPit/internal/services/risk"
	"ProbabilityPit/internal/usecase"
	xhttp "ProbabilityPit/pkg/http"
	xlogger "ProbabilityPit/pkg/logger"
)

// RiskEchoHandler serves the stateless calculator endpoint.
type RiskEchoHandler struct {
	logger  *xlogger.Logger
	risk    *usecase.RiskUsecase
	limiter *ratelimit.Limiter
}

func NewRiskEchoHandler(logger *xlogger.Logger, risk *usecase.RiskUsecase, limiter *ratelimit.Limiter) *RiskEchoHandler {
	return &RiskEchoHandler{logger: logger, risk: risk, limiter: limiter}
}

func (h *RiskEchoHandler) RegisterRoutes(e *echo.Echo) {
	var mw []echo.MiddlewareFunc
	if h.limiter != nil {
		mw = append(mw, ratelimit.Middleware(h.limiter))
	}
	g := e.Group("/api", mw...)
	g.GET("/risk", h.Calculate)
	g.POST("/risk", h.Calculate)
}

// Calculate evaluates yes, no, estimate and bankroll from the query, a form or a JSON body.
func (h *RiskEchoHandler) Calculate(c echo.Context) error {
	const endpoint = "risk"
	start := time.Now()
	defer func() { svcmetrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.RiskRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		svcmetrics.APIErrors.WithLabelValues(endpoint, "bad_request").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	rep := h.risk.Evaluate(req.Fields())
	if !risk.Finite(rep) {
		svcmetrics.APIErrors.WithLabelValues(endpoint, "non_finite").Inc()
		h.logger.Debug("risk result not representable",
			xlogger.Any("input", rep.Input),
		)
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("inputs produce a non-finite result"))
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.DataResponse(c, http.StatusOK, rep)
}

package ratelimit

import (
	"github.com/labstack/echo/v4"

	svcmetrics "ProbabilityPit/internal/service/metrics"
	xhttp "ProbabilityPit/pkg/http"
)

// Middleware rejects requests over the per-IP budget with the API error envelope.
func Middleware(l *Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				svcmetrics.RateLimited.WithLabelValues(c.Path()).Inc()
				return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded, slow down"))
			}
			return next(c)
		}
	}
}

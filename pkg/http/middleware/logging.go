package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "ProbabilityPit/pkg/logger"
)

// RequestLogging logs one line per request. 5xx responses are logged as errors.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the error response so the logged status is final
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("route", c.Path()),
				applogger.String("remote_ip", c.RealIP()),
				applogger.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
				applogger.Int("status", res.Status),
				applogger.Duration("latency_ms", time.Since(start)),
			}

			switch {
			case res.Status >= 500:
				if err != nil {
					fields = append(fields, applogger.Error(err))
				}
				l.Error("http request", fields...)
			case res.Status >= 400:
				l.Warn("http request", fields...)
			default:
				l.Debug("http request", fields...)
			}
			return nil
		}
	}
}

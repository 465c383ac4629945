package http

import "github.com/labstack/echo/v4"

// Handler defines HTTP route registration interface.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// Handlers lets several route groups be mounted as one Handler.
type Handlers []Handler

// RegisterRoutes registers every handler in order.
func (hs Handlers) RegisterRoutes(e *echo.Echo) {
	for _, h := range hs {
		h.RegisterRoutes(e)
	}
}

package http

import (
	"github.com/labstack/echo/v4"

	xutil "ProbabilityPit/pkg/util"
)

// ParamIntDefault reads a path parameter as int, falling back to def.
func ParamIntDefault(c echo.Context, name string, def int) int {
	return xutil.ParseIntDefault(c.Param(name), def)
}

// QueryIntDefault reads a query parameter as int, falling back to def.
func QueryIntDefault(c echo.Context, name string, def int) int {
	return xutil.ParseIntDefault(c.QueryParam(name), def)
}

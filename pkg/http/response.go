package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DataResponse writes the API envelope with the given HTTP status.
func DataResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
}

// SuccessResponse writes success response.
func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

// BadRequestResponse writes the validation errors of a rejected request.
func BadRequestResponse(c echo.Context, errs ValidationErrors) error {
	return c.JSON(http.StatusBadRequest, APIResponse400Err{
		Status:  http.StatusBadRequest,
		Message: http.StatusText(http.StatusBadRequest),
		Data:    errs,
	})
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, APIResponse500Err{
		Status:  http.StatusInternalServerError,
		Message: http.StatusText(http.StatusInternalServerError),
		Data:    "Something went wrong",
	})
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return InternalServerErrorResponse(c)
	}
	return DataResponse(c, StatusOf(appErr), []*AppError{appErr})
}

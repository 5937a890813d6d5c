package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DataResponse writes the API envelope with statusCode as both the HTTP status and the body status.
func DataResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
}

// MessageResponse is DataResponse with a custom message.
func MessageResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: message,
		Data:    data,
	})
}

// SuccessResponse writes success response.
func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

// BadRequestResponse writes bad request error.
func BadRequestResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusBadRequest, data)
}

// ValidationErrorResponse writes a 400 naming every missing required field.
func ValidationErrorResponse(c echo.Context, errs []ValidationError) error {
	if missing := MissingFields(errs); len(missing) > 0 {
		return MessageResponse(c, http.StatusBadRequest, "missing required fields: "+joinFields(missing), errs)
	}
	return BadRequestResponse(c, errs)
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return DataResponse(c, http.StatusInternalServerError, "Something went wrong")
}

// AppErrorResponse writes application error response.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			return MessageResponse(c, appErr.Status, appErr.Message, nil)
		}
		return DataResponse(c, appErr.Status, []*AppError{appErr})
	}
	return InternalServerErrorResponse(c)
}

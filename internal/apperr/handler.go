package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
	Stage string `json:"stage,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// GlobalErrorHandler maps handler errors onto status codes and ErrorResponse
// bodies. Errors it does not recognize are logged and reported as 500.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := toResponse(err)
		if status == http.StatusInternalServerError {
			slog.ErrorContext(c.Request().Context(), "Unhandled error",
				"error", err,
				"method", c.Request().Method,
				"uri", c.Request().RequestURI)
		}
		if err := c.JSON(status, body); err != nil {
			slog.Warn("Failed to write error response", "error", err)
		}
	}
}

func toResponse(err error) (int, ErrorResponse) {
	var (
		ve *ValidationError
		ee *ExpressionError
		nf *NotFoundError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrorResponse{Error: ve.Message, Title: "validation error"}
	case errors.As(err, &ee):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error: ee.Failure.Message,
			Title: "expression error",
			Stage: string(ee.Failure.Stage),
			Kind:  string(ee.Failure.Kind),
		}
	case errors.As(err, &nf):
		return http.StatusNotFound, ErrorResponse{Error: nf.Error()}
	case errors.As(err, &he):
		return he.Code, ErrorResponse{Error: fmt.Sprintf("%v", he.Message)}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}
}

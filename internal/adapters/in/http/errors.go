package http

import (
	"errors"
	"log/slog"
	"net/http"

	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps the error taxonomy onto HTTP statuses.
func statusOf(err error) (int, Error) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, Error{Code: httpErr.Code, Message: message}
	}

	status := http.StatusInternalServerError
	switch {
	case errs.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		reason, _ := errs.ConflictReasonOf(err)
		return http.StatusConflict, Error{Code: http.StatusConflict, Message: err.Error(), Reason: string(reason)}
	case errors.Is(err, errs.ErrPersistence):
		return http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "storage is unavailable, try again",
		}
	}

	if status == http.StatusInternalServerError {
		return status, Error{Code: status, Message: http.StatusText(status)}
	}
	return status, Error{Code: status, Message: err.Error()}
}

// NewErrorHandler writes every handler error as an Error body. Server-side failures
// are logged with their cause, which never reaches the client.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := statusOf(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}

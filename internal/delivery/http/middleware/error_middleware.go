// Package middleware contains echo middleware specific to the JSON API.
package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "productsmanager/internal/delivery/context"
	"productsmanager/internal/delivery/http/response"
	domainerrors "productsmanager/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	if appErr, ok := domainerrors.AsAppError(err); ok {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.String("path", c.Request().URL.Path), slog.Any("error", err))
		}
		_ = response.FromAppError(c, appErr)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	logger.Error("Unhandled error",
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.Any("error", err),
	)

	// Internal details stay in the log.
	_ = response.Error(c, http.StatusInternalServerError, domainerrors.ErrInternalError.ErrorCode(), domainerrors.ErrInternalError.Message(), "")
}

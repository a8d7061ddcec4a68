// Package middleware holds echo middleware shared by HTTP front ends.
package middleware

import (
	"log/slog"

	deliverycontext "productsmanager/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware tags each request with an ID and a logger scoped to it.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process reuses a client-supplied X-Request-Id or generates one.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = deliverycontext.NewRequestID()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		ctx, _ := deliverycontext.Scoped(c.Request().Context(), m.logger, requestID,
			slog.String("route", c.Path()),
		)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

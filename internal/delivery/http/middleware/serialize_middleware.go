package middleware

import (
	"sync"

	"github.com/labstack/echo/v4"
)

// Serialize runs one handler at a time. The session and services behind the
// API have no locking of their own.
func Serialize() echo.MiddlewareFunc {
	var mu sync.Mutex

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			mu.Lock()
			defer mu.Unlock()

			return next(c)
		}
	}
}

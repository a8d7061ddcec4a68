// Package handler contains the HTTP handlers for the JSON API.
package handler

import (
	"net/http"

	"productsmanager/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// VersionRoute reports build information about the running service.
func VersionRoute() func(c echo.Context) error {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, GetVersionInfo())
	}
}

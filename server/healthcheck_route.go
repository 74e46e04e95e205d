package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wxmap/stations-live/store"
)

// HealthCheckRoute reports readiness. The process is not ready until
// the startup station load has resolved; an empty directory after a
// failed load is still ready, the map just renders without markers.
func HealthCheckRoute(directory *store.Directory) func(c echo.Context) error {
	return func(c echo.Context) error {
		if !directory.IsReady() {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "loading",
			})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"stations": directory.Len(),
		})
	}
}

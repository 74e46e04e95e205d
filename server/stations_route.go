package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wxmap/stations-live/metrics"
	"github.com/wxmap/stations-live/store"
)

// StationsData is the station listing payload.
type StationsData struct {
	Stations []store.Station `json:"stations"`
	Count    int             `json:"count"`
}

// StationsRoute serves the station collection as JSON. The directory
// keeps stations sorted by identifier, so the payload hashes stably.
func StationsRoute(directory *store.Directory) func(c echo.Context) error {
	return func(c echo.Context) error {
		stations := directory.Stations()
		data := StationsData{Stations: stations, Count: len(stations)}

		etag, err := StableJSONHash(data)
		if err != nil {
			return c.String(http.StatusInternalServerError, "Failed to generate ETag")
		}

		// The collection is loaded once per session, so clients can
		// cache it for a while.
		c.Response().Header().Set("Content-Type", "application/json; charset=UTF-8")
		c.Response().Header().Set("Cache-Control", "public, max-age=300")
		c.Response().Header().Set("ETag", etag)
		c.Response().Header().Set("X-Content-Type-Options", "nosniff")

		if ifNoneMatch := c.Request().Header.Get("If-None-Match"); ifNoneMatch != "" {
			if ifNoneMatch == etag {
				metrics.CacheHits.WithLabelValues("/stations.json").Inc()
				return c.NoContent(http.StatusNotModified)
			}
		}

		return c.JSON(http.StatusOK, data)
	}
}

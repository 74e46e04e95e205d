package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wxmap/stations-live/metrics"
	"github.com/wxmap/stations-live/nws"
	"github.com/wxmap/stations-live/screen"
)

// ObservationRoute serves the latest observation for a single station
// as a plain JSON resource, for clients that do not hold a session.
func ObservationRoute(fetcher screen.ObservationFetcher) func(c echo.Context) error {
	return func(c echo.Context) error {
		stationID := c.Param("id")

		start := time.Now()
		obs, err := fetcher.FetchLatestObservation(c.Request().Context(), stationID)
		metrics.ObservationFetchDuration.Observe(time.Since(start).Seconds())

		if errors.Is(err, nws.ErrObservationNotAvailable) {
			metrics.ObservationFetchTotal.WithLabelValues("not_available").Inc()
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "No current observation available",
			})
		}
		if err != nil {
			metrics.ObservationFetchTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusBadGateway, map[string]string{
				"error": "Could not load current conditions",
			})
		}
		metrics.ObservationFetchTotal.WithLabelValues("success").Inc()

		// Observations update roughly hourly upstream; a short client
		// cache avoids hammering on repeated taps.
		c.Response().Header().Set("Cache-Control", "public, max-age=60")
		return c.JSON(http.StatusOK, obs)
	}
}

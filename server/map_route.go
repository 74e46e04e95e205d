package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wxmap/stations-live/metrics"
	"github.com/wxmap/stations-live/screen"
	"github.com/wxmap/stations-live/store"
)

// MapRoute serves the interactive station map page.
func MapRoute(directory *store.Directory, cfg screen.Config) func(c echo.Context) error {
	return func(c echo.Context) error {
		metrics.PageViewsTotal.Inc()

		// no-cache forces revalidation while still allowing a CDN to
		// serve cached content on an ETag match
		c.Response().Header().Set("Cache-Control", "public, no-cache, must-revalidate")

		if etag := directory.ETag(); etag != "" {
			c.Response().Header().Set("ETag", etag)
			if ifNoneMatch := c.Request().Header.Get("If-None-Match"); ifNoneMatch == etag {
				metrics.CacheHits.WithLabelValues("/").Inc()
				return c.NoContent(http.StatusNotModified)
			}
		}

		if c.Request().Method == http.MethodHead {
			return c.NoContent(http.StatusOK)
		}

		data := map[string]interface{}{
			"Title":            "Stations Live",
			"StationCount":     directory.Len(),
			"CalloutMinHeight": cfg.CalloutMinHeight,
			"Fields":           cfg.Fields,
			"AssetVersion":     GetVersionString(),
		}
		return c.Render(http.StatusOK, "map.html.tmpl", data)
	}
}

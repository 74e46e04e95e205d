package server

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wxmap/stations-live/metrics"
)

// RequestCounter and ErrorCounter, when set by main, receive atomic
// per-request increments for the terminal HUD.
var (
	RequestCounter *int64
	ErrorCounter   *int64
)

// MetricsMiddleware records request counts, latencies, and in-flight
// gauge for Prometheus.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			if RequestCounter != nil {
				atomic.AddInt64(RequestCounter, 1)
			}

			start := time.Now()
			err := next(c)
			duration := time.Since(start).Seconds()

			method := c.Request().Method
			// The route pattern keeps cardinality bounded; station ids
			// stay out of the labels.
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			statusStr := strconv.Itoa(status)

			metrics.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)
			metrics.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()

			if ErrorCounter != nil && (err != nil || status >= 500) {
				atomic.AddInt64(ErrorCounter, 1)
			}

			return err
		}
	}
}

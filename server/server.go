package server

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wxmap/stations-live/logger"
	"github.com/wxmap/stations-live/screen"
	"github.com/wxmap/stations-live/store"
)

// TemplateRenderer adapts html/template for Echo
type TemplateRenderer struct {
	templates *template.Template
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

// ServerConfig bundles the collaborators the server needs
type ServerConfig struct {
	Directory     *store.Directory
	Fetcher       screen.ObservationFetcher
	Screen        screen.Config
	StaticFS      fs.FS
	TemplateFS    fs.FS
	DevMode       bool
	SentryEnabled bool
}

// Start builds the Echo application with all routes and middleware
// configured. The caller owns starting and shutting it down.
func Start(cfg ServerConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(MetricsMiddleware())
	e.Use(ErrorLoggerMiddleware())
	if cfg.DevMode {
		e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogStatus:  true,
			LogMethod:  true,
			LogURI:     true,
			LogLatency: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				logger.HTTPLogger().Info("request",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"duration", v.Latency.Round(time.Millisecond),
				)
				return nil
			},
		}))
	}
	if cfg.SentryEnabled {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}

	tmpl, err := template.New("").ParseFS(cfg.TemplateFS, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	e.Renderer = &TemplateRenderer{templates: tmpl}

	// Routes
	e.GET("/", MapRoute(cfg.Directory, cfg.Screen))
	e.GET("/stations.json", StationsRoute(cfg.Directory))
	e.GET("/observations/:id", ObservationRoute(cfg.Fetcher))
	e.GET("/session", SessionRoute(cfg.Directory, cfg.Fetcher, cfg.Screen))
	e.GET("/healthcheck", HealthCheckRoute(cfg.Directory))
	e.GET("/version", VersionRoute())
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Static files
	e.StaticFS("/s", cfg.StaticFS)

	return e, nil
}

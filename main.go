// Package main is the entry point for the Stations Live weather map server
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	appfs "github.com/wxmap/stations-live/fs"
	"github.com/wxmap/stations-live/logger"
	"github.com/wxmap/stations-live/metrics"
	"github.com/wxmap/stations-live/nws"
	"github.com/wxmap/stations-live/screen"
	"github.com/wxmap/stations-live/server"
	"github.com/wxmap/stations-live/store"
	"github.com/wxmap/stations-live/ui"
)

type Config struct {
	Port         string
	BaseURL      string
	UserAgent    string
	StationLimit int
	AllStations  bool
	DevMode      bool
	LogDir       string
}

func loadConfig() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	stationLimit := 0
	if s := os.Getenv("STATION_LIMIT"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			stationLimit = n
		}
	}

	// STATION_FILTER=all keeps every station the API returns; the
	// default keeps contiguous-US METAR stations only.
	allStations := os.Getenv("STATION_FILTER") == "all"

	devMode := os.Getenv("DEV_MODE") == "1" || os.Getenv("DEV_MODE") == "true"

	return Config{
		Port:         port,
		BaseURL:      os.Getenv("NWS_BASE_URL"),
		UserAgent:    os.Getenv("NWS_USER_AGENT"),
		StationLimit: stationLimit,
		AllStations:  allStations,
		DevMode:      devMode,
		LogDir:       os.Getenv("LOG_DIR"),
	}
}

// screenConfig picks the screen variant and applies overrides.
func screenConfig(config Config) screen.Config {
	cfg := screen.ContiguousUSConfig()
	if config.AllStations {
		cfg = screen.AllStationsConfig()
	}
	if config.StationLimit > 0 {
		cfg.StationLimit = config.StationLimit
	}
	return cfg
}

// getBaseDir returns the directory containing the binary or the working
// directory in dev mode
func getBaseDir() (string, error) {
	if os.Getenv("DEV_MODE") == "1" || os.Getenv("DEV_MODE") == "true" {
		return os.Getwd()
	}

	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exeDir := filepath.Dir(exe)

	// Container deployments ship templates next to the binary.
	if _, err := os.Stat(filepath.Join(exeDir, "templates")); err == nil {
		return exeDir, nil
	}

	return os.Getwd()
}

// loadFilesystem serves files from disk so dev mode picks up edits
// without a rebuild
func loadFilesystem(subdir string) (fs.FS, error) {
	baseDir, err := getBaseDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get base directory: %w", err)
	}

	return os.DirFS(filepath.Join(baseDir, subdir)), nil
}

// loadStations performs the single startup fetch of station metadata.
// On failure the directory is published empty: the map serves without
// markers rather than blocking the process.
func loadStations(ctx context.Context, client *nws.Client, directory *store.Directory, cfg screen.Config) {
	logger.Info("Loading station directory...")
	start := time.Now()

	stations, err := client.FetchStations(ctx, cfg.StationLimit)
	if err != nil {
		logger.Error(err, "failed to load stations: %v", err)
		metrics.StationLoadTotal.WithLabelValues("error").Inc()
		_ = directory.Publish(nil)
		metrics.DirectoryReady.Set(1)
		return
	}

	kept := store.FilterStations(stations, cfg.StationFilter)
	if err := directory.Publish(kept); err != nil {
		logger.Error(err, "failed to publish stations: %v", err)
		metrics.StationLoadTotal.WithLabelValues("error").Inc()
		_ = directory.Publish(nil)
		metrics.DirectoryReady.Set(1)
		return
	}

	metrics.StationLoadTotal.WithLabelValues("success").Inc()
	metrics.StationsTotal.Set(float64(directory.Len()))
	metrics.DirectoryReady.Set(1)
	logger.Success("Loaded %d stations (%d kept) in %s",
		len(stations), len(kept), time.Since(start).Round(time.Millisecond))
}

// hudCounters are the atomic counters the middleware and controllers
// feed and the stats ticker reads.
type hudCounters struct {
	requests          int64
	errors            int64
	sessionsTotal     int64
	sessionsActive    int64
	observations      int64
	observationErrors int64
}

// keepStatsUpdated refreshes the HUD and the memory gauge once a second.
func keepStatsUpdated(ctx context.Context, directory *store.Directory, counters *hudCounters, loadStart time.Time) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var lastRequests int64
	lastCheck := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.RecordMemoryUsage()

			requests := atomic.LoadInt64(&counters.requests)
			elapsed := time.Since(lastCheck).Seconds()
			reqPerSec := 0.0
			if elapsed > 0 {
				reqPerSec = float64(requests-lastRequests) / elapsed
			}
			lastRequests = requests
			lastCheck = time.Now()

			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			ui.UpdateStats(ui.Stats{
				Stations:          directory.Len(),
				DirectoryReady:    directory.IsReady(),
				LoadTime:          loadStart,
				SessionsActive:    int(atomic.LoadInt64(&counters.sessionsActive)),
				SessionsTotal:     int(atomic.LoadInt64(&counters.sessionsTotal)),
				Observations:      int(atomic.LoadInt64(&counters.observations)),
				ObservationErrors: int(atomic.LoadInt64(&counters.observationErrors)),
				RequestsTotal:     int(requests),
				RequestsPerSec:    reqPerSec,
				MemoryUsageMB:     float64(m.Alloc) / 1024 / 1024,
				GoroutineCount:    runtime.NumGoroutine(),
			})
		}
	}
}

// initSentry initializes Sentry if a DSN is provided and not in dev
// mode. Returns true if Sentry was initialized.
func initSentry(devMode bool) bool {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" || devMode {
		return false
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      "production",
		Release:          server.Version,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}

	logger.SetSentryCaptureException(func(err error) interface{} {
		return sentry.CaptureException(err)
	})

	return true
}

func main() {
	// A .env file is optional; the environment wins over it.
	_ = godotenv.Load()

	config := loadConfig()
	sentryEnabled := initSentry(config.DevMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := server.InitErrorLogger(config.LogDir); err != nil {
		logger.Warn("Error log disabled: %v", err)
	}

	staticFS, err := loadFilesystem("static")
	if err != nil {
		logger.Fatal(err, "failed to load static files: %v", err)
	}
	tmplFS, err := loadFilesystem("templates")
	if err != nil {
		logger.Fatal(err, "failed to load templates: %v", err)
	}

	// Initialize TUI with HUD (before any logging)
	hasUI := ui.Initialize(server.Version, server.BuildTime, config.Port)
	if hasUI {
		logger.SetUIMode(true)
		logger.Log = ui.AddLog
	} else {
		logger.PrintBanner(server.Version, server.BuildTime)
	}

	screenCfg := screenConfig(config)
	logger.ServerInfo{
		Port:         config.Port,
		StationLimit: screenCfg.StationLimit,
		Filtered:     !config.AllStations,
	}.Print()

	if config.DevMode {
		logger.Info("🔥 DEV MODE: files served from disk")
		appfs.Print("static", staticFS)
		appfs.Print("templates", tmplFS)
	}

	counters := &hudCounters{}
	server.RequestCounter = &counters.requests
	server.ErrorCounter = &counters.errors
	server.SessionCounter = &counters.sessionsTotal
	server.ActiveSessionCounter = &counters.sessionsActive
	screen.ObservationCounter = &counters.observations
	screen.ObservationErrorCounter = &counters.observationErrors

	directory := store.NewDirectory()
	client := nws.NewClient(config.BaseURL, config.UserAgent)

	loadStart := time.Now()
	go loadStations(ctx, client, directory, screenCfg)
	go keepStatsUpdated(ctx, directory, counters, loadStart)

	app, err := server.Start(server.ServerConfig{
		Directory:     directory,
		Fetcher:       client,
		Screen:        screenCfg,
		StaticFS:      staticFS,
		TemplateFS:    tmplFS,
		DevMode:       config.DevMode,
		SentryEnabled: sentryEnabled,
	})
	if err != nil {
		logger.Fatal(err)
	}

	logger.Success("Server listening on http://localhost:%s", config.Port)
	if hasUI {
		logger.Info("Press Ctrl+C or 'q' to stop")
		ui.SetReady()
	} else {
		logger.Info("Press Ctrl+C to stop")
	}

	go func() {
		if err := app.Start(":" + config.Port); err != nil && err != http.ErrServerClosed {
			logger.Error(err, "Server error: %v", err)
			cancel()
		}
	}()

	select {
	case <-sigChan:
	case <-ctx.Done():
	}
	cancel()

	logger.Shutdown()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "error during shutdown: %v", err)
	}
	ui.Shutdown()
	server.CloseErrorLogger()
	time.Sleep(100 * time.Millisecond)

	sentry.Flush(2 * time.Second)

	logger.Success("Goodbye!")
	fmt.Println()
}

package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// ErrorLogEntry is one line of the JSONL error log.
type ErrorLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Duration  string    `json:"duration"`
	Error     string    `json:"error,omitempty"`
}

var (
	errorLogFile    *os.File
	errorLogMutex   sync.Mutex
	errorLogPath    string
	errorLogEncoder *json.Encoder
)

// InitErrorLogger opens the JSONL error log in logDir, falling back to
// the OS temp dir when logDir is empty.
func InitErrorLogger(logDir string) error {
	errorLogMutex.Lock()
	defer errorLogMutex.Unlock()

	if logDir == "" {
		logDir = os.TempDir()
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	errorLogPath = filepath.Join(logDir, "stations-live-errors.jsonl")

	file, err := os.OpenFile(errorLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open error log file: %w", err)
	}

	errorLogFile = file
	errorLogEncoder = json.NewEncoder(file)
	return nil
}

// LogError appends one entry to the error log. No-op when the logger
// was never initialized.
func LogError(status int, method, path, url, ip, userAgent string, duration time.Duration, err error) {
	errorLogMutex.Lock()
	defer errorLogMutex.Unlock()

	if errorLogEncoder == nil {
		return
	}

	entry := ErrorLogEntry{
		Timestamp: time.Now(),
		Status:    status,
		Method:    method,
		Path:      path,
		URL:       url,
		IP:        ip,
		UserAgent: userAgent,
		Duration:  duration.String(),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	_ = errorLogEncoder.Encode(entry)
	_ = errorLogFile.Sync()
}

// GetErrorLogPath returns the path of the open error log file.
func GetErrorLogPath() string {
	errorLogMutex.Lock()
	defer errorLogMutex.Unlock()
	return errorLogPath
}

// CloseErrorLogger closes the error log file.
func CloseErrorLogger() error {
	errorLogMutex.Lock()
	defer errorLogMutex.Unlock()

	if errorLogFile != nil {
		err := errorLogFile.Close()
		errorLogFile = nil
		errorLogEncoder = nil
		return err
	}
	return nil
}

// ErrorLoggerMiddleware records failed requests (handler errors and 5xx
// responses) to the JSONL error log.
func ErrorLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = 500
				}
			}

			if err != nil || status >= 500 {
				LogError(
					status,
					c.Request().Method,
					c.Path(),
					c.Request().URL.String(),
					c.RealIP(),
					c.Request().UserAgent(),
					time.Since(start),
					err,
				)
			}
			return err
		}
	}
}

package server

import (
	"fmt"
	"runtime"
	"time"
)

// Build information, set at compile time via ldflags
var (
	// Version is the git commit hash
	Version = "dev"
	// BuildTime is when the binary was built
	BuildTime = "unknown"
	// GoVersion is the version of Go used to build
	GoVersion = runtime.Version()
)

var startTime = time.Now()

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string    `json:"version"`
	BuildTime string    `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Uptime    string    `json:"uptime"`
	StartTime time.Time `json:"-"`
}

// GetVersionInfo returns the current build and uptime information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		Uptime:    time.Since(startTime).String(),
		StartTime: startTime,
	}
}

// GetVersionString returns a short version token used for static asset
// cache busting. In dev it changes on every restart.
func GetVersionString() string {
	if Version == "dev" {
		return fmt.Sprintf("dev-%d-%s", startTime.Unix(), GoVersion)
	}
	return Version
}

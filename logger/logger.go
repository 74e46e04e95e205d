// Package logger provides structured logging with styled output
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var useUI bool

// SetUIMode enables UI mode (logs go to the TUI instead of stdout)
func SetUIMode(enabled bool) {
	useUI = enabled
}

var (
	// Box drawing characters for the startup banner
	horizontalLine = "─"
	verticalLine   = "│"
	topLeft        = "┌"
	topRight       = "┐"
	bottomLeft     = "└"
	bottomRight    = "┘"
	leftT          = "├"
	rightT         = "┤"

	skyBlue   = lipgloss.Color("#4FC3F7")
	charmCyan = lipgloss.Color("#42D9C8")
	green     = lipgloss.Color("#73F59F")
	yellow    = lipgloss.Color("#FFE66D")
	red       = lipgloss.Color("#FF6B9D")
	purple    = lipgloss.Color("#B794F6")
	gray      = lipgloss.Color("#626262")
	white     = lipgloss.Color("#ECEFF4")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(skyBlue).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(charmCyan)

	infoStyle = lipgloss.NewStyle().
			Foreground(white)

	warnStyle = lipgloss.NewStyle().
			Foreground(yellow)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(red)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(green)

	mutedStyle = lipgloss.NewStyle().
			Foreground(gray)

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(purple)

	valueStyle = lipgloss.NewStyle().
			Foreground(charmCyan)

	borderStyle = lipgloss.NewStyle().
			Foreground(skyBlue)

	// Structured logger for HTTP requests
	httpLogger *log.Logger
)

func init() {
	httpLogger = log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "🌐 ",
	})
	httpLogger.SetLevel(log.InfoLevel)
	styles := log.DefaultStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		Foreground(gray)
	styles.Keys["method"] = lipgloss.NewStyle().
		Foreground(charmCyan).
		Bold(true)
	styles.Values["method"] = lipgloss.NewStyle().
		Foreground(charmCyan)
	httpLogger.SetStyles(styles)
}

// PrintBanner displays the startup banner
func PrintBanner(version, buildTime string) {
	width := 62

	topBorder := borderStyle.Render(
		topLeft + strings.Repeat(horizontalLine, width-2) + topRight,
	)
	fmt.Println(topBorder)

	title := "🌤  Stations Live Weather Map"
	titleRendered := titleStyle.Render(title)
	titleWidth := lipgloss.Width(title)
	leftPad := (width - titleWidth - 2) / 2
	rightPad := width - titleWidth - leftPad - 2

	fmt.Print(borderStyle.Render(verticalLine))
	fmt.Print(strings.Repeat(" ", leftPad))
	fmt.Print(titleRendered)
	fmt.Print(strings.Repeat(" ", rightPad))
	fmt.Println(borderStyle.Render(verticalLine))

	fmt.Println(borderStyle.Render(leftT + strings.Repeat(horizontalLine, width-2) + rightT))

	printInfoLine("Version", version, width)
	if buildTime != "" {
		printInfoLine("Built", buildTime, width)
	}
	printInfoLine("Data", "api.weather.gov", width)

	fmt.Println(borderStyle.Render(bottomLeft + strings.Repeat(horizontalLine, width-2) + bottomRight))
	fmt.Println()
}

func printInfoLine(key, value string, width int) {
	keyRendered := keyStyle.Render(key + ":")
	valueRendered := valueStyle.Render(value)
	// Account for ANSI codes in width calculation
	lineWidth := 2 + lipgloss.Width(key+":") + 1 + lipgloss.Width(value)
	padding := width - lineWidth - 2
	if padding < 0 {
		padding = 0
	}
	fmt.Print(borderStyle.Render(verticalLine))
	fmt.Print("  ")
	fmt.Print(keyRendered)
	fmt.Print(" ")
	fmt.Print(valueRendered)
	fmt.Print(strings.Repeat(" ", padding))
	fmt.Println(borderStyle.Render(verticalLine))
}

// Section prints a section header with a decorative divider
func Section(title string) {
	fmt.Println()
	divider := mutedStyle.Render("━━━━")
	header := headerStyle.Render("▸ " + title)
	fmt.Printf("%s %s\n", divider, header)
}

// Log is the interface for sending logs (set by main when the TUI is active)
var Log func(string)

func logOrPrint(msg string) {
	if Log != nil && useUI {
		Log(msg)
	} else {
		fmt.Println(msg)
	}
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logOrPrint(infoStyle.Render("  " + msg))
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logOrPrint(successStyle.Render("  ✓ " + msg))
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logOrPrint(warnStyle.Render("  ⚠ " + msg))
}

// Error logs an error message. If the first argument is an error, it will be sent to Sentry.
// Usage:
//
//	logger.Error("something went wrong")
//	logger.Error(err)  // logs error and sends to Sentry
//	logger.Error(err, "failed to load: %v", err)  // logs formatted message and sends to Sentry
func Error(args ...interface{}) {
	err, msg := splitErrorArgs(args)

	logOrPrint(errorStyle.Render("  ✗ " + msg))

	if err != nil && captureException != nil {
		captureException(err)
	}
}

// Fatal logs an error message and exits the program. If an error is
// provided, it will be sent to Sentry first.
func Fatal(args ...interface{}) {
	err, msg := splitErrorArgs(args)

	logOrPrint(errorStyle.Render("  ✗ " + msg))

	if err != nil && captureException != nil {
		captureException(err)
	}

	os.Exit(1)
}

// splitErrorArgs supports the flexible Error/Fatal call shapes: a bare
// error, an error plus format string, or just a format string.
func splitErrorArgs(args []interface{}) (error, string) {
	var err error
	var msg string

	if len(args) > 0 {
		if e, ok := args[0].(error); ok {
			err = e
			if len(args) > 1 {
				if format, ok := args[1].(string); ok {
					msg = fmt.Sprintf(format, args[2:]...)
				} else {
					msg = fmt.Sprintf("%v", err)
				}
			} else {
				msg = fmt.Sprintf("%v", err)
			}
		} else {
			if format, ok := args[0].(string); ok && len(args) > 1 {
				msg = fmt.Sprintf(format, args[1:]...)
			} else {
				msg = fmt.Sprintf("%v", args[0])
			}
		}
	}

	return err, msg
}

// captureException is a function pointer that can be set to capture exceptions.
// This keeps the logger package free of a sentry-go import; the
// signature matches sentry.CaptureException.
var captureException func(error) interface{}

// SetSentryCaptureException sets the function to use for capturing exceptions to Sentry
func SetSentryCaptureException(fn func(error) interface{}) {
	captureException = fn
}

// Muted prints a muted/debug message
func Muted(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logOrPrint(mutedStyle.Render("  " + msg))
}

// ServerInfo prints server startup information
type ServerInfo struct {
	Port         string
	StationLimit int
	Filtered     bool
}

// Print displays formatted server configuration information
func (s ServerInfo) Print() {
	Section("Configuration")

	filter := "all stations"
	if s.Filtered {
		filter = "contiguous US"
	}

	fmt.Printf("  %s %s %s\n",
		mutedStyle.Render("🔌"),
		keyStyle.Render("Port:"),
		valueStyle.Render(s.Port))
	fmt.Printf("  %s %s %s\n",
		mutedStyle.Render("📡"),
		keyStyle.Render("Stations:"),
		valueStyle.Render(fmt.Sprintf("up to %d (%s)", s.StationLimit, filter)))
}

// Shutdown prints shutdown message
func Shutdown() {
	fmt.Println()
	shutdownMsg := lipgloss.NewStyle().
		Foreground(yellow).
		Bold(true).
		Render("  ⏸  Shutting down gracefully...")
	fmt.Println(shutdownMsg)
}

// HTTPLogger returns the configured HTTP logger for middleware
func HTTPLogger() *log.Logger {
	return httpLogger
}

package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	lipgloss "github.com/charmbracelet/lipgloss"
	xterm "golang.org/x/term"
)

type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var (
	level        = LevelWarn
	colorEnabled = false
	outWriter    io.Writer // nil = os.Stdout
	errWriter    io.Writer // nil = os.Stderr
)

var (
	styleTrace = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Dark: "#8b949e", Light: "#656d76"})
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Dark: "#56d7c2", Light: "#0d7680"})
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Dark: "#3fb950", Light: "#1a7f37"})
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Dark: "#d29922", Light: "#9a6700"})
	styleError = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Dark: "#f85149", Light: "#cf222e"})
)

func SetLevel(l Level) { level = l }
func SetColor(f bool)  { colorEnabled = f }

// SetOutput redirects all log output to w. Pass nil to restore the default
// stdout/stderr split. A redirected writer always receives plain text.
func SetOutput(w io.Writer) {
	outWriter = w
	errWriter = w
}

func ParseLevel(levelStr string) Level {
	switch strings.ToLower(levelStr) {
	case "none":
		return LevelNone
	case "error", "err":
		return LevelError
	case "", "warn", "warning":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug", "dbg":
		return LevelDebug
	case "trace", "trc":
		return LevelTrace
	default:
		return LevelWarn
	}
}

func stdOut() io.Writer {
	if outWriter != nil {
		return outWriter
	}
	return os.Stdout
}

func stdErr() io.Writer {
	if errWriter != nil {
		return errWriter
	}
	return os.Stderr
}

// useColor is true only when color is enabled and output still goes to a
// real terminal.
func useColor() bool {
	return colorEnabled && outWriter == nil && xterm.IsTerminal(int(os.Stdout.Fd()))
}

func emit(w io.Writer, tag string, style lipgloss.Style, format string, v []interface{}) {
	msg := fmt.Sprintf(format, v...)
	if useColor() {
		fmt.Fprintf(w, "%s %s\n", style.Render(tag), msg)
	} else {
		fmt.Fprintf(w, "%s %s\n", tag, msg)
	}
}

func Trace(format string, v ...interface{}) {
	if level >= LevelTrace {
		emit(stdOut(), "[TRACE]", styleTrace, format, v)
	}
}

func Debug(format string, v ...interface{}) {
	if level >= LevelDebug {
		emit(stdOut(), "[DEBUG]", styleDebug, format, v)
	}
}

func Info(format string, v ...interface{}) {
	if level >= LevelInfo {
		emit(stdOut(), "[INFO]", styleInfo, format, v)
	}
}

func Warn(format string, v ...interface{}) {
	if level >= LevelWarn {
		emit(stdErr(), "[WARN]", styleWarn, format, v)
	}
}

func Error(format string, v ...interface{}) {
	if level >= LevelError {
		emit(stdErr(), "[ERROR]", styleError, format, v)
	}
}

// Fatal always prints to stderr and exits, regardless of the current level.
func Fatal(format string, v ...interface{}) {
	emit(stdErr(), "[FATAL]", styleError, format, v)
	os.Exit(1)
}

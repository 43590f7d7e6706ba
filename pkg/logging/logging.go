package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
)

// LogLevel is the severity of a log line.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levels = []struct {
	name  string
	slog  slog.Level
	alias string
}{
	LevelDebug: {"DEBUG", slog.LevelDebug, ""},
	LevelInfo:  {"INFO", slog.LevelInfo, ""},
	LevelWarn:  {"WARN", slog.LevelWarn, "warning"},
	LevelError: {"ERROR", slog.LevelError, ""},
}

func (l LogLevel) valid() bool {
	return l >= LevelDebug && int(l) < len(levels)
}

func (l LogLevel) String() string {
	if !l.valid() {
		return "UNKNOWN"
	}
	return levels[l].name
}

// SlogLevel maps the level onto slog. Unknown levels log at info.
func (l LogLevel) SlogLevel() slog.Level {
	if !l.valid() {
		return slog.LevelInfo
	}
	return levels[l].slog
}

// ParseLevel reads a configured level name. Empty means info.
func ParseLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelInfo, nil
	}
	for l, def := range levels {
		if s == strings.ToLower(def.name) || (def.alias != "" && s == def.alias) {
			return LogLevel(l), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Format selects the handler used for CLI output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	defaultLogger *slog.Logger
	currentRun    atomic.Pointer[string]
)

// InitForCLI installs a text handler writing to output.
func InitForCLI(filterLevel LogLevel, output io.Writer) {
	InitForCLIWithFormat(filterLevel, FormatText, output)
}

// InitForCLIWithFormat installs a text or JSON handler writing to output and
// makes it the slog default.
func InitForCLIWithFormat(filterLevel LogLevel, format Format, output io.Writer) {
	opts := &slog.HandlerOptions{Level: filterLevel.SlogLevel()}

	var handler slog.Handler = slog.NewTextHandler(output, opts)
	if format == FormatJSON {
		handler = slog.NewJSONHandler(output, opts)
	}
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Logger returns the configured logger, or nil before initialization.
func Logger() *slog.Logger {
	return defaultLogger
}

// StartRun tags every following log line with a run attribute until the
// returned function is called. Runs do not nest.
func StartRun(id string) (end func()) {
	currentRun.Store(&id)
	return func() { currentRun.Store(nil) }
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	if defaultLogger == nil || !defaultLogger.Enabled(context.Background(), level.SlogLevel()) {
		return
	}

	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	attrs := make([]slog.Attr, 0, 3)
	attrs = append(attrs, slog.String("subsystem", subsystem))
	if run := currentRun.Load(); run != nil {
		attrs = append(attrs, slog.String("run", *run))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	defaultLogger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message with the error as an attribute.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options selects level and sinks for a SlogLogger.
type Options struct {
	Level   string
	File    string
	Verbose bool
	Stderr  io.Writer
}

// SlogLogger implements ports.Logger on top of log/slog. Records are fanned
// out to stderr and, when configured, a JSON log file.
type SlogLogger struct {
	log    *slog.Logger
	closer io.Closer
}

// New builds a SlogLogger. Verbose forces debug level.
func New(opts Options) (*SlogLogger, error) {
	level := ParseLevel(opts.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalizeErrorKey,
	}
	handlers := []slog.Handler{slog.NewTextHandler(stderr, handlerOpts)}

	var closer io.Closer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
		closer = f
	}

	return &SlogLogger{
		log:    slog.New(slogmulti.Fanout(handlers...)),
		closer: closer,
	}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *SlogLogger {
	return &SlogLogger{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, attrs(fields)...)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, attrs(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, attrs(fields)...)
}

func (l *SlogLogger) Error(msg string, err error, fields map[string]interface{}) {
	args := attrs(fields)
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	l.log.Error(msg, args...)
}

// Slog exposes the underlying logger for libraries that take *slog.Logger.
func (l *SlogLogger) Slog() *slog.Logger {
	return l.log
}

// Close releases the log file, if any.
func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// attrs converts a field map into slog arguments with a stable key order.
func attrs(fields map[string]interface{}) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}

func normalizeErrorKey(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

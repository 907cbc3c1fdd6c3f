// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package logging provides structured logging for PCC components.
//
// The gateway logs JSON to stdout (container convention); the pcc CLI
// logs human-readable text to stderr when attached to a terminal. Both
// are built on log/slog with two extensions:
//
//   - optional file output with automatic directory creation
//   - an Exporter hook so deployments can forward entries to an
//     external sink without re-parsing stdout
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("meeting created", "meeting_uid", uid)
//
// # File Logging
//
//	logger := logging.New(logging.Config{
//	    Level:   logging.LevelInfo,
//	    LogDir:  "~/.pcc/logs", // supports ~ expansion
//	    Service: "gateway",
//	})
//	defer logger.Close()
//
// Log files are named {service}_{date}.log, JSON format.
//
// # Security
//
// Nothing here redacts sensitive values. Callers must not log tokens
// or PII; log presence, not content:
//
//	logger.Info("auth", "token_present", token != "")
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Level represents log severity, ordered Debug < Info < Warn < Error.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a config string ("debug", "info", "warn", "error")
// to a Level. Unknown strings default to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config controls logger construction.
type Config struct {
	// Level is the minimum severity emitted.
	Level Level

	// Service tags every entry and names the log file.
	Service string

	// LogDir enables file output when non-empty. Supports ~ expansion.
	// The directory is created if missing.
	LogDir string

	// Output overrides the primary destination. Defaults to stderr.
	Output io.Writer

	// JSON forces JSON output on the primary destination. When false,
	// JSON is still used unless the destination is a terminal.
	JSON bool

	// Exporter receives every entry after local output. Optional.
	Exporter Exporter
}

// Entry is the exporter-facing form of one log record.
type Entry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Service string         `json:"service"`
	Message string         `json:"message"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Exporter forwards log entries to an external sink. Implementations
// must be safe for concurrent use and should buffer internally;
// Export must not block the logging call path for long.
type Exporter interface {
	Export(ctx context.Context, entry Entry) error
	Close() error
}

// Logger wraps slog with level filtering, optional file output, and
// exporter fan-out. Safe for concurrent use.
type Logger struct {
	slogger *slog.Logger
	level   Level
	service string

	mu       sync.Mutex
	file     *os.File
	exporter Exporter
}

// New builds a Logger from config. Construction never fails: if the
// log directory cannot be created, file output is skipped and a
// warning goes to the primary destination.
func New(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	useJSON := config.JSON
	if !useJSON {
		if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
			useJSON = true
		}
	}

	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}
	var primary slog.Handler
	if useJSON {
		primary = slog.NewJSONHandler(out, opts)
	} else {
		primary = slog.NewTextHandler(out, opts)
	}

	l := &Logger{level: config.Level, service: config.Service, exporter: config.Exporter}
	handlers := []slog.Handler{primary}

	if config.LogDir != "" {
		if f, err := openLogFile(config.LogDir, config.Service); err != nil {
			fmt.Fprintf(out, "logging: file output disabled: %v\n", err)
		} else {
			l.file = f
			handlers = append(handlers, slog.NewJSONHandler(f, opts))
		}
	}

	var h slog.Handler
	if len(handlers) == 1 {
		h = handlers[0]
	} else {
		h = &multiHandler{handlers: handlers}
	}
	if config.Service != "" {
		h = h.WithAttrs([]slog.Attr{slog.String("service", config.Service)})
	}
	l.slogger = slog.New(h)
	return l
}

// Default returns a stderr logger at Info level with no file output.
func Default() *Logger {
	return New(Config{Level: LevelInfo})
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

// With returns a Logger that adds args to every entry.
func (l *Logger) With(args ...any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		slogger:  l.slogger.With(args...),
		level:    l.level,
		service:  l.service,
		file:     l.file,
		exporter: l.exporter,
	}
}

// Slog exposes the underlying slog.Logger for libraries that take one.
func (l *Logger) Slog() *slog.Logger {
	return l.slogger
}

// Close flushes and closes the log file and the exporter, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var firstErr error
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			firstErr = err
		}
		l.file = nil
	}
	if l.exporter != nil {
		if err := l.exporter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		l.exporter = nil
	}
	return firstErr
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if level < l.level {
		return
	}
	switch level {
	case LevelDebug:
		l.slogger.Debug(msg, args...)
	case LevelInfo:
		l.slogger.Info(msg, args...)
	case LevelWarn:
		l.slogger.Warn(msg, args...)
	case LevelError:
		l.slogger.Error(msg, args...)
	}

	l.mu.Lock()
	exporter := l.exporter
	l.mu.Unlock()
	if exporter != nil {
		entry := Entry{
			Time:    time.Now().UTC(),
			Level:   level.String(),
			Service: l.service,
			Message: msg,
			Attrs:   argsToMap(args),
		}
		if err := exporter.Export(context.Background(), entry); err != nil {
			l.slogger.Warn("log export failed", "error", err)
		}
	}
}

// multiHandler fans one record out to several slog handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}

func openLogFile(dir, service string) (*os.File, error) {
	dir = expandPath(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", dir, err)
	}
	if service == "" {
		service = "pcc"
	}
	name := fmt.Sprintf("%s_%s.log", service, time.Now().UTC().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func expandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func argsToMap(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	m := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		m[key] = args[i+1]
	}
	return m
}

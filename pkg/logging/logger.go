// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package logging provides structured logging for linthook hosts and hooks.
//
// The logger wraps log/slog with a small amount of host-facing surface:
//
//   - Default: human-readable text on stderr (Unix convention for tools)
//   - Optional: JSON output for CI log collectors
//   - Optional: a LogExporter that receives every entry (used by tests and
//     by hosts that forward startup diagnostics elsewhere)
//
// # Levels
//
// Hooks report two severities to their host: verbose and informational.
// Verbose maps to LevelDebug, informational to LevelInfo:
//
//	logger.Debug("ESLint hook disabled.")   // verbose
//	logger.Info("ESLint start...")          // informational
//
// # Thread Safety
//
// Logger is safe for concurrent use.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity levels.
//
// Levels are ordered by severity: Debug < Info < Warn < Error.
type Level int

const (
	// LevelDebug is the "verbose" severity hosts expose to hooks.
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages such as run start/finish.
	LevelInfo

	// LevelWarn is for recoverable problems.
	LevelWarn

	// LevelError is for failed operations.
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

// toSlogLevel converts our Level to slog.Level.
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a level name as accepted on the command line.
//
// Description:
//
//	Accepts "debug", "verbose", "info", "warn", "warning" and "error",
//	case-insensitively. "verbose" is an alias for debug.
//
// Inputs:
//
//	s - The level name.
//
// Outputs:
//
//	Level - The parsed level.
//	error - Non-nil if the name is not recognised.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "verbose":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures the Logger behavior.
//
// A zero-value Config creates a logger that writes Info+ messages to
// stderr in text format.
type Config struct {
	// Level sets the minimum log level. Default: LevelInfo.
	Level Level

	// Service is attached to every entry as the "service" attribute.
	// Default: "" (no service attribute).
	Service string

	// JSON switches the output handler to JSON.
	JSON bool

	// Quiet disables the writer output. Entries still reach the Exporter.
	Quiet bool

	// Output overrides the destination writer. Default: os.Stderr.
	Output io.Writer

	// Exporter optionally receives every entry at or above Level.
	Exporter LogExporter
}

// =============================================================================
// Exporter Interface
// =============================================================================

// LogExporter receives structured entries in addition to the writer output.
//
// Export is called synchronously from the logging call, so implementations
// must be fast and must not log through the same Logger.
type LogExporter interface {
	// Export delivers one entry. Errors are dropped by the logger.
	Export(ctx context.Context, entry LogEntry) error

	// Flush sends anything buffered. Called from Close.
	Flush(ctx context.Context) error

	// Close releases exporter resources. Called from Close after Flush.
	Close() error
}

// LogEntry represents a structured log entry for export.
type LogEntry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Service   string
	Attrs     map[string]any
}

// =============================================================================
// Logger
// =============================================================================

// Logger provides structured logging over slog with an optional exporter.
//
// Use With() to derive a logger carrying extra attributes; the derived
// logger shares the exporter and carries its attributes into exported
// entries.
type Logger struct {
	slog     *slog.Logger
	config   Config
	exporter LogExporter
	attrs    []any

	// mu serialises Close against concurrent exports.
	mu *sync.Mutex
}

// New creates a new Logger with the given configuration.
//
// Example:
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug, Service: "linthook"})
//	defer logger.Close()
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level: config.Level.toSlogLevel(),
	}

	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	if config.Quiet {
		out = io.Discard
	}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{
			slog.String("service", config.Service),
		})
	}

	return &Logger{
		slog:     slog.New(handler),
		config:   config,
		exporter: config.Exporter,
		mu:       &sync.Mutex{},
	}
}

// Default returns an Info-level text logger on stderr for service "linthook".
func Default() *Logger {
	return New(Config{
		Level:   LevelInfo,
		Service: "linthook",
	})
}

// Discard returns a logger that drops everything. Handy for library
// defaults and tests that don't assert on log output.
func Discard() *Logger {
	return New(Config{Quiet: true, Level: LevelError})
}

// Debug logs a message at Debug (verbose) level.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

// Info logs a message at Info level.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a message at Warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarn, msg, args...)
}

// Error logs a message at Error level.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

// With returns a new Logger with additional attributes.
//
// The parent logger is not modified.
func (l *Logger) With(args ...any) *Logger {
	attrs := make([]any, 0, len(l.attrs)+len(args))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, args...)
	return &Logger{
		slog:     l.slog.With(args...),
		config:   l.config,
		exporter: l.exporter,
		attrs:    attrs,
		mu:       l.mu,
	}
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Close flushes and closes the exporter, if any.
//
// Returns the first error encountered.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.exporter == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if err := l.exporter.Flush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush exporter: %w", err))
	}
	if err := l.exporter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close exporter: %w", err))
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// log writes to the slog handler and the exporter.
func (l *Logger) log(level Level, msg string, args ...any) {
	switch level {
	case LevelDebug:
		l.slog.Debug(msg, args...)
	case LevelInfo:
		l.slog.Info(msg, args...)
	case LevelWarn:
		l.slog.Warn(msg, args...)
	case LevelError:
		l.slog.Error(msg, args...)
	}

	if l.exporter == nil || level < l.config.Level {
		return
	}

	attrs := argsToMap(l.attrs)
	for k, v := range argsToMap(args) {
		attrs[k] = v
	}
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Service:   l.config.Service,
		Attrs:     attrs,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = l.exporter.Export(ctx, entry)
}

// argsToMap converts slog-style key-value args to a map.
//
// slog.Attr values are unpacked; a trailing key without value is dropped.
func argsToMap(args []any) map[string]any {
	result := make(map[string]any)
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case slog.Attr:
			result[v.Key] = v.Value.Any()
		case string:
			if i+1 < len(args) {
				result[v] = args[i+1]
				i++
			}
		}
	}
	return result
}

// =============================================================================
// Built-in Exporters
// =============================================================================

// BufferedExporter collects log entries in memory.
//
// Useful for testing to verify what a hook reported to its host:
//
//	exporter := logging.NewBufferedExporter()
//	logger := logging.New(logging.Config{Quiet: true, Level: logging.LevelDebug, Exporter: exporter})
//	...
//	assert.Equal(t, "ESLint start...", exporter.Entries()[0].Message)
type BufferedExporter struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewBufferedExporter creates a new BufferedExporter.
func NewBufferedExporter() *BufferedExporter {
	return &BufferedExporter{
		entries: make([]LogEntry, 0, 16),
	}
}

// Export adds the entry to the buffer.
func (e *BufferedExporter) Export(ctx context.Context, entry LogEntry) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = append(e.entries, entry)
	return nil
}

// Flush is a no-op.
func (e *BufferedExporter) Flush(ctx context.Context) error { return nil }

// Close is a no-op.
func (e *BufferedExporter) Close() error { return nil }

// Entries returns a copy of all collected entries.
func (e *BufferedExporter) Entries() []LogEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	result := make([]LogEntry, len(e.entries))
	copy(result, e.entries)
	return result
}

// Messages returns the message text of all collected entries, in order.
func (e *BufferedExporter) Messages() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	msgs := make([]string, len(e.entries))
	for i, entry := range e.entries {
		msgs[i] = entry.Message
	}
	return msgs
}

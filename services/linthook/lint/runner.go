// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/linthook/services/linthook/telemetry"
)

// =============================================================================
// RUN OPTIONS
// =============================================================================

// DefaultFormat is the formatter used when none is configured.
const DefaultFormat = "stylish"

// DefaultPatterns is linted when no include pattern is configured.
var DefaultPatterns = []string{"."}

// RunOptions configures a single lint run.
//
// Zero values are replaced by WithDefaults.
type RunOptions struct {
	// Patterns are the include patterns. Default: DefaultPatterns.
	Patterns []string

	// Format names the formatter. Default: DefaultFormat.
	Format string

	// OnError receives rendered output when errors are reported.
	// Default: writes to stderr.
	OnError Reporter

	// OnWarn receives rendered output when only warnings are reported.
	// Default: writes to stderr.
	OnWarn Reporter

	// Engine is passed to the engine factory unchanged.
	Engine EngineOptions
}

// WithDefaults returns a copy of o with every unset field defaulted.
func (o RunOptions) WithDefaults() RunOptions {
	if len(o.Patterns) == 0 {
		o.Patterns = append([]string(nil), DefaultPatterns...)
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.OnError == nil {
		o.OnError = WriterReporter(os.Stderr)
	}
	if o.OnWarn == nil {
		o.OnWarn = WriterReporter(os.Stderr)
	}
	return o
}

// WriterReporter returns a Reporter that writes text and a newline to w.
func WriterReporter(w io.Writer) Reporter {
	return func(text string) {
		fmt.Fprintln(w, text)
	}
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner constructs an engine, executes it once and maps the report to a
// Status.
//
// Thread Safety: Safe for concurrent use; each Run constructs its own engine.
type Runner struct {
	newEngine EngineFactory
	logger    *slog.Logger
}

// Option configures the Runner.
type Option func(*Runner)

// WithLogger sets the logger for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner over the given engine factory.
func NewRunner(factory EngineFactory, opts ...Option) *Runner {
	r := &Runner{
		newEngine: factory,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one lint pass.
//
// Description:
//
//	Applies RunOptions defaults, constructs the engine, executes it against
//	the include patterns, looks up the formatter and interprets the report
//	with Interpret. Exactly one of OnError/OnWarn is called for ERROR/WARN,
//	neither for SUCCESS.
//
// Inputs:
//
//	ctx - Context for cancellation. Must not be nil.
//	opts - Run options.
//
// Outputs:
//
//	Status - StatusSuccess, StatusError or StatusWarn; StatusUnknown on error.
//	error - An engine construction, execution or formatter fault, returned
//	        exactly as the engine produced it. ErrNilFormatter when the
//	        engine hands back no formatter.
//
// Thread Safety: Safe for concurrent use.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (Status, error) {
	if ctx == nil {
		return StatusUnknown, ErrNilContext
	}
	if r.newEngine == nil {
		return StatusUnknown, ErrNoEngine
	}
	opts = opts.WithDefaults()

	runID := uuid.NewString()
	ctx, span := startRunSpan(ctx, runID, opts)
	defer span.End()
	start := time.Now()

	logger := r.logger.With(slog.String("run_id", runID))
	if traceID := telemetry.TraceID(ctx); traceID != "" {
		logger = logger.With(
			slog.String("trace_id", traceID),
			slog.String("span_id", telemetry.SpanID(ctx)),
		)
	}

	engine, err := r.newEngine(opts.Engine)
	if err != nil {
		recordRunFault(ctx, span, time.Since(start), err)
		return StatusUnknown, err
	}

	report, err := engine.Execute(ctx, opts.Patterns)
	if err != nil {
		recordRunFault(ctx, span, time.Since(start), err)
		return StatusUnknown, err
	}

	format, err := engine.Formatter(opts.Format)
	if err == nil && format == nil {
		err = fmt.Errorf("%w: %q", ErrNilFormatter, opts.Format)
	}
	if err != nil {
		recordRunFault(ctx, span, time.Since(start), err)
		return StatusUnknown, err
	}

	status := Interpret(report, format, opts.OnError, opts.OnWarn)

	var errorCount, warningCount, files int
	if report != nil {
		errorCount, warningCount, files = report.ErrorCount, report.WarningCount, len(report.Results)
	}
	setRunSpanResult(span, status, errorCount, warningCount)
	recordRunMetrics(ctx, status, time.Since(start), errorCount, warningCount)

	logger.Debug("Lint completed",
		slog.String("status", status.String()),
		slog.Int("files", files),
		slog.Int("errors", errorCount),
		slog.Int("warnings", warningCount),
		slog.Duration("duration", time.Since(start)),
	)

	return status, nil
}

// Interpret maps a report to a Status and delivers rendered output.
//
// Description:
//
//	First match wins: ErrorCount > 0 renders Results to onError and
//	returns StatusError; otherwise WarningCount > 0 renders to onWarn and
//	returns StatusWarn; otherwise StatusSuccess. A nil report is
//	StatusSuccess. Nil reporters fall back to stderr.
//
// Inputs:
//
//	report - The engine report. May be nil.
//	format - Renders results. Only called when a reporter is called.
//	onError - Receives output for StatusError.
//	onWarn - Receives output for StatusWarn.
//
// Outputs:
//
//	Status - The mapped status. Never StatusUnknown.
func Interpret(report *Report, format Formatter, onError, onWarn Reporter) Status {
	if report == nil {
		return StatusSuccess
	}
	switch {
	case report.ErrorCount > 0:
		if onError == nil {
			onError = WriterReporter(os.Stderr)
		}
		onError(format(report.Results))
		return StatusError
	case report.WarningCount > 0:
		if onWarn == nil {
			onWarn = WriterReporter(os.Stderr)
		}
		onWarn(format(report.Results))
		return StatusWarn
	default:
		return StatusSuccess
	}
}

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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for lint runs.
var (
	tracer = otel.Tracer("linthook.lint")
	meter  = otel.Meter("linthook.lint")
)

// Metrics for lint runs.
var (
	runLatency    metric.Float64Histogram
	runTotal      metric.Int64Counter
	errorsFound   metric.Int64Counter
	warningsFound metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		runLatency, err = meter.Float64Histogram(
			"lint_duration_seconds",
			metric.WithDescription("Duration of lint runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runTotal, err = meter.Int64Counter(
			"lint_runs_total",
			metric.WithDescription("Total number of lint runs by resulting status"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		errorsFound, err = meter.Int64Counter(
			"lint_errors_found_total",
			metric.WithDescription("Total number of lint errors reported"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		warningsFound, err = meter.Int64Counter(
			"lint_warnings_found_total",
			metric.WithDescription("Total number of lint warnings reported"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startRunSpan creates a span for a lint run.
func startRunSpan(ctx context.Context, runID string, opts RunOptions) (context.Context, trace.Span) {
	return tracer.Start(ctx, "lint.Run",
		trace.WithAttributes(
			attribute.String("lint.run_id", runID),
			attribute.StringSlice("lint.patterns", opts.Patterns),
			attribute.String("lint.format", opts.Format),
			attribute.Int("lint.globals", len(opts.Engine.Globals)),
			attribute.Int("lint.ignore_patterns", len(opts.Engine.IgnorePatterns)),
			attribute.String("lint.config_file", opts.Engine.ConfigFile),
		),
	)
}

// setRunSpanResult sets the result attributes on a run span.
func setRunSpanResult(span trace.Span, status Status, errorCount, warningCount int) {
	span.SetAttributes(
		attribute.String("lint.status", status.String()),
		attribute.Int("lint.error_count", errorCount),
		attribute.Int("lint.warning_count", warningCount),
	)
}

// recordRunFault marks the span failed and counts the run as unknown.
func recordRunFault(ctx context.Context, span trace.Span, duration time.Duration, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	recordRunMetrics(ctx, StatusUnknown, duration, 0, 0)
}

// recordRunMetrics records metrics for a lint run.
func recordRunMetrics(ctx context.Context, status Status, duration time.Duration, errorCount, warningCount int) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("status", status.String()),
	)

	runLatency.Record(ctx, duration.Seconds(), attrs)
	runTotal.Add(ctx, 1, attrs)
	errorsFound.Add(ctx, int64(errorCount))
	warningsFound.Add(ctx, int64(warningCount))
}

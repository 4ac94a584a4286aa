// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AleutianAI/linthook/pkg/logging"
	"github.com/AleutianAI/linthook/services/linthook/hook"
	"github.com/AleutianAI/linthook/services/linthook/host"
	"github.com/AleutianAI/linthook/services/linthook/lint"
	"github.com/AleutianAI/linthook/services/linthook/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// errLintFailed is returned by "run --strict" when the lint run reported errors.
var errLintFailed = errors.New("lint reported errors")

type runOptions struct {
	configPath      string
	appRoot         string
	env             string
	bundledDir      string
	strict          bool
	traceExporter   string
	metricsTextfile string
	logLevel        string
	jsonLogs        bool
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Lift the host and run the lint hook once",
		Long: `Lift the host described by --config (or a bare host rooted at --app-root)
with the lint hook registered. Lint output goes to stderr.

Exit status is 0 unless the hook faults (2) or --strict is set and the run
reported errors (1).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd.Context(), afero.NewOsFs(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Host configuration file (YAML)")
	flags.StringVar(&opts.appRoot, "app-root", "", "Application root; overrides appPath from --config")
	flags.StringVar(&opts.env, "env", "", "Environment name; overrides environment from --config")
	flags.StringVar(&opts.bundledDir, "bundled-dir", "", "Fallback configuration directory (default: the executable's directory)")
	flags.BoolVar(&opts.strict, "strict", false, "Exit 1 when the lint run reports errors")
	flags.StringVar(&opts.traceExporter, "trace-exporter", "", "Trace exporter: stdout, otlp or none (default: $OTEL_TRACES_EXPORTER or none)")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the run")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.jsonLogs, "json-logs", false, "Emit logs as JSON")
	return cmd
}

// runLint lifts the host and reports the hook status.
func runLint(ctx context.Context, fs afero.Fs, opts runOptions, stdout, stderr io.Writer) (err error) {
	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{
		Level:   level,
		Service: "linthook",
		JSON:    opts.jsonLogs,
		Output:  stderr,
	})
	defer logger.Close()

	var registry *prometheus.Registry
	telemetryCfg := telemetry.DefaultConfig()
	telemetryCfg.ServiceVersion = version
	telemetryCfg.Output = stderr
	if opts.traceExporter != "" {
		telemetryCfg.TraceExporter = opts.traceExporter
	}
	if opts.metricsTextfile != "" {
		registry = prometheus.NewRegistry()
		telemetryCfg.MetricExporter = telemetry.ExporterPrometheus
		telemetryCfg.Registerer = registry
	}
	shutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if serr := shutdown(context.Background()); serr != nil {
			logger.Warn("Telemetry shutdown failed", "error", serr)
		}
	}()

	hostCfg, err := loadHostConfig(fs, opts)
	if err != nil {
		return err
	}
	app := host.New(hostCfg, host.WithLogger(logger))

	hookOpts := []hook.Option{
		hook.WithLogger(logger),
		hook.WithFs(fs),
		hook.WithReporters(lint.WriterReporter(stderr), lint.WriterReporter(stderr)),
	}
	if opts.bundledDir != "" {
		hookOpts = append(hookOpts, hook.WithBundledDir(opts.bundledDir))
	}
	controller := hook.New(app, hookOpts...)
	app.Register(controller)

	if registry != nil {
		registry.MustRegister(hook.StatusGauge(controller))
		defer func() {
			if werr := prometheus.WriteToTextfile(opts.metricsTextfile, registry); werr != nil && err == nil {
				err = fmt.Errorf("write metrics: %w", werr)
			}
		}()
	}

	if err := app.Lift(ctx); err != nil {
		return err
	}

	status := controller.Status()
	fmt.Fprintf(stdout, "lint: %s\n", status)
	if opts.strict && status == lint.StatusError {
		return errLintFailed
	}
	return nil
}

// loadHostConfig reads --config if given and applies flag overrides.
func loadHostConfig(fs afero.Fs, opts runOptions) (*host.Config, error) {
	cfg := &host.Config{
		Environment: host.DefaultEnvironment,
		AppPath:     ".",
	}
	if opts.configPath != "" {
		loaded, err := host.LoadConfig(fs, opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.appRoot != "" {
		cfg.AppPath = opts.appRoot
	}
	if opts.env != "" {
		cfg.Environment = opts.env
	}
	return cfg, nil
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package hook runs one lint pass during a host application's startup.
//
// The host calls Configure, then Initialize with a completion callback.
// Initialize reads the hook's configuration section, decides whether to
// run, resolves the engine configuration file, collects globals from the
// host, splits src into include and exclude patterns and runs the engine
// once. The outcome is readable afterwards through Status, which has no
// setter.
//
//	| Outcome       | State            | Status                   | done called |
//	|---------------|------------------|--------------------------|-------------|
//	| disabled      | StateSkipped     | StatusUnknown            | yes         |
//	| run completed | StateRunComplete | Success, Error or Warn   | yes         |
//	| engine fault  | StateReady       | StatusUnknown            | no          |
package hook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/AleutianAI/linthook/pkg/logging"
	"github.com/AleutianAI/linthook/services/linthook/configfile"
	"github.com/AleutianAI/linthook/services/linthook/globals"
	"github.com/AleutianAI/linthook/services/linthook/lint"
	"github.com/AleutianAI/linthook/services/linthook/patterns"
)

// Status values, re-exported for hosts that only import this package.
const (
	StatusUnknown = lint.StatusUnknown
	StatusSuccess = lint.StatusSuccess
	StatusError   = lint.StatusError
	StatusWarn    = lint.StatusWarn
)

var (
	// ErrNotConfigured is returned by Initialize before Configure.
	ErrNotConfigured = errors.New("hook: Initialize called before Configure")

	// ErrAlreadyInitialized is returned by Initialize after it has run.
	ErrAlreadyInitialized = errors.New("hook: already initialized")

	// ErrUnknownEngine is returned when configuration names an engine that
	// is not registered.
	ErrUnknownEngine = errors.New("hook: unknown engine")
)

// =============================================================================
// HOST
// =============================================================================

// Host is what the hook needs from the application framework.
type Host interface {
	// Environment is the runtime environment name (e.g., "production").
	Environment() string

	// AppPath is the application root directory.
	AppPath() string

	// AmbientGlobals are identifiers already defined in the runtime.
	AmbientGlobals() []string

	// Models is the model registry.
	Models() globals.Registry

	// Services is the service registry.
	Services() globals.Registry

	// HookConfig decodes the configuration section under key onto out,
	// leaving fields the section does not mention untouched. A missing
	// section is not an error.
	HookConfig(key string, out any) error
}

// =============================================================================
// STATE
// =============================================================================

// State is the controller lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateSkipped
	StateRunComplete
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateSkipped:
		return "skipped"
	case StateRunComplete:
		return "run_complete"
	default:
		return "unknown"
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the lint hook.
//
// Thread Safety: Safe for concurrent use. Initialize runs at most once.
type Controller struct {
	host       Host
	logger     *logging.Logger
	fs         afero.Fs
	bundledDir string
	engines    *lint.EngineRegistry
	onError    lint.Reporter
	onWarn     lint.Reporter

	mu      sync.Mutex
	state   State
	running bool
	status  lint.Status
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets the logger. Debug is the host's verbose level.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBundledDir sets the directory holding the bundled default engine
// configuration. Default: the directory of the running executable.
func WithBundledDir(dir string) Option {
	return func(c *Controller) {
		c.bundledDir = dir
	}
}

// WithReporters sets the output callbacks. Nil keeps the stderr default.
func WithReporters(onError, onWarn lint.Reporter) Option {
	return func(c *Controller) {
		c.onError = onError
		c.onWarn = onWarn
	}
}

// WithEngine registers or replaces an engine under name.
func WithEngine(name string, spec lint.EngineSpec) Option {
	return func(c *Controller) {
		spec.Name = name
		c.engines.Register(spec)
	}
}

// WithFs sets the filesystem used to find configuration files.
func WithFs(fs afero.Fs) Option {
	return func(c *Controller) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// New creates a lint hook for host.
func New(host Host, opts ...Option) *Controller {
	c := &Controller{
		host:       host,
		logger:     logging.Default(),
		fs:         afero.NewOsFs(),
		bundledDir: DefaultBundledDir(),
		engines:    DefaultEngines(),
		status:     lint.StatusUnknown,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultBundledDir is the fallback configuration directory: the directory
// holding the running executable, or "" if it cannot be determined.
func DefaultBundledDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

// Key returns the hook's configuration namespace.
func (c *Controller) Key() string {
	return ConfigKey
}

// Status returns the outcome of the last completed run, or StatusUnknown.
func (c *Controller) Status() lint.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Configure prepares the hook. It may be called more than once before
// Initialize.
func (c *Controller) Configure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUninitialized {
		c.state = StateReady
	}
}

// Config returns the effective configuration: defaults for the host's
// environment overlaid with the host's section, plus WithReporters.
func (c *Controller) Config() (Config, error) {
	cfg, err := c.decodeConfig()
	if err != nil {
		return Config{}, err
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeConfig builds the configuration without validating it.
func (c *Controller) decodeConfig() (Config, error) {
	cfg := DefaultConfig(c.host.Environment())
	if err := c.host.HookConfig(ConfigKey, &cfg); err != nil {
		return Config{}, fmt.Errorf("hook: reading %q configuration: %w", ConfigKey, err)
	}
	if c.onError != nil {
		cfg.ReportError = c.onError
	}
	if c.onWarn != nil {
		cfg.ReportWarn = c.onWarn
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("hook: invalid %q configuration: %w", ConfigKey, err)
	}
	return nil
}

// Initialize runs the hook.
//
// Description:
//
//	Disabled: logs at Debug, calls done(nil) and leaves Status at
//	StatusUnknown. Enabled: runs the engine once, stores the Status and
//	calls done(nil).
//
// Inputs:
//
//	ctx - Context for cancellation of the engine run.
//	done - Completion callback. Not called when an error is returned.
//
// Outputs:
//
//	error - An engine fault, returned unchanged; a configuration error;
//	        ErrNotConfigured; or ErrAlreadyInitialized. Status stays
//	        StatusUnknown and the hook stays ready after a fault.
//
// Thread Safety: Concurrent calls after the first get ErrAlreadyInitialized.
func (c *Controller) Initialize(ctx context.Context, done func(error)) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	cfg, err := c.decodeConfig()
	if err != nil {
		return err
	}

	env := c.host.Environment()
	if !cfg.IsEnabled(env) {
		c.logger.Debug("ESLint hook disabled.", "environment", env)
		c.finish(StateSkipped, lint.StatusUnknown)
		complete(done)
		return nil
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	spec, ok := c.engines.Get(cfg.Engine)
	if !ok {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownEngine, cfg.Engine, c.engines.Names())
	}

	appPath := c.host.AppPath()
	resolver := &configfile.Resolver{Fs: c.fs, Name: spec.ConfigName}
	configFile, _ := resolver.Effective(appPath, c.bundledDir)

	names := globals.Collect(c.host.AmbientGlobals(), c.host.Models(), c.host.Services())
	set := patterns.Split(cfg.Src)

	command := cfg.Command
	if command == "" {
		command = spec.Command
	}

	label := spec.Label
	if label == "" {
		label = spec.Name
	}
	c.logger.Info(label+" start...",
		"engine", spec.Name,
		"config_file", configFile,
		"include", len(set.Include),
		"exclude", len(set.Exclude),
		"globals", len(names),
	)

	runner := lint.NewRunner(spec.Factory, lint.WithLogger(c.logger.Slog()))
	status, err := runner.Run(ctx, lint.RunOptions{
		Patterns: set.Include,
		Format:   cfg.Format,
		OnError:  cfg.ReportError,
		OnWarn:   cfg.ReportWarn,
		Engine: lint.EngineOptions{
			Globals:        names,
			IgnorePatterns: set.Exclude,
			ConfigFile:     configFile,
			Dir:            appPath,
			Command:        command,
			Color:          cfg.UseColor(),
		},
	})
	if err != nil {
		return err
	}

	c.finish(StateRunComplete, status)
	c.logger.Info(label+" finished.", "status", status.String())
	complete(done)
	return nil
}

// begin claims the single Initialize slot.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.state == StateUninitialized:
		return ErrNotConfigured
	case c.state != StateReady || c.running:
		return ErrAlreadyInitialized
	}
	c.running = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

func (c *Controller) finish(state State, status lint.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.status = status
}

func complete(done func(error)) {
	if done != nil {
		done(nil)
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package host is a minimal application host that lifts startup hooks.
//
// Lift configures every registered hook, then initializes them in
// registration order, waiting for each hook's completion callback before
// moving on. The first hook fault aborts the lift and is returned as is.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AleutianAI/linthook/pkg/logging"
	"github.com/AleutianAI/linthook/services/linthook/globals"
)

// ErrHookIncomplete is returned when the lift is cancelled before a hook
// calls its completion callback.
var ErrHookIncomplete = errors.New("host: hook did not complete")

// Hook is a startup hook.
type Hook interface {
	// Key is the hook's configuration namespace.
	Key() string

	// Configure runs before any hook is initialized.
	Configure()

	// Initialize runs the hook and calls done when it has finished.
	Initialize(ctx context.Context, done func(error)) error
}

// App is a host application.
//
// Thread Safety: Register and Lift must not be called concurrently.
type App struct {
	config *Config
	logger *logging.Logger
	hooks  []Hook
}

// Option configures the App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(logger *logging.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an application from configuration.
func New(config *Config, opts ...Option) *App {
	if config == nil {
		config = &Config{Environment: DefaultEnvironment}
	}
	a := &App{
		config: config,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register adds a hook. Hooks are lifted in registration order.
func (a *App) Register(h Hook) {
	a.hooks = append(a.hooks, h)
}

// Logger returns the application logger.
func (a *App) Logger() *logging.Logger {
	return a.logger
}

// Lift configures and initializes every hook.
//
// Outputs:
//
//	error - The first hook's Initialize error, unchanged; a non-nil error
//	        passed to a completion callback; or ErrHookIncomplete wrapping
//	        ctx.Err() if ctx ends while waiting for a callback.
func (a *App) Lift(ctx context.Context) error {
	start := time.Now()
	a.logger.Info("Lifting app",
		"environment", a.config.Environment,
		"app_path", a.config.AppPath,
		"hooks", len(a.hooks),
	)

	for _, h := range a.hooks {
		h.Configure()
	}

	for _, h := range a.hooks {
		a.logger.Debug("Initializing hook", "hook", h.Key())

		done := make(chan error, 1)
		if err := h.Initialize(ctx, func(err error) { done <- err }); err != nil {
			return err
		}

		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("host: hook %q: %w", h.Key(), err)
			}
		case <-ctx.Done():
			return fmt.Errorf("%w: %q: %w", ErrHookIncomplete, h.Key(), ctx.Err())
		}
	}

	a.logger.Debug("App lifted", "duration", time.Since(start))
	return nil
}

// Environment returns the runtime environment name.
func (a *App) Environment() string {
	return a.config.Environment
}

// AppPath returns the application root.
func (a *App) AppPath() string {
	return a.config.AppPath
}

// AmbientGlobals returns the identifiers defined by the runtime.
func (a *App) AmbientGlobals() []string {
	return append([]string(nil), a.config.Globals...)
}

// Models returns the model registry.
func (a *App) Models() globals.Registry {
	return a.config.Models
}

// Services returns the service registry.
func (a *App) Services() globals.Registry {
	return a.config.Services
}

// HookConfig decodes the section under key onto out. Fields the section
// does not mention keep their values. A missing section is not an error.
func (a *App) HookConfig(key string, out any) error {
	node, ok := a.config.Hooks[key]
	if !ok {
		return nil
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("host: decoding hooks.%s: %w", key, err)
	}
	return nil
}

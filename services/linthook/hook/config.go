// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package hook

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-isatty"

	"github.com/AleutianAI/linthook/services/linthook/lint"
	"github.com/AleutianAI/linthook/services/linthook/patterns"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// ConfigKey is the namespace of the hook's section in host configuration.
const ConfigKey = "lint"

// DefaultEngine is the engine used when configuration names none.
const DefaultEngine = "eslint"

// DefaultSrc is linted when configuration sets no src: the application
// root minus front-end assets, build tasks and framework boilerplate.
var DefaultSrc = []string{
	".",
	"!assets/**/*.js",
	"!tasks/**/*.js",
	"!Gruntfile.js",
	"!app.js",
	"!api/responses/**/*.js",
}

// enabledEnvironments are the non-production environments that lint by default.
var enabledEnvironments = map[string]bool{
	"development": true,
	"local":       true,
	"test":        true,
}

// DefaultEnable reports whether the hook runs in env when configuration
// does not say. Only exact, case-sensitive matches enable it.
func DefaultEnable(env string) bool {
	return enabledEnvironments[env]
}

// =============================================================================
// CONFIG
// =============================================================================

// Config is the hook's run configuration.
//
// Description:
//
//	Built from DefaultConfig, then overlaid with the host's "lint" section.
//	Fields absent from the section keep their defaults. Read once per
//	Initialize and never mutated by the hook.
type Config struct {
	// Enabled turns the hook on or off. Nil defers to DefaultEnable.
	Enabled *bool `yaml:"enabled"`

	// Format names the output formatter. Default: "stylish".
	Format string `yaml:"format" validate:"required"`

	// Src lists include patterns and "!"-prefixed exclude patterns.
	// Default: DefaultSrc.
	Src []string `yaml:"src" validate:"dive,lintpattern"`

	// Engine names the lint engine. Default: "eslint".
	Engine string `yaml:"engine" validate:"required"`

	// Command overrides the engine's executable for subprocess engines.
	Command string `yaml:"command"`

	// Color enables styled output. Nil means "when stderr is a terminal".
	Color *bool `yaml:"color"`

	// ReportError receives rendered output when errors are found.
	// Default: standard error.
	ReportError lint.Reporter `yaml:"-"`

	// ReportWarn receives rendered output when only warnings are found.
	// Default: standard error.
	ReportWarn lint.Reporter `yaml:"-"`
}

// DefaultConfig returns the configuration used when the host provides none.
func DefaultConfig(env string) Config {
	enabled := DefaultEnable(env)
	return Config{
		Enabled: &enabled,
		Format:  lint.DefaultFormat,
		Src:     append([]string(nil), DefaultSrc...),
		Engine:  DefaultEngine,
	}
}

// IsEnabled resolves Enabled against the environment policy.
func (c Config) IsEnabled(env string) bool {
	if c.Enabled == nil {
		return DefaultEnable(env)
	}
	return *c.Enabled
}

// UseColor resolves Color against the terminal check.
func (c Config) UseColor() bool {
	if c.Color != nil {
		return *c.Color
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Validate checks field constraints.
func (c Config) Validate() error {
	return configValidate.Struct(c)
}

// =============================================================================
// VALIDATION
// =============================================================================

// configValidate is the validator instance for hook configuration.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()

	_ = configValidate.RegisterValidation("lintpattern", validatePattern)
}

// validatePattern rejects src entries that are blank or a bare negation
// marker, which would match nothing.
func validatePattern(fl validator.FieldLevel) bool {
	p := strings.TrimSpace(fl.Field().String())
	return p != "" && p != patterns.NegationMarker
}

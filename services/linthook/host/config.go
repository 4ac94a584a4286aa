// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package host

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/linthook/services/linthook/globals"
)

// DefaultEnvironment is used when configuration names no environment.
const DefaultEnvironment = "development"

// Entity is a model or service declared in host configuration.
type Entity struct {
	Name   string `yaml:"name" validate:"required"`
	Global string `yaml:"globalId"`
}

// GlobalID implements globals.Entity.
func (e Entity) GlobalID() string {
	return e.Global
}

// EntityList is a registry of entities in declaration order.
type EntityList []Entity

// Entities implements globals.Registry.
func (l EntityList) Entities() []globals.Entity {
	out := make([]globals.Entity, len(l))
	for i, e := range l {
		out[i] = e
	}
	return out
}

// Config is the host application's configuration file.
//
// Example:
//
//	environment: development
//	appPath: .
//	globals: [sails, _, async]
//	models:
//	  - {name: user, globalId: User}
//	services:
//	  - {name: mailer, globalId: MailerService}
//	hooks:
//	  lint:
//	    format: stylish
//	    src: [., "!assets/**/*.js"]
type Config struct {
	// Environment is the runtime environment name. Default: "development".
	Environment string `yaml:"environment"`

	// AppPath is the application root. Relative paths are resolved against
	// the configuration file's directory. Default: that directory.
	AppPath string `yaml:"appPath"`

	// Globals are identifiers defined by the runtime.
	Globals []string `yaml:"globals"`

	// Models is the model registry.
	Models EntityList `yaml:"models" validate:"dive"`

	// Services is the service registry.
	Services EntityList `yaml:"services" validate:"dive"`

	// Hooks holds one configuration section per hook key, decoded by the
	// hook itself.
	Hooks map[string]yaml.Node `yaml:"hooks"`
}

var configValidate = validator.New()

// LoadConfig reads and validates a host configuration file.
//
// Inputs:
//
//	fs - Filesystem to read from.
//	path - Path of the YAML file.
//
// Outputs:
//
//	*Config - The configuration with defaults applied.
//	error - Read, parse or validation failure.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("host: reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("host: parsing config %s: %w", path, err)
	}
	if err := configValidate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("host: invalid config %s: %w", path, err)
	}

	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}

	base := filepath.Dir(path)
	switch {
	case cfg.AppPath == "":
		cfg.AppPath = base
	case !filepath.IsAbs(cfg.AppPath):
		cfg.AppPath = filepath.Join(base, cfg.AppPath)
	}
	return cfg, nil
}

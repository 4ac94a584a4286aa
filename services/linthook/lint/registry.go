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
	"sort"
	"sync"
)

// =============================================================================
// ENGINE SPEC
// =============================================================================

// EngineSpec describes how to build and configure one lint engine.
type EngineSpec struct {
	// Name identifies the engine in hook configuration (e.g., "eslint").
	Name string

	// Label is the display name used in log messages (e.g., "ESLint").
	Label string

	// ConfigName is the base name of the engine's configuration file.
	// Files named ConfigName and ConfigName.* are recognized.
	ConfigName string

	// Command is the default executable for subprocess engines.
	// Empty for in-process engines.
	Command string

	// Factory constructs the engine.
	Factory EngineFactory
}

// =============================================================================
// ENGINE REGISTRY
// =============================================================================

// EngineRegistry maps engine names to their specs.
//
// Thread Safety: Safe for concurrent use.
type EngineRegistry struct {
	mu    sync.RWMutex
	specs map[string]EngineSpec
}

// NewEngineRegistry creates an empty registry.
func NewEngineRegistry() *EngineRegistry {
	return &EngineRegistry{
		specs: make(map[string]EngineSpec),
	}
}

// Register adds or replaces the spec stored under spec.Name.
//
// Thread Safety: Safe for concurrent use.
func (r *EngineRegistry) Register(spec EngineSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[spec.Name] = spec
}

// Get returns the spec registered under name.
//
// Outputs:
//
//	EngineSpec - The spec, zero value if not found.
//	bool - False if no engine is registered under name.
//
// Thread Safety: Safe for concurrent use.
func (r *EngineRegistry) Get(name string) (EngineSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[name]
	return spec, ok
}

// Names returns the registered engine names in sorted order.
//
// Thread Safety: Safe for concurrent use.
func (r *EngineRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

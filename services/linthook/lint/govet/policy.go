// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package govet

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/linthook/services/linthook/lint"
)

// =============================================================================
// RULE POLICY
// =============================================================================

// RulePolicy decides the severity of each analyzer's diagnostics.
//
// Description:
//
//	Rules are matched by prefix. For example, "printf" matches "printf"
//	and "printf/wrapper". Diagnostics default to errors, the way go vet
//	fails a build on any finding.
//
// Thread Safety: Treat as immutable after creation.
type RulePolicy struct {
	// Disable are analyzers that are not run at all.
	Disable []string `yaml:"disable"`

	// Warn are analyzers whose diagnostics are reported as warnings.
	Warn []string `yaml:"warn"`
}

// Disabled returns true if the rule should not run.
func (p *RulePolicy) Disabled(rule string) bool {
	return matchesAny(rule, p.Disable)
}

// Severity returns the severity for a rule's diagnostics.
//
// Outputs:
//
//	lint.Severity - SeverityOff if disabled, SeverityWarning if listed in
//	                Warn, SeverityError otherwise.
func (p *RulePolicy) Severity(rule string) lint.Severity {
	if p.Disabled(rule) {
		return lint.SeverityOff
	}
	if matchesAny(rule, p.Warn) {
		return lint.SeverityWarning
	}
	return lint.SeverityError
}

func matchesAny(rule string, patterns []string) bool {
	rule = strings.ToLower(rule)
	for _, pattern := range patterns {
		if matchesRule(rule, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// matchesRule checks if a rule matches a pattern.
// Pattern matching is by prefix or exact match.
// Examples:
//   - "printf" matches "printf"
//   - "printf/wrapper" matches "printf" (hierarchy)
//   - "SA1000" matches "SA" (code prefix)
func matchesRule(rule, pattern string) bool {
	if rule == pattern {
		return true
	}
	if strings.HasPrefix(rule, pattern+"/") {
		return true
	}
	// The pattern must be followed by a digit for a code prefix match.
	if strings.HasPrefix(rule, pattern) && len(rule) > len(pattern) {
		next := rule[len(pattern)]
		if next >= '0' && next <= '9' {
			return true
		}
	}
	return false
}

// LoadPolicy reads a RulePolicy from a YAML (or JSON) file.
//
// An empty file yields the zero policy.
func LoadPolicy(fs afero.Fs, path string) (*RulePolicy, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("govet: reading config: %w", err)
	}
	policy := &RulePolicy{}
	if err := yaml.Unmarshal(data, policy); err != nil {
		return nil, fmt.Errorf("govet: parsing config %s: %w", path, err)
	}
	return policy, nil
}

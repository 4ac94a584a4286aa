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
	"github.com/AleutianAI/linthook/services/linthook/lint"
	"github.com/AleutianAI/linthook/services/linthook/lint/eslint"
	"github.com/AleutianAI/linthook/services/linthook/lint/govet"
)

// ESLintEngine runs the ESLint command line.
var ESLintEngine = lint.EngineSpec{
	Name:       "eslint",
	Label:      "ESLint",
	ConfigName: eslint.ConfigName,
	Command:    eslint.DefaultCommand,
	Factory:    eslint.New,
}

// GoVetEngine runs go vet analyzers in-process.
var GoVetEngine = lint.EngineSpec{
	Name:       "govet",
	Label:      "go vet",
	ConfigName: govet.ConfigName,
	Factory:    govet.New,
}

// DefaultEngines returns a registry holding ESLintEngine and GoVetEngine.
func DefaultEngines() *lint.EngineRegistry {
	r := lint.NewEngineRegistry()
	r.Register(ESLintEngine)
	r.Register(GoVetEngine)
	return r
}

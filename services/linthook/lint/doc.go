// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lint runs a lint engine once and maps its report to a Status.
//
// The package does not lint anything itself. An Engine (ESLint as a
// subprocess, go vet analyzers in-process, or a scripted fake in tests)
// produces a Report; the Runner turns that report into one of three
// outcomes and hands rendered output to a Reporter:
//
//	| Report                     | Status        | Reporter called |
//	|----------------------------|---------------|-----------------|
//	| ErrorCount > 0             | StatusError   | OnError         |
//	| ErrorCount 0, Warnings > 0 | StatusWarn    | OnWarn          |
//	| both 0, or nil report      | StatusSuccess | none            |
//
// StatusUnknown is never produced by a completed run. Callers use it to
// mean "no run has completed".
//
// # Faults
//
// Engine construction, execution and formatter lookup failures are returned
// by Runner.Run exactly as the engine produced them, so callers can match
// them with errors.Is and errors.As against the engine's own error types.
//
// # Usage
//
//	runner := lint.NewRunner(eslint.New, lint.WithLogger(logger))
//	status, err := runner.Run(ctx, lint.RunOptions{
//	    Patterns: []string{"."},
//	    Engine:   lint.EngineOptions{Dir: appPath, Globals: globals},
//	})
//
// # Thread Safety
//
// Runner and EngineRegistry are safe for concurrent use.
package lint

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package eslint runs the ESLint command line as a lint.Engine.
//
// The engine asks ESLint for its JSON format and renders output itself
// through package formatters, so every format name works the same way for
// every engine.
package eslint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/AleutianAI/linthook/services/linthook/lint"
	"github.com/AleutianAI/linthook/services/linthook/lint/formatters"
)

// DefaultCommand is run when EngineOptions.Command is empty.
const DefaultCommand = "eslint"

// ConfigName is the base name of ESLint's legacy configuration file.
const ConfigName = ".eslintrc"

// exitConfigError is ESLint's exit code for configuration problems and
// crashes. Exit code 1 only means lint errors were found.
const exitConfigError = 2

// =============================================================================
// ERRORS
// =============================================================================

// ErrEngineFailed indicates ESLint could not produce a report.
var ErrEngineFailed = errors.New("eslint: engine failed")

// EngineError carries the details of a failed ESLint invocation.
type EngineError struct {
	// Command is the executable that was run.
	Command string

	// ExitCode is the process exit code, or -1 if it never ran.
	ExitCode int

	// Stderr is ESLint's diagnostic output.
	Stderr string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	msg := fmt.Sprintf("eslint: %s failed (exit %d)", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + firstLine(stderr)
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrEngineFailed.
func (e *EngineError) Is(target error) bool {
	return target == ErrEngineFailed
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine runs ESLint as a subprocess.
//
// Thread Safety: Safe for concurrent use; each Execute starts its own process.
type Engine struct {
	opts    lint.EngineOptions
	command []string
}

// New constructs an ESLint engine. It satisfies lint.EngineFactory.
//
// Description:
//
//	Command may carry leading arguments (e.g., "npx eslint"). The executable
//	is not looked up until Execute, so a missing ESLint surfaces as an
//	EngineError from the run.
func New(opts lint.EngineOptions) (lint.Engine, error) {
	command := strings.Fields(opts.Command)
	if len(command) == 0 {
		command = []string{DefaultCommand}
	}
	return &Engine{opts: opts, command: command}, nil
}

// Args returns the command line arguments for linting patterns, excluding
// the executable.
func (e *Engine) Args(patterns []string) []string {
	args := append([]string(nil), e.command[1:]...)
	args = append(args, "--format", "json", "--no-error-on-unmatched-pattern")

	if e.opts.ConfigFile != "" {
		args = append(args, "--config", e.opts.ConfigFile)
	}

	globals := make([]string, 0, len(e.opts.Globals))
	for _, g := range e.opts.Globals {
		if g != "" {
			globals = append(globals, g)
		}
	}
	if len(globals) > 0 {
		args = append(args, "--global", strings.Join(globals, ","))
	}

	for _, p := range e.opts.IgnorePatterns {
		args = append(args, "--ignore-pattern", p)
	}

	// Patterns may start with "-"; keep them out of flag parsing.
	args = append(args, "--")
	return append(args, patterns...)
}

// Execute runs ESLint over patterns and parses its JSON report.
//
// Description:
//
//	ESLint exits 1 when it finds errors, which is a normal report. Exit 2,
//	or any failure without stdout, is an EngineError carrying stderr.
//
// Inputs:
//
//	ctx - Context for cancellation. The process is killed when it is done.
//	patterns - File, directory or glob patterns, relative to Dir.
//
// Outputs:
//
//	*lint.Report - The parsed report.
//	error - *EngineError, ctx.Err(), or a parse error.
func (e *Engine) Execute(ctx context.Context, patterns []string) (*lint.Report, error) {
	cmd := exec.CommandContext(ctx, e.command[0], e.Args(patterns)...)
	cmd.Dir = e.opts.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if exitCode == exitConfigError || stdout.Len() == 0 {
			return nil, &EngineError{
				Command:  e.command[0],
				ExitCode: exitCode,
				Stderr:   stderr.String(),
				Err:      err,
			}
		}
	}

	results, err := parseOutput(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return lint.NewReport(results), nil
}

// Formatter returns the named formatter from package formatters.
func (e *Engine) Formatter(name string) (lint.Formatter, error) {
	return formatters.Get(name, formatters.Options{Color: e.opts.Color})
}

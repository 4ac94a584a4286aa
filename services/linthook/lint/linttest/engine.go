// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package linttest provides a scripted lint engine for tests.
package linttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/AleutianAI/linthook/services/linthook/lint"
)

// Engine is a lint.Engine that returns a scripted report and records every
// call made to it.
//
// Thread Safety: Safe for concurrent use.
type Engine struct {
	// Report is returned by Execute.
	Report *lint.Report

	// FactoryErr is returned by the factory instead of the engine.
	FactoryErr error

	// ExecuteErr is returned by Execute.
	ExecuteErr error

	// FormatErr is returned by Formatter.
	FormatErr error

	// Output is what the formatter renders. When empty the formatter
	// renders "<format>: <n> file(s)".
	Output string

	mu       sync.Mutex
	options  []lint.EngineOptions
	patterns [][]string
	formats  []string
}

// NewEngine returns an engine that reports the given report.
func NewEngine(report *lint.Report) *Engine {
	return &Engine{Report: report}
}

// Factory returns an EngineFactory that records options and yields e.
func (e *Engine) Factory() lint.EngineFactory {
	return func(opts lint.EngineOptions) (lint.Engine, error) {
		e.mu.Lock()
		opts.Globals = append([]string(nil), opts.Globals...)
		opts.IgnorePatterns = append([]string(nil), opts.IgnorePatterns...)
		e.options = append(e.options, opts)
		e.mu.Unlock()

		if e.FactoryErr != nil {
			return nil, e.FactoryErr
		}
		return e, nil
	}
}

// Execute implements lint.Engine.
func (e *Engine) Execute(ctx context.Context, patterns []string) (*lint.Report, error) {
	e.mu.Lock()
	e.patterns = append(e.patterns, append([]string(nil), patterns...))
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.ExecuteErr != nil {
		return nil, e.ExecuteErr
	}
	return e.Report, nil
}

// Formatter implements lint.Engine.
func (e *Engine) Formatter(name string) (lint.Formatter, error) {
	e.mu.Lock()
	e.formats = append(e.formats, name)
	e.mu.Unlock()

	if e.FormatErr != nil {
		return nil, e.FormatErr
	}
	output := e.Output
	return func(results []lint.FileResult) string {
		if output != "" {
			return output
		}
		return fmt.Sprintf("%s: %d file(s)", name, len(results))
	}, nil
}

// Options returns the options passed to each factory call.
func (e *Engine) Options() []lint.EngineOptions {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]lint.EngineOptions(nil), e.options...)
}

// Patterns returns the patterns passed to each Execute call.
func (e *Engine) Patterns() [][]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]string(nil), e.patterns...)
}

// Formats returns the names passed to each Formatter call.
func (e *Engine) Formats() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.formats...)
}

// Recorder collects reporter output.
//
// Thread Safety: Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	texts []string
}

// Reporter returns a lint.Reporter that appends to r.
func (r *Recorder) Reporter() lint.Reporter {
	return func(text string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.texts = append(r.texts, text)
	}
}

// Calls returns the recorded texts in call order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

// Report builds a report with one file per entry holding the given counts.
func Report(errorCount, warningCount int) *lint.Report {
	var msgs []lint.Message
	for i := 0; i < errorCount; i++ {
		msgs = append(msgs, lint.Message{RuleID: "no-undef", Severity: lint.SeverityError, Message: "x is not defined", Line: i + 1, Column: 1})
	}
	for i := 0; i < warningCount; i++ {
		msgs = append(msgs, lint.Message{RuleID: "no-unused-vars", Severity: lint.SeverityWarning, Message: "y is defined but never used", Line: i + 1, Column: 5})
	}
	return lint.NewReport([]lint.FileResult{{FilePath: "api/controllers/UserController.js", Messages: msgs}})
}

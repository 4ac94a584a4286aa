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
	"context"
	"strconv"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the outcome of a lint run as seen by the host.
type Status int

const (
	// StatusUnknown means no run has completed.
	StatusUnknown Status = -1

	// StatusSuccess means a run completed with no errors and no warnings.
	StatusSuccess Status = 0

	// StatusError means a run completed and reported at least one error.
	StatusError Status = 1

	// StatusWarn means a run completed with warnings but no errors.
	StatusWarn Status = 2
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusWarn:
		return "warn"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// =============================================================================
// SEVERITY
// =============================================================================

// Severity is a per-message severity using ESLint's numbering.
type Severity int

const (
	// SeverityOff marks a message that carries no weight.
	SeverityOff Severity = 0

	// SeverityWarning counts towards Report.WarningCount.
	SeverityWarning Severity = 1

	// SeverityError counts towards Report.ErrorCount.
	SeverityError Severity = 2
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// =============================================================================
// REPORT
// =============================================================================

// Message is one finding in one file.
//
// Thread Safety: Immutable after creation.
type Message struct {
	// RuleID is the rule that fired. Empty for fatal parse errors.
	RuleID string `json:"ruleId"`

	// Severity is the message severity.
	Severity Severity `json:"severity"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Line is the 1-indexed line number. 0 when unknown.
	Line int `json:"line,omitempty"`

	// Column is the 1-indexed column number. 0 when unknown.
	Column int `json:"column,omitempty"`

	// EndLine is the last line of the finding, when the engine provides it.
	EndLine int `json:"endLine,omitempty"`

	// EndColumn is the end column of the finding, when the engine provides it.
	EndColumn int `json:"endColumn,omitempty"`

	// Fatal marks a parse or load failure rather than a rule violation.
	Fatal bool `json:"fatal,omitempty"`

	// Fixable is true when the engine can fix the finding automatically.
	Fixable bool `json:"-"`
}

// FileResult holds the findings for one file.
type FileResult struct {
	FilePath            string    `json:"filePath"`
	Messages            []Message `json:"messages"`
	ErrorCount          int       `json:"errorCount"`
	WarningCount        int       `json:"warningCount"`
	FixableErrorCount   int       `json:"fixableErrorCount"`
	FixableWarningCount int       `json:"fixableWarningCount"`
}

// Report is the result of one engine execution.
//
// Thread Safety: Immutable after creation by the engine.
type Report struct {
	Results             []FileResult
	ErrorCount          int
	WarningCount        int
	FixableErrorCount   int
	FixableWarningCount int
}

// NewReport builds a report from per-file results.
//
// Description:
//
//	Recomputes each file's counts from its messages, then totals them.
//	Engines that only know messages use this so counts never drift from
//	the findings they describe.
func NewReport(results []FileResult) *Report {
	report := &Report{Results: make([]FileResult, len(results))}
	for i, res := range results {
		res.ErrorCount, res.WarningCount = 0, 0
		res.FixableErrorCount, res.FixableWarningCount = 0, 0
		for _, msg := range res.Messages {
			switch msg.Severity {
			case SeverityError:
				res.ErrorCount++
				if msg.Fixable {
					res.FixableErrorCount++
				}
			case SeverityWarning:
				res.WarningCount++
				if msg.Fixable {
					res.FixableWarningCount++
				}
			}
		}
		report.Results[i] = res
		report.ErrorCount += res.ErrorCount
		report.WarningCount += res.WarningCount
		report.FixableErrorCount += res.FixableErrorCount
		report.FixableWarningCount += res.FixableWarningCount
	}
	return report
}

// =============================================================================
// ENGINE CAPABILITY
// =============================================================================

// Reporter receives rendered lint output.
type Reporter func(text string)

// Formatter renders per-file results as text.
type Formatter func(results []FileResult) string

// EngineOptions configures engine construction.
type EngineOptions struct {
	// Globals are identifiers the engine must treat as defined.
	Globals []string

	// IgnorePatterns are exclude globs, relative to Dir.
	IgnorePatterns []string

	// ConfigFile is an explicit configuration file. Empty means the engine
	// discovers configuration on its own.
	ConfigFile string

	// Dir is the directory patterns are resolved against.
	Dir string

	// Command is the executable for subprocess engines.
	Command string

	// Color enables ANSI styling in formatters that support it.
	Color bool
}

// Engine is a constructed lint engine.
type Engine interface {
	// Execute lints the files matched by patterns. A nil report with a nil
	// error is allowed and means nothing was reported.
	Execute(ctx context.Context, patterns []string) (*Report, error)

	// Formatter returns the renderer registered under name.
	Formatter(name string) (Formatter, error)
}

// EngineFactory constructs an engine from options.
type EngineFactory func(opts EngineOptions) (Engine, error)

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package formatters renders lint results in ESLint's output formats.
//
// Supported formats:
//
//	| Name    | Output                                         |
//	|---------|------------------------------------------------|
//	| stylish | Grouped by file, aligned columns, summary line |
//	| compact | One line per message, ESLint "compact" style   |
//	| unix    | file:line:col: message [Severity/rule]         |
//	| json    | ESLint JSON result array                       |
package formatters

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/AleutianAI/linthook/services/linthook/lint"
)

// ErrUnknownFormat is returned by Get for unregistered format names.
var ErrUnknownFormat = errors.New("formatters: unknown format")

// Options configures rendering.
type Options struct {
	// Color enables ANSI styling. Only stylish uses it.
	Color bool
}

type builder func(opts Options) lint.Formatter

var registry = map[string]builder{
	"stylish": stylish,
	"compact": func(Options) lint.Formatter { return compact },
	"unix":    func(Options) lint.Formatter { return unix },
	"json":    func(Options) lint.Formatter { return jsonFormat },
}

// Get returns the formatter registered under name.
//
// Outputs:
//
//	lint.Formatter - The formatter.
//	error - Wraps ErrUnknownFormat if name is not registered.
func Get(name string, opts Options) (lint.Formatter, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return build(opts), nil
}

// Names returns the registered format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// COMPACT / UNIX
// =============================================================================

func compact(results []lint.FileResult) string {
	var b strings.Builder
	total := 0
	for _, res := range results {
		for _, msg := range res.Messages {
			total++
			fmt.Fprintf(&b, "%s: line %d, col %d, %s - %s", res.FilePath, msg.Line, msg.Column, label(msg), msg.Message)
			if msg.RuleID != "" {
				fmt.Fprintf(&b, " (%s)", msg.RuleID)
			}
			b.WriteByte('\n')
		}
	}
	if total > 0 {
		fmt.Fprintf(&b, "\n%d %s", total, pluralize("problem", total))
	}
	return b.String()
}

func unix(results []lint.FileResult) string {
	var b strings.Builder
	total := 0
	for _, res := range results {
		for _, msg := range res.Messages {
			total++
			fmt.Fprintf(&b, "%s:%d:%d: %s [%s", res.FilePath, msg.Line, msg.Column, msg.Message, label(msg))
			if msg.RuleID != "" {
				fmt.Fprintf(&b, "/%s", msg.RuleID)
			}
			b.WriteString("]\n")
		}
	}
	if total > 0 {
		fmt.Fprintf(&b, "\n%d %s", total, pluralize("problem", total))
	}
	return b.String()
}

// =============================================================================
// JSON
// =============================================================================

func jsonFormat(results []lint.FileResult) string {
	if results == nil {
		results = []lint.FileResult{}
	}
	out := make([]lint.FileResult, len(results))
	for i, res := range results {
		if res.Messages == nil {
			res.Messages = []lint.Message{}
		}
		out[i] = res
	}
	data, err := json.Marshal(out)
	if err != nil {
		// FileResult holds only strings, ints and bools.
		return "[]"
	}
	return string(data)
}

// =============================================================================
// HELPERS
// =============================================================================

func label(msg lint.Message) string {
	if msg.Fatal || msg.Severity == lint.SeverityError {
		return "Error"
	}
	return "Warning"
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

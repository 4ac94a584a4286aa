// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package formatters

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/linthook/services/linthook/lint"
)

// palette holds the styles used by stylish. The zero palette renders plain
// text.
type palette struct {
	file    func(string) string
	dim     func(string) string
	error   func(string) string
	warning func(string) string
	summary func(errors int) func(string) string
}

func plainPalette() palette {
	id := func(s string) string { return s }
	return palette{
		file:    id,
		dim:     id,
		error:   id,
		warning: id,
		summary: func(int) func(string) string { return id },
	}
}

func colorPalette() palette {
	r := lipgloss.NewRenderer(os.Stderr)
	file := r.NewStyle().Underline(true)
	dim := r.NewStyle().Faint(true)
	red := r.NewStyle().Foreground(lipgloss.Color("1"))
	yellow := r.NewStyle().Foreground(lipgloss.Color("3"))
	return palette{
		file:    render(file),
		dim:     render(dim),
		error:   render(red),
		warning: render(yellow),
		summary: func(errors int) func(string) string {
			if errors > 0 {
				return render(red.Bold(true))
			}
			return render(yellow.Bold(true))
		},
	}
}

func render(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}

// stylish renders results grouped by file with aligned columns, in the
// layout of ESLint's default formatter. Clean runs render as "".
func stylish(opts Options) lint.Formatter {
	p := plainPalette()
	if opts.Color {
		p = colorPalette()
	}

	return func(results []lint.FileResult) string {
		var b strings.Builder
		var errors, warnings, fixableErrors, fixableWarnings int

		for _, res := range results {
			if len(res.Messages) == 0 {
				continue
			}
			errors += res.ErrorCount
			warnings += res.WarningCount
			fixableErrors += res.FixableErrorCount
			fixableWarnings += res.FixableWarningCount

			b.WriteString("\n")
			b.WriteString(p.file(res.FilePath))
			b.WriteString("\n")

			rows := make([][4]string, len(res.Messages))
			var width [4]int
			for i, msg := range res.Messages {
				sev := "warning"
				if msg.Fatal || msg.Severity == lint.SeverityError {
					sev = "error"
				}
				rows[i] = [4]string{
					strconv.Itoa(msg.Line) + ":" + strconv.Itoa(msg.Column),
					sev,
					strings.TrimSuffix(msg.Message, "."),
					msg.RuleID,
				}
				for c, cell := range rows[i] {
					width[c] = max(width[c], len(cell))
				}
			}

			for _, row := range rows {
				sevStyle := p.warning
				if row[1] == "error" {
					sevStyle = p.error
				}
				line := "  " + p.dim(padLeft(row[0], width[0])) +
					"  " + sevStyle(padRight(row[1], width[1])) +
					"  " + padRight(row[2], width[2]) +
					"  " + p.dim(row[3])
				b.WriteString(strings.TrimRight(line, " "))
				b.WriteString("\n")
			}
		}

		total := errors + warnings
		if total == 0 {
			return ""
		}

		summary := p.summary(errors)
		fmt.Fprintf(&b, "\n%s\n", summary(fmt.Sprintf("✖ %d %s (%d %s, %d %s)",
			total, pluralize("problem", total),
			errors, pluralize("error", errors),
			warnings, pluralize("warning", warnings))))

		if fixableErrors > 0 || fixableWarnings > 0 {
			fmt.Fprintf(&b, "%s\n", summary(fmt.Sprintf("  %d %s and %d %s potentially fixable with the `--fix` option.",
				fixableErrors, pluralize("error", fixableErrors),
				fixableWarnings, pluralize("warning", fixableWarnings))))
		}

		return b.String()
	}
}

func padLeft(s string, width int) string {
	if n := width - len(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

func padRight(s string, width int) string {
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package eslint

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/AleutianAI/linthook/services/linthook/lint"
)

// eslintResult is one element of ESLint's --format json output.
type eslintResult struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	RuleID    *string    `json:"ruleId"`
	Severity  int        `json:"severity"`
	Message   string     `json:"message"`
	Line      int        `json:"line"`
	Column    int        `json:"column"`
	EndLine   int        `json:"endLine"`
	EndColumn int        `json:"endColumn"`
	Fatal     bool       `json:"fatal"`
	Fix       *eslintFix `json:"fix"`
}

type eslintFix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

// parseOutput converts ESLint JSON output into file results.
//
// Counts are not taken from ESLint; lint.NewReport recomputes them from
// the messages.
func parseOutput(output []byte) ([]lint.FileResult, error) {
	if len(bytes.TrimSpace(output)) == 0 {
		return nil, nil
	}

	var raw []eslintResult
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, fmt.Errorf("eslint: parsing JSON output: %w", err)
	}

	results := make([]lint.FileResult, 0, len(raw))
	for _, r := range raw {
		res := lint.FileResult{
			FilePath: r.FilePath,
			Messages: make([]lint.Message, 0, len(r.Messages)),
		}
		for _, m := range r.Messages {
			msg := lint.Message{
				Severity:  mapSeverity(m.Severity),
				Message:   m.Message,
				Line:      m.Line,
				Column:    m.Column,
				EndLine:   m.EndLine,
				EndColumn: m.EndColumn,
				Fatal:     m.Fatal,
				Fixable:   m.Fix != nil,
			}
			if m.RuleID != nil {
				msg.RuleID = *m.RuleID
			}
			if msg.Fatal {
				msg.Severity = lint.SeverityError
			}
			res.Messages = append(res.Messages, msg)
		}
		results = append(results, res)
	}
	return results, nil
}

// mapSeverity maps ESLint's numeric severity.
func mapSeverity(severity int) lint.Severity {
	switch severity {
	case 2:
		return lint.SeverityError
	case 1:
		return lint.SeverityWarning
	default:
		return lint.SeverityOff
	}
}

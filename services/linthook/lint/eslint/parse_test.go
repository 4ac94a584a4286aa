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
	"testing"

	"github.com/AleutianAI/linthook/services/linthook/lint"
)

func TestParseOutput(t *testing.T) {
	t.Run("valid output with issues", func(t *testing.T) {
		// Real ESLint JSON output format
		output := []byte(`[
			{
				"filePath": "/path/to/file.js",
				"messages": [
					{
						"ruleId": "no-unused-vars",
						"severity": 2,
						"message": "'foo' is defined but never used.",
						"line": 5,
						"column": 7,
						"endLine": 5,
						"endColumn": 10
					},
					{
						"ruleId": "eqeqeq",
						"severity": 1,
						"message": "Expected '===' and instead saw '=='.",
						"line": 10,
						"column": 5,
						"fix": {
							"range": [100, 102],
							"text": "==="
						}
					}
				],
				"errorCount": 1,
				"warningCount": 1,
				"fixableErrorCount": 0,
				"fixableWarningCount": 1
			}
		]`)

		results, err := parseOutput(output)
		if err != nil {
			t.Fatalf("parseOutput: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Expected 1 result, got %d", len(results))
		}

		msgs := results[0].Messages
		if len(msgs) != 2 {
			t.Fatalf("Expected 2 messages, got %d", len(msgs))
		}
		if msgs[0].Severity != lint.SeverityError {
			t.Errorf("Message 0 Severity = %v, want error", msgs[0].Severity)
		}
		if msgs[0].RuleID != "no-unused-vars" {
			t.Errorf("Message 0 RuleID = %q, want no-unused-vars", msgs[0].RuleID)
		}
		if msgs[0].EndColumn != 10 {
			t.Errorf("Message 0 EndColumn = %d, want 10", msgs[0].EndColumn)
		}
		if msgs[1].Severity != lint.SeverityWarning {
			t.Errorf("Message 1 Severity = %v, want warning", msgs[1].Severity)
		}
		if !msgs[1].Fixable {
			t.Error("Message 1 should be fixable")
		}
	})

	t.Run("multiple files", func(t *testing.T) {
		output := []byte(`[
			{
				"filePath": "file1.js",
				"messages": [{"ruleId": "rule1", "severity": 1, "message": "msg1", "line": 1, "column": 1}]
			},
			{
				"filePath": "file2.js",
				"messages": [{"ruleId": "rule2", "severity": 2, "message": "msg2", "line": 2, "column": 2}]
			}
		]`)

		results, err := parseOutput(output)
		if err != nil {
			t.Fatalf("parseOutput: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("Expected 2 results, got %d", len(results))
		}
		if results[0].FilePath != "file1.js" {
			t.Errorf("Result 0 FilePath = %q, want file1.js", results[0].FilePath)
		}
		if results[1].FilePath != "file2.js" {
			t.Errorf("Result 1 FilePath = %q, want file2.js", results[1].FilePath)
		}

		report := lint.NewReport(results)
		if report.ErrorCount != 1 || report.WarningCount != 1 {
			t.Errorf("counts = %d errors, %d warnings, want 1 and 1", report.ErrorCount, report.WarningCount)
		}
	})

	t.Run("fatal parse error has null rule", func(t *testing.T) {
		output := []byte(`[{"filePath": "bad.js", "messages": [
			{"ruleId": null, "fatal": true, "severity": 2, "message": "Parsing error: Unexpected token )", "line": 3, "column": 9}
		]}]`)

		results, err := parseOutput(output)
		if err != nil {
			t.Fatalf("parseOutput: %v", err)
		}
		msg := results[0].Messages[0]
		if msg.RuleID != "" {
			t.Errorf("RuleID = %q, want empty", msg.RuleID)
		}
		if !msg.Fatal || msg.Severity != lint.SeverityError {
			t.Errorf("got Fatal=%v Severity=%v, want fatal error", msg.Fatal, msg.Severity)
		}
	})

	t.Run("empty messages", func(t *testing.T) {
		results, err := parseOutput([]byte(`[{"filePath": "clean.js", "messages": []}]`))
		if err != nil {
			t.Fatalf("parseOutput: %v", err)
		}
		if len(results) != 1 || len(results[0].Messages) != 0 {
			t.Errorf("Expected 1 clean result, got %+v", results)
		}
	})

	t.Run("empty output", func(t *testing.T) {
		results, err := parseOutput([]byte("  \n"))
		if err != nil {
			t.Fatalf("parseOutput: %v", err)
		}
		if results != nil {
			t.Errorf("Expected nil results, got %+v", results)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := parseOutput([]byte("Oops! Something went wrong"))
		if err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})
}

func TestMapSeverity(t *testing.T) {
	tests := []struct {
		severity int
		want     lint.Severity
	}{
		{2, lint.SeverityError},
		{1, lint.SeverityWarning},
		{0, lint.SeverityOff},
	}

	for _, tt := range tests {
		got := mapSeverity(tt.severity)
		if got != tt.want {
			t.Errorf("mapSeverity(%d) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

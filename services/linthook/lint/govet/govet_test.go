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
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/linthook/services/linthook/lint"
	"github.com/AleutianAI/linthook/services/linthook/lint/formatters"
)

const printfBug = `package vetme

import "fmt"

func Greet(name string) string {
	return fmt.Sprintf("hello %d", name)
}
`

// writeModule creates a Go module in a temp dir from path -> content.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}

	dir := t.TempDir()
	files["go.mod"] = "module example.com/vetme\n\ngo 1.22\n"
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestExecute_ReportsDiagnostics(t *testing.T) {
	dir := writeModule(t, map[string]string{"greet.go": printfBug})

	engine, err := New(lint.EngineOptions{Dir: dir, Globals: []string{"ignored"}})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), []string{"."})
	require.NoError(t, err)

	require.Equal(t, 1, report.ErrorCount)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "greet.go", filepath.Base(report.Results[0].FilePath))

	msg := report.Results[0].Messages[0]
	assert.Equal(t, "printf", msg.RuleID)
	assert.Equal(t, lint.SeverityError, msg.Severity)
	assert.Equal(t, 6, msg.Line)
	assert.Contains(t, msg.Message, "%d")
}

func TestExecute_IgnorePatterns(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"greet.go":   printfBug,
		"gen/gen.go": "package gen\n\nimport \"fmt\"\n\nfunc F() string { return fmt.Sprintf(\"%d\", \"x\") }\n",
	})

	engine, err := New(lint.EngineOptions{Dir: dir, IgnorePatterns: []string{"gen/**"}})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), []string{"."})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "greet.go", filepath.Base(report.Results[0].FilePath))
}

func TestExecute_DiscoveredConfigDowngrades(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"greet.go":   printfBug,
		".govet.yml": "warn: [printf]\n",
	})

	engine, err := New(lint.EngineOptions{Dir: dir})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), []string{"."})
	require.NoError(t, err)

	assert.Equal(t, 0, report.ErrorCount)
	assert.Equal(t, 1, report.WarningCount)
}

func TestExecute_ExplicitConfigDisables(t *testing.T) {
	dir := writeModule(t, map[string]string{"greet.go": printfBug})
	config := filepath.Join(t.TempDir(), ".govet")
	require.NoError(t, os.WriteFile(config, []byte("disable: [printf]\n"), 0o644))

	engine, err := New(lint.EngineOptions{Dir: dir, ConfigFile: config})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), []string{"."})
	require.NoError(t, err)

	assert.Equal(t, 0, report.ErrorCount)
	assert.Equal(t, 0, report.WarningCount)
}

func TestExecute_TypeErrors(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"bad.go": "package vetme\n\nvar X int = \"not an int\"\n",
	})

	engine, err := New(lint.EngineOptions{Dir: dir})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), []string{"."})
	require.NoError(t, err)

	require.GreaterOrEqual(t, report.ErrorCount, 1)
	msg := report.Results[0].Messages[0]
	assert.Equal(t, TypecheckRule, msg.RuleID)
	assert.True(t, msg.Fatal)
	assert.Equal(t, 3, msg.Line)
}

func TestNewWithFs_BadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/.govet", []byte("warn: [unclosed"), 0o644))

	_, err := NewWithFs(fs)(lint.EngineOptions{Dir: "/app"})
	assert.Error(t, err)

	_, err = NewWithFs(fs)(lint.EngineOptions{Dir: "/app", ConfigFile: "/missing/.govet"})
	assert.Error(t, err)
}

func TestExpand(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/app/api/controllers", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/app/main.go", nil, 0o644))

	engine, err := NewWithFs(fs)(lint.EngineOptions{Dir: "/app"})
	require.NoError(t, err)
	e := engine.(*Engine)

	got := e.expand([]string{".", "./", "api", "./api/controllers", "main.go", "./cmd/...", "example.com/x", "/app/api"})
	want := []string{"./...", "./...", "./api/...", "./api/controllers/...", "main.go", "./cmd/...", "example.com/x", "/app/api/..."}
	assert.Equal(t, want, got)
}

func TestAnalyzers_Disable(t *testing.T) {
	e := &Engine{policy: &RulePolicy{Disable: []string{"printf", "composites"}}}

	for _, a := range e.analyzers() {
		assert.NotEqual(t, "printf", a.Name)
		assert.NotEqual(t, "composites", a.Name)
	}
	assert.Len(t, e.analyzers(), len(Analyzers)-2)
}

func TestIgnored(t *testing.T) {
	e := &Engine{opts: lint.EngineOptions{Dir: "/app", IgnorePatterns: []string{"assets/**/*.go", "app.go"}}}

	assert.True(t, e.ignored("/app/assets/js/x.go"))
	assert.True(t, e.ignored("/app/sub/app.go"))
	assert.False(t, e.ignored("/app/api/user.go"))
	assert.False(t, e.ignored("/elsewhere/assets/js/x.go"))
}

func TestSplitPos(t *testing.T) {
	tests := []struct {
		pos       string
		file      string
		line, col int
	}{
		{"/app/a.go:3:9", "/app/a.go", 3, 9},
		{"/app/a.go:3", "/app/a.go", 3, 0},
		{"/app/a.go", "/app/a.go", 0, 0},
		{"C:/app/a.go:3:9", "C:/app/a.go", 3, 9},
		{"-", "", 0, 0},
		{"", "", 0, 0},
	}

	for _, tt := range tests {
		file, line, col := splitPos(tt.pos)
		if file != tt.file || line != tt.line || col != tt.col {
			t.Errorf("splitPos(%q) = %q, %d, %d, want %q, %d, %d", tt.pos, file, line, col, tt.file, tt.line, tt.col)
		}
	}
}

func TestCollect(t *testing.T) {
	dup := lint.Message{RuleID: "printf", Message: "m", Line: 2, Column: 1}
	results := collect(map[string][]lint.Message{
		"/b.go": {dup, {RuleID: "shift", Line: 1}, dup},
		"/a.go": {{RuleID: "assign", Line: 4}},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "/a.go", results[0].FilePath)
	assert.Equal(t, "/b.go", results[1].FilePath)
	assert.Len(t, results[1].Messages, 2)
	assert.Equal(t, "shift", results[1].Messages[0].RuleID)
}

func TestFormatter(t *testing.T) {
	e := &Engine{}

	_, err := e.Formatter("unix")
	assert.NoError(t, err)

	_, err = e.Formatter("nope")
	assert.ErrorIs(t, err, formatters.ErrUnknownFormat)
}

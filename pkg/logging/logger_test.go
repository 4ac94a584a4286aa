// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Level Tests
// =============================================================================

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(99), slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.toSlogLevel(), "level %d", tt.level)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"VERBOSE", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "ParseLevel(%q)", tt.input)
			continue
		}
		require.NoError(t, err, "ParseLevel(%q)", tt.input)
		assert.Equal(t, tt.want, got, "ParseLevel(%q)", tt.input)
	}
}

// =============================================================================
// Logger Tests
// =============================================================================

func TestNew_WritesText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Service: "linthook"})

	logger.Info("ESLint start...", "run_id", "abc")

	out := buf.String()
	assert.Contains(t, out, "ESLint start...")
	assert.Contains(t, out, "service=linthook")
	assert.Contains(t, out, "run_id=abc")
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, JSON: true})

	logger.Warn("careful")

	assert.True(t, strings.HasPrefix(buf.String(), "{"), "expected JSON output, got %q", buf.String())
	assert.Contains(t, buf.String(), `"msg":"careful"`)
}

func TestNew_QuietMode(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Quiet: true})

	logger.Error("hidden")

	assert.Empty(t, buf.String())
}

func TestLogger_LevelFiltering(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Level: LevelInfo, Exporter: exporter})

	logger.Debug("verbose detail")
	logger.Info("kept")

	assert.Equal(t, []string{"kept"}, exporter.Messages())
}

func TestLogger_With_CarriesAttrsToExporter(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Level: LevelDebug, Exporter: exporter, Service: "svc"})

	child := logger.With("hook", "lint")
	child.Debug("hello", slog.Int("count", 2))

	entries := exporter.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, LevelDebug, entries[0].Level)
	assert.Equal(t, "svc", entries[0].Service)
	assert.Equal(t, "lint", entries[0].Attrs["hook"])
	assert.EqualValues(t, 2, entries[0].Attrs["count"])
}

func TestLogger_Close(t *testing.T) {
	assert.NoError(t, New(Config{Quiet: true}).Close())
	assert.NoError(t, New(Config{Quiet: true, Exporter: NewBufferedExporter()}).Close())
}

func TestLogger_ConcurrentUse(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Quiet: true, Exporter: exporter})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Info("msg", "n", n)
		}(i)
	}
	wg.Wait()

	assert.Len(t, exporter.Entries(), 20)
}

func TestArgsToMap(t *testing.T) {
	got := argsToMap([]any{"a", 1, slog.String("b", "x"), "dangling"})
	assert.Equal(t, map[string]any{"a": 1, "b": "x"}, got)
}

// =============================================================================
// Exporter Tests
// =============================================================================

func TestBufferedExporter_Entries_ReturnsCopy(t *testing.T) {
	exporter := NewBufferedExporter()
	require.NoError(t, exporter.Export(context.Background(), LogEntry{Message: "one"}))

	entries := exporter.Entries()
	entries[0].Message = "changed"

	assert.Equal(t, "one", exporter.Entries()[0].Message)
}

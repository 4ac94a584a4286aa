// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package patterns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name        string
		src         []string
		wantInclude []string
		wantExclude []string
	}{
		{
			name:        "nil input",
			src:         nil,
			wantInclude: []string{},
			wantExclude: []string{},
		},
		{
			name: "default sails layout",
			src: []string{
				".",
				"!assets/**/*.js",
				"!tasks/**/*.js",
				"!Gruntfile.js",
				"!app.js",
				"!api/responses/**/*.js",
			},
			wantInclude: []string{"."},
			wantExclude: []string{
				"assets/**/*.js",
				"tasks/**/*.js",
				"Gruntfile.js",
				"app.js",
				"api/responses/**/*.js",
			},
		},
		{
			name:        "whitespace is trimmed before the marker check",
			src:         []string{"  !vendor/** ", " lib ", "api"},
			wantInclude: []string{"lib", "api"},
			wantExclude: []string{"vendor/**"},
		},
		{
			name:        "only one marker is stripped",
			src:         []string{"!!double"},
			wantInclude: []string{},
			wantExclude: []string{"!double"},
		},
		{
			name:        "marker inside a pattern is not a negation",
			src:         []string{"a!b"},
			wantInclude: []string{"a!b"},
			wantExclude: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.src)
			assert.Equal(t, tt.wantInclude, got.Include)
			assert.Equal(t, tt.wantExclude, got.Exclude)
		})
	}
}

// Every entry lands in exactly one partition and relative order is kept.
func TestSplit_Partitions(t *testing.T) {
	src := []string{"a", "!b", "c", " !d", "e ", "!f", "", "!"}
	got := Split(src)

	assert.Equal(t, len(src), len(got.Include)+len(got.Exclude))

	var inc, exc []string
	for _, p := range src {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, "!") {
			exc = append(exc, p[1:])
		} else {
			inc = append(inc, p)
		}
	}
	assert.Equal(t, inc, got.Include)
	assert.Equal(t, exc, got.Exclude)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"assets/**/*.js", "assets/js/app.js", true},
		{"assets/**/*.js", "assets/app.js", true},
		{"assets/**/*.js", "api/assets/app.js", false},
		{"Gruntfile.js", "Gruntfile.js", true},
		{"Gruntfile.js", "sub/Gruntfile.js", true},
		{"app.js", "api/app.json", false},
		{"api/responses", "api/responses/ok.js", true},
		{"./vendor/", "vendor/x/y.go", true},
		{"*_test.go", "pkg/a_test.go", true},
		{"[", "x", false},
		{"", "x", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.pattern, tt.path), "Match(%q, %q)", tt.pattern, tt.path)
	}
}

func TestMatchAny(t *testing.T) {
	excludes := []string{"assets/**/*.js", "app.js"}

	assert.True(t, MatchAny("app.js", excludes))
	assert.True(t, MatchAny("assets/a.js", excludes))
	assert.False(t, MatchAny("api/controllers/a.js", excludes))
	assert.False(t, MatchAny("anything", nil))
}

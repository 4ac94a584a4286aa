// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package patterns splits a mixed source list into include and exclude
// globs and matches paths against exclude globs.
//
// A leading "!" marks an exclusion, following the convention of glob tools
// and .gitignore-style ignore files:
//
//	set := patterns.Split([]string{".", "!assets/**/*.js", " !app.js "})
//	// set.Include == []string{"."}
//	// set.Exclude == []string{"assets/**/*.js", "app.js"}
package patterns

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// NegationMarker prefixes a pattern that excludes rather than includes.
const NegationMarker = "!"

// Set is the include/exclude partition of a source list.
type Set struct {
	// Include holds patterns to lint, in input order.
	Include []string

	// Exclude holds patterns to skip with the negation marker removed,
	// in input order.
	Exclude []string
}

// Split partitions src into include and exclude patterns.
//
// Description:
//
//	Each entry is trimmed of surrounding whitespace. Entries whose trimmed
//	text starts with NegationMarker go to Exclude with exactly one marker
//	removed; every other entry goes to Include. Relative order is kept in
//	both partitions and every input entry lands in exactly one of them.
//
// Inputs:
//
//	src - The mixed, ordered source list. May be nil.
//
// Outputs:
//
//	Set - Non-nil Include and Exclude slices.
func Split(src []string) Set {
	set := Set{
		Include: make([]string, 0, len(src)),
		Exclude: make([]string, 0),
	}
	for _, p := range src {
		trimmed := strings.TrimSpace(p)
		if strings.HasPrefix(trimmed, NegationMarker) {
			set.Exclude = append(set.Exclude, strings.TrimPrefix(trimmed, NegationMarker))
			continue
		}
		set.Include = append(set.Include, trimmed)
	}
	return set
}

// Match reports whether relPath is covered by an exclude pattern.
//
// Description:
//
//	Follows ignore-file semantics. A pattern without a slash matches any
//	single path element at any depth ("Gruntfile.js" excludes
//	"sub/Gruntfile.js"). A pattern with a slash is anchored at the base
//	directory and supports "**". A pattern matching a directory also
//	excludes everything below it. Invalid patterns never match.
//
// Inputs:
//
//	pattern - Exclude pattern without the negation marker.
//	relPath - Path relative to the lint base directory.
//
// Outputs:
//
//	bool - True if relPath is excluded by pattern.
func Match(pattern, relPath string) bool {
	pattern = normalize(pattern)
	relPath = normalize(relPath)
	if pattern == "" || relPath == "" {
		return false
	}

	if !strings.Contains(pattern, "/") {
		for _, elem := range strings.Split(relPath, "/") {
			if ok, _ := doublestar.Match(pattern, elem); ok {
				return true
			}
		}
		return false
	}

	if ok, _ := doublestar.Match(pattern, relPath); ok {
		return true
	}
	ok, _ := doublestar.Match(path.Join(pattern, "**"), relPath)
	return ok
}

// MatchAny returns true if relPath matches any of the patterns.
func MatchAny(relPath string, patterns []string) bool {
	for _, p := range patterns {
		if Match(p, relPath) {
			return true
		}
	}
	return false
}

// normalize converts to forward slashes and drops "./" and "/" prefixes and
// a trailing slash.
func normalize(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.TrimPrefix(p, "/")
	return strings.TrimSuffix(p, "/")
}

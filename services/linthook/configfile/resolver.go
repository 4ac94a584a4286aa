// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package configfile locates lint engine configuration files and decides
// whether a project's own configuration should win over a bundled default.
//
// The project always wins: a bundled default is only offered when the
// project directory has no configuration file of its own.
package configfile

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Resolver finds configuration files named Name or Name.* in a directory.
//
// Thread Safety: Safe for concurrent use if Fs is.
type Resolver struct {
	// Fs is the filesystem to search. Nil means the OS filesystem.
	Fs afero.Fs

	// Name is the primary file name, e.g. ".eslintrc". Alternates are
	// matched by the pattern Name + ".*" (".eslintrc.json", ".eslintrc.yml").
	Name string
}

// NewResolver creates a resolver over the OS filesystem.
func NewResolver(name string) *Resolver {
	return &Resolver{Fs: afero.NewOsFs(), Name: name}
}

// Find returns the configuration file in dir, if any.
//
// Description:
//
//	Looks in dir only, never in subdirectories. Candidates are the primary
//	name first, then entries matching Name.* in lexical order. The first
//	candidate that exists and is not a directory wins. Unreadable
//	directories behave as if empty.
//
// Inputs:
//
//	dir - Directory to search. Empty means the working directory.
//
// Outputs:
//
//	string - Path of the chosen file (dir joined with the file name).
//	bool - False when no candidate exists.
func (r *Resolver) Find(dir string) (string, bool) {
	fs := r.fs()
	if dir == "" {
		dir = "."
	}

	primary := filepath.Join(dir, r.Name)
	if isFile(fs, primary) {
		return primary, true
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", false
	}

	alternate := r.Name + ".*"
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(alternate, entry.Name()); ok {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}

// Effective decides which configuration file the lint engine is told about.
//
// Description:
//
//	If projectDir has its own configuration file, Effective returns absent
//	so the engine discovers the project's file itself. Otherwise it returns
//	whatever Find(fallbackDir) yields, which may also be absent.
//
// Inputs:
//
//	projectDir - The application root.
//	fallbackDir - Directory holding the bundled default configuration.
//
// Outputs:
//
//	string - Explicit configuration file to pass to the engine.
//	bool - False when the engine should use its own discovery.
func (r *Resolver) Effective(projectDir, fallbackDir string) (string, bool) {
	if _, ok := r.Find(projectDir); ok {
		return "", false
	}
	if fallbackDir == "" {
		return "", false
	}
	return r.Find(fallbackDir)
}

func (r *Resolver) fs() afero.Fs {
	if r.Fs == nil {
		return afero.NewOsFs()
	}
	return r.Fs
}

// isFile reports whether path exists and is not a directory.
func isFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeDir == 0
}

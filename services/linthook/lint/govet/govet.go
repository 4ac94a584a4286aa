// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package govet runs go vet analyzers in-process as a lint.Engine.
//
// Patterns are Go package patterns relative to EngineOptions.Dir. A
// directory pattern such as "." or "api" expands to everything below it.
// Globals do not apply to Go and are ignored.
//
// An optional YAML configuration file selects analyzers:
//
//	disable: [composites]
//	warn: [shift, unusedresult]
package govet

import (
	"context"
	"fmt"
	"go/token"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"golang.org/x/tools/go/packages"

	"github.com/AleutianAI/linthook/services/linthook/configfile"
	"github.com/AleutianAI/linthook/services/linthook/lint"
	"github.com/AleutianAI/linthook/services/linthook/lint/formatters"
	"github.com/AleutianAI/linthook/services/linthook/patterns"
)

// ConfigName is the base name of the engine's configuration file.
const ConfigName = ".govet"

// TypecheckRule is the rule id of package load and type errors.
const TypecheckRule = "typecheck"

// Analyzers is the default analyzer suite, a subset of go vet's.
var Analyzers = []*analysis.Analyzer{
	assign.Analyzer,
	atomic.Analyzer,
	bools.Analyzer,
	composite.Analyzer,
	copylock.Analyzer,
	errorsas.Analyzer,
	httpresponse.Analyzer,
	loopclosure.Analyzer,
	lostcancel.Analyzer,
	nilfunc.Analyzer,
	printf.Analyzer,
	shift.Analyzer,
	stdmethods.Analyzer,
	structtag.Analyzer,
	tests.Analyzer,
	unmarshal.Analyzer,
	unreachable.Analyzer,
	unusedresult.Analyzer,
}

// Engine runs analyzers over packages loaded with go/packages.
//
// Thread Safety: Safe for concurrent use.
type Engine struct {
	opts   lint.EngineOptions
	fs     afero.Fs
	policy *RulePolicy
}

// New constructs an engine over the OS filesystem. It satisfies
// lint.EngineFactory.
func New(opts lint.EngineOptions) (lint.Engine, error) {
	return NewWithFs(afero.NewOsFs())(opts)
}

// NewWithFs returns a factory that reads configuration through fs.
//
// Description:
//
//	The policy comes from opts.ConfigFile when set, otherwise from a
//	.govet file discovered in opts.Dir. A missing configuration means every
//	analyzer runs and reports errors. Source is always loaded from disk.
func NewWithFs(fs afero.Fs) lint.EngineFactory {
	return func(opts lint.EngineOptions) (lint.Engine, error) {
		path := opts.ConfigFile
		if path == "" {
			path, _ = (&configfile.Resolver{Fs: fs, Name: ConfigName}).Find(opts.Dir)
		}

		policy := &RulePolicy{}
		if path != "" {
			var err error
			if policy, err = LoadPolicy(fs, path); err != nil {
				return nil, err
			}
		}

		return &Engine{opts: opts, fs: fs, policy: policy}, nil
	}
}

// Execute loads the packages matched by pats and runs the enabled analyzers.
//
// Description:
//
//	Load and type errors become fatal "typecheck" messages on the file
//	they point at; analyzers are skipped for those packages. Diagnostics in
//	files matching an ignore pattern are dropped.
//
// Outputs:
//
//	*lint.Report - Findings grouped by file, files in lexical order.
//	error - A failure to run the go command or an analyzer.
func (e *Engine) Execute(ctx context.Context, pats []string) (*lint.Report, error) {
	cfg := &packages.Config{
		Mode:    packages.LoadAllSyntax,
		Context: ctx,
		Dir:     e.opts.Dir,
		Tests:   true,
	}
	pkgs, err := packages.Load(cfg, e.expand(pats)...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("govet: loading packages: %w", err)
	}

	files := make(map[string][]lint.Message)
	add := func(file string, msg lint.Message) {
		if file == "" || e.ignored(file) {
			return
		}
		files[file] = append(files[file], msg)
	}

	var healthy []*packages.Package
	for _, pkg := range pkgs {
		if len(pkg.Errors) == 0 {
			healthy = append(healthy, pkg)
			continue
		}
		for _, perr := range pkg.Errors {
			file, line, col := splitPos(perr.Pos)
			if file == "" && len(pkg.GoFiles) > 0 {
				file = pkg.GoFiles[0]
			}
			add(file, lint.Message{
				RuleID:   TypecheckRule,
				Severity: lint.SeverityError,
				Message:  perr.Msg,
				Line:     line,
				Column:   col,
				Fatal:    true,
			})
		}
	}

	if analyzers := e.analyzers(); len(healthy) > 0 && len(analyzers) > 0 {
		graph, err := checker.Analyze(analyzers, healthy, nil)
		if err != nil {
			return nil, fmt.Errorf("govet: %w", err)
		}
		for _, act := range graph.Roots {
			if act.Err != nil {
				return nil, fmt.Errorf("govet: %s on %s: %w", act.Analyzer.Name, act.Package.PkgPath, act.Err)
			}
			severity := e.policy.Severity(act.Analyzer.Name)
			for _, d := range act.Diagnostics {
				pos := act.Package.Fset.Position(d.Pos)
				msg := lint.Message{
					RuleID:   act.Analyzer.Name,
					Severity: severity,
					Message:  d.Message,
					Line:     pos.Line,
					Column:   pos.Column,
					Fixable:  len(d.SuggestedFixes) > 0,
				}
				if d.End.IsValid() {
					end := act.Package.Fset.Position(d.End)
					msg.EndLine, msg.EndColumn = end.Line, end.Column
				}
				add(pos.Filename, msg)
			}
		}
	}

	return lint.NewReport(collect(files)), nil
}

// Formatter returns the named formatter from package formatters.
func (e *Engine) Formatter(name string) (lint.Formatter, error) {
	return formatters.Get(name, formatters.Options{Color: e.opts.Color})
}

// analyzers returns the suite minus disabled analyzers.
func (e *Engine) analyzers() []*analysis.Analyzer {
	enabled := make([]*analysis.Analyzer, 0, len(Analyzers))
	for _, a := range Analyzers {
		if !e.policy.Disabled(a.Name) {
			enabled = append(enabled, a)
		}
	}
	return enabled
}

// expand turns directory patterns into recursive package patterns.
func (e *Engine) expand(pats []string) []string {
	out := make([]string, 0, len(pats))
	for _, p := range pats {
		switch {
		case p == "" || strings.Contains(p, "..."):
			out = append(out, p)
		case filepath.Clean(p) == ".":
			out = append(out, "./...")
		case e.isDir(p):
			if filepath.IsAbs(p) {
				out = append(out, filepath.ToSlash(filepath.Clean(p))+"/...")
			} else {
				out = append(out, "./"+filepath.ToSlash(filepath.Clean(p))+"/...")
			}
		default:
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) isDir(p string) bool {
	if !filepath.IsAbs(p) {
		p = filepath.Join(e.opts.Dir, p)
	}
	ok, err := afero.IsDir(e.fs, p)
	return err == nil && ok
}

// ignored reports whether file matches an ignore pattern relative to Dir.
func (e *Engine) ignored(file string) bool {
	if len(e.opts.IgnorePatterns) == 0 {
		return false
	}
	base, err := filepath.Abs(e.opts.Dir)
	if err != nil {
		return false
	}
	bases := []string{base}
	if resolved, err := filepath.EvalSymlinks(base); err == nil && resolved != base {
		bases = append(bases, resolved)
	}
	for _, b := range bases {
		rel, err := filepath.Rel(b, file)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if patterns.MatchAny(filepath.ToSlash(rel), e.opts.IgnorePatterns) {
			return true
		}
	}
	return false
}

// collect orders files and messages and drops duplicates reported by a
// package and its test variant.
func collect(files map[string][]lint.Message) []lint.FileResult {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]lint.FileResult, 0, len(names))
	for _, name := range names {
		msgs := files[name]
		sort.SliceStable(msgs, func(i, j int) bool {
			if msgs[i].Line != msgs[j].Line {
				return msgs[i].Line < msgs[j].Line
			}
			return msgs[i].Column < msgs[j].Column
		})
		unique := msgs[:0]
		seen := make(map[lint.Message]bool, len(msgs))
		for _, m := range msgs {
			if seen[m] {
				continue
			}
			seen[m] = true
			unique = append(unique, m)
		}
		results = append(results, lint.FileResult{FilePath: name, Messages: unique})
	}
	return results
}

// splitPos parses a go/packages error position: "file:line:col",
// "file:line", "file", "-" or "".
func splitPos(pos string) (file string, line, col int) {
	if pos == "" || pos == "-" {
		return "", 0, 0
	}
	p := token.Position{Filename: pos}
	if i := strings.LastIndexByte(pos, ':'); i > 0 {
		if n, err := strconv.Atoi(pos[i+1:]); err == nil {
			p.Filename, p.Line = pos[:i], n
			if j := strings.LastIndexByte(p.Filename, ':'); j > 0 {
				if m, err := strconv.Atoi(p.Filename[j+1:]); err == nil {
					p.Filename, p.Line, p.Column = p.Filename[:j], m, n
				}
			}
		}
	}
	return p.Filename, p.Line, p.Column
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"

	"github.com/AleutianAI/linthook/services/linthook/configfile"
	"github.com/AleutianAI/linthook/services/linthook/hook"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linthook",
		Short: "Run the startup lint hook against an application",
		Long: `linthook lifts a minimal application host, runs the lint hook once
and reports SUCCESS, WARN or ERROR the way the host would see it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRunCmd(), newResolveCmd(), newVersionCmd())
	return rootCmd
}

// --- Resolve ---

type resolveOptions struct {
	appRoot    string
	bundledDir string
	engine     string
}

func newResolveCmd() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the configuration file the lint engine would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.appRoot, "app-root", ".", "Application root directory")
	cmd.Flags().StringVar(&opts.bundledDir, "bundled-dir", "", "Fallback configuration directory (default: the executable's directory)")
	cmd.Flags().StringVar(&opts.engine, "engine", hook.DefaultEngine, "Lint engine whose configuration file to look for")
	return cmd
}

func runResolve(cmd *cobra.Command, opts resolveOptions) error {
	spec, ok := hook.DefaultEngines().Get(opts.engine)
	if !ok {
		return fmt.Errorf("%w: %q", hook.ErrUnknownEngine, opts.engine)
	}
	bundled := opts.bundledDir
	if bundled == "" {
		bundled = hook.DefaultBundledDir()
	}

	// A project file is discovered by the engine itself; the bundled file is
	// only passed when the project has none.
	resolver := configfile.NewResolver(spec.ConfigName)
	path, found := resolver.Find(opts.appRoot)
	if !found {
		path, found = resolver.Effective(opts.appRoot, bundled)
	}
	if !found {
		fmt.Fprintf(cmd.ErrOrStderr(), "no %s configuration found\n", spec.ConfigName)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// --- Version ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the linthook version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "linthook %s\n", version)
		},
	}
}

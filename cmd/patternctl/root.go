// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/patternengine/internal/logging"
)

// configFile is the global --config flag: a JSON or TOML file loaded via
// internal/config and threaded into `eval` as extra const bindings, the
// way a host embedding the engine would supply its own config context.
var configFile string

// logFormat selects the slog handler internal/logging.Setup installs.
var logFormat string

// NewRootCmd creates the root command for the patternctl CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patternctl",
		Short: "patternctl - compile, evaluate, and inspect pattern engine sources",
		Long: `patternctl is a test/ops harness for the declarative pattern engine:
it compiles a source tree into a World, evaluates one pattern against
JSON input, dumps a compiled World's introspection data, and pretty-
prints a parsed source file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetDefault("patternctl", version, logFormat)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (JSON or TOML)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: json or text")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newFmtCmd())

	return cmd
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Command patternctl is a test/ops harness for the pattern engine: it
// compiles a source tree, evaluates a pattern against JSON input,
// dumps introspection, and pretty-prints a parsed source file.
// Mirrors cmd/holomush's cobra-tree/global-"--config"-flag shape,
// generalized from a server's subcommand set to this compiler's.
package main

import (
	"log/slog"
	"os"

	"github.com/holomush/patternengine/pkg/errutil"
)

// version is stamped at release time; left as a placeholder for local builds.
const version = "dev"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		errutil.LogError(slog.Default(), "patternctl failed", err)
		os.Exit(1)
	}
}

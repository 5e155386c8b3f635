// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/holomush/patternengine/internal/ast"
)

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <source-file>",
		Short: "Pretty-print a parsed source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			unit, err := ast.Parse(args[0], string(src))
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			cmd.Println(unit.String())
			return nil
		},
	}
}

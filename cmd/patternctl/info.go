// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holomush/patternengine/internal/introspect"
)

func newInfoCmd() *cobra.Command {
	var schemaOnly bool

	cmd := &cobra.Command{
		Use:   "info <source-dir>",
		Short: "Dump introspection data for a compiled World",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if schemaOnly {
				data, err := introspect.ResponseSchema()
				if err != nil {
					return fmt.Errorf("generate response schema: %w", err)
				}
				cmd.Print(string(data))
				return nil
			}

			world, errs := buildWorld(args[0])
			if len(errs) > 0 {
				return errs
			}

			data, err := json.MarshalIndent(introspect.Describe(world), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal world info: %w", err)
			}
			cmd.Println(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&schemaOnly, "schema", false, "print the Response JSON Schema instead of a World dump")
	return cmd
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <source-dir>",
		Short: "Compile a source tree into a World and report any build errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			world, errs := buildWorld(args[0])
			if len(errs) > 0 {
				for _, e := range errs {
					cmd.PrintErrln(e.Error())
				}
				return fmt.Errorf("build failed with %d error(s)", len(errs))
			}
			cmd.Printf("built world: %d pattern(s), build id %s\n", world.Len(), world.BuildID)
			return nil
		},
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package lang

import "github.com/holomush/patternengine/internal/registry"

// Package builds the `lang::` function package, registered into every
// build before any compilation unit is lowered.
func Package() registry.Package {
	return registry.Package{
		Path: []string{"lang"},
		Doc:  "Core pattern combinators: and, or, not, refine, chain, traverse, map.",
		Functions: []registry.Function{
			And{}, Or{}, Not{}, Refine{}, Chain{}, Traverse{}, Map{},
		},
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package listfn

import "github.com/holomush/patternengine/internal/registry"

// Package builds the `list::` function package, registered into every
// build alongside lang.Package().
func Package() registry.Package {
	return registry.Package{
		Path: []string{"list"},
		Doc:  "List-oriented combinators: all, some, slice, map.",
		Functions: []registry.Function{
			All{}, Some{}, Slice{}, Map{},
		},
	}
}

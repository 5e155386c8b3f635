// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/patternengine/internal/ast"
)

func TestStringRoundTripsThroughReparse(t *testing.T) {
	sources := []string{
		`pattern p = { name: "bob" }`,
		`pattern p = { name: "bob" } && { age: $(self > 48) }`,
		`pattern p = !"bob"`,
		`pattern p = list::all<42>`,
		`pattern p = string::length($(self == 10))`,
		`pattern p = lang::or<["x", "y"]>`,
		`pattern p = obj.field`,
		`pattern p<T> = { value: T }`,
		`pattern p = *inner`,
		`pattern p = { name: string, age?: integer }`,
		`pattern p = string | $(self == "x")`,
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			unit, err := ast.Parse("t.dog", src)
			require.NoError(t, err)

			printed := unit.String()
			require.NotEmpty(t, printed)

			reparsed, err := ast.Parse("t.dog", printed)
			require.NoError(t, err, "printed source should reparse: %s", printed)

			assert.Equal(t, printed, reparsed.String(), "printing should be stable across a reparse")
		})
	}
}

func TestStringRendersUseImportAndAlias(t *testing.T) {
	unit, err := ast.Parse("t.dog", "use pkg::sub::thing as thing\npattern p = thing")
	require.NoError(t, err)
	assert.Contains(t, unit.String(), "use pkg::sub::thing as thing")
}

func TestStringRendersDocCommentAndAttribute(t *testing.T) {
	src := "/// a documented pattern\n#[deprecated(since=\"1.0\")]\npattern p = anything"
	unit, err := ast.Parse("t.dog", src)
	require.NoError(t, err)

	printed := unit.String()
	assert.Contains(t, printed, "/// a documented pattern")
	assert.Contains(t, printed, `#[deprecated(since="1.0")]`)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package ast_test

import (
	"testing"

	"github.com/holomush/patternengine/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ScenarioSources(t *testing.T) {
	sources := []struct {
		name string
		src  string
	}{
		{"object literal", `pattern p = { name: "bob" }`},
		{"and of two objects", `pattern p = { name: "bob" } && { age: $(self > 48) }`},
		{"negated const", `pattern p = !"bob"`},
		{"generic ref", `pattern p = list::all<42>`},
		{"generic ref with expr arg", `pattern p = list::some<2, $(self > 50)>`},
		{"refinement call", `pattern p = string::length($(self == 10))`},
		{"or of consts", `pattern p = lang::or<["x", "y"]>`},
		{"field traversal", `pattern p = obj.field`},
		{"use import with alias", "use pkg::sub::thing as thing\npattern p = thing"},
		{"type params masking outer name", `pattern p<T> = { value: T }`},
		{"doc comment and attribute", "/// a documented pattern\n#[deprecated(since=\"1.0\")]\npattern p = anything"},
		{"deref prefix", `pattern p = *inner`},
		{"optional field", `pattern p = { name: string, age?: integer }`},
		{"pipe refinement", `pattern p = string | $(self == "x")`},
		{"empty object matches any object", `pattern p = { }`},
	}

	for _, tc := range sources {
		t.Run(tc.name, func(t *testing.T) {
			unit, err := ast.Parse(tc.name, tc.src)
			require.NoError(t, err, "source should parse: %s", tc.src)
			require.NotNil(t, unit)
			require.Len(t, unit.Patterns, 1)
			assert.Equal(t, "p", unit.Patterns[0].Name)
		})
	}
}

func TestParse_UseWithoutAlias(t *testing.T) {
	unit, err := ast.Parse("t", "use pkg::sub::thing\npattern p = thing")
	require.NoError(t, err)
	require.Len(t, unit.Uses, 1)
	assert.Equal(t, []string{"pkg", "sub", "thing"}, unit.Uses[0].Path)
	assert.Empty(t, unit.Uses[0].As)
}

func TestMetadataAttributes(t *testing.T) {
	unit, err := ast.Parse("t", "#[unstable]\n#[deprecated(since=\"2.0\")]\npattern p = anything")
	require.NoError(t, err)

	attrs := unit.Patterns[0].Meta.Attributes()
	assert.True(t, attrs["unstable"].Flags["unstable"])
	assert.Equal(t, "2.0", attrs["deprecated"].Values["since"])
}

func TestMetadataDoc(t *testing.T) {
	unit, err := ast.Parse("t", "/// line one\n/// line two\npattern p = anything")
	require.NoError(t, err)

	doc := unit.Patterns[0].Meta.Doc()
	require.NotNil(t, doc)
	assert.Equal(t, "line one\nline two", *doc)
}

func TestConstLitNumberForm(t *testing.T) {
	unit, err := ast.Parse("t", `pattern p = 42`)
	require.NoError(t, err)

	primary := unit.Patterns[0].Body.Ors[0].Terms[0].Primary
	require.NotNil(t, primary.Const)
	assert.False(t, primary.Const.IsDecimal())
	iv, err := primary.Const.IntValue()
	require.NoError(t, err)
	assert.Equal(t, int64(42), iv)
}

func TestConstLitDecimalForm(t *testing.T) {
	unit, err := ast.Parse("t", `pattern p = 4.2`)
	require.NoError(t, err)

	primary := unit.Patterns[0].Body.Ors[0].Terms[0].Primary
	require.NotNil(t, primary.Const)
	assert.True(t, primary.Const.IsDecimal())
}

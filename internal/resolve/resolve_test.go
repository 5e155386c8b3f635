// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package resolve_test

import (
	"testing"

	"github.com/holomush/patternengine/internal/ast"
	"github.com/holomush/patternengine/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.CompilationUnit {
	t.Helper()
	unit, err := ast.Parse("t.dog", src)
	require.NoError(t, err)
	return unit
}

func TestResolveUnqualifiedUse(t *testing.T) {
	unit := mustParse(t, "use pkg::sub::thing as th\npattern p = th")
	vis := resolve.BuildVisibility([]string{"mine"}, unit)
	res, errs := resolve.ResolveUnit("t.dog", unit, vis)
	require.Empty(t, errs)

	ref := unit.Patterns[0].Body.Ors[0].Terms[0].Primary.Ref
	got := res.Refs[ref]
	assert.False(t, got.IsArgument)
	assert.Equal(t, []string{"pkg", "sub"}, got.Qualified.Package)
	assert.Equal(t, "thing", got.Qualified.Name)
}

func TestResolveMissingNameProducesError(t *testing.T) {
	unit := mustParse(t, "pattern p = nosuchthing")
	vis := resolve.BuildVisibility(nil, unit)
	_, errs := resolve.ResolveUnit("t.dog", unit, vis)
	require.Len(t, errs, 1)
	assert.Equal(t, "nosuchthing", errs[0].Name)
}

func TestResolveTypeParamMasksOuterBinding(t *testing.T) {
	unit := mustParse(t, "pattern T = anything\npattern p<T> = { value: T }")
	vis := resolve.BuildVisibility([]string{"mine"}, unit)
	res, errs := resolve.ResolveUnit("t.dog", unit, vis)
	require.Empty(t, errs)

	ref := unit.Patterns[1].Body.Ors[0].Terms[0].Primary.Object.Fields[0].Type.Ors[0].Terms[0].Primary.Ref
	got := res.Refs[ref]
	assert.True(t, got.IsArgument)
	assert.Equal(t, "T", got.ArgumentName)
}

func TestResolveQualifiedRefDeferred(t *testing.T) {
	unit := mustParse(t, "pattern p = list::all<42>")
	vis := resolve.BuildVisibility(nil, unit)
	res, errs := resolve.ResolveUnit("t.dog", unit, vis)
	require.Empty(t, errs)

	ref := unit.Patterns[0].Body.Ors[0].Terms[0].Primary.Ref
	got := res.Refs[ref]
	assert.Equal(t, []string{"list"}, got.Qualified.Package)
	assert.Equal(t, "all", got.Qualified.Name)
}

func TestResolvePrimordialsAreGlobal(t *testing.T) {
	unit := mustParse(t, "pattern p = integer")
	vis := resolve.BuildVisibility([]string{"mine"}, unit)
	res, errs := resolve.ResolveUnit("t.dog", unit, vis)
	require.Empty(t, errs)

	ref := unit.Patterns[0].Body.Ors[0].Terms[0].Primary.Ref
	got := res.Refs[ref]
	assert.Empty(t, got.Qualified.Package)
	assert.Equal(t, "integer", got.Qualified.Name)
}

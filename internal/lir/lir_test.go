// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package lir_test

import (
	"testing"

	"github.com/holomush/patternengine/internal/ast"
	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/mir"
	"github.com/holomush/patternengine/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFn struct {
	name   string
	params []string
}

func (f fakeFn) QualifiedName() string { return f.name }
func (f fakeFn) Parameters() []string  { return f.params }
func (f fakeFn) Order() uint8          { return 0 }

func buildWorld(t *testing.T, src string) (*mir.World, ir.BuildErrors) {
	t.Helper()
	w := mir.NewWorld()
	w.DefineFunction(ir.PatternName{Package: []string{"lang"}, Name: "and"}, fakeFn{"lang::and", nil}, ir.Metadata{})
	w.DefinePackage([]string{"mine"}, "my test patterns")

	unit, err := ast.Parse("t.dog", src)
	require.NoError(t, err)
	vis := resolve.BuildVisibility([]string{"mine"}, unit)
	res, rerrs := resolve.ResolveUnit("t.dog", unit, vis)
	require.Empty(t, rerrs)

	errs := mir.Lower(w, []mir.UnitInput{{Source: "t.dog", PackagePath: []string{"mine"}, Unit: unit, Resolution: res}})
	return w, errs
}

func TestFreezeSucceedsWhenFullyDefined(t *testing.T) {
	w, errs := buildWorld(t, "pattern p = integer && boolean")
	require.Empty(t, errs)

	frozen, ferrs := lir.Freeze(w)
	require.Empty(t, ferrs)
	require.NotNil(t, frozen)

	slot, ok := frozen.SlotByName("mine::p")
	require.True(t, ok)
	assert.Equal(t, ir.InnerRef, frozen.Pattern(slot).Inner.Kind)
	assert.NotEmpty(t, frozen.BuildID)
}

func TestFreezeBuildsPackageTreeWithDocs(t *testing.T) {
	w, errs := buildWorld(t, "pattern p = integer")
	require.Empty(t, errs)

	frozen, ferrs := lir.Freeze(w)
	require.Empty(t, ferrs)

	mine, ok := frozen.Root.Children["mine"]
	require.True(t, ok)
	assert.Equal(t, "my test patterns", mine.Doc)
	assert.Len(t, mine.Patterns, 1)
}

func TestFreezeRejectsUndefinedSlot(t *testing.T) {
	w := mir.NewWorld()
	_, err := w.Declare(ir.PatternName{Name: "dangling"}, ir.Metadata{}, nil)
	require.NoError(t, err)

	_, ferrs := lir.Freeze(w)
	require.Len(t, ferrs, 1)
	assert.Equal(t, ir.ErrPatternNotFound, ferrs[0].Kind)
}

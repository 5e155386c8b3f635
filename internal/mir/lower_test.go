// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package mir_test

import (
	"testing"

	"github.com/holomush/patternengine/internal/ast"
	"github.com/holomush/patternengine/internal/ir"
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

func newTestWorld() *mir.World {
	w := mir.NewWorld()
	for _, fn := range []fakeFn{
		{"lang::and", nil}, {"lang::or", nil}, {"lang::not", []string{"pattern"}},
		{"lang::chain", nil}, {"lang::refine", []string{"pattern"}}, {"lang::traverse", []string{"step"}},
	} {
		w.DefineFunction(ir.PatternName{Package: []string{"lang"}, Name: fn.name[len("lang::"):]}, fn, ir.Metadata{})
	}
	w.DefineFunction(ir.PatternName{Package: []string{"list"}, Name: "all"}, fakeFn{"list::all", []string{"pattern"}}, ir.Metadata{})
	return w
}

func lowerSource(t *testing.T, w *mir.World, src string) (*ir.Pattern, ir.BuildErrors) {
	t.Helper()
	unit, err := ast.Parse("t.dog", src)
	require.NoError(t, err)
	vis := resolve.BuildVisibility(nil, unit)
	res, rerrs := resolve.ResolveUnit("t.dog", unit, vis)
	require.Empty(t, rerrs)

	errs := mir.Lower(w, []mir.UnitInput{{Source: "t.dog", Unit: unit, Resolution: res}})
	slot, ok := w.SlotByName("p")
	require.True(t, ok)
	return w.Handles()[slot].Pattern, errs
}

func TestLowerAndChainCollapsesSingleTerm(t *testing.T) {
	w := newTestWorld()
	pat, errs := lowerSource(t, w, "pattern p = integer")
	require.Empty(t, errs)
	assert.Equal(t, ir.InnerRef, pat.Inner.Kind)
}

func TestLowerAndWrapsMultipleTerms(t *testing.T) {
	w := newTestWorld()
	pat, errs := lowerSource(t, w, "pattern p = integer && boolean")
	require.Empty(t, errs)
	require.Equal(t, ir.InnerRef, pat.Inner.Kind)
	assert.Equal(t, ir.SugarAnd, pat.Inner.RefSugar)
	require.Len(t, pat.Inner.RefArgs, 1)
	assert.Equal(t, ir.InnerList, pat.Inner.RefArgs[0].Inner.Kind)
	assert.Len(t, pat.Inner.RefArgs[0].Inner.Terms, 2)
}

func TestLowerOrWrapsMultipleBranches(t *testing.T) {
	w := newTestWorld()
	pat, errs := lowerSource(t, w, "pattern p = integer || boolean || string")
	require.Empty(t, errs)
	assert.Equal(t, ir.SugarOr, pat.Inner.RefSugar)
	require.Len(t, pat.Inner.RefArgs, 1)
	assert.Len(t, pat.Inner.RefArgs[0].Inner.Terms, 3)
}

func TestLowerNegationWrapsNot(t *testing.T) {
	w := newTestWorld()
	pat, errs := lowerSource(t, w, "pattern p = !integer")
	require.Empty(t, errs)
	assert.Equal(t, ir.SugarNot, pat.Inner.RefSugar)
	assert.Len(t, pat.Inner.RefArgs, 1)
}

func TestLowerSingleTraverseBuildsTwoElementChain(t *testing.T) {
	w := newTestWorld()
	pat, errs := lowerSource(t, w, "pattern obj = anything\npattern p = obj.field")
	require.Empty(t, errs)
	require.Equal(t, ir.SugarChain, pat.Inner.RefSugar)
	require.Len(t, pat.Inner.RefArgs, 1)
	steps := pat.Inner.RefArgs[0].Inner.Terms
	require.Len(t, steps, 2)
	step := steps[1]
	assert.Equal(t, ir.SugarTraverse, step.Inner.RefSugar)
	s, _ := step.Inner.RefArgs[0].Inner.ConstValue.TryString()
	assert.Equal(t, "field", s)
}

func TestLowerEmptyCallIsNoOp(t *testing.T) {
	w := newTestWorld()
	pat, errs := lowerSource(t, w, "pattern obj = anything\npattern p = obj()")
	require.Empty(t, errs)
	assert.Equal(t, ir.InnerRef, pat.Inner.Kind)
	assert.Equal(t, ir.SugarNone, pat.Inner.RefSugar)
}

func TestLowerChainedPostfixesBuildOneChain(t *testing.T) {
	w := newTestWorld()
	pat, errs := lowerSource(t, w, "pattern obj = anything\n"+`pattern p = obj.field("x")`)
	require.Empty(t, errs)
	require.Equal(t, ir.SugarChain, pat.Inner.RefSugar)
	require.Len(t, pat.Inner.RefArgs, 1)
	steps := pat.Inner.RefArgs[0].Inner.Terms
	require.Len(t, steps, 3)
	assert.Equal(t, ir.SugarTraverse, steps[1].Inner.RefSugar)
	assert.Equal(t, ir.SugarRefine, steps[2].Inner.RefSugar)
}

func TestLowerRefArgumentMismatch(t *testing.T) {
	w := newTestWorld()
	_, errs := lowerSource(t, w, "pattern p = list::all")
	require.Len(t, errs, 1)
	assert.Equal(t, ir.ErrArgumentMismatch, errs[0].Kind)
}

func TestLowerObjectFields(t *testing.T) {
	w := newTestWorld()
	pat, errs := lowerSource(t, w, "pattern p = { name: string, age?: integer }")
	require.Empty(t, errs)
	require.Equal(t, ir.InnerObject, pat.Inner.Kind)
	require.Len(t, pat.Inner.Fields, 2)
	assert.Equal(t, "name", pat.Inner.Fields[0].Name)
	assert.False(t, pat.Inner.Fields[0].Optional)
	assert.Equal(t, "age", pat.Inner.Fields[1].Name)
	assert.True(t, pat.Inner.Fields[1].Optional)
}

func TestLowerArithmeticProducesBuildError(t *testing.T) {
	w := newTestWorld()
	_, errs := lowerSource(t, w, "pattern p = $(self + 1 == 2)")
	require.Len(t, errs, 1)
	assert.Equal(t, ir.ErrArithmeticNotSupported, errs[0].Kind)
}

func TestLowerForwardReferenceAcrossUnits(t *testing.T) {
	w := newTestWorld()
	unitA, err := ast.Parse("a.dog", "pattern p = q")
	require.NoError(t, err)
	unitB, err := ast.Parse("b.dog", "pattern q = integer")
	require.NoError(t, err)

	visA := resolve.BuildVisibility(nil, unitA)
	visA["q"] = ir.PatternName{Name: "q"}
	resA, rerrs := resolve.ResolveUnit("a.dog", unitA, visA)
	require.Empty(t, rerrs)
	visB := resolve.BuildVisibility(nil, unitB)
	resB, rerrs := resolve.ResolveUnit("b.dog", unitB, visB)
	require.Empty(t, rerrs)

	errs := mir.Lower(w, []mir.UnitInput{
		{Source: "a.dog", Unit: unitA, Resolution: resA},
		{Source: "b.dog", Unit: unitB, Resolution: resB},
	})
	require.Empty(t, errs)
	slot, ok := w.SlotByName("p")
	require.True(t, ok)
	assert.Equal(t, ir.InnerRef, w.Handles()[slot].Pattern.Inner.Kind)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package listfn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/pkg/value"
)

// evenEvaluator is a stand-in for the real evaluator: "pattern" is
// ignored and every element's parity against a fixed modulus decides
// satisfaction, so tests can exercise All/Some/Map without internal/eval.
type evenEvaluator struct{}

func (evenEvaluator) Evaluate(_ context.Context, v *value.Value, _ *ir.Pattern, _ map[string]*ir.Pattern, _ *lir.World) *rationale.EvaluationResult {
	n, _ := v.TryInteger()
	res := &rationale.EvaluationResult{Input: v, Satisfied: n%2 == 0}
	if res.Satisfied {
		res.Identity()
	}
	return res
}

func intList(xs ...int64) *value.Value {
	vals := make([]*value.Value, len(xs))
	for i, x := range xs {
		vals[i] = value.NewInteger(x)
	}
	return value.NewList(vals)
}

func constPattern(v *value.Value) *ir.Pattern {
	return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerConst, ConstValue: v}}
}

func TestAllSatisfiedWhenEveryElementMatches(t *testing.T) {
	out, err := All{}.Call(context.Background(), intList(2, 4, 6), map[string]*ir.Pattern{"pattern": nil}, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.True(t, out.Satisfied)
}

func TestAllUnsatisfiedWhenOneElementFails(t *testing.T) {
	out, err := All{}.Call(context.Background(), intList(2, 3, 6), map[string]*ir.Pattern{"pattern": nil}, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.False(t, out.Satisfied)
	assert.Len(t, out.Supporting, 3)
}

func TestAllRejectsNonList(t *testing.T) {
	out, err := All{}.Call(context.Background(), value.NewInteger(1), map[string]*ir.Pattern{"pattern": nil}, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.False(t, out.Satisfied)
}

func TestSomeSatisfiedAtExactCount(t *testing.T) {
	bindings := map[string]*ir.Pattern{
		"count":   constPattern(value.NewInteger(2)),
		"pattern": nil,
	}
	out, err := Some{}.Call(context.Background(), intList(2, 4, 3, 3), bindings, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.True(t, out.Satisfied)
	// short-circuits once the tally is reached, so not every element is visited
	assert.Len(t, out.Supporting, 2)
}

func TestSomeUnsatisfiedWhenTallyNeverReached(t *testing.T) {
	bindings := map[string]*ir.Pattern{
		"count":   constPattern(value.NewInteger(3)),
		"pattern": nil,
	}
	out, err := Some{}.Call(context.Background(), intList(2, 4), bindings, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.False(t, out.Satisfied)
}

func TestSomeRejectsNonIntegerCount(t *testing.T) {
	bindings := map[string]*ir.Pattern{
		"count":   constPattern(value.NewString("two")),
		"pattern": nil,
	}
	out, err := Some{}.Call(context.Background(), intList(2, 4), bindings, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.False(t, out.Satisfied)
	assert.Equal(t, rationale.SeverityError, out.Severity)
}

func TestSliceOutputsSubList(t *testing.T) {
	bindings := map[string]*ir.Pattern{
		"start": constPattern(value.NewInteger(1)),
		"end":   constPattern(value.NewInteger(3)),
	}
	out, err := Slice{}.Call(context.Background(), intList(10, 20, 30, 40), bindings, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.True(t, out.Satisfied)
	elems, ok := out.Output.TryList()
	require.True(t, ok)
	require.Len(t, elems, 2)
	n0, _ := elems[0].TryInteger()
	n1, _ := elems[1].TryInteger()
	assert.Equal(t, int64(20), n0)
	assert.Equal(t, int64(30), n1)
}

func TestSliceInvertedBoundsIsInvalidArgument(t *testing.T) {
	bindings := map[string]*ir.Pattern{
		"start": constPattern(value.NewInteger(3)),
		"end":   constPattern(value.NewInteger(1)),
	}
	out, err := Slice{}.Call(context.Background(), intList(1, 2, 3, 4), bindings, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.False(t, out.Satisfied)
	assert.Equal(t, rationale.SeverityError, out.Severity)
}

func TestSliceClampsOutOfRangeEnd(t *testing.T) {
	bindings := map[string]*ir.Pattern{
		"start": constPattern(value.NewInteger(2)),
		"end":   constPattern(value.NewInteger(100)),
	}
	out, err := Slice{}.Call(context.Background(), intList(1, 2, 3), bindings, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.True(t, out.Satisfied)
	elems, _ := out.Output.TryList()
	assert.Len(t, elems, 1)
}

func TestListMapRejectsNonList(t *testing.T) {
	out, err := Map{}.Call(context.Background(), value.NewInteger(4), map[string]*ir.Pattern{"pattern": nil}, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.False(t, out.Satisfied)
	assert.Equal(t, rationale.SeverityError, out.Severity)
}

func TestListMapCollectsOutputs(t *testing.T) {
	out, err := Map{}.Call(context.Background(), intList(2, 3), map[string]*ir.Pattern{"pattern": nil}, nil, evenEvaluator{})
	require.NoError(t, err)
	assert.False(t, out.Satisfied) // 3 is odd
	elems, ok := out.Output.TryList()
	require.True(t, ok)
	require.Len(t, elems, 2)
}

func TestPackageRegistersAllFourFunctions(t *testing.T) {
	pkg := Package()
	assert.Equal(t, []string{"list"}, pkg.Path)
	assert.Len(t, pkg.Functions, 4)
}

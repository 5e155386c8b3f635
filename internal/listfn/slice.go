// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package listfn

import (
	"context"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/registry"
	"github.com/holomush/patternengine/pkg/value"
)

// Slice implements list::slice: output is the sub-list between start
// (inclusive) and end (exclusive). Inverted or non-integer bounds are
// InvalidArgument: an unsatisfied result at Error severity, not a Go error.
type Slice struct{}

func (Slice) QualifiedName() string { return "slice" }
func (Slice) Parameters() []string  { return []string{"start", "end"} }
func (Slice) Order() uint8          { return 96 }
func (Slice) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Outputs the sub-list spanning [start, end)."}
}
func (Slice) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

func (Slice) Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	start, ok := constInt(bindings["start"])
	if !ok {
		return invalidArgument("start is not an integer constant"), nil
	}
	end, ok := constInt(bindings["end"])
	if !ok {
		return invalidArgument("end is not an integer constant"), nil
	}
	if start < 0 || end < start {
		return invalidArgument("start/end out of order"), nil
	}

	elems, ok := v.TryList()
	if !ok {
		return invalidArgument("not a list"), nil
	}
	if start > int64(len(elems)) {
		start = int64(len(elems))
	}
	if end > int64(len(elems)) {
		end = int64(len(elems))
	}

	return registry.FunctionEvaluationResult{
		Satisfied: true,
		Output:    value.NewList(elems[start:end]),
	}, nil
}

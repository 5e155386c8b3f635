// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package lang

import (
	"context"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/internal/registry"
	"github.com/holomush/patternengine/pkg/value"
)

// Map implements lang::map: evaluate the child pattern against each
// element, collecting the per-element outputs as a list. Unlike
// list::map, a bare scalar input is promoted into a singleton list
// before mapping rather than rejected — the two differ deliberately
// (see DESIGN.md's Open Question decisions).
type Map struct{}

func (Map) QualifiedName() string { return "map" }
func (Map) Parameters() []string  { return []string{"pattern"} }
func (Map) Order() uint8          { return 96 }
func (Map) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Maps a pattern over each element, promoting a bare scalar to a singleton list first."}
}
func (Map) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

func (Map) Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	elems, ok := v.TryList()
	if !ok {
		elems = []*value.Value{v}
	}

	satisfied := true
	var supporting []*rationale.EvaluationResult
	outputs := make([]*value.Value, 0, len(elems))
	for _, elem := range elems {
		res := eval.Evaluate(ctx, elem, bindings["pattern"], bindings, world)
		supporting = append(supporting, res)
		if !res.Satisfied {
			satisfied = false
		}
		if res.OutputKind == rationale.OutputNone {
			outputs = append(outputs, value.Null())
		} else {
			outputs = append(outputs, res.Output)
		}
	}
	return registry.FunctionEvaluationResult{
		Satisfied: satisfied, Severity: rationale.FoldMax(supporting), Output: value.NewList(outputs), Supporting: supporting,
	}, nil
}

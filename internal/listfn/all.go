// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package listfn implements the built-in `list::` combinators (C9): all,
// some, slice, map. Each, like internal/lang's combinators, is an
// ordinary registry.Function.
package listfn

import (
	"context"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/internal/registry"
	"github.com/holomush/patternengine/pkg/value"
)

// All implements list::all: satisfied iff every element is satisfied
// under the inner pattern; severity folds as max.
type All struct{}

func (All) QualifiedName() string { return "all" }
func (All) Parameters() []string  { return []string{"pattern"} }
func (All) Order() uint8          { return 96 }
func (All) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Satisfied iff every list element satisfies the inner pattern."}
}
func (All) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

// invalidArgument builds the unsatisfied, Error-severity result InvalidArgument
// calls for: a domain function's own semantic failure, not a Go error.
func invalidArgument(reason string) registry.FunctionEvaluationResult {
	return registry.FunctionEvaluationResult{Satisfied: false, Severity: rationale.SeverityError, Reason: reason}
}

func (All) Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	elems, ok := v.TryList()
	if !ok {
		return invalidArgument("not a list"), nil
	}
	satisfied := true
	sev := rationale.SeverityNone
	var supporting []*rationale.EvaluationResult
	for _, elem := range elems {
		res := eval.Evaluate(ctx, elem, bindings["pattern"], bindings, world)
		supporting = append(supporting, res)
		sev = sev.Max(res.Severity)
		if !res.Satisfied {
			satisfied = false
		}
	}
	out := registry.FunctionEvaluationResult{Satisfied: satisfied, Severity: sev, Supporting: supporting}
	if satisfied {
		out.Output = v
	}
	return out, nil
}

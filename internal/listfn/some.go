// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package listfn

import (
	"context"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/internal/registry"
	"github.com/holomush/patternengine/pkg/value"
)

// Some implements list::some: count elements satisfying pattern; the
// outer result is satisfied as soon as the running tally reaches count.
type Some struct{}

func (Some) QualifiedName() string { return "some" }
func (Some) Parameters() []string  { return []string{"count", "pattern"} }
func (Some) Order() uint8          { return 96 }
func (Some) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Satisfied once exactly `count` list elements satisfy the inner pattern."}
}
func (Some) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

func (Some) Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	count, ok := constInt(bindings["count"])
	if !ok {
		return invalidArgument("count is not an integer constant"), nil
	}
	elems, ok := v.TryList()
	if !ok {
		return invalidArgument("not a list"), nil
	}

	var tally int64
	var supporting []*rationale.EvaluationResult
	for _, elem := range elems {
		res := eval.Evaluate(ctx, elem, bindings["pattern"], bindings, world)
		supporting = append(supporting, res)
		if res.Satisfied {
			tally++
		}
		if tally == count {
			return registry.FunctionEvaluationResult{Satisfied: true, Output: v, Supporting: supporting}, nil
		}
	}
	return registry.FunctionEvaluationResult{Satisfied: false, Severity: rationale.SeverityError, Supporting: supporting}, nil
}

func constInt(p *ir.Pattern) (int64, bool) {
	if p == nil || p.Inner.Kind != ir.InnerConst || p.Inner.ConstValue == nil {
		return 0, false
	}
	return p.Inner.ConstValue.TryInteger()
}

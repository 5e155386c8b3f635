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

// Chain implements lang::chain: a left fold over its steps, each step's
// output becoming the next step's input. A None output at any step
// produces a None output for the chain overall; otherwise the chain's
// output is the last step's output.
type Chain struct{}

func (Chain) QualifiedName() string { return "chain" }
func (Chain) Parameters() []string  { return []string{"terms"} }
func (Chain) Order() uint8          { return 32 }
func (Chain) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Left-folds a pipeline of patterns, each step's output feeding the next."}
}
func (Chain) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

func (Chain) Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	steps := bindings["terms"].Inner.Terms
	current := v
	satisfied := true
	var supporting []*rationale.EvaluationResult
	var lastOutputKind rationale.OutputKind
	var lastOutput *value.Value

	for _, step := range steps {
		res := eval.Evaluate(ctx, current, step, bindings, world)
		supporting = append(supporting, res)
		if !res.Satisfied {
			satisfied = false
		}
		if res.OutputKind == rationale.OutputNone {
			return registry.FunctionEvaluationResult{Satisfied: satisfied, Severity: rationale.FoldMax(supporting), Supporting: supporting}, nil
		}
		current = res.Output
		lastOutputKind, lastOutput = res.OutputKind, res.Output
	}

	out := registry.FunctionEvaluationResult{Satisfied: satisfied, Severity: rationale.FoldMax(supporting), Supporting: supporting}
	if lastOutputKind != rationale.OutputNone {
		out.Output = lastOutput
	}
	return out, nil
}

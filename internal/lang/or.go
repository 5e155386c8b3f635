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

// Or implements lang::or: satisfied as soon as one term is satisfied,
// evaluated cheapest-first. Rationale keeps only the terms tried up to
// and including the winner (or every term, if none won).
type Or struct{}

func (Or) QualifiedName() string { return "or" }
func (Or) Parameters() []string  { return []string{"terms"} }
func (Or) Order() uint8          { return 64 }
func (Or) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Satisfied as soon as one term is satisfied."}
}
func (Or) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

func (Or) Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	terms := orderedTerms(bindings["terms"], world)
	var supporting []*rationale.EvaluationResult
	sev := rationale.SeverityNone
	for _, t := range terms {
		res := eval.Evaluate(ctx, v, t, bindings, world)
		supporting = append(supporting, res)
		if res.Satisfied {
			return registry.FunctionEvaluationResult{
				Satisfied: true, Output: v, Severity: res.Severity, Supporting: supporting,
			}, nil
		}
		sev = sev.Max(res.Severity)
	}
	return registry.FunctionEvaluationResult{Satisfied: false, Severity: sev, Supporting: supporting}, nil
}

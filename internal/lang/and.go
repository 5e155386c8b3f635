// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package lang

import (
	"context"
	"sort"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/internal/registry"
	"github.com/holomush/patternengine/pkg/value"
)

// And implements lang::and: every term must be satisfied. Terms are
// evaluated cheapest-first per Order, since a single unsatisfied cheap
// term already decides the outcome.
type And struct{}

func (And) QualifiedName() string { return "and" }
func (And) Parameters() []string  { return []string{"terms"} }
func (And) Order() uint8          { return 64 }
func (And) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Satisfied iff every term is satisfied."}
}
func (And) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

func (And) Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	terms := orderedTerms(bindings["terms"], world)
	satisfied := true
	var supporting []*rationale.EvaluationResult
	sev := rationale.SeverityNone
	for _, t := range terms {
		res := eval.Evaluate(ctx, v, t, bindings, world)
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

func orderedTerms(terms *ir.Pattern, world *lir.World) []*ir.Pattern {
	if terms == nil {
		return nil
	}
	sorted := append([]*ir.Pattern(nil), terms.Inner.Terms...)
	sort.SliceStable(sorted, func(i, j int) bool { return Order(sorted[i], world) < Order(sorted[j], world) })
	return sorted
}

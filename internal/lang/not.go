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

// Not implements lang::not: inverts satisfaction and never propagates
// the inner evaluation's transform.
type Not struct{}

func (Not) QualifiedName() string { return "not" }
func (Not) Parameters() []string  { return []string{"pattern"} }
func (Not) Order() uint8          { return 32 }
func (Not) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Inverts the inner pattern's satisfaction."}
}
func (Not) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

func (Not) Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	inner := bindings["pattern"]
	res := eval.Evaluate(ctx, v, inner, bindings, world)
	satisfied := !res.Satisfied
	result := registry.FunctionEvaluationResult{Satisfied: satisfied, Supporting: []*rationale.EvaluationResult{res}}
	if satisfied {
		result.Output = v
	} else {
		result.Severity = rationale.SeverityError
	}
	return result, nil
}

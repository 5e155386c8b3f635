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

// Refine implements lang::refine: evaluate the refinement against the
// incoming value; its severity and output are surfaced as refine's own,
// and it is recorded as the single supporting child.
type Refine struct{}

func (Refine) QualifiedName() string { return "refine" }
func (Refine) Parameters() []string  { return []string{"pattern"} }
func (Refine) Order() uint8          { return 32 }
func (Refine) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Applies a secondary pattern to further constrain or transform a value."}
}
func (Refine) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

func (Refine) Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	res := eval.Evaluate(ctx, v, bindings["pattern"], bindings, world)
	out := registry.FunctionEvaluationResult{
		Satisfied: res.Satisfied, Severity: res.Severity, Supporting: []*rationale.EvaluationResult{res},
	}
	if res.OutputKind != rationale.OutputNone {
		out.Output = res.Output
	}
	return out, nil
}

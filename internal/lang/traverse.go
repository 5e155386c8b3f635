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

// Traverse implements lang::traverse: step is a string constant; the
// input must be an object, and the output is the named field's value, or
// None if the field is absent.
type Traverse struct{}

func (Traverse) QualifiedName() string { return "traverse" }
func (Traverse) Parameters() []string  { return []string{"step"} }
func (Traverse) Order() uint8          { return 16 }
func (Traverse) Metadata() registry.FunctionMetadata {
	return registry.FunctionMetadata{Doc: "Extracts a named object field as the current value."}
}
func (Traverse) Input(map[string]*ir.Pattern) *ir.Pattern { return nil }

func (Traverse) Call(_ context.Context, v *value.Value, bindings map[string]*ir.Pattern, _ *lir.World, _ registry.Evaluator) (registry.FunctionEvaluationResult, error) {
	step := bindings["step"]
	name, _ := step.Inner.ConstValue.TryString()

	obj, ok := v.TryObject()
	if !ok {
		return registry.FunctionEvaluationResult{Satisfied: false, Severity: rationale.SeverityError, Reason: "not an object"}, nil
	}
	field, ok := obj.Get(name)
	if !ok {
		return registry.FunctionEvaluationResult{Satisfied: false, Severity: rationale.SeverityError}, nil
	}
	return registry.FunctionEvaluationResult{Satisfied: true, Output: field}, nil
}

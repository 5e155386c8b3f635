// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package registry defines the Function Registry (C10): the richer
// capability a built-in combinator, a `list::` helper, or an embedder's
// out-of-process plugin implements, plus the Package grouping used to
// register a whole namespace into a mir.World before any unit is lowered.
//
// registry sits between ir (the narrow Function capability Inner can
// hold without an import cycle) and eval (the evaluator that actually
// invokes functions): it defines Evaluator, the callback interface a
// Function uses to recurse back into pattern evaluation for its own
// arguments, so neither package needs to import the other directly.
package registry

import (
	"context"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/pkg/value"
)

// FunctionMetadata is a function's documentation and reporting overrides.
type FunctionMetadata struct {
	Doc       string
	Examples  []string
	Reporting ir.Reporting
}

// FunctionEvaluationResult is what a Function.Call produces: the
// evaluator folds Output/Severity into its own result and attaches
// Supporting as the enclosing Function rationale node's children.
type FunctionEvaluationResult struct {
	Satisfied  bool
	Output     *value.Value
	Severity   rationale.Severity
	Reason     string
	Supporting []*rationale.EvaluationResult
}

// Evaluator is the recursive-evaluation callback a Function uses to
// evaluate one of its own bound arguments against a value — e.g.
// list::all evaluating its element pattern once per list member.
type Evaluator interface {
	Evaluate(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World) *rationale.EvaluationResult
}

// Function is the full capability a registered function exposes. It
// embeds ir.Function so a Function value can be stored directly in an
// ir.Inner's Function field; eval type-asserts it back to Function to
// reach Call.
type Function interface {
	ir.Function

	Metadata() FunctionMetadata
	// Input returns an optional shape hint for the function's expected
	// input value under the current bindings, or nil when unconstrained.
	Input(bindings map[string]*ir.Pattern) *ir.Pattern
	Call(ctx context.Context, v *value.Value, bindings map[string]*ir.Pattern, world *lir.World, eval Evaluator) (FunctionEvaluationResult, error)
}

// Package is a namespace of functions registered together under one path
// prefix, with its own documentation string.
type Package struct {
	Path      []string
	Doc       string
	Functions []Function
}

// Name renders "path::name" for fn under this package.
func (p Package) Name(fn Function) ir.PatternName {
	return ir.PatternName{Package: append([]string(nil), p.Path...), Name: fn.QualifiedName()}
}

// World is the narrow slice of mir.World that registering a Package
// needs, kept as an interface so registry does not import mir (mir
// already depends on ir/resolve/ast; registering functions is the one
// place the dependency would otherwise point back uphill).
type World interface {
	DefineFunction(name ir.PatternName, fn ir.Function, meta ir.Metadata) ir.Slot
	DefinePackage(path []string, doc string)
}

// RegisterPackage declares and defines every function in p, and records
// p's own documentation, against w. Built-in combinator packages
// (internal/lang, internal/listfn) and embedder plugin packages
// (internal/pluginhost) are all wired into a build this same way, before
// any compilation unit is lowered.
func RegisterPackage(w World, p Package) {
	w.DefinePackage(p.Path, p.Doc)
	for _, fn := range p.Functions {
		meta := ir.Metadata{Doc: strPtr(fn.Metadata().Doc), Reporting: fn.Metadata().Reporting}
		w.DefineFunction(p.Name(fn), fn, meta)
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

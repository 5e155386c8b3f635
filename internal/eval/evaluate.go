// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package eval implements the evaluator core (C7): a recursive dispatcher
// over a compiled Pattern's Inner kind, generalized from the teacher's
// dsl.evalCondition/evalBlock/evalConjunction dispatch shape (switch over
// which field is populated, depth-guarded recursion with a sentinel once
// nesting runs away). Genuine concurrency — out-of-process Function
// plugins, trace event delivery — happens on goroutines elsewhere
// (pluginhost, tracing); the recursive walk itself is an ordinary Go call
// stack carrying a context.Context for cancellation, which already gives
// the "await" semantics the reference engine gets from futures.
package eval

import (
	"context"

	"github.com/samber/oops"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/rationale"
	"github.com/holomush/patternengine/internal/registry"
	"github.com/holomush/patternengine/pkg/value"
)

// MaxNestingDepth bounds recursion the same way the teacher's
// EvalContext.depthExceeded short-circuits a runaway condition tree.
const MaxNestingDepth = 256

// Tracer observes evaluation start/completion. internal/tracing's Monitor
// satisfies this structurally; Evaluator never imports internal/tracing
// directly, so a nil Tracer (no-op) works for callers that don't need it.
type Tracer interface {
	Start(ctx context.Context, v *value.Value, pattern *ir.Pattern) (context.Context, TraceHandle)
}

// TraceHandle closes out one traced evaluation.
type TraceHandle interface {
	Complete(res *rationale.EvaluationResult)
}

type noopHandle struct{}

func (noopHandle) Complete(*rationale.EvaluationResult) {}

// Evaluator is the concrete registry.Evaluator: the recursive walk over
// Inner dispatch, plus whatever Tracer the caller wired in.
type Evaluator struct {
	Tracer Tracer
}

// New builds an Evaluator with no tracing.
func New() *Evaluator { return &Evaluator{} }

// Evaluate implements registry.Evaluator, and is also the external
// evaluation entrypoint (world.evaluate in spec terms): evaluate pattern
// against v under bindings, recording a full rationale tree.
func (e *Evaluator) Evaluate(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World) *rationale.EvaluationResult {
	return e.evaluateDepth(ctx, v, pattern, bindings, world, 0)
}

func (e *Evaluator) evaluateDepth(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World, depth int) *rationale.EvaluationResult {
	if depth > MaxNestingDepth {
		return &rationale.EvaluationResult{
			Kind: rationale.KindInvalidArgument, Input: v, Satisfied: false,
			Severity: rationale.SeverityError, Reason: "maximum nesting depth exceeded",
		}
	}

	var handle TraceHandle = noopHandle{}
	if e.Tracer != nil {
		ctx, handle = e.Tracer.Start(ctx, v, pattern)
	}

	res := e.dispatch(ctx, v, pattern, bindings, world, depth)
	if pattern.Name != nil {
		rationale.ApplyReporting(res, pattern.Meta.Reporting)
	}
	handle.Complete(res)
	return res
}

func (e *Evaluator) dispatch(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World, depth int) *rationale.EvaluationResult {
	switch pattern.Inner.Kind {
	case ir.InnerAnything:
		return (&rationale.EvaluationResult{Kind: rationale.KindAnything, Input: v, Satisfied: true}).Identity()

	case ir.InnerNothing:
		return (&rationale.EvaluationResult{Kind: rationale.KindNothing, Input: v, Satisfied: false, Severity: rationale.SeverityError}).NoOutput()

	case ir.InnerPrimordial:
		return e.evalPrimordial(ctx, v, pattern, bindings, world, depth)

	case ir.InnerConst:
		matched := v.Equal(pattern.Inner.ConstValue)
		res := &rationale.EvaluationResult{Kind: rationale.KindConst, Input: v, Satisfied: matched}
		res.Identity()
		if !matched {
			res.Severity = rationale.SeverityError
			res.Reason = "value does not equal the expected constant"
		}
		return res

	case ir.InnerExpr:
		ok := evalExpr(pattern.Inner.Expr, v)
		res := &rationale.EvaluationResult{Kind: rationale.KindExpr, Input: v, Satisfied: ok}
		if ok {
			res.Identity()
		} else {
			res.NoOutput()
			res.Severity = rationale.SeverityError
		}
		return res

	case ir.InnerObject:
		return e.evalObject(ctx, v, pattern, bindings, world, depth)

	case ir.InnerList:
		return e.evalList(ctx, v, pattern, bindings, world, depth)

	case ir.InnerRef:
		return e.evalRef(ctx, v, pattern, bindings, world, depth)

	case ir.InnerDeref:
		inner := e.evaluateDepth(ctx, v, pattern.Inner.DerefTarget, bindings, world, depth+1)
		res := &rationale.EvaluationResult{Kind: rationale.KindDeref, Input: v, Satisfied: inner.Satisfied, Severity: inner.Severity, Children: []*rationale.EvaluationResult{inner}}
		if inner.Satisfied && inner.OutputKind != rationale.OutputNone {
			res.Transform(inner.Output)
		} else {
			res.NoOutput()
		}
		return res

	case ir.InnerBound:
		merged := mergeBindings(bindings, pattern.Inner.BoundBindings)
		return e.evaluateDepth(ctx, v, pattern.Inner.BoundTarget, merged, world, depth+1)

	case ir.InnerArgument:
		return e.evalArgument(ctx, v, pattern, bindings, world, depth)

	default:
		return &rationale.EvaluationResult{
			Kind: rationale.KindInvalidArgument, Input: v, Satisfied: false,
			Severity: rationale.SeverityError, Reason: "unknown pattern kind",
		}
	}
}

func (e *Evaluator) evalPrimordial(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World, depth int) *rationale.EvaluationResult {
	kind := pattern.Inner.PrimordialKind
	if kind == ir.PrimordialFunction {
		return e.evalFunction(ctx, v, pattern, bindings, world, depth)
	}

	ok := primordialMatches(kind, v)
	res := &rationale.EvaluationResult{Kind: rationale.KindPrimordial, Input: v, Satisfied: ok}
	if ok {
		res.Identity()
	} else {
		res.NoOutput()
		res.Severity = rationale.SeverityError
		res.Reason = "value is not a " + kind.String()
	}
	return res
}

func primordialMatches(kind ir.PrimordialKind, v *value.Value) bool {
	switch kind {
	case ir.PrimordialInteger:
		_, ok := v.TryInteger()
		return ok
	case ir.PrimordialDecimal:
		_, ok := v.TryDecimal()
		return ok
	case ir.PrimordialBoolean:
		_, ok := v.TryBoolean()
		return ok
	case ir.PrimordialString:
		_, ok := v.TryString()
		return ok
	default:
		return false
	}
}

func (e *Evaluator) evalFunction(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World, depth int) *rationale.EvaluationResult {
	fn, ok := pattern.Inner.Function.(registry.Function)
	if !ok {
		return &rationale.EvaluationResult{
			Kind: rationale.KindFunction, Input: v, Satisfied: false,
			Severity: rationale.SeverityError, Reason: "function does not implement the call contract",
		}
	}

	out, err := fn.Call(ctx, v, bindings, world, e)
	res := &rationale.EvaluationResult{
		Kind: rationale.KindFunction, Input: v, Satisfied: out.Satisfied,
		Severity: out.Severity, Reason: out.Reason, Children: out.Supporting,
	}
	if err != nil {
		res.Satisfied = false
		res.Severity = rationale.SeverityError
		res.Reason = err.Error()
		res.NoOutput()
		return res
	}
	switch {
	case out.Output == nil:
		res.NoOutput()
	case out.Output == v:
		res.Identity()
	default:
		res.Transform(out.Output)
	}
	return res
}

func (e *Evaluator) evalObject(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World, depth int) *rationale.EvaluationResult {
	obj, ok := v.TryObject()
	if !ok {
		return (&rationale.EvaluationResult{Kind: rationale.KindNotAnObject, Input: v, Satisfied: false, Severity: rationale.SeverityError, Reason: "value is not an object"}).NoOutput()
	}

	satisfied := true
	var children []*rationale.EvaluationResult
	for _, field := range pattern.Inner.Fields {
		fv, present := obj.Get(field.Name)
		if !present {
			if field.Optional {
				continue
			}
			missing := &rationale.EvaluationResult{
				Kind: rationale.KindMissingField, FieldName: field.Name, Satisfied: false,
				Severity: rationale.SeverityError, Reason: "required field is missing",
			}
			missing.NoOutput()
			children = append(children, missing)
			satisfied = false
			continue
		}
		child := e.evaluateDepth(ctx, fv, field.Pattern, bindings, world, depth+1)
		child.FieldName = field.Name
		children = append(children, child)
		if !child.Satisfied {
			satisfied = false
		}
	}

	res := &rationale.EvaluationResult{
		Kind: rationale.KindObject, Input: v, Satisfied: satisfied,
		Severity: rationale.FoldMax(children), Children: children,
	}
	res.Identity()
	return res
}

func (e *Evaluator) evalList(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World, depth int) *rationale.EvaluationResult {
	elems, ok := v.TryList()
	if !ok || len(elems) != len(pattern.Inner.Terms) {
		reason := "value is not a list"
		if ok {
			reason = "list arity does not match"
		}
		return (&rationale.EvaluationResult{Kind: rationale.KindNotAList, Input: v, Satisfied: false, Severity: rationale.SeverityError, Reason: reason}).NoOutput()
	}

	satisfied := true
	children := make([]*rationale.EvaluationResult, len(elems))
	for i, term := range pattern.Inner.Terms {
		child := e.evaluateDepth(ctx, elems[i], term, bindings, world, depth+1)
		children[i] = child
		if !child.Satisfied {
			satisfied = false
		}
	}

	res := &rationale.EvaluationResult{
		Kind: rationale.KindList, Input: v, Satisfied: satisfied,
		Severity: rationale.FoldMax(children), Children: children,
	}
	res.Identity()
	return res
}

func (e *Evaluator) evalRef(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World, depth int) *rationale.EvaluationResult {
	target := world.Pattern(pattern.Inner.RefSlot)
	if target == nil {
		return (&rationale.EvaluationResult{
			Kind: rationale.KindInvalidArgument, Input: v, Satisfied: false,
			Severity: rationale.SeverityError, Reason: "no such pattern slot",
		}).NoOutput()
	}

	callBindings, err := e.buildBindings(ctx, v, target.Params, pattern.Inner.RefArgs, bindings, world, depth)
	if err != nil {
		return (&rationale.EvaluationResult{
			Kind: rationale.KindInvalidArgument, Input: v, Satisfied: false,
			Severity: rationale.SeverityError, Reason: err.Error(),
		}).NoOutput()
	}

	child := e.evaluateDepth(ctx, v, target, callBindings, world, depth+1)
	if target.Name != nil {
		name := *target.Name
		child.Name = &name
	}

	res := &rationale.EvaluationResult{
		Kind: rationale.KindRef, Input: v, Satisfied: child.Satisfied,
		Severity: child.Severity, OutputKind: child.OutputKind, Output: child.Output,
		Children: []*rationale.EvaluationResult{child},
	}
	if pattern.Inner.RefSugar == ir.SugarChain {
		res.Kind = rationale.KindDeref // chain boundary: rationale has no Chain kind, so KindDeref marks it
	}
	return res
}

// buildBindings implements §4.7.1: for each (param, arg) pair, a Ref arg
// whose target takes no parameters binds directly; one that does takes
// arguments recursively and is wrapped as Bound. Argument(n) forwards
// whatever n is currently bound to. Deref args are pre-evaluated against
// the current value, binding the result (or Nothing on failure).
// Everything else, including a List arg (the operand list of
// and/or/chain), binds the arg pattern unchanged.
func (e *Evaluator) buildBindings(ctx context.Context, v *value.Value, params []string, args []*ir.Pattern, outer map[string]*ir.Pattern, world *lir.World, depth int) (map[string]*ir.Pattern, error) {
	if len(params) != len(args) {
		return nil, oops.Code("ARGUMENT_MISMATCH").Errorf("expected %d argument(s), got %d", len(params), len(args))
	}

	bound := make(map[string]*ir.Pattern, len(params))
	for i, param := range params {
		arg := args[i]
		switch {
		case arg.Inner.Kind == ir.InnerRef:
			target := world.Pattern(arg.Inner.RefSlot)
			if target != nil && len(target.Params) == 0 {
				bound[param] = target
				continue
			}
			sub, err := e.buildBindings(ctx, v, target.Params, arg.Inner.RefArgs, outer, world, depth)
			if err != nil {
				return nil, err
			}
			bound[param] = &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerBound, BoundTarget: target, BoundBindings: sub}}

		case arg.Inner.Kind == ir.InnerArgument:
			current, ok := outer[arg.Inner.ArgumentName]
			if !ok {
				bound[param] = nothingPattern()
				continue
			}
			bound[param] = current

		case arg.Inner.Kind == ir.InnerDeref:
			sub := e.evaluateDepth(ctx, v, arg, outer, world, depth+1)
			if sub.Satisfied && sub.OutputKind != rationale.OutputNone {
				bound[param] = constPattern(sub.Output)
			} else {
				bound[param] = nothingPattern()
			}

		default:
			bound[param] = arg
		}
	}
	return bound, nil
}

func (e *Evaluator) evalArgument(ctx context.Context, v *value.Value, pattern *ir.Pattern, bindings map[string]*ir.Pattern, world *lir.World, depth int) *rationale.EvaluationResult {
	bound, ok := bindings[pattern.Inner.ArgumentName]
	if !ok {
		return (&rationale.EvaluationResult{
			Kind: rationale.KindInvalidArgument, Input: v, Satisfied: false,
			Severity: rationale.SeverityError, Reason: "argument \"" + pattern.Inner.ArgumentName + "\" is unbound",
		}).NoOutput()
	}
	child := e.evaluateDepth(ctx, v, bound, bindings, world, depth+1)
	return &rationale.EvaluationResult{
		Kind: rationale.KindArgument, Input: v, Satisfied: child.Satisfied,
		Severity: child.Severity, OutputKind: child.OutputKind, Output: child.Output,
		Children: []*rationale.EvaluationResult{child},
	}
}

func mergeBindings(outer, fixed map[string]*ir.Pattern) map[string]*ir.Pattern {
	merged := make(map[string]*ir.Pattern, len(outer)+len(fixed))
	for k, v := range outer {
		merged[k] = v
	}
	for k, v := range fixed {
		merged[k] = v
	}
	return merged
}

func nothingPattern() *ir.Pattern {
	return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerNothing}}
}

func constPattern(v *value.Value) *ir.Pattern {
	return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerConst, ConstValue: v}}
}

func evalExpr(e *ir.Expr, self *value.Value) bool {
	switch e.Kind {
	case ir.ExprSelf:
		b, _ := self.TryBoolean()
		return b
	case ir.ExprLiteral:
		return self.Equal(e.Literal)
	case ir.ExprNot:
		return !evalExpr(e.Inner, self)
	case ir.ExprAnd:
		for _, op := range e.Operands {
			if !evalExpr(op, self) {
				return false
			}
		}
		return true
	case ir.ExprOr:
		for _, op := range e.Operands {
			if evalExpr(op, self) {
				return true
			}
		}
		return false
	case ir.ExprCmp:
		return evalCmp(e, self)
	default:
		return false
	}
}

func evalCmp(e *ir.Expr, self *value.Value) bool {
	left := exprValue(e.Left, self)
	right := exprValue(e.Right, self)
	switch e.Cmp {
	case "==":
		return left.Equal(right)
	case "!=":
		return !left.Equal(right)
	case ">":
		return left.Compare(right) == value.OrderGreater
	case ">=":
		ord := left.Compare(right)
		return ord == value.OrderGreater || ord == value.OrderEqual
	case "<":
		return left.Compare(right) == value.OrderLess
	case "<=":
		ord := left.Compare(right)
		return ord == value.OrderLess || ord == value.OrderEqual
	default:
		return false
	}
}

func exprValue(e *ir.Expr, self *value.Value) *value.Value {
	switch e.Kind {
	case ir.ExprSelf:
		return self
	case ir.ExprLiteral:
		return e.Literal
	default:
		return value.Null()
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package mir

import (
	"github.com/holomush/patternengine/internal/ast"
	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/resolve"
	"github.com/holomush/patternengine/pkg/value"
)

// combinator names the lang package's built-in desugar targets. The lang
// package must be registered (via World.DefineFunction) before any unit is
// lowered — "packages before unit types" in the slot-order invariant —
// so every one of these names already resolves to a slot by the time
// Lower runs.
var combinator = struct{ and, or, not, chain, refine, traverse string }{
	and: "lang::and", or: "lang::or", not: "lang::not",
	chain: "lang::chain", refine: "lang::refine", traverse: "lang::traverse",
}

// Lower runs the two-pass declare/define lowering driver over every
// (unit, resolution, package path) triple: every pattern name across the
// whole build is declared first, so cross-unit and forward references
// resolve to a slot regardless of lowering order; only then are bodies
// converted, since by that point every Ref target's arity is already
// known.
func Lower(w *World, units []UnitInput) ir.BuildErrors {
	var errs ir.BuildErrors

	for _, u := range units {
		for _, pat := range u.Unit.Patterns {
			name := ir.PatternName{Package: append([]string(nil), u.PackagePath...), Name: pat.Name}
			meta := lowerMetadata(pat.Meta)
			if _, err := w.Declare(name, meta, append([]string(nil), pat.TypeParams...)); err != nil {
				errs = append(errs, err.(*ir.BuildError))
			}
		}
	}

	for _, u := range units {
		l := &lowerer{world: w, res: u.Resolution, source: u.Source}
		for _, pat := range u.Unit.Patterns {
			if pat.Body == nil {
				continue
			}
			name := ir.PatternName{Package: append([]string(nil), u.PackagePath...), Name: pat.Name}
			slot, ok := w.SlotByName(name.Qualified())
			if !ok {
				continue // declare pass failed for this name; already reported
			}
			body := l.lowerTypeExpr(pat.Body)
			w.Define(slot, body)
		}
		errs = append(errs, l.errs...)
	}

	return errs
}

// UnitInput bundles one parsed-and-resolved compilation unit with the
// context Lower needs to declare and define its patterns.
type UnitInput struct {
	Source      string
	PackagePath []string
	Unit        *ast.CompilationUnit
	Resolution  *resolve.Resolution
}

func lowerMetadata(m *ast.Metadata) ir.Metadata {
	meta := ir.Metadata{Doc: m.Doc()}
	if m == nil {
		return meta
	}
	attrs := m.Attributes()
	if _, ok := attrs["unstable"]; ok {
		meta.Unstable = true
	}
	if dep, ok := attrs["deprecated"]; ok {
		meta.Deprecated = true
		if since, ok := dep.Values["since"]; ok {
			meta.Since = &since
		}
	}
	for _, sev := range []string{"advice", "warning", "error"} {
		if _, ok := attrs[sev]; ok {
			s := sev
			meta.Reporting.Severity = &s
		}
	}
	if ex, ok := attrs["explain"]; ok && len(ex.Positional) > 0 {
		meta.Reporting.Explanation = &ex.Positional[0]
	}
	return meta
}

type lowerer struct {
	world  *World
	res    *resolve.Resolution
	source string
	errs   ir.BuildErrors
}

func (l *lowerer) slotFor(qualified string) ir.Slot {
	slot, ok := l.world.SlotByName(qualified)
	if !ok {
		l.errs = append(l.errs, &ir.BuildError{Kind: ir.ErrPatternNotFound, Source: l.source, Name: qualified})
		return 0
	}
	return slot
}

// lowerTypeExpr collapses an Or-of-Ands, wrapping in lang::or/lang::and
// only when more than one branch/term is actually present. and/or are
// variable-arity combinators but still declare a single "terms"
// parameter, like every other Function; the variable-length operand list
// is carried as one InnerList argument rather than one RefArg per term.
func (l *lowerer) lowerTypeExpr(te *ast.TypeExpr) *ir.Pattern {
	branches := make([]*ir.Pattern, 0, len(te.Ors))
	for _, and := range te.Ors {
		branches = append(branches, l.lowerAnd(and))
	}
	if len(branches) == 1 {
		return branches[0]
	}
	return &ir.Pattern{Inner: ir.Inner{
		Kind: ir.InnerRef, RefSugar: ir.SugarOr, RefSlot: l.slotFor(combinator.or),
		RefArgs: []*ir.Pattern{{Inner: ir.Inner{Kind: ir.InnerList, Terms: branches}}},
	}}
}

func (l *lowerer) lowerAnd(and *ast.TypeAnd) *ir.Pattern {
	terms := make([]*ir.Pattern, 0, len(and.Terms))
	for _, ty := range and.Terms {
		terms = append(terms, l.lowerTy(ty))
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return &ir.Pattern{Inner: ir.Inner{
		Kind: ir.InnerRef, RefSugar: ir.SugarAnd, RefSlot: l.slotFor(combinator.and),
		RefArgs: []*ir.Pattern{{Inner: ir.Inner{Kind: ir.InnerList, Terms: terms}}},
	}}
}

// lowerTy applies, in grammar order, the deref prefixes and postfix chain
// to the primary, then wraps the whole result in lang::not if negated —
// mirroring the grammar's "!"? "*"* primary postfix* production exactly.
func (l *lowerer) lowerTy(ty *ast.Ty) *ir.Pattern {
	core := l.lowerPrimary(ty.Primary)
	for range ty.Derefs {
		core = &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerDeref, DerefTarget: core}}
	}
	core = l.applyPostfixes(core, ty.Postfixes)
	if ty.Negate {
		core = &ir.Pattern{Inner: ir.Inner{
			Kind: ir.InnerRef, RefSugar: ir.SugarNot, RefSlot: l.slotFor(combinator.not), RefArgs: []*ir.Pattern{core},
		}}
	}
	return core
}

// applyPostfixes builds the single lang::chain ref over
// [primary, step1, step2, ...] that the surface grammar's postfix chain
// desugars to. An empty-parens call postfix is a call-sugar no-op and
// contributes no step; a chain of exactly one contributing step still
// produces a two-element chain, since a single "self"-relative refine or
// traverse must still see the primary's own output as its input.
func (l *lowerer) applyPostfixes(primary *ir.Pattern, postfixes []*ast.Postfix) *ir.Pattern {
	steps := []*ir.Pattern{primary}
	for _, pf := range postfixes {
		switch {
		case pf.Call != nil && pf.Call.Inner != nil:
			steps = append(steps, &ir.Pattern{Inner: ir.Inner{
				Kind: ir.InnerRef, RefSugar: ir.SugarRefine, RefSlot: l.slotFor(combinator.refine),
				RefArgs: []*ir.Pattern{l.lowerTypeExpr(pf.Call.Inner)},
			}})
		case pf.Call != nil:
			// Empty parens: bare function-call sugar, a no-op on the chain.
		case pf.Pipe != nil:
			steps = append(steps, &ir.Pattern{Inner: ir.Inner{
				Kind: ir.InnerRef, RefSugar: ir.SugarRefine, RefSlot: l.slotFor(combinator.refine),
				RefArgs: []*ir.Pattern{l.lowerTypeExpr(pf.Pipe)},
			}})
		case pf.Field != "":
			steps = append(steps, &ir.Pattern{Inner: ir.Inner{
				Kind: ir.InnerRef, RefSugar: ir.SugarTraverse, RefSlot: l.slotFor(combinator.traverse),
				RefArgs: []*ir.Pattern{constPattern(value.NewString(pf.Field))},
			}})
		}
	}
	if len(steps) == 1 {
		return primary
	}
	return &ir.Pattern{Inner: ir.Inner{
		Kind: ir.InnerRef, RefSugar: ir.SugarChain, RefSlot: l.slotFor(combinator.chain),
		RefArgs: []*ir.Pattern{{Inner: ir.Inner{Kind: ir.InnerList, Terms: steps}}},
	}}
}

func (l *lowerer) lowerPrimary(p *ast.Primary) *ir.Pattern {
	switch {
	case p.Paren != nil:
		return l.lowerTypeExpr(p.Paren)
	case p.ExprLit != nil:
		return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerExpr, Expr: l.lowerExpr(p.ExprLit)}}
	case p.List != nil:
		terms := make([]*ir.Pattern, 0, len(p.List.Elements))
		for _, el := range p.List.Elements {
			terms = append(terms, l.lowerTypeExpr(el))
		}
		return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerList, Terms: terms}}
	case p.Const != nil:
		return constPattern(lowerConstValue(p.Const))
	case p.Object != nil:
		fields := make([]ir.ObjectField, 0, len(p.Object.Fields))
		for _, f := range p.Object.Fields {
			fields = append(fields, ir.ObjectField{
				Name: f.Name, Optional: f.Optional, Pattern: l.lowerTypeExpr(f.Type),
			})
		}
		return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerObject, Fields: fields}}
	case p.Ref != nil:
		return l.lowerRef(p.Ref)
	default:
		return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerAnything}}
	}
}

func (l *lowerer) lowerRef(ref *ast.RefNode) *ir.Pattern {
	res, ok := l.res.Refs[ref]
	if !ok {
		return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerAnything}}
	}
	if res.IsArgument {
		return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerArgument, ArgumentName: res.ArgumentName}}
	}
	switch res.Qualified.Name {
	case "anything":
		if len(res.Qualified.Package) == 0 {
			return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerAnything}}
		}
	case "nothing":
		if len(res.Qualified.Package) == 0 {
			return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerNothing}}
		}
	case "self":
		if len(res.Qualified.Package) == 0 {
			return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerExpr, Expr: &ir.Expr{Kind: ir.ExprSelf}}}
		}
	}

	qualified := res.Qualified.Qualified()
	slot := l.slotFor(qualified)
	args := make([]*ir.Pattern, 0, len(ref.TypeArgs))
	for _, ta := range ref.TypeArgs {
		args = append(args, l.lowerTypeExpr(ta))
	}
	if want := l.world.ParamCount(slot); want != len(args) {
		l.errs = append(l.errs, &ir.BuildError{
			Kind: ir.ErrArgumentMismatch, Source: l.source, Span: [2]int{ref.Pos.Offset, ref.Pos.Offset},
			Name: qualified, Want: want, Got: len(args),
		})
	}
	return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerRef, RefSugar: ir.SugarNone, RefSlot: slot, RefArgs: args}}
}

func constPattern(v *value.Value) *ir.Pattern {
	return &ir.Pattern{Inner: ir.Inner{Kind: ir.InnerConst, ConstValue: v}}
}

func lowerConstValue(c *ast.ConstLit) *value.Value {
	switch {
	case c.Str != nil:
		return value.NewString(*c.Str)
	case c.NumText != nil && c.IsDecimal():
		f, _ := c.DecimalValue()
		return value.NewDecimal(f)
	case c.NumText != nil:
		n, _ := c.IntValue()
		return value.NewInteger(n)
	case c.Bool != nil:
		return value.NewBoolean(c.BoolValue())
	default:
		return value.Null()
	}
}

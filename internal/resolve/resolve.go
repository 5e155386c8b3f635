// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package resolve implements per-compilation-unit name resolution (C4):
// building a visibility table from use-imports, local declarations, and
// primordials, then rewriting every unqualified pattern reference in a
// unit to its fully-qualified form. Only no-copy structural bookkeeping
// and map/tree construction over an already-parsed AST is involved, so
// this package deliberately uses nothing beyond the standard library —
// there is no third-party concern ("parse", "codec", "transport"...) for
// a name-table builder to depend on.
package resolve

import (
	"github.com/holomush/patternengine/internal/ast"
	"github.com/holomush/patternengine/internal/ir"
)

var primordialNames = []string{"integer", "string", "boolean", "decimal"}

// Visibility maps a short (unqualified, single-segment) name to its fully
// qualified target within one compilation unit.
type Visibility map[string]ir.PatternName

// BuildVisibility constructs U's visibility table: primordials, every
// `use` import (optionally renamed via `as`), and every pattern this unit
// itself declares, qualified by its inferred package path.
func BuildVisibility(pkgPath []string, unit *ast.CompilationUnit) Visibility {
	vis := make(Visibility)
	for _, p := range primordialNames {
		vis[p] = ir.PatternName{Name: p}
	}

	for _, use := range unit.Uses {
		if len(use.Path) == 0 {
			continue
		}
		target := ir.PatternName{
			Package: append([]string(nil), use.Path[:len(use.Path)-1]...),
			Name:    use.Path[len(use.Path)-1],
		}
		local := use.As
		if local == "" {
			local = target.Name
		}
		vis[local] = target
	}

	for _, pat := range unit.Patterns {
		vis[pat.Name] = ir.PatternName{Package: append([]string(nil), pkgPath...), Name: pat.Name}
	}

	return vis
}

// RefResolution is what a single ast.RefNode resolved to: either a
// type-parameter argument lookup or a fully qualified pattern name.
type RefResolution struct {
	IsArgument   bool
	ArgumentName string
	Qualified    ir.PatternName
}

// Resolution is the qualified-name annotation produced for one
// compilation unit: a side table keyed by AST node identity (the AST is
// not mutated in place, so later passes look references up here).
type Resolution struct {
	Refs map[*ast.RefNode]RefResolution
}

// ResolveUnit rewrites every pattern reference in unit against vis,
// honoring each pattern's own type-parameter scope (which masks any
// outer binding and resolves as Argument(name) instead). Unqualified
// names absent from vis produce PatternNotFound; multi-segment
// references (already self-qualified, e.g. "lang::and") are left for the
// MIR stage's known-world check instead, since that requires every unit's
// declarations and every registered function to be visible at once.
func ResolveUnit(source string, unit *ast.CompilationUnit, vis Visibility) (*Resolution, ir.BuildErrors) {
	res := &Resolution{Refs: make(map[*ast.RefNode]RefResolution)}
	var errs ir.BuildErrors

	w := &walker{source: source, vis: vis, res: res, errs: &errs}
	for _, pat := range unit.Patterns {
		locals := make(map[string]bool, len(pat.TypeParams))
		for _, tp := range pat.TypeParams {
			locals[tp] = true
		}
		w.walkTypeExpr(pat.Body, locals)
	}

	return res, errs
}

type walker struct {
	source string
	vis    Visibility
	res    *Resolution
	errs   *ir.BuildErrors
}

func (w *walker) walkTypeExpr(te *ast.TypeExpr, locals map[string]bool) {
	if te == nil {
		return
	}
	for _, and := range te.Ors {
		for _, ty := range and.Terms {
			w.walkTy(ty, locals)
		}
	}
}

func (w *walker) walkTy(ty *ast.Ty, locals map[string]bool) {
	if ty == nil || ty.Primary == nil {
		return
	}
	w.walkPrimary(ty.Primary, locals)
	for _, pf := range ty.Postfixes {
		switch {
		case pf.Call != nil && pf.Call.Inner != nil:
			w.walkTypeExpr(pf.Call.Inner, locals)
		case pf.Pipe != nil:
			w.walkTypeExpr(pf.Pipe, locals)
		}
	}
}

func (w *walker) walkPrimary(p *ast.Primary, locals map[string]bool) {
	switch {
	case p.Paren != nil:
		w.walkTypeExpr(p.Paren, locals)
	case p.List != nil:
		for _, el := range p.List.Elements {
			w.walkTypeExpr(el, locals)
		}
	case p.Object != nil:
		for _, f := range p.Object.Fields {
			w.walkTypeExpr(f.Type, locals)
		}
	case p.Ref != nil:
		w.walkRef(p.Ref, locals)
	}
}

func (w *walker) walkRef(ref *ast.RefNode, locals map[string]bool) {
	for _, ta := range ref.TypeArgs {
		w.walkTypeExpr(ta, locals)
	}

	// A bare reference to an in-scope type parameter masks any outer
	// binding and resolves as an Argument lookup instead of a name.
	if len(ref.Path) == 1 && locals[ref.Path[0]] {
		if len(ref.TypeArgs) > 0 {
			*w.errs = append(*w.errs, &ir.BuildError{
				Kind:   ir.ErrTypeParamWithArgs,
				Source: w.source,
				Span:   [2]int{ref.Pos.Offset, ref.Pos.Offset},
				Name:   ref.Path[0],
			})
		}
		w.res.Refs[ref] = RefResolution{IsArgument: true, ArgumentName: ref.Path[0]}
		return
	}

	// "anything"/"nothing"/"self" are engine keywords, not table lookups;
	// they resolve unqualified regardless of import/declaration state and
	// are recognized specially during MIR lowering.
	if len(ref.Path) == 1 && ast.IsReservedWord(ref.Path[0]) {
		w.res.Refs[ref] = RefResolution{Qualified: ir.PatternName{Name: ref.Path[0]}}
		return
	}

	if len(ref.Path) > 1 {
		// Already self-qualified; deferred to the MIR known-world check.
		w.res.Refs[ref] = RefResolution{Qualified: ir.PatternName{
			Package: append([]string(nil), ref.Path[:len(ref.Path)-1]...),
			Name:    ref.Path[len(ref.Path)-1],
		}}
		return
	}

	name := ref.Path[0]
	if q, ok := w.vis[name]; ok {
		w.res.Refs[ref] = RefResolution{Qualified: q}
		return
	}

	*w.errs = append(*w.errs, &ir.BuildError{
		Kind:   ir.ErrPatternNotFound,
		Source: w.source,
		Span:   [2]int{ref.Pos.Offset, ref.Pos.Offset},
		Name:   name,
	})
}

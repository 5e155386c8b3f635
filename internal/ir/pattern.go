// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package ir defines the compiled pattern representation shared by MIR
// lowering and LIR conversion: the same Pattern/Inner tree is built
// mutably slot-by-slot during lowering and then frozen, unchanged in
// shape, into an immutable world.
package ir

import (
	"strings"

	"github.com/holomush/patternengine/pkg/value"
)

// Slot is an integer index into a world's pattern vector. Ref nodes carry
// a Slot rather than a direct pointer so that cyclic and forward pattern
// references do not require cycles in Go's ownership graph.
type Slot int

// PatternName is a package-qualified pattern name.
type PatternName struct {
	Package []string
	Name    string
}

// Qualified renders "seg1::seg2::name".
func (n PatternName) Qualified() string {
	if len(n.Package) == 0 {
		return n.Name
	}
	return strings.Join(n.Package, "::") + "::" + n.Name
}

// SyntacticSugar tags a Ref produced by desugaring a surface-language
// operator, so introspection can recover the original notation without
// the evaluator needing a special case per combinator.
type SyntacticSugar int

const (
	SugarNone SyntacticSugar = iota
	SugarAnd
	SugarOr
	SugarNot
	SugarChain
	SugarRefine
	SugarTraverse
)

// PrimordialKind is the base scalar kind of a Primordial pattern.
type PrimordialKind int

const (
	PrimordialInteger PrimordialKind = iota
	PrimordialDecimal
	PrimordialBoolean
	PrimordialString
	PrimordialFunction
)

func (k PrimordialKind) String() string {
	switch k {
	case PrimordialInteger:
		return "integer"
	case PrimordialDecimal:
		return "decimal"
	case PrimordialBoolean:
		return "boolean"
	case PrimordialString:
		return "string"
	case PrimordialFunction:
		return "function"
	default:
		return "unknown"
	}
}

// InnerKind discriminates a Pattern's Inner variant.
type InnerKind int

const (
	InnerAnything InnerKind = iota
	InnerNothing
	InnerPrimordial
	InnerConst
	InnerObject
	InnerList
	InnerExpr
	InnerRef
	InnerDeref
	InnerBound
	InnerArgument
)

// Function is the stable interface a registered function (built-in
// combinator or embedder-supplied plugin) satisfies. It is defined here,
// not in the registry package, so Inner can hold a Function without an
// import cycle between ir and registry.
type Function interface {
	// QualifiedName is the function's bare name within its package (e.g.
	// "and", "all") — the package prefix is supplied separately wherever
	// the function is registered into a world.
	QualifiedName() string
	// Parameters lists the ordered parameter names the function expects.
	Parameters() []string
	// Order is the cost heuristic used to sequence and/or evaluation
	// (lower runs first).
	Order() uint8
}

// ObjectField is one declared field of an Object pattern.
type ObjectField struct {
	Name     string
	Pattern  *Pattern
	Optional bool
}

// Inner is the tagged-union body of a compiled Pattern.
type Inner struct {
	Kind InnerKind

	// InnerPrimordial
	PrimordialKind PrimordialKind
	Function       Function // set only when PrimordialKind == PrimordialFunction

	// InnerConst
	ConstValue *value.Value

	// InnerObject
	Fields []ObjectField

	// InnerList
	Terms []*Pattern

	// InnerExpr
	Expr *Expr

	// InnerRef
	RefSugar SyntacticSugar
	RefSlot  Slot
	RefArgs  []*Pattern

	// InnerDeref
	DerefTarget *Pattern

	// InnerBound
	BoundTarget   *Pattern
	BoundBindings map[string]*Pattern

	// InnerArgument
	ArgumentName string
}

// Reporting carries a pattern's severity/explanation overrides, parsed
// from its #[advice]/#[warning]/#[explain(...)] attributes.
type Reporting struct {
	// Severity, when non-nil, overrides a non-None evaluation severity.
	// Values: "advice", "warning", "error".
	Severity *string
	// Explanation, when non-nil, replaces the default reason string.
	Explanation *string
}

// Metadata is a Pattern's carried documentation and attribute data,
// migrated unchanged from the AST through MIR and into LIR.
type Metadata struct {
	Doc        *string
	Unstable   bool
	Deprecated bool
	Since      *string
	Reporting  Reporting
}

// Pattern is an immutable compiled pattern: an optional declared name,
// optional documentation, its ordered parameter list, and one Inner body.
type Pattern struct {
	Name   *PatternName
	Params []string
	Inner  Inner
	Meta   Metadata
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package ir

import "github.com/holomush/patternengine/pkg/value"

// ExprKind discriminates an Expr node. Only the self/literal/comparison/
// not/and/or layer is evaluated; arithmetic is rejected during lowering
// (reserved, unused by the core — see lowering's ArithmeticNotSupported
// build error).
type ExprKind int

const (
	ExprSelf ExprKind = iota
	ExprLiteral
	ExprNot
	ExprAnd
	ExprOr
	ExprCmp
)

// Expr is a boolean predicate over the current "self" value.
type Expr struct {
	Kind     ExprKind
	Literal  *value.Value // ExprLiteral
	Operands []*Expr      // ExprAnd / ExprOr
	Inner    *Expr        // ExprNot
	Cmp      string       // ExprCmp: "==", "!=", ">", ">=", "<", "<="
	Left     *Expr        // ExprCmp
	Right    *Expr        // ExprCmp
}

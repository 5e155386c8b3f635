// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package mir

import (
	"github.com/holomush/patternengine/internal/ast"
	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/pkg/value"
)

func negatedInteger(n int64) *value.Value     { return value.NewInteger(-n) }
func negatedDecimal(f float64) *value.Value   { return value.NewDecimal(-f) }

// lowerExpr converts a "$(...)" boolean expression. Only self/literal/
// comparison/not/and/or are representable in ir.Expr; any use of the
// additive/multiplicative layer (actual "+ - * /" operators, beyond the
// single unary "-" on a literal) produces ArithmeticNotSupported and
// degrades to the left-most operand so lowering can continue.
func (l *lowerer) lowerExpr(e *ast.Expr) *ir.Expr {
	operands := make([]*ir.Expr, 0, len(e.Ors))
	for _, and := range e.Ors {
		operands = append(operands, l.lowerExprAnd(and))
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return &ir.Expr{Kind: ir.ExprOr, Operands: operands}
}

func (l *lowerer) lowerExprAnd(a *ast.ExprAnd) *ir.Expr {
	operands := make([]*ir.Expr, 0, len(a.Ands))
	for _, not := range a.Ands {
		operands = append(operands, l.lowerExprNot(not))
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return &ir.Expr{Kind: ir.ExprAnd, Operands: operands}
}

func (l *lowerer) lowerExprNot(n *ast.ExprNot) *ir.Expr {
	cmp := l.lowerExprCmp(n.Cmp)
	if n.Negate {
		return &ir.Expr{Kind: ir.ExprNot, Inner: cmp}
	}
	return cmp
}

func (l *lowerer) lowerExprCmp(c *ast.ExprCmp) *ir.Expr {
	left := l.lowerExprArith(c.Left)
	if c.Op == "" {
		return left
	}
	return &ir.Expr{Kind: ir.ExprCmp, Cmp: c.Op, Left: left, Right: l.lowerExprArith(c.Right)}
}

func (l *lowerer) lowerExprArith(a *ast.ExprArith) *ir.Expr {
	if len(a.Rest) > 0 {
		l.errs = append(l.errs, &ir.BuildError{
			Kind: ir.ErrArithmeticNotSupported, Source: l.source,
			Span: [2]int{a.Pos.Offset, a.Pos.Offset}, Msg: "arithmetic operators are parsed but never evaluated",
		})
	}
	return l.lowerExprUnary(a.First)
}

func (l *lowerer) lowerExprUnary(u *ast.ExprUnary) *ir.Expr {
	lit := l.lowerExprPrimary(u.Primary)
	if u.Neg && lit.Kind == ir.ExprLiteral {
		if n, ok := lit.Literal.TryInteger(); ok {
			lit.Literal = negatedInteger(n)
		} else if f, ok := lit.Literal.TryDecimal(); ok {
			lit.Literal = negatedDecimal(f)
		}
	}
	return lit
}

func (l *lowerer) lowerExprPrimary(p *ast.ExprPrimary) *ir.Expr {
	switch {
	case p.SelfRef:
		return &ir.Expr{Kind: ir.ExprSelf}
	case p.Paren != nil:
		return l.lowerExpr(p.Paren)
	case p.Literal != nil:
		return &ir.Expr{Kind: ir.ExprLiteral, Literal: lowerConstValue(p.Literal)}
	default:
		return &ir.Expr{Kind: ir.ExprSelf}
	}
}

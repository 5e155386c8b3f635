// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// String methods that render the parsed AST back to source text, one
// per grammar production in pattern.go/expr.go/metadata.go — the
// "fmt" subcommand's formatter walks this tree instead of the original
// source bytes, so a round-trip normalizes whitespace and quoting.
package ast

import (
	"strconv"
	"strings"
)

func (u *CompilationUnit) String() string {
	var b strings.Builder
	for _, use := range u.Uses {
		b.WriteString(use.String())
		b.WriteString("\n")
	}
	if len(u.Uses) > 0 && len(u.Patterns) > 0 {
		b.WriteString("\n")
	}
	for i, p := range u.Patterns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(p.String())
	}
	return b.String()
}

func (d *UseDecl) String() string {
	s := "use " + strings.Join(d.Path, "::")
	if d.As != "" {
		s += " as " + d.As
	}
	return s
}

func (d *PatternDecl) String() string {
	var b strings.Builder
	if d.Meta != nil {
		b.WriteString(d.Meta.String())
		b.WriteString("\n")
	}
	b.WriteString("pattern ")
	b.WriteString(d.Name)
	if len(d.TypeParams) > 0 {
		b.WriteString("<")
		b.WriteString(strings.Join(d.TypeParams, ", "))
		b.WriteString(">")
	}
	if d.Body != nil {
		b.WriteString(" = ")
		b.WriteString(d.Body.String())
	}
	return b.String()
}

func (e *TypeExpr) String() string {
	parts := make([]string, len(e.Ors))
	for i, or := range e.Ors {
		parts[i] = or.String()
	}
	return strings.Join(parts, " || ")
}

func (a *TypeAnd) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " && ")
}

func (t *Ty) String() string {
	var b strings.Builder
	if t.Negate {
		b.WriteString("!")
	}
	for range t.Derefs {
		b.WriteString("*")
	}
	b.WriteString(t.Primary.String())
	for _, pf := range t.Postfixes {
		b.WriteString(pf.String())
	}
	return b.String()
}

func (p *Primary) String() string {
	switch {
	case p.Paren != nil:
		return "(" + p.Paren.String() + ")"
	case p.ExprLit != nil:
		return "$(" + p.ExprLit.String() + ")"
	case p.List != nil:
		return p.List.String()
	case p.Const != nil:
		return p.Const.String()
	case p.Object != nil:
		return p.Object.String()
	case p.Ref != nil:
		return p.Ref.String()
	default:
		return ""
	}
}

func (r *RefNode) String() string {
	s := strings.Join(r.Path, "::")
	if len(r.TypeArgs) > 0 {
		parts := make([]string, len(r.TypeArgs))
		for i, a := range r.TypeArgs {
			parts[i] = a.String()
		}
		s += "<" + strings.Join(parts, ", ") + ">"
	}
	return s
}

func (c *ConstLit) String() string {
	switch {
	case c.Str != nil:
		return strconv.Quote(*c.Str)
	case c.NumText != nil:
		return *c.NumText
	case c.Bool != nil:
		return *c.Bool
	default:
		return ""
	}
}

func (o *ObjectLit) String() string {
	parts := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		parts[i] = f.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (f *FieldDecl) String() string {
	var b strings.Builder
	if f.Meta != nil {
		b.WriteString(f.Meta.String())
		b.WriteString(" ")
	}
	b.WriteString(f.Name)
	if f.Optional {
		b.WriteString("?")
	}
	b.WriteString(": ")
	b.WriteString(f.Type.String())
	return b.String()
}

func (l *ListLit) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *Postfix) String() string {
	switch {
	case p.Call != nil:
		return p.Call.String()
	case p.Pipe != nil:
		return "|" + p.Pipe.String()
	case p.Field != "":
		return "." + p.Field
	default:
		return ""
	}
}

func (c *CallPostfix) String() string {
	if c.Inner == nil {
		return "()"
	}
	return "(" + c.Inner.String() + ")"
}

func (e *Expr) String() string {
	parts := make([]string, len(e.Ors))
	for i, or := range e.Ors {
		parts[i] = or.String()
	}
	return strings.Join(parts, " || ")
}

func (a *ExprAnd) String() string {
	parts := make([]string, len(a.Ands))
	for i, n := range a.Ands {
		parts[i] = n.String()
	}
	return strings.Join(parts, " && ")
}

func (n *ExprNot) String() string {
	if n.Negate {
		return "!" + n.Cmp.String()
	}
	return n.Cmp.String()
}

func (c *ExprCmp) String() string {
	if c.Op == "" {
		return c.Left.String()
	}
	return c.Left.String() + " " + c.Op + " " + c.Right.String()
}

func (a *ExprArith) String() string {
	var b strings.Builder
	b.WriteString(a.First.String())
	for _, r := range a.Rest {
		b.WriteString(" ")
		b.WriteString(r.Op)
		b.WriteString(" ")
		b.WriteString(r.Term.String())
	}
	return b.String()
}

func (u *ExprUnary) String() string {
	if u.Neg {
		return "-" + u.Primary.String()
	}
	return u.Primary.String()
}

func (p *ExprPrimary) String() string {
	switch {
	case p.SelfRef:
		return "self"
	case p.Paren != nil:
		return "(" + p.Paren.String() + ")"
	case p.Literal != nil:
		return p.Literal.String()
	default:
		return ""
	}
}

func (m *Metadata) String() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(item.String())
	}
	return b.String()
}

func (i *MetaItem) String() string {
	if i.Doc != nil {
		return *i.Doc
	}
	if i.Attr != nil {
		return i.Attr.String()
	}
	return ""
}

func (a *AttributeDecl) String() string {
	s := "#[" + a.Name
	if len(a.Args) > 0 {
		parts := make([]string, len(a.Args))
		for i, arg := range a.Args {
			parts[i] = arg.String()
		}
		s += "(" + strings.Join(parts, ", ") + ")"
	}
	return s + "]"
}

func (a *AttrArg) String() string {
	if a.Key == "" {
		return strconv.Quote(a.Value)
	}
	return a.Key + "=" + strconv.Quote(a.Value)
}

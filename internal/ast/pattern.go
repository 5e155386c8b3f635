// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package ast

import "github.com/alecthomas/participle/v2/lexer"

// reservedWords are pattern names with engine-recognized meaning; they
// desugar during HIR-to-MIR lowering instead of resolving through the
// normal name table.
var reservedWords = map[string]bool{
	"anything": true,
	"nothing":  true,
	"self":     true,
}

// IsReservedWord reports whether word is a pattern-language keyword.
func IsReservedWord(word string) bool {
	return reservedWords[word]
}

// CompilationUnit is the result of parsing one source file: its imports
// and the pattern declarations it contributes.
//
// Grammar: compilation_unit := use* pattern_defn*
type CompilationUnit struct {
	Pos      lexer.Position  `parser:""`
	Uses     []*UseDecl      `parser:"@@*"`
	Patterns []*PatternDecl  `parser:"@@*"`
}

// UseDecl imports a qualified pattern name, optionally under a local alias.
//
// Grammar: use := "use" qualified_name ("as" ident)?
type UseDecl struct {
	Pos  lexer.Position `parser:""`
	Path []string       `parser:"'use' @Ident (ColonColon @Ident)*"`
	As   string         `parser:"('as' @Ident)?"`
}

// PatternDecl declares a named, optionally parameterized pattern.
//
// Grammar: pattern_defn := metadata? "pattern" ident type_params? ("=" type_expr)?
type PatternDecl struct {
	Pos        lexer.Position `parser:""`
	Meta       *Metadata      `parser:"@@?"`
	Name       string         `parser:"'pattern' @Ident"`
	TypeParams []string       `parser:"('<' @Ident (',' @Ident)* ','? '>')?"`
	Body       *TypeExpr      `parser:"('=' @@)?"`
}

// TypeExpr is the top-level disjunction: the lowest-precedence production.
//
// Grammar: type_expr := logical_or := logical_and ("||" logical_and)*
type TypeExpr struct {
	Pos  lexer.Position `parser:""`
	Ors  []*TypeAnd     `parser:"@@ (OpOr @@)*"`
}

// TypeAnd is a conjunction chain joined by "&&".
//
// Grammar: logical_and := ty ("&&" ty)*
type TypeAnd struct {
	Pos   lexer.Position `parser:""`
	Terms []*Ty          `parser:"@@ (OpAnd @@)*"`
}

// Ty is a single type-expression term: optional negation, zero or more
// deref prefixes, a primary, then a postfix chain.
//
// Grammar: ty := "!"? "*"* (primary) postfix*
type Ty struct {
	Pos       lexer.Position `parser:""`
	Negate    bool           `parser:"@Bang?"`
	Derefs    []string       `parser:"@Star*"`
	Primary   *Primary       `parser:"@@"`
	Postfixes []*Postfix     `parser:"@@*"`
}

// DerefCount is the number of leading "*" deref prefixes.
func (t *Ty) DerefCount() int { return len(t.Derefs) }

// Primary is the innermost production of a type term.
//
// Grammar: paren | $(expr) | list | const | ref | object
type Primary struct {
	Pos     lexer.Position `parser:""`
	Paren   *TypeExpr      `parser:"  '(' @@ ')'"`
	ExprLit *Expr          `parser:"| Dollar '(' @@ ')'"`
	List    *ListLit       `parser:"| @@"`
	Const   *ConstLit      `parser:"| @@"`
	Object  *ObjectLit     `parser:"| @@"`
	Ref     *RefNode       `parser:"| @@"`
}

// RefNode is a (possibly package-qualified) pattern reference with
// optional generic arguments.
//
// Grammar: ref := qualified_name ("<" type_expr ("," type_expr)* ">")?
type RefNode struct {
	Pos      lexer.Position `parser:""`
	Path     []string       `parser:"@Ident (ColonColon @Ident)*"`
	TypeArgs []*TypeExpr    `parser:"('<' @@ (',' @@)* '>')?"`
}

// ConstLit is a scalar literal: string, number (integer or decimal by
// lexical form), or boolean.
//
// Grammar: const := integer | decimal | string | boolean
type ConstLit struct {
	Pos     lexer.Position `parser:""`
	Str     *string        `parser:"  @String"`
	NumText *string        `parser:"| @Number"`
	Bool    *string        `parser:"| @('true' | 'false')"`
}

// ObjectLit is a brace-delimited field list.
//
// Grammar: object := "{" (field ("," field)* ","?)? "}"
type ObjectLit struct {
	Pos    lexer.Position `parser:""`
	Fields []*FieldDecl   `parser:"'{' (@@ (',' @@)* ','?)? '}'"`
}

// FieldDecl is one object field: optional metadata, name, optional "?"
// marking it as not required, and its type.
//
// Grammar: field := metadata? ident "?"? ":" type_expr
type FieldDecl struct {
	Pos      lexer.Position `parser:""`
	Meta     *Metadata      `parser:"@@?"`
	Name     string         `parser:"@Ident"`
	Optional bool           `parser:"@'?'?"`
	Type     *TypeExpr      `parser:"':' @@"`
}

// ListLit is a bracket-delimited fixed-arity positional list of terms.
//
// Grammar: list := "[" (type_expr ("," type_expr)* ","?)? "]"
type ListLit struct {
	Pos      lexer.Position `parser:""`
	Elements []*TypeExpr    `parser:"'[' (@@ (',' @@)* ','?)? ']'"`
}

// Postfix is one element of the postfix chain following a primary: a
// refinement call "(...)", a pipe-refinement "|...", or a field traversal
// ".ident".
//
// Grammar: postfix := "(" type_expr? ")" | "|" type_expr | "." ident
type Postfix struct {
	Pos   lexer.Position `parser:""`
	Call  *CallPostfix   `parser:"  @@"`
	Pipe  *TypeExpr      `parser:"| Pipe @@"`
	Field string         `parser:"| Dot @Ident"`
}

// CallPostfix is a parenthesized refinement. Inner == nil means empty
// parens, sugar for a bare function call rather than a refinement.
type CallPostfix struct {
	Pos   lexer.Position `parser:""`
	Inner *TypeExpr      `parser:"'(' @@? ')'"`
}

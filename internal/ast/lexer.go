// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package ast defines the located syntax tree for pattern-language source:
// span-tagged nodes plus the doc-comment/attribute metadata that rides
// alongside pattern and field declarations.
package ast

import "github.com/alecthomas/participle/v2/lexer"

// patternLexer tokenizes pattern-language source. Order matters: longer
// patterns must come before shorter ones that share a prefix (e.g. "!="
// before "!", "::" before ":").
var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "DocLine", Pattern: `///[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "ColonColon", Pattern: `::`},
	{Name: "OpAnd", Pattern: `&&`},
	{Name: "OpOr", Pattern: `\|\|`},
	{Name: "OpEq", Pattern: `==`},
	{Name: "OpNe", Pattern: `!=`},
	{Name: "OpGe", Pattern: `>=`},
	{Name: "OpLe", Pattern: `<=`},
	{Name: "OpGt", Pattern: `>`},
	{Name: "OpLt", Pattern: `<`},
	{Name: "Bang", Pattern: `!`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Dollar", Pattern: `\$`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Hash", Pattern: `#`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_@-]*`},
	{Name: "Punct", Pattern: `[(){}\[\],:?=]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Span is a half-open byte range into a compilation unit's source text.
type Span struct {
	Start int
	End   int
}

// FromPositions builds a Span from participle's start/end lexer positions.
func FromPositions(start, end lexer.Position) Span {
	return Span{Start: start.Offset, End: end.Offset}
}

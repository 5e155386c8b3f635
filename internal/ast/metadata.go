// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package ast

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Metadata carries everything that rides alongside a pattern or field
// declaration but plays no role in matching: documentation text and
// attribute flags/values.
type Metadata struct {
	Pos   lexer.Position `parser:""`
	Items []*MetaItem    `parser:"@@+"`
}

// MetaItem is one element of a metadata block: either a doc-comment line
// or a "#[...]" attribute.
type MetaItem struct {
	Pos  lexer.Position  `parser:""`
	Doc  *string         `parser:"  @DocLine"`
	Attr *AttributeDecl  `parser:"| @@"`
}

// AttributeDecl is a single "#[name(arg, key=val, ...)]" attribute.
type AttributeDecl struct {
	Pos   lexer.Position `parser:""`
	Open  string         `parser:"'#' '['" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*AttrArg     `parser:"('(' (@@ (',' @@)*)? ')')?"`
	Close string         `parser:"']'" json:"-"`
}

// AttrArg is either a bare positional value ("explain(\"reason\")") or a
// key=value pair ("deprecated(since=\"1.0\")").
type AttrArg struct {
	Pos   lexer.Position `parser:""`
	Key   string         `parser:"(@Ident '=')?"`
	Value string         `parser:"@(String | Ident | Number)"`
}

// Doc joins every doc line into a single documentation string, or nil if
// the metadata block carries none.
func (m *Metadata) Doc() *string {
	if m == nil {
		return nil
	}
	var lines []string
	for _, item := range m.Items {
		if item.Doc != nil {
			lines = append(lines, strings.TrimPrefix(strings.TrimPrefix(*item.Doc, "///"), " "))
		}
	}
	if len(lines) == 0 {
		return nil
	}
	joined := strings.Join(lines, "\n")
	return &joined
}

// AttributeValues is the engine-recognized projection of one attribute
// name's accumulated flags/values (an attribute may appear more than once;
// the quantities merge).
type AttributeValues struct {
	Flags  map[string]bool
	Values map[string]string
	// Positional holds bare (keyless) argument values in order, e.g. the
	// single string argument to #[explain("...")].
	Positional []string
}

// Attributes collects the metadata block's attributes keyed by name, each
// merged across repeated occurrences.
func (m *Metadata) Attributes() map[string]AttributeValues {
	out := make(map[string]AttributeValues)
	if m == nil {
		return out
	}
	for _, item := range m.Items {
		if item.Attr == nil {
			continue
		}
		av, ok := out[item.Attr.Name]
		if !ok {
			av = AttributeValues{Flags: map[string]bool{}, Values: map[string]string{}}
		}
		if len(item.Attr.Args) == 0 {
			av.Flags[item.Attr.Name] = true
		}
		for _, arg := range item.Attr.Args {
			val := unquote(arg.Value)
			if arg.Key == "" {
				av.Positional = append(av.Positional, val)
			} else {
				av.Values[arg.Key] = val
			}
		}
		out[item.Attr.Name] = av
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

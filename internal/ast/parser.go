// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package ast

import (
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
)

var (
	parserOnce sync.Once
	parser     *participle.Parser[CompilationUnit]
	parserErr  error
)

// NewParser constructs the participle parser for the pattern-language
// grammar. MaxLookahead enables full backtracking: the postfix chain,
// generic reference arguments, and refinement-call-vs-empty-call forms
// all share leading tokens with other productions and require
// speculative parsing to disambiguate.
func NewParser() (*participle.Parser[CompilationUnit], error) {
	parserOnce.Do(func() {
		parser, parserErr = participle.Build[CompilationUnit](
			participle.Lexer(patternLexer),
			participle.Unquote("String"),
			participle.UseLookahead(participle.MaxLookahead),
		)
	})
	return parser, parserErr
}

// IsDecimal reports whether a const-literal's lexical number form carries
// a decimal point (and so compiles to ValuePattern Decimal rather than
// Integer).
func (c *ConstLit) IsDecimal() bool {
	return c.NumText != nil && strings.Contains(*c.NumText, ".")
}

// IntValue parses an integer-form NumText.
func (c *ConstLit) IntValue() (int64, error) {
	return strconv.ParseInt(*c.NumText, 10, 64)
}

// DecimalValue parses a NumText of either form as a float64.
func (c *ConstLit) DecimalValue() (float64, error) {
	return strconv.ParseFloat(*c.NumText, 64)
}

// BoolValue parses a Bool-form const literal.
func (c *ConstLit) BoolValue() bool {
	return c.Bool != nil && *c.Bool == "true"
}

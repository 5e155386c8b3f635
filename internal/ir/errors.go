// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package ir

import "fmt"

// BuildErrorKind discriminates the structural errors a build can collect.
type BuildErrorKind int

const (
	ErrPatternNotFound BuildErrorKind = iota
	ErrArgumentMismatch
	ErrParse
	ErrArithmeticNotSupported
	ErrTypeParamWithArgs
)

// BuildError is one structural error accumulated during parsing, name
// resolution, or MIR lowering. Builds never halt at the first error;
// every BuildError produced along the way is returned together.
type BuildError struct {
	Kind   BuildErrorKind
	Source string
	Span   [2]int // half-open byte offsets, [0,0] when not applicable
	Name   string // the offending pattern name, when relevant
	Want   int    // expected arg count, for ErrArgumentMismatch
	Got    int    // actual arg count, for ErrArgumentMismatch
	Msg    string
}

func (e *BuildError) Error() string {
	switch e.Kind {
	case ErrPatternNotFound:
		return fmt.Sprintf("%s: pattern not found: %s", e.Source, e.Name)
	case ErrArgumentMismatch:
		return fmt.Sprintf("%s: %s expects %d argument(s), got %d", e.Source, e.Name, e.Want, e.Got)
	case ErrParse:
		return fmt.Sprintf("%s: parse error: %s", e.Source, e.Msg)
	case ErrArithmeticNotSupported:
		return fmt.Sprintf("%s: arithmetic operators are reserved and not evaluated: %s", e.Source, e.Msg)
	case ErrTypeParamWithArgs:
		return fmt.Sprintf("%s: type parameter %q must not carry generic arguments", e.Source, e.Name)
	default:
		return fmt.Sprintf("%s: build error: %s", e.Source, e.Msg)
	}
}

// BuildErrors is a non-empty, document-ordered list of BuildError.
type BuildErrors []*BuildError

func (e BuildErrors) Error() string {
	if len(e) == 0 {
		return "no errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more error(s))", e[0].Error(), len(e)-1)
}

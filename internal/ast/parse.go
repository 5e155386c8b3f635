// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package ast

import (
	"github.com/samber/oops"
)

// Parse parses one source file's text into a CompilationUnit. filename is
// used only for error messages and participle's position reporting.
//
// participle stops at the first syntax error per file; "parsing never
// halts at first error" (spec) is honored at the multi-file level by the
// caller, which continues parsing remaining files and aggregates each
// file's single parse error alongside per-file name-resolution errors.
func Parse(filename, src string) (*CompilationUnit, error) {
	p, err := NewParser()
	if err != nil {
		return nil, oops.Code("PARSER_BUILD_FAILED").Wrapf(err, "build pattern-language parser")
	}

	unit, err := p.ParseString(filename, src)
	if err != nil {
		return nil, oops.
			Code("PARSE_ERROR").
			With("file", filename).
			Wrapf(err, "parse %s", filename)
	}
	return unit, nil
}

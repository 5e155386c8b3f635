// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package rationale defines the evaluator's result tree (C8): an
// EvaluationResult carries the severity-folded outcome of evaluating one
// pattern against one value, plus an ordered list of child results that
// justify it, and projects to the stable wire-form Response for
// serialization at the evaluation API boundary.
package rationale

import (
	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/pkg/value"
)

// Severity is the evaluator's ordered outcome classification, folded
// bottom-up from a result's children: None < Advice < Warning < Error.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityAdvice
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityAdvice:
		return "advice"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Max returns the more severe of s and o.
func (s Severity) Max(o Severity) Severity {
	if o > s {
		return o
	}
	return s
}

// ParseSeverity maps a #[advice]/#[warning]/#[error] attribute name to its
// Severity, used when a pattern's reporting metadata overrides the fold.
func ParseSeverity(name string) (Severity, bool) {
	switch name {
	case "advice":
		return SeverityAdvice, true
	case "warning":
		return SeverityWarning, true
	case "error":
		return SeverityError, true
	default:
		return SeverityNone, false
	}
}

// Kind discriminates what produced an EvaluationResult, driving the
// default reason string; it is not itself part of the wire form.
type Kind int

const (
	KindAnything Kind = iota
	KindNothing
	KindPrimordial
	KindConst
	KindExpr
	KindObject
	KindNotAnObject
	KindMissingField
	KindList
	KindNotAList
	KindRef
	KindDeref
	KindBound
	KindArgument
	KindInvalidArgument
	KindFunction
)

// OutputKind discriminates an EvaluationResult's raw output: the input
// unchanged, a newly derived value, or no value at all.
type OutputKind int

const (
	OutputIdentity OutputKind = iota
	OutputTransform
	OutputNone
)

// EvaluationResult is one node of the rationale tree: the outcome of
// evaluating some pattern (possibly anonymous) against some value.
type EvaluationResult struct {
	Kind Kind

	// Name identifies this node as a "pat>" entry — set when this result
	// is a Ref's target (the named pattern actually invoked).
	Name *ir.PatternName
	// FieldName identifies this node as a "fld>" entry — set when this
	// result is an Object field's sub-evaluation.
	FieldName string

	Input      *value.Value
	OutputKind OutputKind
	Output     *value.Value // set for Identity (== Input) and Transform; nil for None
	Satisfied  bool
	Severity   Severity
	Reason     string
	Children   []*EvaluationResult
}

// Identity sets r's output to the input value unchanged.
func (r *EvaluationResult) Identity() *EvaluationResult {
	r.OutputKind = OutputIdentity
	r.Output = r.Input
	return r
}

// Transform sets r's output to a newly derived value.
func (r *EvaluationResult) Transform(v *value.Value) *EvaluationResult {
	r.OutputKind = OutputTransform
	r.Output = v
	return r
}

// NoOutput sets r's output to None.
func (r *EvaluationResult) NoOutput() *EvaluationResult {
	r.OutputKind = OutputNone
	r.Output = nil
	return r
}

// WireName renders the Response "name" discriminator.
func (r *EvaluationResult) WireName() string {
	switch {
	case r.Name != nil:
		return "pat>" + r.Name.Qualified()
	case r.FieldName != "":
		return "fld>" + r.FieldName
	default:
		return ""
	}
}

// FoldMax folds Severity as the max over children — the rule used by
// Object (present fields), List, Chain, and Function nodes.
func FoldMax(children []*EvaluationResult) Severity {
	sev := SeverityNone
	for _, c := range children {
		sev = sev.Max(c.Severity)
	}
	return sev
}

// ApplyReporting applies a pattern's reporting metadata overrides: a set
// severity overrides a non-None fold result, and a set explanation
// replaces the default reason string unconditionally. Satisfied is
// re-derived from the resulting severity per the engine invariant
// satisfied(R) ⇔ severity(R) < Error, so a downgrade to Warning/Advice
// flips an unsatisfied result to satisfied (spec §7's "non-fatal"
// downgrade) and a forced Error flips a satisfied one the other way.
func ApplyReporting(r *EvaluationResult, reporting ir.Reporting) {
	if reporting.Severity != nil && r.Severity != SeverityNone {
		if sev, ok := ParseSeverity(*reporting.Severity); ok {
			r.Severity = sev
			r.Satisfied = r.Severity < SeverityError
		}
	}
	if reporting.Explanation != nil {
		r.Reason = *reporting.Explanation
	}
}

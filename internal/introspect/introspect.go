// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package introspect projects a frozen lir.World into a stable,
// JSON-serializable description (C11): pattern names, docs, parameter
// lists, and the package tree — generalized from the teacher's
// cmd/gen-schema (reflect one Go type to a schema document) to walking a
// whole compiled world.
package introspect

import (
	"encoding/json"
	"strconv"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
	"github.com/holomush/patternengine/internal/rationale"
)

// PatternInfo describes one compiled pattern for embedding tools.
type PatternInfo struct {
	Name       string   `json:"name"`
	Package    []string `json:"package,omitempty"`
	Parameters []string `json:"parameters,omitempty"`
	Doc        string   `json:"doc,omitempty"`
	Unstable   bool     `json:"unstable,omitempty"`
	Deprecated bool     `json:"deprecated,omitempty"`
	Kind       string   `json:"kind"`
}

// PackageInfo describes one node of the package metadata tree.
type PackageInfo struct {
	Name     string         `json:"name"`
	Doc      string         `json:"doc,omitempty"`
	Patterns []string       `json:"patterns,omitempty"`
	Children []*PackageInfo `json:"children,omitempty"`
}

// WorldInfo is the whole introspection payload for one compiled world.
type WorldInfo struct {
	BuildID   string        `json:"buildId"`
	SlotCount int           `json:"slotCount"`
	Patterns  []PatternInfo `json:"patterns"`
	Root      *PackageInfo  `json:"packages"`
}

// Describe walks world's slot vector and package tree into a WorldInfo.
func Describe(world *lir.World) WorldInfo {
	info := WorldInfo{BuildID: world.BuildID, SlotCount: world.Len()}
	for i := 0; i < world.Len(); i++ {
		pat := world.Pattern(ir.Slot(i))
		info.Patterns = append(info.Patterns, describePattern(pat))
	}
	info.Root = describePackage(world.Root)
	return info
}

func describePattern(p *ir.Pattern) PatternInfo {
	info := PatternInfo{Parameters: p.Params, Kind: kindName(p.Inner.Kind)}
	if p.Name != nil {
		info.Name = p.Name.Name
		info.Package = p.Name.Package
	}
	if p.Meta.Doc != nil {
		info.Doc = *p.Meta.Doc
	}
	info.Unstable = p.Meta.Unstable
	info.Deprecated = p.Meta.Deprecated
	return info
}

func describePackage(n *lir.PackageNode) *PackageInfo {
	if n == nil {
		return nil
	}
	info := &PackageInfo{Name: n.Name, Doc: n.Doc}
	for _, slot := range n.Patterns {
		info.Patterns = append(info.Patterns, strconv.Itoa(int(slot)))
	}
	for _, key := range n.SortedChildren() {
		info.Children = append(info.Children, describePackage(n.Children[key]))
	}
	return info
}

func kindName(k ir.InnerKind) string {
	switch k {
	case ir.InnerAnything:
		return "anything"
	case ir.InnerNothing:
		return "nothing"
	case ir.InnerPrimordial:
		return "primordial"
	case ir.InnerConst:
		return "const"
	case ir.InnerObject:
		return "object"
	case ir.InnerList:
		return "list"
	case ir.InnerExpr:
		return "expr"
	case ir.InnerRef:
		return "ref"
	case ir.InnerDeref:
		return "deref"
	case ir.InnerBound:
		return "bound"
	case ir.InnerArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// ResponseSchema generates a JSON Schema document for the Response wire
// form, the machine-checkable contract an embedder can validate against —
// the same role the teacher's plugin.GenerateSchema plays for manifests.
func ResponseSchema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&rationale.Response{})
	schema.Title = "PatternEngine Response"
	schema.Description = "Wire form of one pattern evaluation's rationale tree"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code("SCHEMA_MARSHAL_FAILED").Wrapf(err, "marshal response schema")
	}
	return append(data, '\n'), nil
}

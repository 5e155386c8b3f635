// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package lir implements LIR Conversion (C6): freezing a fully-defined
// mir.World into an immutable, slot-addressed World plus its package
// metadata tree. Freeze is the one place an incompletely-defined world
// (a declared-but-never-defined pattern — a dangling reference to a name
// that was never given a body anywhere in the build) becomes a hard
// error instead of silently evaluating against a nil pattern later.
package lir

import (
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/mir"
)

// World is the frozen result of a build: every slot has a defined
// Pattern, and the package metadata tree is built and sorted.
type World struct {
	patterns []*ir.Pattern
	byName   map[string]ir.Slot
	Root     *PackageNode

	// BuildID stamps this frozen world with a unique, lexicographically
	// sortable identifier, used to correlate trace/log output back to
	// the exact compiled world that produced it across reloads.
	BuildID string
}

// PackageNode is one node of the package metadata tree, built bottom-up
// from every declared pattern's package path.
type PackageNode struct {
	Name     string
	Doc      string
	Children map[string]*PackageNode
	Patterns []ir.Slot
}

func newPackageNode(name string) *PackageNode {
	return &PackageNode{Name: name, Children: make(map[string]*PackageNode)}
}

// SortedChildren returns Children's keys in lexicographic order, the
// stable iteration order introspection reports package listings in.
func (n *PackageNode) SortedChildren() []string {
	out := make([]string, 0, len(n.Children))
	for k := range n.Children {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Pattern returns slot's frozen pattern.
func (w *World) Pattern(slot ir.Slot) *ir.Pattern { return w.patterns[slot] }

// Len is the total number of slots in the world.
func (w *World) Len() int { return len(w.patterns) }

// SlotByName looks up a pattern by its fully qualified name.
func (w *World) SlotByName(qualified string) (ir.Slot, bool) {
	slot, ok := w.byName[qualified]
	return slot, ok
}

// Freeze validates every declared slot is defined and assembles the
// package tree. A world with any undefined slot is rejected outright:
// partial worlds never reach the evaluator.
func Freeze(w *mir.World) (*World, ir.BuildErrors) {
	handles := w.Handles()
	var errs ir.BuildErrors
	for _, h := range handles {
		if !h.Defined {
			errs = append(errs, &ir.BuildError{
				Kind: ir.ErrPatternNotFound, Name: h.Name.Qualified(),
				Msg: "declared but never defined",
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	patterns := make([]*ir.Pattern, len(handles))
	byName := make(map[string]ir.Slot, len(handles))
	root := newPackageNode("")
	docs := w.PackageDocs()

	for i, h := range handles {
		patterns[i] = h.Pattern
		byName[h.Name.Qualified()] = ir.Slot(i)
		attachToPackageTree(root, h.Name, ir.Slot(i), docs)
	}

	return &World{patterns: patterns, byName: byName, Root: root, BuildID: ulid.Make().String()}, nil
}

func attachToPackageTree(root *PackageNode, name ir.PatternName, slot ir.Slot, docs map[string]string) {
	node := root
	var path []string
	for _, seg := range name.Package {
		path = append(path, seg)
		child, ok := node.Children[seg]
		if !ok {
			child = newPackageNode(seg)
			child.Doc = docs[strings.Join(path, "::")]
			node.Children[seg] = child
		}
		node = child
	}
	node.Patterns = append(node.Patterns, slot)
}

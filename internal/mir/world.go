// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package mir implements MIR Lowering (C5): the mutable builder that turns
// parsed, name-resolved compilation units into a slot-addressed world of
// ir.Pattern trees, desugaring every surface-syntax combinator form along
// the way. World is mutable and partially-defined by design — declare and
// define are separate steps so that sibling and forward references within
// and across compilation units resolve to a slot before any pattern body
// is actually lowered.
package mir

import (
	"github.com/holomush/patternengine/internal/ir"
)

// handle is one slot's bookkeeping: its identity and parameter arity are
// known from Declare; Pattern is nil until Define runs.
type handle struct {
	name    ir.PatternName
	params  []string
	meta    ir.Metadata
	defined bool
	pattern *ir.Pattern
}

// World is the mutable slot vector being built. The zero value is not
// usable; construct with NewWorld.
type World struct {
	slots  []*handle
	byName map[string]ir.Slot

	// packageDocs records define_package's documentation text, consulted
	// by LIR Conversion when it assembles the package metadata tree.
	packageDocs map[string]string
}

// primordialOrder fixes slots 0..4: the four scalar primordials plus a
// dedicated slot for the bare "anything" pattern, which is referenced
// often enough (every unconstrained field, every catch-all combinator
// argument) to deserve a stable low slot rather than being synthesized
// inline at every use site.
var primordialOrder = []struct {
	name string
	kind ir.PrimordialKind
}{
	{"integer", ir.PrimordialInteger},
	{"decimal", ir.PrimordialDecimal},
	{"boolean", ir.PrimordialBoolean},
	{"string", ir.PrimordialString},
}

// NewWorld constructs a World with the primordials and "anything"
// pre-declared and pre-defined at their fixed low slots ("nothing" gets
// no slot).
func NewWorld() *World {
	w := &World{byName: make(map[string]ir.Slot), packageDocs: make(map[string]string)}
	for _, p := range primordialOrder {
		slot := w.reserve(ir.PatternName{Name: p.name}, nil)
		w.slots[slot].pattern = &ir.Pattern{
			Name:  &w.slots[slot].name,
			Inner: ir.Inner{Kind: ir.InnerPrimordial, PrimordialKind: p.kind},
		}
		w.slots[slot].defined = true
	}
	anythingSlot := w.reserve(ir.PatternName{Name: "anything"}, nil)
	w.slots[anythingSlot].pattern = &ir.Pattern{Name: &w.slots[anythingSlot].name, Inner: ir.Inner{Kind: ir.InnerAnything}}
	w.slots[anythingSlot].defined = true
	return w
}

func (w *World) reserve(name ir.PatternName, params []string) ir.Slot {
	slot := ir.Slot(len(w.slots))
	w.slots = append(w.slots, &handle{name: name, params: params})
	w.byName[name.Qualified()] = slot
	return slot
}

// Declare registers name at a stable slot with its parameter list and
// metadata, without yet supplying a body. Declaring an already-declared,
// not-yet-defined name again just refreshes its params/metadata in place
// (the two-pass declare-then-define lowering driver does this once per
// unit before any bodies are lowered); declaring a name that is already
// defined is rejected.
func (w *World) Declare(name ir.PatternName, meta ir.Metadata, params []string) (ir.Slot, error) {
	if slot, ok := w.byName[name.Qualified()]; ok {
		h := w.slots[slot]
		if h.defined {
			return 0, &ir.BuildError{Kind: ir.ErrPatternNotFound, Name: name.Qualified(),
				Msg: "redeclaration of an already-defined pattern"}
		}
		h.params = params
		h.meta = meta
		return slot, nil
	}
	slot := w.reserve(name, params)
	w.slots[slot].meta = meta
	return slot, nil
}

// Define supplies slot's body. It must already be declared.
func (w *World) Define(slot ir.Slot, pattern *ir.Pattern) {
	h := w.slots[slot]
	pattern.Name = &h.name
	pattern.Params = h.params
	pattern.Meta = h.meta
	h.pattern = pattern
	h.defined = true
}

// DefineFunction declares and immediately defines name as a
// Primordial(Function) pattern — the registry's built-in combinators and
// any embedder-registered functions all enter the world this way, ahead
// of any unit's pattern declarations ("packages before unit types").
func (w *World) DefineFunction(name ir.PatternName, fn ir.Function, meta ir.Metadata) ir.Slot {
	slot, err := w.Declare(name, meta, fn.Parameters())
	if err != nil {
		// A function package is only ever registered once per build; a
		// collision here is a registry bug, not a user-facing build error.
		panic(err)
	}
	w.Define(slot, &ir.Pattern{
		Inner: ir.Inner{Kind: ir.InnerPrimordial, PrimordialKind: ir.PrimordialFunction, Function: fn},
	})
	return slot
}

// DefinePackage records doc as path's package-level documentation, read
// back during LIR package-tree assembly.
func (w *World) DefinePackage(path []string, doc string) {
	w.packageDocs[ir.PatternName{Package: path[:len(path)-1], Name: path[len(path)-1]}.Qualified()] = doc
}

// SlotByName looks up an already-declared qualified name.
func (w *World) SlotByName(qualified string) (ir.Slot, bool) {
	slot, ok := w.byName[qualified]
	return slot, ok
}

// ParamCount reports slot's declared arity.
func (w *World) ParamCount(slot ir.Slot) int {
	return len(w.slots[slot].params)
}

// Len is the number of slots currently reserved.
func (w *World) Len() int { return len(w.slots) }

// Handles exposes the raw slot vector for LIR freezing.
type Handle struct {
	Name    ir.PatternName
	Params  []string
	Meta    ir.Metadata
	Defined bool
	Pattern *ir.Pattern
}

// Handles returns every slot's bookkeeping in slot order.
func (w *World) Handles() []Handle {
	out := make([]Handle, len(w.slots))
	for i, h := range w.slots {
		out[i] = Handle{Name: h.name, Params: h.params, Meta: h.meta, Defined: h.defined, Pattern: h.pattern}
	}
	return out
}

// PackageDocs returns the define_package documentation table.
func (w *World) PackageDocs() map[string]string { return w.packageDocs }

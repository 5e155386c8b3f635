// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

// Package lang implements the built-in `lang::` combinators (C9): and,
// or, not, refine, chain, traverse, map. Each is an ordinary
// registry.Function — the evaluator holds no special case per
// combinator, only a uniform Ref→Function dispatch.
package lang

import (
	"github.com/holomush/patternengine/internal/ir"
	"github.com/holomush/patternengine/internal/lir"
)

// Order is the ordering heuristic and/or sort their terms by (ascending,
// cheapest first): cheap constants first, then arguments, then objects,
// then expressions/anything, references take the cost of their target,
// lists take the max of their members, and a Function pattern declares
// its own cost (reaching out to the network, e.g., should declare ~200).
func Order(p *ir.Pattern, world *lir.World) uint8 {
	switch p.Inner.Kind {
	case ir.InnerConst:
		return 1
	case ir.InnerArgument:
		return 2
	case ir.InnerObject:
		return 64
	case ir.InnerExpr, ir.InnerAnything, ir.InnerNothing:
		return 128
	case ir.InnerPrimordial:
		if p.Inner.PrimordialKind == ir.PrimordialFunction && p.Inner.Function != nil {
			return p.Inner.Function.Order()
		}
		return 32
	case ir.InnerRef:
		return Order(world.Pattern(p.Inner.RefSlot), world)
	case ir.InnerList:
		var max uint8
		for _, t := range p.Inner.Terms {
			if o := Order(t, world); o > max {
				max = o
			}
		}
		return max
	case ir.InnerDeref:
		return Order(p.Inner.DerefTarget, world)
	case ir.InnerBound:
		return Order(p.Inner.BoundTarget, world)
	default:
		return 128
	}
}

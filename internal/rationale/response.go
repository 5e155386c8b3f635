// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PatternEngine Contributors

package rationale

// Response is the externalized, stable JSON projection of an
// EvaluationResult.
type Response struct {
	Name      string     `json:"name"`
	Input     any        `json:"input"`
	Output    any        `json:"output,omitempty"`
	Satisfied bool       `json:"satisfied"`
	Reason    string     `json:"reason,omitempty"`
	Rationale []Response `json:"rationale,omitempty"`
}

// ToResponse projects r into its wire form.
func (r *EvaluationResult) ToResponse() Response {
	resp := Response{
		Name:      r.WireName(),
		Satisfied: r.Satisfied,
		Reason:    r.Reason,
	}
	if r.Input != nil {
		resp.Input = r.Input.AsJSON()
	}
	if r.OutputKind != OutputNone && r.Output != nil {
		resp.Output = r.Output.AsJSON()
	}
	for _, c := range r.Children {
		resp.Rationale = append(resp.Rationale, c.ToResponse())
	}
	return resp
}

const elidedMarker = "<elided>"

// Collapse prunes resp to the minimal set of deepest unsatisfied leaves
// that still carry input, replacing every kept node's input/output with a
// size-bounding sentinel. A satisfied response collapses to a bare
// satisfied marker; an unsatisfied response with unsatisfied children
// recurses into only those children, discarding satisfied siblings
// (they contributed nothing to the failure).
func Collapse(resp Response) Response {
	if resp.Satisfied {
		return Response{Name: resp.Name, Satisfied: true}
	}

	var kept []Response
	for _, child := range resp.Rationale {
		if !child.Satisfied {
			kept = append(kept, Collapse(child))
		}
	}

	out := Response{Name: resp.Name, Satisfied: false, Reason: resp.Reason}
	if len(kept) == 0 {
		// A deepest unsatisfied leaf: keep the shape, elide the payload.
		if resp.Input != nil {
			out.Input = elidedMarker
		}
		if resp.Output != nil {
			out.Output = elidedMarker
		}
		return out
	}
	out.Rationale = kept
	return out
}

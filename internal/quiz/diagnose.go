// Package quiz scores a drawing against reference constellations.
package quiz

import (
	"fmt"
	"sort"

	"github.com/litescript/skychart/internal/annotate"
)

// HintKind classifies the single hint a drawing receives.
type HintKind int

const (
	HintCorrect HintKind = iota
	HintMissingStar
	HintExtraStar
	HintWrongEdge
	HintMissingEdge
)

func (k HintKind) String() string {
	switch k {
	case HintCorrect:
		return "correct"
	case HintMissingStar:
		return "missing-star"
	case HintExtraStar:
		return "extra-star"
	case HintWrongEdge:
		return "wrong-edge"
	case HintMissingEdge:
		return "missing-edge"
	default:
		return "unknown"
	}
}

// Hint is the outcome of a diagnosis. Star is set for the vertex kinds and
// Edge for the edge kinds.
type Hint struct {
	Kind HintKind
	Star string
	Edge annotate.Line
}

// Correct reports whether the drawing matched.
func (h Hint) Correct() bool { return h.Kind == HintCorrect }

func (h Hint) String() string {
	switch h.Kind {
	case HintMissingStar:
		return "missing " + h.Star
	case HintExtraStar:
		return h.Star + " does not belong"
	case HintWrongEdge:
		return fmt.Sprintf("%s and %s shouldn't be connected", h.Edge.Star1, h.Edge.Star2)
	case HintMissingEdge:
		return fmt.Sprintf("%s and %s should be connected", h.Edge.Star1, h.Edge.Star2)
	default:
		return "Correct"
	}
}

// Diagnose compares the current drawing with a reference and returns one
// hint. Rules are tried in order and the first that applies wins:
//
//  1. the reference has more vertices, or as many but a different set:
//     a missing star
//  2. the drawing has more vertices: an extra star
//  3. the drawing has more edges, or as many but a different set: a wrong
//     edge
//  4. the reference has more edges: a missing edge
//  5. correct
//
// When several stars or edges qualify the lexicographically smallest is
// reported, edges compared by their canonical "a|b" form.
func Diagnose(curV map[string]struct{}, curE map[annotate.Line]struct{}, refV map[string]struct{}, refE map[annotate.Line]struct{}) Hint {
	curE, refE = canonical(curE), canonical(refE)

	switch {
	case len(refV) > len(curV) || (len(refV) == len(curV) && !sameVertices(curV, refV)):
		return Hint{Kind: HintMissingStar, Star: smallestVertex(refV, curV)}
	case len(curV) > len(refV):
		return Hint{Kind: HintExtraStar, Star: smallestVertex(curV, refV)}
	case len(curE) > len(refE) || (len(curE) == len(refE) && !sameEdges(curE, refE)):
		return Hint{Kind: HintWrongEdge, Edge: smallestEdge(curE, refE)}
	case len(refE) > len(curE):
		return Hint{Kind: HintMissingEdge, Edge: smallestEdge(refE, curE)}
	default:
		return Hint{Kind: HintCorrect}
	}
}

func canonical(edges map[annotate.Line]struct{}) map[annotate.Line]struct{} {
	out := make(map[annotate.Line]struct{}, len(edges))
	for l := range edges {
		out[l.Canonical()] = struct{}{}
	}
	return out
}

func sameVertices(a, b map[string]struct{}) bool {
	for v := range a {
		if _, ok := b[v]; !ok {
			return false
		}
	}
	return true
}

func sameEdges(a, b map[annotate.Line]struct{}) bool {
	for l := range a {
		if _, ok := b[l]; !ok {
			return false
		}
	}
	return true
}

// smallestVertex returns the smallest member of from that is not in other.
func smallestVertex(from, other map[string]struct{}) string {
	var diff []string
	for v := range from {
		if _, ok := other[v]; !ok {
			diff = append(diff, v)
		}
	}
	if len(diff) == 0 {
		return ""
	}
	sort.Strings(diff)
	return diff[0]
}

// smallestEdge returns the smallest member of from that is not in other.
func smallestEdge(from, other map[annotate.Line]struct{}) annotate.Line {
	var diff []annotate.Line
	for l := range from {
		if _, ok := other[l]; !ok {
			diff = append(diff, l)
		}
	}
	if len(diff) == 0 {
		return annotate.Line{}
	}
	sort.Slice(diff, func(i, j int) bool { return diff[i].String() < diff[j].String() })
	return diff[0]
}

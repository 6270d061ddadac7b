// Package annotate implements the constellation-line editor: drawing and
// erasing edges between stars with an undo/redo history.
package annotate

import "fmt"

// Line is an edge between two stars, identified by name. Star2 is empty
// while the edge is still pending.
type Line struct {
	Star1 string
	Star2 string
}

// IsPending reports whether the second endpoint is unset.
func (l Line) IsPending() bool { return l.Star2 == "" }

// Equal compares endpoint sets, ignoring order.
func (l Line) Equal(o Line) bool {
	return (l.Star1 == o.Star1 && l.Star2 == o.Star2) ||
		(l.Star1 == o.Star2 && l.Star2 == o.Star1)
}

// Canonical returns the line with its endpoints in lexical order, so equal
// lines compare equal with ==.
func (l Line) Canonical() Line {
	if l.Star2 != "" && l.Star2 < l.Star1 {
		return Line{Star1: l.Star2, Star2: l.Star1}
	}
	return l
}

// String renders the save-file form "star1|star2".
func (l Line) String() string {
	return l.Star1 + "|" + l.Star2
}

// Kind tags an action.
type Kind int

const (
	Draw Kind = iota
	Erase
)

// String returns the save-file keyword.
func (k Kind) String() string {
	switch k {
	case Draw:
		return "draw"
	case Erase:
		return "erase"
	default:
		return "unknown"
	}
}

// ParseKind parses a save-file keyword.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "draw":
		return Draw, nil
	case "erase":
		return Erase, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// Action is one reversible edit.
type Action struct {
	Kind Kind
	Line Line
}

// String renders the save-file form "kind.star1|star2".
func (a Action) String() string {
	return a.Kind.String() + "." + a.Line.String()
}

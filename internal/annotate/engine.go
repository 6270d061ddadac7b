package annotate

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/skychart/internal/viewport"
)

// DefaultTolerance is how close, in pixels, a click must be to a line to
// erase it: three times the drawn line width of 2.
const DefaultTolerance = 6.0

// ErrInvalidAction is returned by Replay for a log that cannot have been
// produced by an engine.
var ErrInvalidAction = errors.New("invalid action")

// Locator resolves a star name to its current screen position. It reports
// false for stars that have no position (below the horizon).
type Locator func(name string) (viewport.Point, bool)

// Engine owns the drawn lines, the action log and the redo stack.
//
// The lines always equal the result of replaying the log from empty (draw
// inserts, erase removes), plus at most one pending line kept apart from
// the list.
type Engine struct {
	lines   []Line
	log     []Action
	redo    []Action
	pending *Line

	// pendingEnd is where the pending line's loose end is drawn.
	pendingEnd    viewport.Point
	hasPendingEnd bool

	erasing   bool
	tolerance float64
}

// New creates an empty engine with the given erase tolerance. A
// non-positive tolerance means DefaultTolerance.
func New(tolerance float64) *Engine {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Engine{tolerance: tolerance}
}

// Lines returns a copy of the completed lines in list order.
func (e *Engine) Lines() []Line {
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// Actions returns a copy of the action log, oldest first.
func (e *Engine) Actions() []Action {
	out := make([]Action, len(e.log))
	copy(out, e.log)
	return out
}

// RedoActions returns a copy of the redo stack, bottom first.
func (e *Engine) RedoActions() []Action {
	out := make([]Action, len(e.redo))
	copy(out, e.redo)
	return out
}

// Pending returns the pending line, if one is being drawn.
func (e *Engine) Pending() (Line, bool) {
	if e.pending == nil {
		return Line{}, false
	}
	return *e.pending, true
}

// PendingEnd returns the last pointer position reported for the pending
// line.
func (e *Engine) PendingEnd() (viewport.Point, bool) {
	if e.pending == nil || !e.hasPendingEnd {
		return viewport.Point{}, false
	}
	return e.pendingEnd, true
}

// MovePointer makes the pending line's loose end follow the pointer.
func (e *Engine) MovePointer(p viewport.Point) {
	if e.pending == nil {
		return
	}
	e.pendingEnd = p
	e.hasPendingEnd = true
}

// CanUndo reports whether Undo would do anything.
func (e *Engine) CanUndo() bool { return len(e.log) > 0 }

// CanRedo reports whether Redo would do anything.
func (e *Engine) CanRedo() bool { return len(e.redo) > 0 }

// Erasing reports whether clicks erase instead of draw.
func (e *Engine) Erasing() bool { return e.erasing }

// SetErasing switches erase mode. Turning it on abandons a pending line.
func (e *Engine) SetErasing(on bool) {
	if on {
		e.CancelPending()
	}
	e.erasing = on
}

// SelectStar advances the drawing state machine with a star click.
//
// With no pending line it starts one at star. With a pending line, clicking
// its own start cancels it; any other star completes it, logs a draw and
// invalidates redo.
func (e *Engine) SelectStar(star string) {
	if e.pending == nil {
		e.pending = &Line{Star1: star}
		e.hasPendingEnd = false
		return
	}

	if star == e.pending.Star1 {
		e.CancelPending()
		return
	}

	line := Line{Star1: e.pending.Star1, Star2: star}
	e.pending = nil
	e.hasPendingEnd = false
	e.lines = append(e.lines, line)
	e.log = append(e.log, Action{Kind: Draw, Line: line})
	e.redo = nil
}

// CancelPending drops the pending line, if any. Nothing is logged.
func (e *Engine) CancelPending() {
	e.pending = nil
	e.hasPendingEnd = false
}

// EraseAt removes the line under p. Every completed line whose segment is
// within tolerance of p is a candidate and the last one in list order wins.
// Lines with an endpoint that locate cannot place are skipped. It reports
// whether a line was erased.
func (e *Engine) EraseAt(p viewport.Point, locate Locator) bool {
	hit := -1
	for i, l := range e.lines {
		a, ok := locate(l.Star1)
		if !ok {
			continue
		}
		b, ok := locate(l.Star2)
		if !ok {
			continue
		}
		if segmentDistance(p, a, b) <= e.tolerance {
			hit = i
		}
	}
	if hit < 0 {
		return false
	}

	line := e.lines[hit]
	e.lines = append(e.lines[:hit], e.lines[hit+1:]...)
	e.log = append(e.log, Action{Kind: Erase, Line: line})
	e.redo = nil
	return true
}

// Undo reverts the most recent action and moves it onto the redo stack.
// An erased line comes back at the end of the list.
func (e *Engine) Undo() bool {
	if len(e.log) == 0 {
		return false
	}
	act := e.log[len(e.log)-1]
	e.log = e.log[:len(e.log)-1]

	switch act.Kind {
	case Draw:
		e.lines = removeLast(e.lines, act.Line)
	case Erase:
		e.lines = append(e.lines, act.Line)
	}
	e.redo = append(e.redo, act)
	return true
}

// Redo re-applies the most recently undone action.
func (e *Engine) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	act := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]

	switch act.Kind {
	case Draw:
		e.lines = append(e.lines, act.Line)
	case Erase:
		e.lines = removeLast(e.lines, act.Line)
	}
	e.log = append(e.log, act)
	return true
}

// Clear empties the drawing, the log and the redo stack.
func (e *Engine) Clear() {
	e.lines = nil
	e.log = nil
	e.redo = nil
	e.CancelPending()
}

// Replay replaces the engine state with the result of applying actions to
// an empty drawing. On error the engine is left untouched.
func (e *Engine) Replay(actions []Action) error {
	var lines []Line
	for i, act := range actions {
		if act.Line.IsPending() || act.Line.Star1 == "" {
			return fmt.Errorf("%w: action %d: line %q has a missing endpoint", ErrInvalidAction, i, act.Line)
		}
		if act.Line.Star1 == act.Line.Star2 {
			return fmt.Errorf("%w: action %d: line %q joins a star to itself", ErrInvalidAction, i, act.Line)
		}
		switch act.Kind {
		case Draw:
			lines = append(lines, act.Line)
		case Erase:
			if indexLast(lines, act.Line) < 0 {
				return fmt.Errorf("%w: action %d: erase of %q which is not drawn", ErrInvalidAction, i, act.Line)
			}
			lines = removeLast(lines, act.Line)
		default:
			return fmt.Errorf("%w: action %d: kind %d", ErrInvalidAction, i, act.Kind)
		}
	}

	e.lines = lines
	e.log = append([]Action(nil), actions...)
	e.redo = nil
	e.CancelPending()
	return nil
}

// Vertices returns the set of stars touched by completed lines.
func (e *Engine) Vertices() map[string]struct{} {
	out := make(map[string]struct{}, 2*len(e.lines))
	for _, l := range e.lines {
		out[l.Star1] = struct{}{}
		out[l.Star2] = struct{}{}
	}
	return out
}

// Edges returns the deduplicated, canonical set of completed lines.
func (e *Engine) Edges() map[Line]struct{} {
	out := make(map[Line]struct{}, len(e.lines))
	for _, l := range e.lines {
		out[l.Canonical()] = struct{}{}
	}
	return out
}

func indexLast(lines []Line, target Line) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].Equal(target) {
			return i
		}
	}
	return -1
}

// removeLast deletes the last line equal to target, if any.
func removeLast(lines []Line, target Line) []Line {
	i := indexLast(lines, target)
	if i < 0 {
		return lines
	}
	return append(lines[:i], lines[i+1:]...)
}

// segmentDistance is the distance from p to the segment ab.
func segmentDistance(p, a, b viewport.Point) float64 {
	px, py := float64(p.X), float64(p.Y)
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

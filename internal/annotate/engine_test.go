package annotate

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/litescript/skychart/internal/viewport"
)

func draw(e *Engine, a, b string) {
	e.SelectStar(a)
	e.SelectStar(b)
}

// gridLocator places stars at fixed screen points.
func gridLocator(pos map[string]viewport.Point) Locator {
	return func(name string) (viewport.Point, bool) {
		p, ok := pos[name]
		return p, ok
	}
}

// replayed rebuilds the line list from the log the way a loader would.
func replayed(t *testing.T, e *Engine) []Line {
	t.Helper()
	fresh := New(0)
	if err := fresh.Replay(e.Actions()); err != nil {
		t.Fatalf("Replay(log) error = %v", err)
	}
	return fresh.Lines()
}

func sameLineSet(a, b []Line) bool {
	count := make(map[Line]int)
	for _, l := range a {
		count[l.Canonical()]++
	}
	for _, l := range b {
		count[l.Canonical()]--
	}
	for _, n := range count {
		if n != 0 {
			return false
		}
	}
	return true
}

func TestLineEqual(t *testing.T) {
	tests := []struct {
		a, b Line
		want bool
	}{
		{Line{"A", "B"}, Line{"A", "B"}, true},
		{Line{"A", "B"}, Line{"B", "A"}, true},
		{Line{"A", "B"}, Line{"A", "C"}, false},
		{Line{"A", ""}, Line{"A", ""}, true},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	if (Line{"B", "A"}).Canonical() != (Line{"A", "B"}) {
		t.Error("Canonical() should order endpoints")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Draw, Erase} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("paint"); err == nil {
		t.Error("ParseKind(paint) should fail")
	}
}

func TestSelectStar_StateMachine(t *testing.T) {
	e := New(0)

	e.SelectStar("Vega")
	if p, ok := e.Pending(); !ok || p.Star1 != "Vega" || !p.IsPending() {
		t.Fatalf("Pending() = %v, %v; want Vega|", p, ok)
	}
	if len(e.Actions()) != 0 {
		t.Error("a pending line must not be logged")
	}

	e.SelectStar("Deneb")
	if _, ok := e.Pending(); ok {
		t.Error("line still pending after second star")
	}
	if got, want := e.Lines(), []Line{{"Vega", "Deneb"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
	if got, want := e.Actions(), []Action{{Draw, Line{"Vega", "Deneb"}}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Actions() = %v, want %v", got, want)
	}
}

func TestSelectStar_SameStarCancels(t *testing.T) {
	e := New(0)
	e.SelectStar("Vega")
	e.SelectStar("Vega")

	if _, ok := e.Pending(); ok {
		t.Error("pending line survived reselecting its start")
	}
	if len(e.Lines()) != 0 || len(e.Actions()) != 0 {
		t.Errorf("cancel left lines=%v actions=%v", e.Lines(), e.Actions())
	}
}

func TestCancelPending(t *testing.T) {
	e := New(0)
	draw(e, "A", "B")
	e.SelectStar("C")
	e.MovePointer(viewport.Point{X: 3, Y: 4})
	if p, ok := e.PendingEnd(); !ok || p != (viewport.Point{X: 3, Y: 4}) {
		t.Errorf("PendingEnd() = %v, %v", p, ok)
	}

	e.CancelPending()
	if _, ok := e.Pending(); ok {
		t.Error("CancelPending left a pending line")
	}
	if _, ok := e.PendingEnd(); ok {
		t.Error("PendingEnd survived cancel")
	}
	if len(e.Actions()) != 1 {
		t.Errorf("CancelPending changed the log: %v", e.Actions())
	}
}

func TestEraseAt_LastMatchWins(t *testing.T) {
	e := New(2)
	locate := gridLocator(map[string]viewport.Point{
		"A": {X: 0, Y: 10}, "B": {X: 100, Y: 10}, // passes through the click
		"C": {X: 0, Y: 12}, "D": {X: 100, Y: 12}, // 2 px away
	})
	draw(e, "A", "B")
	draw(e, "C", "D")

	if !e.EraseAt(viewport.Point{X: 50, Y: 10}, locate) {
		t.Fatal("EraseAt found nothing")
	}
	if got, want := e.Lines(), []Line{{"A", "B"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v (later line erased)", got, want)
	}
	last := e.Actions()[len(e.Actions())-1]
	if last != (Action{Erase, Line{"C", "D"}}) {
		t.Errorf("last action = %v, want erase.C|D", last)
	}
}

func TestEraseAt_Miss(t *testing.T) {
	e := New(0)
	locate := gridLocator(map[string]viewport.Point{"A": {X: 0, Y: 0}, "B": {X: 100, Y: 0}})
	draw(e, "A", "B")

	// Past the segment end: the infinite line is close, the segment is not.
	if e.EraseAt(viewport.Point{X: 150, Y: 0}, locate) {
		t.Error("EraseAt erased beyond the segment end")
	}
	if e.EraseAt(viewport.Point{X: 50, Y: 7}, locate) {
		t.Error("EraseAt erased outside tolerance")
	}
	if !e.EraseAt(viewport.Point{X: 50, Y: 6}, locate) {
		t.Error("EraseAt missed a line at exactly the tolerance")
	}
}

func TestEraseAt_SkipsUnlocatedLines(t *testing.T) {
	e := New(0)
	draw(e, "A", "B")
	locate := gridLocator(map[string]viewport.Point{"A": {X: 0, Y: 0}})
	if e.EraseAt(viewport.Point{}, locate) {
		t.Error("erased a line whose endpoint has no position")
	}
}

func TestUndoRedo_InverseLaw(t *testing.T) {
	locate := gridLocator(map[string]viewport.Point{
		"A": {X: 0, Y: 0}, "B": {X: 10, Y: 0}, "C": {X: 10, Y: 10}, "D": {X: 0, Y: 10},
	})

	steps := []func(e *Engine){
		func(e *Engine) { draw(e, "A", "B") },
		func(e *Engine) { draw(e, "B", "C") },
		func(e *Engine) { draw(e, "C", "D") },
		func(e *Engine) { e.EraseAt(viewport.Point{X: 5, Y: 0}, locate) },
		func(e *Engine) { draw(e, "D", "A") },
		func(e *Engine) { e.EraseAt(viewport.Point{X: 10, Y: 5}, locate) },
	}

	e := New(0)
	for i, step := range steps {
		step(e)

		beforeLines, beforeLog := e.Lines(), e.Actions()
		if !e.Undo() {
			t.Fatalf("step %d: Undo() did nothing", i)
		}
		if !e.Redo() {
			t.Fatalf("step %d: Redo() did nothing", i)
		}
		if !sameLineSet(e.Lines(), beforeLines) {
			t.Errorf("step %d: lines %v, want %v", i, e.Lines(), beforeLines)
		}
		if !reflect.DeepEqual(e.Actions(), beforeLog) {
			t.Errorf("step %d: log %v, want %v", i, e.Actions(), beforeLog)
		}
		if !sameLineSet(e.Lines(), replayed(t, e)) {
			t.Errorf("step %d: lines %v diverge from log replay %v", i, e.Lines(), replayed(t, e))
		}
	}
}

func TestUndo_EraseReinsertsAtEnd(t *testing.T) {
	e := New(0)
	locate := gridLocator(map[string]viewport.Point{"A": {X: 0, Y: 0}, "B": {X: 10, Y: 0}, "C": {X: 0, Y: 50}, "D": {X: 10, Y: 50}})
	draw(e, "A", "B")
	draw(e, "C", "D")
	e.EraseAt(viewport.Point{X: 5, Y: 0}, locate)

	e.Undo()
	if got, want := e.Lines(), []Line{{"C", "D"}, {"A", "B"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
	if got, want := e.RedoActions(), []Action{{Erase, Line{"A", "B"}}}; !reflect.DeepEqual(got, want) {
		t.Errorf("RedoActions() = %v, want %v", got, want)
	}
}

func TestUndoRedo_EmptyIsNoop(t *testing.T) {
	e := New(0)
	if e.Undo() || e.Redo() {
		t.Error("Undo/Redo on an empty engine reported work")
	}
	if e.CanUndo() || e.CanRedo() {
		t.Error("CanUndo/CanRedo should be false")
	}
}

func TestRedoInvalidation(t *testing.T) {
	locate := gridLocator(map[string]viewport.Point{"A": {X: 0, Y: 0}, "B": {X: 10, Y: 0}, "C": {X: 0, Y: 40}, "D": {X: 10, Y: 40}})

	tests := []struct {
		name string
		edit func(e *Engine)
	}{
		{"draw", func(e *Engine) { draw(e, "C", "D") }},
		{"erase", func(e *Engine) { e.EraseAt(viewport.Point{X: 5, Y: 0}, locate) }},
		{"clear", func(e *Engine) { e.Clear() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(0)
			draw(e, "A", "B")
			draw(e, "B", "C")
			e.Undo()
			if !e.CanRedo() {
				t.Fatal("expected a redo entry")
			}
			tt.edit(e)
			if e.CanRedo() {
				t.Errorf("redo stack survived %s: %v", tt.name, e.RedoActions())
			}
		})
	}
}

func TestClear(t *testing.T) {
	e := New(0)
	draw(e, "A", "B")
	e.SelectStar("C")
	e.Clear()

	if len(e.Lines()) != 0 || len(e.Actions()) != 0 || e.CanRedo() {
		t.Error("Clear left state behind")
	}
	if _, ok := e.Pending(); ok {
		t.Error("Clear left a pending line")
	}
	if e.Undo() {
		t.Error("Undo after Clear should be a no-op")
	}
}

func TestSetErasingCancelsPending(t *testing.T) {
	e := New(0)
	e.SelectStar("A")
	e.SetErasing(true)
	if _, ok := e.Pending(); ok {
		t.Error("entering erase mode kept the pending line")
	}
	if !e.Erasing() {
		t.Error("Erasing() = false")
	}
}

func TestReplay(t *testing.T) {
	log := []Action{
		{Draw, Line{"A", "B"}},
		{Draw, Line{"B", "C"}},
		{Draw, Line{"C", "D"}},
		{Erase, Line{"C", "B"}},
	}

	e := New(0)
	draw(e, "X", "Y")
	if err := e.Replay(log); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if got, want := e.Lines(), []Line{{"A", "B"}, {"C", "D"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(e.Actions(), log) {
		t.Errorf("Actions() = %v, want %v", e.Actions(), log)
	}
}

func TestReplay_InvalidLeavesStateAlone(t *testing.T) {
	tests := []struct {
		name string
		log  []Action
	}{
		{"erase undrawn", []Action{{Draw, Line{"A", "B"}}, {Erase, Line{"A", "C"}}}},
		{"pending line", []Action{{Draw, Line{"A", ""}}}},
		{"self loop", []Action{{Draw, Line{"A", "A"}}}},
		{"bad kind", []Action{{Kind(7), Line{"A", "B"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(0)
			draw(e, "X", "Y")
			err := e.Replay(tt.log)
			if !errors.Is(err, ErrInvalidAction) {
				t.Errorf("Replay() error = %v, want ErrInvalidAction", err)
			}
			if got := e.Lines(); !reflect.DeepEqual(got, []Line{{"X", "Y"}}) {
				t.Errorf("Lines() = %v after failed replay", got)
			}
		})
	}
}

func TestVerticesAndEdges(t *testing.T) {
	e := New(0)
	draw(e, "B", "A")
	draw(e, "A", "B")
	draw(e, "B", "C")

	if got := len(e.Vertices()); got != 3 {
		t.Errorf("len(Vertices()) = %d, want 3", got)
	}
	edges := e.Edges()
	if len(edges) != 2 {
		t.Errorf("len(Edges()) = %d, want 2 (deduplicated)", len(edges))
	}
	if _, ok := edges[Line{"A", "B"}]; !ok {
		t.Error("Edges() missing canonical A|B")
	}
}

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		p, a, b viewport.Point
		want    float64
	}{
		{viewport.Point{X: 5, Y: 3}, viewport.Point{X: 0, Y: 0}, viewport.Point{X: 10, Y: 0}, 3},
		{viewport.Point{X: 13, Y: 4}, viewport.Point{X: 0, Y: 0}, viewport.Point{X: 10, Y: 0}, 5},
		{viewport.Point{X: 3, Y: 4}, viewport.Point{X: 0, Y: 0}, viewport.Point{X: 0, Y: 0}, 5},
	}
	for _, tt := range tests {
		if got := segmentDistance(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("segmentDistance(%v, %v, %v) = %v, want %v", tt.p, tt.a, tt.b, got, tt.want)
		}
	}
}

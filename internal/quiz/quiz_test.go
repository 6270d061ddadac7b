package quiz

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/litescript/skychart/internal/annotate"
	"github.com/litescript/skychart/internal/astro"
)

type starNames map[string]bool

func (s starNames) Has(name string) bool { return s[name] }

func brightStarNames() starNames {
	out := starNames{}
	for _, s := range astro.BrightStars() {
		out[s.Name] = true
	}
	return out
}

func vertices(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func edges(pairs ...[2]string) map[annotate.Line]struct{} {
	out := make(map[annotate.Line]struct{}, len(pairs))
	for _, p := range pairs {
		out[annotate.Line{Star1: p[0], Star2: p[1]}] = struct{}{}
	}
	return out
}

func TestDiagnose(t *testing.T) {
	refV := vertices("A", "B", "C")
	refE := edges([2]string{"A", "B"}, [2]string{"B", "C"})

	tests := []struct {
		name string
		curV map[string]struct{}
		curE map[annotate.Line]struct{}
		want string
		kind HintKind
	}{
		{
			name: "missing vertex before consistent edge subset",
			curV: vertices("A", "B"),
			curE: edges([2]string{"A", "B"}),
			want: "missing C",
			kind: HintMissingStar,
		},
		{
			name: "same size different vertices",
			curV: vertices("A", "B", "D"),
			curE: edges([2]string{"A", "B"}, [2]string{"B", "D"}),
			want: "missing C",
			kind: HintMissingStar,
		},
		{
			name: "extra vertex",
			curV: vertices("A", "B", "C", "D"),
			curE: edges([2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "D"}),
			want: "D does not belong",
			kind: HintExtraStar,
		},
		{
			name: "too many edges",
			curV: vertices("A", "B", "C"),
			curE: edges([2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"}),
			want: "A and C shouldn't be connected",
			kind: HintWrongEdge,
		},
		{
			name: "same edge count wrong edge",
			curV: vertices("A", "B", "C"),
			curE: edges([2]string{"A", "B"}, [2]string{"A", "C"}),
			want: "A and C shouldn't be connected",
			kind: HintWrongEdge,
		},
		{
			name: "missing edge",
			curV: vertices("A", "B", "C"),
			curE: edges([2]string{"B", "C"}),
			want: "A and B should be connected",
			kind: HintMissingEdge,
		},
		{
			name: "correct with reversed edges",
			curV: vertices("A", "B", "C"),
			curE: edges([2]string{"B", "A"}, [2]string{"C", "B"}),
			want: "Correct",
			kind: HintCorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diagnose(tt.curV, tt.curE, refV, refE)
			if got.Kind != tt.kind {
				t.Errorf("Diagnose().Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.String() != tt.want {
				t.Errorf("Diagnose() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestDiagnose_PicksSmallest(t *testing.T) {
	refV := vertices("Vega", "Deneb", "Altair")
	got := Diagnose(vertices(), edges(), refV, edges())
	if got.Star != "Altair" {
		t.Errorf("Diagnose() star = %q, want Altair", got.Star)
	}
}

func TestBuiltin(t *testing.T) {
	list, err := Builtin(brightStarNames())
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	if len(list) < 3 {
		t.Fatalf("Builtin() returned %d constellations, want at least 3", len(list))
	}
	if list[0].Name != "big-dipper" {
		t.Errorf("first constellation = %q, want big-dipper", list[0].Name)
	}

	orion, ok := Find(list, "Orion")
	if !ok {
		t.Fatal("Find(Orion) not found")
	}
	if n := len(orion.Vertices()); n != 7 {
		t.Errorf("orion has %d stars, want 7", n)
	}
	if n := len(orion.Edges()); n != 7 {
		t.Errorf("orion has %d edges, want 7", n)
	}
	if orion.View.Location != astro.DefaultSiteName {
		t.Errorf("orion location = %q", orion.View.Location)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	stars := brightStarNames()

	_, err := LoadFS(fstest.MapFS{"readme.md": {Data: []byte("x")}}, stars)
	if !errors.Is(err, ErrNoConstellations) {
		t.Errorf("LoadFS(empty) error = %v, want ErrNoConstellations", err)
	}

	bad := fstest.MapFS{"bad.txt": {Data: []byte("2016 01 15 04 00\n1.2.1400.Pittsburgh\ndraw.Vega|Nowhere\n")}}
	if _, err := LoadFS(bad, stars); err == nil {
		t.Error("LoadFS() with unknown star succeeded")
	}

	noLines := fstest.MapFS{"none.txt": {Data: []byte("2016 01 15 04 00\n1.2.1400.Pittsburgh\n")}}
	if _, err := LoadFS(noLines, stars); err == nil {
		t.Error("LoadFS() with no lines succeeded")
	}
}

func TestConstellationName(t *testing.T) {
	tests := map[string]string{
		"01-big-dipper.txt": "big-dipper",
		"orion.txt":         "orion",
		"x1-leo.txt":        "x1-leo",
	}
	for in, want := range tests {
		if got := constellationName(in); got != want {
			t.Errorf("constellationName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQuiz_Run(t *testing.T) {
	fsys := fstest.MapFS{
		"01-pair.txt":     {Data: []byte("2016 01 15 04 00\n1.2.1400.Pittsburgh\ndraw.Vega|Deneb\n")},
		"02-triangle.txt": {Data: []byte("2016 01 15 04 00\n1.2.1400.Pittsburgh\ndraw.Vega|Deneb\ndraw.Deneb|Altair\ndraw.Altair|Vega\n")},
	}
	list, err := LoadFS(fsys, brightStarNames())
	if err != nil {
		t.Fatal(err)
	}
	q := New(list)

	if c, ok := q.Current(); !ok || c.Name != "pair" {
		t.Fatalf("Current() = %q, %v", c.Name, ok)
	}
	if q.Status() != "draw pair" {
		t.Errorf("Status() = %q", q.Status())
	}

	if q.Advance() {
		t.Error("Advance() before an answer moved on")
	}

	h, _ := q.Check(vertices("Vega"), edges())
	if h.Kind != HintMissingStar || q.Advance() {
		t.Errorf("wrong answer: hint %v, advanced anyway", h)
	}

	h, _ = q.Check(vertices("Vega", "Deneb"), edges([2]string{"Deneb", "Vega"}))
	if !h.Correct() {
		t.Fatalf("Check() = %v, want Correct", h)
	}
	if !q.Advance() {
		t.Fatal("Advance() after a correct answer did not move")
	}

	q.Skip()
	if !q.Done() {
		t.Fatal("Done() = false after the last constellation")
	}
	if q.Status() != CompletedMessage {
		t.Errorf("Status() = %q, want %q", q.Status(), CompletedMessage)
	}
	if _, ok := q.Check(vertices(), edges()); ok {
		t.Error("Check() after completion reported ok")
	}

	q.Reset()
	if q.Index() != 0 || q.Done() {
		t.Errorf("Reset() left index %d", q.Index())
	}
}

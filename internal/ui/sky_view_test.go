package ui

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/clock"
	"github.com/litescript/skychart/internal/state"
	"github.com/litescript/skychart/internal/viewport"
)

type fixedAlmanac map[string]astro.Observation

func (a fixedAlmanac) Observe(_ context.Context, name string, _ astro.Site, _ time.Time) (astro.Observation, error) {
	obs, ok := a[name]
	if !ok {
		return astro.Observation{}, astro.ErrAlmanacUnavailable
	}
	return obs, nil
}

// newTestSession builds an 80x20 view at scale 30. The dome centre is at
// screen (40, 10); Vega is at the zenith and Deneb 21 cells to its right.
func newTestSession(t *testing.T) *state.Session {
	t.Helper()
	cfg := state.DefaultConfig()
	cfg.Start = time.Date(2016, 8, 15, 3, 0, 0, 0, time.UTC)
	cfg.Mode = clock.Paused
	cfg.Stars = []astro.BrightStar{
		{Name: "Vega", Mag: 0.03},
		{Name: "Deneb", Mag: 1.25},
		{Name: "Albireo", Mag: 3.1},
	}
	cfg.Almanac = fixedAlmanac{
		"Vega":    {Altitude: math.Pi / 2, Magnitude: 0.03},
		"Deneb":   {Altitude: math.Pi / 4, Azimuth: 0, Magnitude: 1.25},
		"Albireo": {Altitude: -0.2, Magnitude: 3.1},
	}
	cfg.Viewport = viewport.Config{Scale: 30, MinZoom: 10, MaxZoom: 200, Margin: 2, ViewWidth: 80, ViewHeight: 20}

	s, err := state.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("state.New() error = %v", err)
	}
	return s
}

func TestCanvas_Line(t *testing.T) {
	c := newCanvas(10, 5)
	c.line(0, 0, 4, 0, '*', colorLine)
	for x := 0; x <= 4; x++ {
		if c.get(x, 0) != '*' {
			t.Errorf("cell (%d,0) = %q, want *", x, c.get(x, 0))
		}
	}
	if c.get(5, 0) != ' ' {
		t.Error("line drawn past its end")
	}

	c.line(0, 0, 3, 3, '#', colorLine)
	for i := 0; i <= 3; i++ {
		if c.get(i, i) != '#' {
			t.Errorf("diagonal cell (%d,%d) = %q", i, i, c.get(i, i))
		}
	}
}

func TestCanvas_LineClipsOffscreen(t *testing.T) {
	c := newCanvas(10, 5)
	c.line(-20, 2, 30, 2, '-', colorLine)
	if got := strings.Split(c.Plain(), "\n")[2]; got != "----------" {
		t.Errorf("row 2 = %q, want a full row of dashes", got)
	}

	// Entirely off to one side: nothing written, no long walk.
	c2 := newCanvas(10, 5)
	c2.line(-1000, -5, -10, -900, '-', colorLine)
	if strings.TrimSpace(c2.Plain()) != "" {
		t.Errorf("off-canvas line drew %q", c2.Plain())
	}
}

func TestCanvas_Text(t *testing.T) {
	c := newCanvas(6, 1)
	c.text(3, 0, "Vega", colorLabel)
	if got := c.Plain(); got != "   Veg" {
		t.Errorf("Plain() = %q, want clipped label", got)
	}
	if c.Render() == "" {
		t.Error("Render() is empty")
	}
}

func TestRenderPlain_StarsAndLabels(t *testing.T) {
	s := newTestSession(t)

	rows := strings.Split(RenderPlain(s, LabelBright), "\n")
	if len(rows) != 20 {
		t.Fatalf("rendered %d rows, want 20", len(rows))
	}

	center := []rune(rows[10])
	if len(center) <= 40 || center[40] != glyphStarBright {
		t.Errorf("zenith cell = %q, want %q", string(center[40:41]), glyphStarBright)
	}
	if !strings.Contains(rows[10], "Vega") || !strings.Contains(rows[10], "Deneb") {
		t.Errorf("row 10 = %q, want both bright labels", rows[10])
	}
	if strings.Contains(strings.Join(rows, "\n"), "Albireo") {
		t.Error("a star below the horizon was drawn")
	}

	plain := RenderPlain(s, LabelNone)
	if strings.Contains(plain, "Vega") {
		t.Error("labels drawn with LabelNone")
	}
	if !strings.ContainsRune(plain, glyphRim) {
		t.Error("horizon rim not drawn")
	}
}

func TestRenderPlain_Lines(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	for _, name := range []string{"Vega", "Deneb"} {
		if err := s.Dispatch(ctx, state.SelectStar{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	row := []rune(strings.Split(RenderPlain(s, LabelNone), "\n")[10])
	if row[50] != glyphLine {
		t.Errorf("cell (50,10) = %q, want line glyph", string(row[50]))
	}
}

func TestRenderPlain_PendingLine(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	if err := s.Dispatch(ctx, state.SelectStar{Name: "Vega"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Dispatch(ctx, state.MovePointer{At: viewport.Point{X: 40, Y: 15}}); err != nil {
		t.Fatal(err)
	}

	rows := strings.Split(RenderPlain(s, LabelNone), "\n")
	if r := []rune(rows[13])[40]; r != glyphPending {
		t.Errorf("cell (40,13) = %q, want pending glyph", string(r))
	}
}

func TestLabelMode(t *testing.T) {
	m := NewSkyViewModel()
	if m.LabelMode() != LabelBright {
		t.Fatalf("default label mode = %v", m.LabelMode())
	}
	m = m.cycleLabelMode()
	if m.LabelMode() != LabelAll {
		t.Errorf("after one cycle = %v, want all", m.LabelMode())
	}
	m = m.cycleLabelMode()
	if m.LabelMode() != LabelNone {
		t.Errorf("after two cycles = %v, want off", m.LabelMode())
	}

	if ParseLabelMode("all") != LabelAll || ParseLabelMode("off") != LabelNone || ParseLabelMode("x") != LabelBright {
		t.Error("ParseLabelMode mismatch")
	}
}

func TestStarGlyph(t *testing.T) {
	tests := []struct {
		mag  float64
		want rune
	}{
		{-1.4, glyphStarBright},
		{2.0, glyphStarMedium},
		{3.5, glyphStarDim},
		{4.5, glyphStarVeryDim},
	}
	for _, tt := range tests {
		if got, _ := starGlyph(tt.mag); got != tt.want {
			t.Errorf("starGlyph(%v) = %q, want %q", tt.mag, got, tt.want)
		}
	}
}

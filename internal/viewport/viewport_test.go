package viewport

import "testing"

func testViewport() *Viewport {
	return New(Config{Scale: 1000, MinZoom: 500, MaxZoom: 2000, Margin: 10, ViewWidth: 400, ViewHeight: 300})
}

func TestNew_Centered(t *testing.T) {
	v := testViewport()
	if got, want := v.PanOffset(), (Point{X: 800, Y: 850}); got != want {
		t.Errorf("PanOffset() = %v, want %v", got, want)
	}
}

func TestZoom(t *testing.T) {
	tests := []struct {
		name      string
		delta     int
		wantScale int
	}{
		{"in", 10, 1010},
		{"out", -10, 990},
		{"clamped max", 5000, 2000},
		{"clamped min", -900, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testViewport()
			v.SetPan(Point{X: 100, Y: 200})
			v.Zoom(tt.delta)
			if v.Scale() != tt.wantScale {
				t.Errorf("Scale() = %d, want %d", v.Scale(), tt.wantScale)
			}
			want := Point{X: 100 * tt.wantScale / 1000, Y: 200 * tt.wantScale / 1000}
			if v.PanOffset() != want {
				t.Errorf("PanOffset() = %v, want %v", v.PanOffset(), want)
			}
		})
	}
}

func TestZoom_AtLimitIsNoop(t *testing.T) {
	v := New(Config{Scale: 2000, MinZoom: 500, MaxZoom: 2000, Margin: 10, ViewWidth: 400, ViewHeight: 300})
	before := v.PanOffset()
	v.Zoom(10)
	if v.Scale() != 2000 || v.PanOffset() != before {
		t.Errorf("zoom past max changed state: scale=%d pan=%v", v.Scale(), v.PanOffset())
	}
}

func TestPan_Legal(t *testing.T) {
	v := testViewport()
	v.SetPan(Point{X: 0, Y: 0})
	if !v.Pan(5, 5) {
		t.Fatal("Pan(5, 5) rejected")
	}
	if got := v.PanOffset(); got != (Point{X: 5, Y: 5}) {
		t.Errorf("PanOffset() = %v, want {5 5}", got)
	}
}

func TestPan_RejectionIsAtomic(t *testing.T) {
	v := testViewport()
	v.SetPan(Point{X: 0, Y: 0})

	// x stays legal, y goes past -margin.
	if v.Pan(10, -11) {
		t.Error("Pan(10, -11) accepted")
	}
	if got := v.PanOffset(); got != (Point{}) {
		t.Errorf("PanOffset() = %v after rejected pan, want {0 0}", got)
	}
}

func TestLegal_Bounds(t *testing.T) {
	v := testViewport() // maxX = 2000-400+20 = 1620, maxY = 2000-300+20 = 1720

	tests := []struct {
		x, y int
		want bool
	}{
		{-10, -10, true},
		{-11, 0, false},
		{0, -11, false},
		{1620, 1720, true},
		{1621, 0, false},
		{0, 1721, false},
	}
	for _, tt := range tests {
		if got := v.Legal(tt.x, tt.y); got != tt.want {
			t.Errorf("Legal(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestToScreen(t *testing.T) {
	v := testViewport()
	v.SetPan(Point{X: 100, Y: 50})

	if _, ok := v.ToScreen(nil); ok {
		t.Error("ToScreen(nil) reported a position")
	}

	p, ok := v.ToScreen(&WorldPoint{X: 150.9, Y: 75.2})
	if !ok {
		t.Fatal("ToScreen returned no position")
	}
	if p != (Point{X: 50, Y: 25}) {
		t.Errorf("ToScreen() = %v, want {50 25}", p)
	}
}

func TestWorldVisible(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, true},
		{Point{399, 299}, true},
		{Point{400, 0}, false},
		{Point{0, 300}, false},
		{Point{-1, 5}, false},
	}
	for _, tt := range tests {
		if got := WorldVisible(tt.p, 400, 300); got != tt.want {
			t.Errorf("WorldVisible(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestResizeKeepsCentre(t *testing.T) {
	v := testViewport()
	v.Resize(200, 100)
	if got, want := v.PanOffset(), (Point{X: 900, Y: 950}); got != want {
		t.Errorf("PanOffset() = %v, want %v", got, want)
	}
}

func TestCopy_ReadsWithoutAliasing(t *testing.T) {
	v := testViewport()
	snap := func() Viewport { return *v }

	if snap().Scale() != 1000 {
		t.Errorf("Scale() = %d, want 1000", snap().Scale())
	}
	if w, h := snap().Size(); w != 400 || h != 300 {
		t.Errorf("Size() = %dx%d, want 400x300", w, h)
	}
	if !snap().Legal(0, 0) {
		t.Error("Legal(0, 0) = false on a copy")
	}
	if p, ok := snap().ToScreen(&WorldPoint{X: 810, Y: 860}); !ok || p != (Point{X: 10, Y: 10}) {
		t.Errorf("ToScreen() = %v, %v, want {10 10}", p, ok)
	}

	c := snap()
	c.Zoom(100)
	if v.Scale() != 1000 {
		t.Errorf("zooming a copy changed the original to %d", v.Scale())
	}
}

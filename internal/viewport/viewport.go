// Package viewport maps the fixed world plane onto the visible screen window.
package viewport

// Point is a position in screen pixels (terminal cells in the TUI).
type Point struct {
	X, Y int
}

// WorldPoint is a position on the world plane written by astro.Project.
type WorldPoint struct {
	X, Y float64
}

// Config holds viewport limits and the initial window.
type Config struct {
	Scale      int // initial world half-extent
	MinZoom    int
	MaxZoom    int
	Margin     int // how far the window may hang past the world edge
	ViewWidth  int
	ViewHeight int
}

// DefaultConfig returns the desktop-sized defaults.
func DefaultConfig() Config {
	return Config{
		Scale:      1400,
		MinZoom:    500,
		MaxZoom:    10000,
		Margin:     10,
		ViewWidth:  1000,
		ViewHeight: 666,
	}
}

// Viewport holds the zoom (scale) and pan of the visible window. Pan is the
// world-plane position of the screen's top-left corner.
type Viewport struct {
	scale   int
	pan     Point
	width   int
	height  int
	margin  int
	minZoom int
	maxZoom int
}

// New creates a viewport centred on the dome.
func New(cfg Config) *Viewport {
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = 1
	}
	if cfg.MaxZoom < cfg.MinZoom {
		cfg.MaxZoom = cfg.MinZoom
	}
	v := &Viewport{
		scale:   clamp(cfg.Scale, cfg.MinZoom, cfg.MaxZoom),
		width:   cfg.ViewWidth,
		height:  cfg.ViewHeight,
		margin:  cfg.Margin,
		minZoom: cfg.MinZoom,
		maxZoom: cfg.MaxZoom,
	}
	v.Center()
	return v
}

// Scale returns the world half-extent in pixels.
func (v Viewport) Scale() int { return v.scale }

// PanOffset returns the current pan.
func (v Viewport) PanOffset() Point { return v.pan }

// Size returns the view width and height.
func (v Viewport) Size() (int, int) { return v.width, v.height }

// Zoom changes the scale by delta, clamped to [MinZoom, MaxZoom]. The pan is
// rescaled so the same fraction of the world plane stays in view; the sky
// point under the cursor is not preserved.
func (v *Viewport) Zoom(delta int) {
	next := clamp(v.scale+delta, v.minZoom, v.maxZoom)
	if next == v.scale {
		return
	}
	v.pan = Point{
		X: v.pan.X * next / v.scale,
		Y: v.pan.Y * next / v.scale,
	}
	v.scale = next
}

// Pan moves the window by (dx, dy) if the result is legal and reports
// whether it moved. An illegal move changes nothing.
func (v *Viewport) Pan(dx, dy int) bool {
	x, y := v.pan.X+dx, v.pan.Y+dy
	if !v.Legal(x, y) {
		return false
	}
	v.pan = Point{X: x, Y: y}
	return true
}

// Legal reports whether a pan of (x, y) keeps the window on, or within
// margin of, the world plane.
func (v Viewport) Legal(x, y int) bool {
	return -v.margin <= x && x <= 2*v.scale-v.width+2*v.margin &&
		-v.margin <= y && y <= 2*v.scale-v.height+2*v.margin
}

// SetPan restores a saved pan without the legality check.
func (v *Viewport) SetPan(p Point) { v.pan = p }

// SetScale restores a saved scale, clamped to the zoom limits. The pan is
// left as is.
func (v *Viewport) SetScale(scale int) {
	v.scale = clamp(scale, v.minZoom, v.maxZoom)
}

// Center puts the dome centre in the middle of the window.
func (v *Viewport) Center() {
	v.pan = Point{X: v.scale - v.width/2, Y: v.scale - v.height/2}
}

// Resize updates the window size, keeping the window centre fixed.
func (v *Viewport) Resize(width, height int) {
	v.pan.X += (v.width - width) / 2
	v.pan.Y += (v.height - height) / 2
	v.width = width
	v.height = height
}

// ToScreen converts a world point to screen pixels. A nil point (a body
// below the horizon) has no screen position.
func (v Viewport) ToScreen(w *WorldPoint) (Point, bool) {
	if w == nil {
		return Point{}, false
	}
	return Point{X: int(w.X - float64(v.pan.X)), Y: int(w.Y - float64(v.pan.Y))}, true
}

// Visible reports whether p lies inside this viewport's window.
func (v Viewport) Visible(p Point) bool {
	return WorldVisible(p, v.width, v.height)
}

// WorldVisible reports whether a screen point falls inside a
// width x height window.
func WorldVisible(p Point, width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

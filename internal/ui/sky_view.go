package ui

import (
	"math"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/catalog"
	"github.com/litescript/skychart/internal/state"
	"github.com/litescript/skychart/internal/viewport"
)

const (
	// Star glyphs by magnitude
	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '•' // mag 3.0-4.0
	glyphStarVeryDim = '·' // mag > 4.0

	glyphLine    = '∙'
	glyphPending = '╌'
	glyphRim     = '.'

	// Star colors
	colorStarBright  = lipgloss.Color("255")
	colorStarMedium  = lipgloss.Color("250")
	colorStarDim     = lipgloss.Color("244")
	colorStarVeryDim = lipgloss.Color("240")

	colorBackground = lipgloss.Color("236")
	colorRim        = lipgloss.Color("60")  // muted purple
	colorCardinal   = lipgloss.Color("252")
	colorLine       = lipgloss.Color("#9D4EDD")
	colorPending    = lipgloss.Color("229") // gold
	colorSelected   = lipgloss.Color("229")
	colorLabel      = lipgloss.Color("#d0c8ff")
)

// LabelMode controls which star names are drawn.
type LabelMode int

const (
	LabelNone   LabelMode = iota // No labels
	LabelBright                  // Stars brighter than magnitude 1.5
	LabelAll                     // Every star on screen
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelBright:
		return "bright"
	default:
		return "all"
	}
}

// ParseLabelMode parses a label mode name. Unknown names mean LabelBright.
func ParseLabelMode(s string) LabelMode {
	switch s {
	case "off", "none":
		return LabelNone
	case "all":
		return LabelAll
	default:
		return LabelBright
	}
}

// SkyViewModel renders the dome, the stars and the drawing.
type SkyViewModel struct {
	width     int
	height    int
	labelMode LabelMode
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{labelMode: LabelBright}
}

// SetSize updates the canvas size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// LabelMode returns the current label mode.
func (m SkyViewModel) LabelMode() LabelMode { return m.labelMode }

func (m SkyViewModel) cycleLabelMode() SkyViewModel {
	m.labelMode = (m.labelMode + 1) % 3
	return m
}

// View renders the session's sky.
func (m SkyViewModel) View(s *state.Session) string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}
	return drawSky(s, m.labelMode).Render()
}

// RenderPlain draws the session's sky as uncoloured text, one line per row
// of the viewport.
func RenderPlain(s *state.Session, labels LabelMode) string {
	return drawSky(s, labels).Plain()
}

// RenderColor draws the session's sky with terminal colours.
func RenderColor(s *state.Session, labels LabelMode) string {
	return drawSky(s, labels).Render()
}

func drawSky(s *state.Session, labels LabelMode) *canvas {
	v := s.View()
	width, height := v.Size()
	c := newCanvas(width, height)

	drawRim(c, &v)
	drawLines(c, s)
	drawStars(c, s, &v, labels)
	return c
}

// drawRim traces the horizon circle and marks the cardinal points on it.
func drawRim(c *canvas, v *viewport.Viewport) {
	scale := v.Scale()
	steps := max(64, 8*scale)
	for i := 0; i < steps; i++ {
		az := 2 * math.Pi * float64(i) / float64(steps)
		if p, ok := worldToScreen(v, 0, az, scale); ok {
			c.set(p.X, p.Y, glyphRim, colorRim)
		}
	}

	cardinals := []struct {
		label string
		az    float64
	}{
		{"N", 0},
		{"E", math.Pi / 2},
		{"S", math.Pi},
		{"W", 3 * math.Pi / 2},
	}
	for _, cd := range cardinals {
		if p, ok := worldToScreen(v, 0, cd.az, scale); ok {
			c.set(p.X, p.Y, rune(cd.label[0]), colorCardinal)
		}
	}
}

func worldToScreen(v *viewport.Viewport, alt, az float64, scale int) (viewport.Point, bool) {
	x, y := astro.Project(alt, az, scale)
	return v.ToScreen(&viewport.WorldPoint{X: x, Y: y})
}

// drawLines draws completed lines, then the pending line to its loose end.
// Lines touching a star below the horizon are not drawn.
func drawLines(c *canvas, s *state.Session) {
	for _, l := range s.Lines() {
		a, ok := s.Locate(l.Star1)
		if !ok {
			continue
		}
		b, ok := s.Locate(l.Star2)
		if !ok {
			continue
		}
		c.line(a.X, a.Y, b.X, b.Y, glyphLine, colorLine)
	}

	pending, end, ok := s.Pending()
	if !ok {
		return
	}
	if a, ok := s.Locate(pending.Star1); ok && a != end {
		c.line(a.X, a.Y, end.X, end.Y, glyphPending, colorPending)
	}
}

func drawStars(c *canvas, s *state.Session, v *viewport.Viewport, labels LabelMode) {
	pending, _, hasPending := s.Pending()

	for _, star := range s.Stars() {
		p, ok := v.ToScreen(star.World)
		if !ok || !v.Visible(p) {
			continue
		}
		glyph, color := starGlyph(star.Magnitude)
		if hasPending && star.Name == pending.Star1 {
			color = colorSelected
		}
		c.set(p.X, p.Y, glyph, color)

		if showLabel(star, labels) {
			c.text(p.X+1, p.Y, star.Name, colorLabel)
		}
	}
}

func showLabel(star *catalog.Star, labels LabelMode) bool {
	switch labels {
	case LabelAll:
		return true
	case LabelBright:
		return star.Magnitude < 1.5
	default:
		return false
	}
}

// labelWidth measures labels as drawStars draws them under the given mode,
// for click hit testing.
func labelWidth(labels LabelMode) func(*catalog.Star) int {
	return func(star *catalog.Star) int {
		if !showLabel(star, labels) {
			return 0
		}
		return utf8.RuneCountInString(star.Name)
	}
}

// starGlyph returns the appropriate glyph and color for a star based on its magnitude.
// Brighter stars (lower magnitude) get more prominent symbols.
func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	case mag < 4.0:
		return glyphStarDim, colorStarDim
	default:
		return glyphStarVeryDim, colorStarVeryDim
	}
}

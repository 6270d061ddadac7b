// Package catalog owns the named stars and their per-tick positions.
package catalog

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/litescript/skychart/internal/astro"
	"github.com/litescript/skychart/internal/viewport"
)

// Star is a catalog entry. The catalog is the only owner of Star records;
// everything else refers to stars by Name.
type Star struct {
	Name      string
	Horizon   astro.Horizon
	Magnitude float64

	// World is nil while the star is below the horizon.
	World *viewport.WorldPoint

	// Radius is floor(magnitude). Zero or less means no disc is drawn, but
	// the star is still selectable.
	Radius int
}

// Catalog holds stars in a fixed order.
type Catalog struct {
	stars  []*Star
	byName map[string]*Star
}

// New creates a catalog from the given entries. Positions are unset until
// the first Recompute.
func New(entries []astro.BrightStar) *Catalog {
	c := &Catalog{
		stars:  make([]*Star, 0, len(entries)),
		byName: make(map[string]*Star, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.byName[e.Name]; dup {
			continue
		}
		s := &Star{Name: e.Name, Magnitude: e.Mag, Radius: radiusFor(e.Mag)}
		c.stars = append(c.stars, s)
		c.byName[e.Name] = s
	}
	return c
}

// Len returns the number of stars.
func (c *Catalog) Len() int { return len(c.stars) }

// Stars returns the stars in catalog order. The records are live; callers
// must not modify them.
func (c *Catalog) Stars() []*Star { return c.stars }

// Lookup finds a star by exact name.
func (c *Catalog) Lookup(name string) (*Star, bool) {
	s, ok := c.byName[name]
	return s, ok
}

// Has reports whether name is a catalog star.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names returns all star names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.stars))
	for i, s := range c.stars {
		names[i] = s.Name
	}
	return names
}

// Recompute refreshes every star from the almanac for the site and instant
// and projects it at the given scale. Positions are committed only once all
// observations succeed. Any almanac failure aborts the update with an error
// wrapping astro.ErrAlmanacUnavailable and clears every World, so nothing is
// drawn or hit at a position from another instant; Horizon and Magnitude
// keep their last good values.
func (c *Catalog) Recompute(ctx context.Context, alm astro.Almanac, site astro.Site, t time.Time, scale int) error {
	obs := make([]astro.Observation, len(c.stars))
	for i, s := range c.stars {
		o, err := alm.Observe(ctx, s.Name, site, t)
		if err != nil {
			for _, s := range c.stars {
				s.World = nil
			}
			return fmt.Errorf("observe %s: %w", s.Name, err)
		}
		obs[i] = o
	}

	for i, s := range c.stars {
		s.Horizon = obs[i].Horizon()
		s.Magnitude = obs[i].Magnitude
		s.Radius = radiusFor(obs[i].Magnitude)
		if s.Horizon.AboveHorizon() {
			x, y := astro.Project(s.Horizon.Altitude, s.Horizon.Azimuth, scale)
			s.World = &viewport.WorldPoint{X: x, Y: y}
		} else {
			s.World = nil
		}
	}
	return nil
}

// Locate returns a star's screen position, if it is above the horizon.
// Whether that position is inside the window is a separate question.
func (c *Catalog) Locate(name string, vp *viewport.Viewport) (viewport.Point, bool) {
	s, ok := c.byName[name]
	if !ok {
		return viewport.Point{}, false
	}
	return vp.ToScreen(s.World)
}

// StarAt returns the first star, in catalog order, whose disc or name label
// contains the screen point p. A label occupies labelWidth(star) cells on
// the star's row, starting one cell to its right; a width of zero means the
// label is not shown. Stars below the horizon or outside the window are
// never hit.
func (c *Catalog) StarAt(p viewport.Point, vp *viewport.Viewport, labelWidth func(*Star) int) (*Star, bool) {
	for _, s := range c.stars {
		pos, ok := vp.ToScreen(s.World)
		if !ok || !vp.Visible(pos) {
			continue
		}
		r := max(s.Radius, 1)
		dx, dy := p.X-pos.X, p.Y-pos.Y
		if dx*dx+dy*dy <= r*r {
			return s, true
		}
		if labelWidth != nil && p.Y == pos.Y && p.X > pos.X && p.X <= pos.X+labelWidth(s) {
			return s, true
		}
	}
	return nil, false
}

func radiusFor(mag float64) int {
	return int(math.Floor(mag))
}

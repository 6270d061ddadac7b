package astro

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAlmanacUnavailable is returned when an almanac cannot produce a
// position. A tick that sees it must not keep the previous positions.
var ErrAlmanacUnavailable = errors.New("almanac unavailable")

// Observation is the instantaneous observed state of one body. Angles are
// radians.
type Observation struct {
	Altitude  float64
	Azimuth   float64
	Magnitude float64
	RA        float64
	Dec       float64
}

// Horizon returns the observation's horizon coordinates.
func (o Observation) Horizon() Horizon {
	return Horizon{Altitude: o.Altitude, Azimuth: o.Azimuth}
}

// Almanac computes where a named body is for an observer at an instant.
// Implementations must be pure given their inputs; they are called once per
// star per tick.
type Almanac interface {
	Observe(ctx context.Context, name string, site Site, t time.Time) (Observation, error)
}

// ComputedAlmanac answers from a fixed J2000 table using sidereal time.
// Proper motion, precession and refraction are ignored.
type ComputedAlmanac struct {
	stars map[string]BrightStar
}

// NewComputedAlmanac indexes the given catalog entries by name.
func NewComputedAlmanac(stars []BrightStar) *ComputedAlmanac {
	idx := make(map[string]BrightStar, len(stars))
	for _, s := range stars {
		idx[s.Name] = s
	}
	return &ComputedAlmanac{stars: idx}
}

// Observe implements Almanac.
func (a *ComputedAlmanac) Observe(ctx context.Context, name string, site Site, t time.Time) (Observation, error) {
	if err := ctx.Err(); err != nil {
		return Observation{}, fmt.Errorf("%w: %v", ErrAlmanacUnavailable, err)
	}
	star, ok := a.stars[name]
	if !ok {
		return Observation{}, fmt.Errorf("%w: no entry for %q", ErrAlmanacUnavailable, name)
	}

	h := EquatorialToHorizontal(star.RAdeg, star.DecDeg, site, t)
	return Observation{
		Altitude:  h.Altitude,
		Azimuth:   h.Azimuth,
		Magnitude: star.Mag,
		RA:        degToRad(star.RAdeg),
		Dec:       degToRad(star.DecDeg),
	}, nil
}

package astro

import (
	"errors"
	"math"
	"time"
)

// Window is one rise-transit-set cycle of a star for an observer.
type Window struct {
	Rise          time.Time // zero if the star was already up at the start
	Transit       time.Time // highest point
	Set           time.Time // zero if the star had not set by the end
	MaxAltitude   float64   // degrees
	AlwaysVisible bool      // circumpolar
	NeverVisible  bool      // never rises
}

// ErrInsufficientSamples is returned when the search span holds fewer than
// three samples.
var ErrInsufficientSamples = errors.New("insufficient samples for visibility calculation")

// RiseSet samples a star's altitude every step over span from start and
// finds the first rise, the transit and the first set after it. Crossings
// are interpolated linearly between samples; the transit is refined with a
// parabola through the three highest samples.
func RiseSet(site Site, raDeg, decDeg float64, start time.Time, span, step time.Duration) (Window, error) {
	if step <= 0 || span/step < 2 {
		return Window{}, ErrInsufficientSamples
	}

	type sample struct {
		t   time.Time
		alt float64 // degrees
	}
	n := int(span/step) + 1
	samples := make([]sample, n)
	minAlt, maxAlt, maxIdx := 90.0, -90.0, 0
	for i := range samples {
		t := start.Add(time.Duration(i) * step)
		alt := radToDeg(EquatorialToHorizontal(raDeg, decDeg, site, t).Altitude)
		samples[i] = sample{t: t, alt: alt}
		minAlt = math.Min(minAlt, alt)
		if alt > maxAlt {
			maxAlt, maxIdx = alt, i
		}
	}

	transit, peak := refinePeak(
		samples[max(maxIdx-1, 0)].alt, samples[maxIdx].alt, samples[min(maxIdx+1, n-1)].alt,
		samples[maxIdx].t, step, maxIdx > 0 && maxIdx < n-1)

	switch {
	case minAlt > 0:
		return Window{Transit: transit, MaxAltitude: peak, AlwaysVisible: true}, nil
	case maxAlt < 0:
		return Window{MaxAltitude: maxAlt, NeverVisible: true}, nil
	}

	w := Window{Transit: transit, MaxAltitude: peak}
	for i := 1; i < n; i++ {
		prev, cur := samples[i-1], samples[i]
		if w.Rise.IsZero() && w.Set.IsZero() && prev.alt <= 0 && cur.alt > 0 {
			w.Rise = interpolateCrossing(prev.t, cur.t, prev.alt, cur.alt, 0)
		}
		if prev.alt > 0 && cur.alt <= 0 && (!w.Rise.IsZero() || samples[0].alt > 0) {
			w.Set = interpolateCrossing(prev.t, cur.t, prev.alt, cur.alt, 0)
			break
		}
	}
	return w, nil
}

// refinePeak fits a parabola through three equally spaced altitudes around
// the highest sample. Without neighbours on both sides the sample stands.
func refinePeak(y0, y1, y2 float64, t time.Time, step time.Duration, interior bool) (time.Time, float64) {
	if !interior {
		return t, y1
	}
	a := (y0+y2)/2 - y1
	b := (y2 - y0) / 2
	if a >= 0 {
		return t, y1
	}
	x := math.Max(-1, math.Min(1, -b/(2*a)))
	return t.Add(time.Duration(float64(step) * x)), a*x*x + b*x + y1
}

// interpolateCrossing finds when altitude crosses threshold between two
// samples.
func interpolateCrossing(t1, t2 time.Time, alt1, alt2, threshold float64) time.Time {
	if math.Abs(alt2-alt1) < 0.0001 {
		return t1
	}
	f := math.Max(0, math.Min(1, (threshold-alt1)/(alt2-alt1)))
	return t1.Add(time.Duration(float64(t2.Sub(t1)) * f))
}

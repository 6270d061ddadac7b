// Package clock holds the observer's simulated date-time and location.
package clock

import (
	"time"

	"github.com/litescript/skychart/internal/astro"
)

// Mode selects how simulated time moves on each tick.
type Mode int

const (
	Paused      Mode = iota // time stands still
	FastForward             // one simulated minute per tick
	RealTime                // follows the wall clock
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Paused:
		return "paused"
	case FastForward:
		return "fast-forward"
	case RealTime:
		return "real-time"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name. Unknown names mean Paused.
func ParseMode(s string) Mode {
	switch s {
	case "fast-forward", "fastforward", "ff":
		return FastForward
	case "real-time", "realtime", "live":
		return RealTime
	default:
		return Paused
	}
}

// Clock is the Observer Clock. It never changes mode on its own.
type Clock struct {
	now      time.Time
	mode     Mode
	location astro.Site

	// Now supplies wall-clock time in RealTime mode.
	Now func() time.Time
}

// New creates a paused clock at t for the given site.
func New(t time.Time, site astro.Site) *Clock {
	return &Clock{
		now:      truncate(t),
		location: site,
		Now:      time.Now,
	}
}

// Time returns the simulated instant.
func (c *Clock) Time() time.Time { return c.now }

// Mode returns the current time-advance mode.
func (c *Clock) Mode() Mode { return c.mode }

// Location returns the observer site.
func (c *Clock) Location() astro.Site { return c.location }

// SetMode switches the time-advance mode.
func (c *Clock) SetMode(m Mode) { c.mode = m }

// SetTime jumps to t, dropping anything finer than a minute.
func (c *Clock) SetTime(t time.Time) { c.now = truncate(t) }

// SetLocation moves the observer.
func (c *Clock) SetLocation(site astro.Site) { c.location = site }

// Tick advances simulated time according to the mode and reports whether it
// changed.
func (c *Clock) Tick() bool {
	switch c.mode {
	case FastForward:
		c.now = advanceMinute(c.now)
		return true
	case RealTime:
		next := truncate(c.Now())
		changed := !next.Equal(c.now)
		c.now = next
		return changed
	default:
		return false
	}
}

// advanceMinute adds one minute with an explicit calendar cascade:
// minute%60 carries into hour%24, which carries into day, month and year.
func advanceMinute(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, minute := t.Hour(), t.Minute()+1

	if minute >= 60 {
		minute %= 60
		hour++
	}
	if hour >= 24 {
		hour %= 24
		day++
	}
	if day > daysIn(month, year) {
		day = 1
		month++
	}
	if month > time.December {
		month = time.January
		year++
	}
	return time.Date(year, month, day, hour, minute, 0, 0, t.Location())
}

func daysIn(m time.Month, year int) int {
	// Day 0 of the next month is the last day of m.
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

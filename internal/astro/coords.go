// Package astro provides the sky math behind the planetarium: sidereal time,
// equatorial to horizon conversion, the sky-dome projection and the almanac
// that feeds the star catalog.
package astro

import (
	"fmt"
	"math"
	"time"
)

// Horizon holds observer-relative coordinates in radians.
//
//   - Azimuth: 0 = North, π/2 = East, π = South, 3π/2 = West
//   - Altitude: 0 = horizon, π/2 = zenith, negative below the horizon
type Horizon struct {
	Altitude float64
	Azimuth  float64
}

// AboveHorizon reports whether the body can be seen at all.
func (h Horizon) AboveHorizon() bool {
	return h.Altitude >= 0
}

// EquatorialToHorizontal converts J2000 RA/Dec (degrees) into horizon
// coordinates for an observer site at time t.
func EquatorialToHorizontal(raDeg, decDeg float64, site Site, t time.Time) Horizon {
	lat := degToRad(site.LatDeg)
	ra := degToRad(raDeg)
	dec := degToRad(decDeg)

	ha := degToRad(localSiderealTime(t, site.LonDeg)) - ra

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(sinAlt)

	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))
	// Floating point drift can push this just outside [-1, 1].
	cosAz = math.Max(-1, math.Min(1, cosAz))

	az := math.Acos(cosAz)
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return Horizon{Altitude: alt, Azimuth: az}
}

// localSiderealTime returns LST in degrees [0, 360) for a UTC instant and
// an east-positive longitude.
func localSiderealTime(t time.Time, lonDeg float64) float64 {
	return normalizeDeg(greenwichMeanSiderealTime(t) + lonDeg)
}

// greenwichMeanSiderealTime returns GMST in degrees (IAU 1982).
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := julianDate(t)
	T := (jd - 2451545.0) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalizeDeg(gmst)
}

// julianDate returns the Julian Date of t.
func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0

	// January and February count as months 13 and 14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

func normalizeDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// String renders the position in degrees for status lines.
func (h Horizon) String() string {
	return fmt.Sprintf("Alt %.1f° Az %.1f°", radToDeg(h.Altitude), radToDeg(h.Azimuth))
}

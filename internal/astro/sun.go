package astro

import (
	"math"
	"time"
)

// SunPosition returns the Sun's apparent RA/Dec in degrees from a low
// precision solar ephemeris, good to about 0.01°.
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	T := (julianDate(t) - 2451545.0) / 36525.0

	// Mean longitude and mean anomaly.
	L0 := normalizeDeg(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := degToRad(normalizeDeg(357.52911 + 35999.05029*T - 0.0001537*T*T))

	// Equation of centre.
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	// Apparent longitude, corrected for aberration and nutation.
	omega := degToRad(125.04 - 1934.136*T)
	lon := degToRad(L0 + C - 0.00569 - 0.00478*math.Sin(omega))

	eps := degToRad(23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T +
		0.00256*math.Cos(omega))

	raDeg = normalizeDeg(radToDeg(math.Atan2(math.Cos(eps)*math.Sin(lon), math.Cos(lon))))
	decDeg = radToDeg(math.Asin(math.Sin(eps) * math.Sin(lon)))
	return raDeg, decDeg
}

// SunHorizon returns where the Sun stands for an observer.
func SunHorizon(site Site, t time.Time) Horizon {
	ra, dec := SunPosition(t)
	return EquatorialToHorizontal(ra, dec, site, t)
}

// Twilight is the sky condition set by the Sun's altitude.
type Twilight int

const (
	Day          Twilight = iota // Sun above the horizon
	Civil                        // down to -6°
	Nautical                     // down to -12°
	Astronomical                 // down to -18°
	Night
)

func (tw Twilight) String() string {
	switch tw {
	case Day:
		return "day"
	case Civil:
		return "civil twilight"
	case Nautical:
		return "nautical twilight"
	case Astronomical:
		return "astronomical twilight"
	default:
		return "night"
	}
}

// TwilightAt classifies a Sun altitude given in radians.
func TwilightAt(sunAlt float64) Twilight {
	deg := radToDeg(sunAlt)
	switch {
	case deg >= 0:
		return Day
	case deg >= -6:
		return Civil
	case deg >= -12:
		return Nautical
	case deg >= -18:
		return Astronomical
	default:
		return Night
	}
}

// AngularSeparation returns the great-circle angle in degrees between two
// points given as (longitude, latitude) in degrees, such as RA/Dec.
func AngularSeparation(lon1, lat1, lon2, lat2 float64) float64 {
	l1, b1 := degToRad(lon1), degToRad(lat1)
	l2, b2 := degToRad(lon2), degToRad(lat2)

	// Haversine stays accurate for small angles.
	a := math.Sin((b2-b1)/2)*math.Sin((b2-b1)/2) +
		math.Cos(b1)*math.Cos(b2)*math.Sin((l2-l1)/2)*math.Sin((l2-l1)/2)
	a = math.Min(a, 1)

	return radToDeg(2 * math.Asin(math.Sqrt(a)))
}

// Separation returns the angle in degrees between two bodies seen from the
// same place, from their horizon coordinates.
func Separation(a, b Horizon) float64 {
	return AngularSeparation(radToDeg(a.Azimuth), radToDeg(a.Altitude), radToDeg(b.Azimuth), radToDeg(b.Altitude))
}

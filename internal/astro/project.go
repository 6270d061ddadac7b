package astro

import "math"

// Project maps horizon coordinates onto the world plane, a disc of radius
// scale centred on (scale, scale). The zenith lands on the centre and the
// horizon on the rim; azimuth 0 (north) points along +x and east along +y.
// Saved sessions and the quiz references are keyed to this layout.
//
// Callers must not pass a negative altitude; a body below the horizon has no
// world position.
func Project(alt, az float64, scale int) (x, y float64) {
	phi := alt + math.Pi/2
	theta := 2*math.Pi - az
	s := float64(scale)
	x = s * (math.Sin(phi)*math.Cos(theta) + 1)
	y = s * (-math.Sin(phi)*math.Sin(theta) + 1)
	return x, y
}

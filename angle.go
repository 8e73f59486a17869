package kale

import "math"

// Radians is an angle in radians.
type Radians float64

// Degrees converts an angle in degrees to Radians.
func Degrees(deg float64) Radians {
	return Radians(deg * math.Pi / 180)
}

// Degrees returns the angle in degrees.
func (r Radians) Degrees() float64 {
	return float64(r) * 180 / math.Pi
}

// Unit returns the unit vector pointing along the angle.
func (r Radians) Unit() Point {
	sin, cos := math.Sincos(float64(r))
	return Point{X: cos, Y: sin}
}

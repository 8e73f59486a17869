package geometry

import (
	"math"

	"github.com/sunjay/kale"
)

// maxArcSteps bounds the number of points a single arc flattens to.
const maxArcSteps = 4096

// arcShape resolves an Arc primitive started at from into its circle
// parameters and end point.
//
// Sweeps beyond one full turn are folded to a single turn plus the
// remainder, which traces the same circle and ends at the same angle. An
// arc with a non-finite field does not move the path.
func arcShape(from kale.Point, a kale.Arc) (center kale.Point, radius float64, start, sweep kale.Radians, end kale.Point) {
	if !finite(float64(a.Heading)) || !finite(a.Radius) || !finite(float64(a.Extent)) {
		return from, 0, 0, 0, from
	}
	left := (a.Heading + math.Pi/2).Unit()
	center = from.Add(left.Mul(a.Radius))
	radius = math.Abs(a.Radius)

	sweep = a.Extent
	if a.Radius < 0 {
		sweep = -sweep
	}
	if turns := math.Abs(float64(sweep)); turns > 2*math.Pi {
		folded := 2*math.Pi + math.Mod(turns, 2*math.Pi)
		sweep = kale.Radians(math.Copysign(folded, float64(sweep)))
	}
	if radius == 0 {
		return from, 0, 0, sweep, from
	}

	rel := from.Sub(center)
	start = kale.Radians(math.Atan2(rel.Y, rel.X))
	end = center.Add((start + sweep).Unit().Mul(radius))
	return center, radius, start, sweep, end
}

// flattenArc returns points along the arc after its start point, ending
// exactly at end. The distance between the polyline and the circle stays
// within tol.
func flattenArc(center kale.Point, radius float64, start, sweep kale.Radians, end kale.Point, tol float64) []kale.Point {
	if radius == 0 || sweep == 0 {
		return []kale.Point{end}
	}

	n := arcSteps(radius, math.Abs(float64(sweep)), tol)
	pts := make([]kale.Point, 0, n)
	step := sweep / kale.Radians(n)
	for i := 1; i < n; i++ {
		a := start + step*kale.Radians(i)
		pts = append(pts, center.Add(a.Unit().Mul(radius)))
	}
	return append(pts, end)
}

// arcSteps returns how many chords approximate a sweep of the given size,
// between 1 and maxArcSteps.
func arcSteps(radius, sweep, tol float64) int {
	var n float64
	if tol >= radius {
		n = math.Ceil(sweep / (math.Pi / 2))
	} else {
		// Sagitta of a chord spanning theta: r * (1 - cos(theta/2)).
		theta := 2 * math.Acos(1-tol/radius)
		n = math.Ceil(sweep / theta)
	}
	switch {
	case math.IsNaN(n) || n > maxArcSteps:
		return maxArcSteps
	case n < 1:
		return 1
	}
	return int(n)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package geometry

import "math"

// SimplifyRatio is the default ratio of contour perimeter used as the
// Douglas-Peucker epsilon, so that simplification tolerance scales with the
// size of the traced shape.
const SimplifyRatio = 0.02

// Simplify reduces a polyline using the Douglas-Peucker algorithm with the
// given epsilon (maximum allowed perpendicular deviation, in pixels).
//
// The recursive rule: find the point of maximum perpendicular distance from
// the chord connecting the first and last points. If that distance exceeds
// epsilon, recurse on both sub-chains and concatenate the results (dropping
// the duplicated join point); otherwise the whole chain collapses to its two
// endpoints.
//
// Simplify is idempotent: re-simplifying its own output with the same epsilon
// returns the same polyline.
func Simplify(pts []Point, epsilon float64) []Point {
	if len(pts) <= 2 {
		out := make([]Point, len(pts))
		copy(out, pts)
		return out
	}

	maxDist := 0.0
	maxIdx := 0
	first, last := pts[0], pts[len(pts)-1]
	for i := 1; i < len(pts)-1; i++ {
		d := perpendicularDistance(pts[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []Point{first, last}
	}

	left := Simplify(pts[:maxIdx+1], epsilon)
	right := Simplify(pts[maxIdx:], epsilon)

	// Drop the duplicated join point between the two halves.
	out := make([]Point, 0, len(left)+len(right)-1)
	out = append(out, left...)
	out = append(out, right[1:]...)
	return out
}

// SimplifyClosed simplifies a closed contour with an epsilon proportional to
// its own perimeter (epsilon = SimplifyRatio × perimeter).
//
// A traced contour walks a loop, so its last point lands next to its first;
// when the simplified endpoints are within epsilon of each other the
// duplicated closing point is dropped.
func SimplifyClosed(pts []Point) []Point {
	epsilon := SimplifyRatio * Perimeter(pts)
	out := Simplify(pts, epsilon)
	if len(out) > 2 && out[0].Distance(out[len(out)-1]) <= epsilon {
		out = out[:len(out)-1]
	}
	return out
}

// perpendicularDistance returns the distance from p to the infinite line
// through a and b. If a and b coincide it falls back to point distance.
func perpendicularDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return p.Distance(a)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}

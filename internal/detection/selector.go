package detection

import (
	"math"

	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// Rectangle selection gates and weights.
const (
	// minAreaRatio and maxAreaRatio bound the candidate polygon area as a
	// fraction of the frame area. Too small is noise; too large is the
	// frame border itself.
	minAreaRatio = 0.1
	maxAreaRatio = 0.9

	areaWeight  = 0.6
	angleWeight = 0.4

	// rightAngleWindow is how far an interior angle may deviate from 90°
	// and still count as a right angle.
	rightAngleWindow = 30 * math.Pi / 180
)

// selectRectangle simplifies each contour and picks the best 4-corner
// candidate for a width×height frame.
//
// Simplification uses Douglas-Peucker with an epsilon proportional to the
// contour's own perimeter, so tolerance scales with document size. Only
// simplifications yielding exactly 4 points are considered. Candidates are
// scored areaWeight·areaRatio + angleWeight·rightAngleFraction; the highest
// score wins and ties keep the first encountered.
//
// Returns the ordered corners and the score, or (nil, 0) when no candidate
// clears the gates.
func selectRectangle(contours [][]geometry.Point, width, height int) ([]geometry.Point, float64) {
	frameArea := float64(width * height)
	if frameArea == 0 {
		return nil, 0
	}

	var best []geometry.Point
	bestScore := 0.0

	for _, contour := range contours {
		simplified := geometry.SimplifyClosed(contour)
		if len(simplified) != 4 {
			continue
		}

		areaRatio := geometry.PolygonArea(simplified) / frameArea
		if areaRatio < minAreaRatio || areaRatio > maxAreaRatio {
			continue
		}

		score := areaWeight*areaRatio + angleWeight*rightAngleFraction(simplified)
		if score > bestScore {
			bestScore = score
			best = simplified
		}
	}

	if best == nil {
		return nil, 0
	}
	return geometry.OrderCorners(best), bestScore
}

// rightAngleFraction counts the interior angles within rightAngleWindow of
// 90° and divides by 4.
func rightAngleFraction(quad []geometry.Point) float64 {
	count := 0
	for i := range quad {
		prev := quad[(i+3)%4]
		next := quad[(i+1)%4]
		angle := geometry.InteriorAngle(prev, quad[i], next)
		if math.Abs(angle-math.Pi/2) <= rightAngleWindow {
			count++
		}
	}
	return float64(count) / 4
}

package detection

import (
	"testing"

	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// rectContour traces the boundary of an axis-aligned rectangle as a closed
// pixel loop, the shape floodWalk produces for a clean document.
func rectContour(x1, y1, x2, y2 int) []geometry.Point {
	pts := make([]geometry.Point, 0, 2*(x2-x1+y2-y1))
	for x := x1; x < x2; x++ {
		pts = append(pts, geometry.Point{X: float64(x), Y: float64(y1)})
	}
	for y := y1; y < y2; y++ {
		pts = append(pts, geometry.Point{X: float64(x2), Y: float64(y)})
	}
	for x := x2; x > x1; x-- {
		pts = append(pts, geometry.Point{X: float64(x), Y: float64(y2)})
	}
	for y := y2; y > y1; y-- {
		pts = append(pts, geometry.Point{X: float64(x1), Y: float64(y)})
	}
	return pts
}

func TestSelectRectangle_PicksLargerArea(t *testing.T) {
	// Two clean rectangles: with equal right-angle fractions the score is
	// monotonic in area ratio, so the larger one must win.
	small := rectContour(10, 10, 70, 60)
	large := rectContour(20, 20, 140, 100)

	corners, score := selectRectangle([][]geometry.Point{small, large}, 160, 120)
	if corners == nil {
		t.Fatal("no rectangle selected")
	}
	if score <= 0 {
		t.Fatalf("score = %v, want > 0", score)
	}

	want := []geometry.Point{
		{X: 20, Y: 20}, {X: 140, Y: 20}, {X: 140, Y: 100}, {X: 20, Y: 100},
	}
	for i, c := range corners {
		if c.Distance(want[i]) > 3 {
			t.Errorf("corner %d = %v, want near %v", i, c, want[i])
		}
	}

	// The score must exceed what the small rectangle alone would get.
	_, smallScore := selectRectangle([][]geometry.Point{small}, 160, 120)
	if score <= smallScore {
		t.Errorf("larger area scored %v, small alone scored %v", score, smallScore)
	}
}

func TestSelectRectangle_AreaGates(t *testing.T) {
	tiny := rectContour(10, 10, 40, 20) // area ratio ~0.016
	full := rectContour(1, 1, 158, 118) // area ratio ~0.96

	if corners, _ := selectRectangle([][]geometry.Point{tiny}, 160, 120); corners != nil {
		t.Error("tiny contour should fail the minimum area gate")
	}
	if corners, _ := selectRectangle([][]geometry.Point{full}, 160, 120); corners != nil {
		t.Error("near-frame contour should fail the maximum area gate")
	}
}

func TestSelectRectangle_NonQuadRejected(t *testing.T) {
	// A triangle simplifies to 3 points and must be skipped.
	tri := []geometry.Point{}
	for i := 0; i <= 60; i++ {
		tri = append(tri, geometry.Point{X: float64(20 + i), Y: float64(100 - i)})
	}
	for i := 0; i <= 60; i++ {
		tri = append(tri, geometry.Point{X: float64(80 + i), Y: float64(40 + i)})
	}
	for i := 0; i <= 120; i++ {
		tri = append(tri, geometry.Point{X: float64(140 - i), Y: 100})
	}

	if corners, _ := selectRectangle([][]geometry.Point{tri}, 160, 120); corners != nil {
		t.Errorf("triangle produced corners: %v", corners)
	}
}

func TestRightAngleFraction(t *testing.T) {
	square := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if got := rightAngleFraction(square); got != 1 {
		t.Errorf("square right-angle fraction = %v, want 1", got)
	}

	// A strongly sheared parallelogram (45° interior angles) has none.
	sheared := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 10}, {X: 10, Y: 10}}
	if got := rightAngleFraction(sheared); got != 0 {
		t.Errorf("sheared quad right-angle fraction = %v, want 0", got)
	}
}

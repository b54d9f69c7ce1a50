package geometry

import (
	"math"
	"testing"
)

func TestOrderCorners(t *testing.T) {
	ordered := []Point{
		{X: 10, Y: 10}, // top-left
		{X: 90, Y: 12}, // top-right
		{X: 92, Y: 88}, // bottom-right
		{X: 8, Y: 90},  // bottom-left
	}

	// Every permutation of the same four corners must produce the same order.
	perms := [][]int{
		{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1},
		{0, 2, 1, 3}, {3, 0, 2, 1},
	}

	for _, perm := range perms {
		input := make([]Point, 4)
		for i, idx := range perm {
			input[i] = ordered[idx]
		}

		got := OrderCorners(input)
		for i := range ordered {
			if got[i] != ordered[i] {
				t.Errorf("permutation %v: corner %d = %v, want %v", perm, i, got[i], ordered[i])
			}
		}
	}
}

func TestOrderCorners_TiedSums(t *testing.T) {
	// A 45°-rotated square: the leftmost and topmost points tie on (x+y), as
	// do the rightmost and bottommost. The coordinate tie-breaks must keep
	// the ordering identical across input permutations.
	want := []Point{
		{X: 0, Y: 50},   // top-left
		{X: 50, Y: 0},   // top-right
		{X: 100, Y: 50}, // bottom-right
		{X: 50, Y: 100}, // bottom-left
	}

	perms := [][]int{
		{0, 1, 2, 3}, {1, 2, 3, 0}, {2, 3, 0, 1}, {3, 0, 1, 2},
		{3, 2, 1, 0}, {1, 0, 3, 2}, {2, 0, 3, 1}, {0, 2, 1, 3},
	}

	for _, perm := range perms {
		input := make([]Point, 4)
		for i, idx := range perm {
			input[i] = want[idx]
		}

		got := OrderCorners(input)
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("permutation %v: corner %d = %v, want %v", perm, i, got[i], want[i])
			}
		}
	}
}

func TestOrderCorners_NonQuad(t *testing.T) {
	pts := []Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	got := OrderCorners(pts)
	if len(got) != 2 || got[0] != pts[0] || got[1] != pts[1] {
		t.Errorf("non-quad input should pass through unchanged, got %v", got)
	}
}

func TestSimplify_Idempotent(t *testing.T) {
	// A noisy rectangle outline: corner points plus small mid-edge wobble.
	pts := []Point{
		{X: 0, Y: 0}, {X: 25, Y: 0.4}, {X: 50, Y: 0}, {X: 75, Y: 0.3}, {X: 100, Y: 0},
		{X: 100, Y: 30}, {X: 100, Y: 60},
		{X: 50, Y: 60.5}, {X: 0, Y: 60},
		{X: 0, Y: 30},
	}
	epsilon := 2.0

	once := Simplify(pts, epsilon)
	twice := Simplify(once, epsilon)

	if len(once) != len(twice) {
		t.Fatalf("re-simplification changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("point %d changed on re-simplification: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestSimplify_CollapsesStraightLine(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 10, Y: 0.1}, {X: 20, Y: 0}, {X: 30, Y: 0.05}, {X: 40, Y: 0}}
	got := Simplify(pts, 1.0)
	if len(got) != 2 {
		t.Fatalf("straight line should collapse to endpoints, got %d points", len(got))
	}
	if got[0] != pts[0] || got[1] != pts[len(pts)-1] {
		t.Errorf("endpoints not preserved: %v", got)
	}
}

func TestSimplify_KeepsSharpCorner(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}}
	got := Simplify(pts, 1.0)
	if len(got) != 3 {
		t.Fatalf("sharp corner should survive simplification, got %d points", len(got))
	}
}

func TestSimplifyClosed_TracedLoop(t *testing.T) {
	// A traced rectangle loop: the walk starts at the top-left corner, runs
	// down, right, up, and back along the top, ending adjacent to its start.
	pts := make([]Point, 0, 360)
	for y := 0; y <= 80; y++ {
		pts = append(pts, Point{X: 0, Y: float64(y)})
	}
	for x := 1; x <= 100; x++ {
		pts = append(pts, Point{X: float64(x), Y: 80})
	}
	for y := 79; y >= 0; y-- {
		pts = append(pts, Point{X: 100, Y: float64(y)})
	}
	for x := 99; x >= 1; x-- {
		pts = append(pts, Point{X: float64(x), Y: 0})
	}

	got := SimplifyClosed(pts)
	if len(got) != 4 {
		t.Fatalf("traced loop simplified to %d points, want 4 (%v)", len(got), got)
	}
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if got := PolygonArea(square); math.Abs(got-100) > 1e-9 {
		t.Errorf("square area = %v, want 100", got)
	}

	// Winding direction must not matter.
	reversed := []Point{{X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	if got := PolygonArea(reversed); math.Abs(got-100) > 1e-9 {
		t.Errorf("reversed square area = %v, want 100", got)
	}

	if got := PolygonArea(square[:2]); got != 0 {
		t.Errorf("degenerate polygon area = %v, want 0", got)
	}
}

func TestInteriorAngle(t *testing.T) {
	// Right angle at the origin.
	angle := InteriorAngle(Point{X: 10, Y: 0}, Point{X: 0, Y: 0}, Point{X: 0, Y: 10})
	if math.Abs(angle-math.Pi/2) > 1e-9 {
		t.Errorf("right angle = %v rad, want %v", angle, math.Pi/2)
	}

	// Straight line through the vertex.
	angle = InteriorAngle(Point{X: -10, Y: 0}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0})
	if math.Abs(angle-math.Pi) > 1e-9 {
		t.Errorf("straight angle = %v rad, want %v", angle, math.Pi)
	}

	// Degenerate edge collapses to 0.
	if got := InteriorAngle(Point{}, Point{}, Point{X: 1, Y: 1}); got != 0 {
		t.Errorf("degenerate angle = %v, want 0", got)
	}
}

func TestTransform(t *testing.T) {
	tr := NewTransform(160, 120, 640, 480)
	p := tr.Apply(Point{X: 80, Y: 60})
	if p.X != 320 || p.Y != 240 {
		t.Errorf("transform = %v, want (320,240)", p)
	}

	// Non-uniform aspect change scales axes independently.
	tr = NewTransform(160, 120, 320, 120)
	p = tr.Apply(Point{X: 10, Y: 10})
	if p.X != 20 || p.Y != 10 {
		t.Errorf("non-uniform transform = %v, want (20,10)", p)
	}
}

package geometry

// OrderCorners sorts exactly four points into top-left, top-right,
// bottom-right, bottom-left order.
//
// The rule: the point with the smallest (x+y) sum is top-left and the point
// with the largest sum is bottom-right; of the remaining two, the point with
// the larger (x−y) difference is top-right and the other is bottom-left.
// Ties on either key (a 45°-rotated quad ties every sum pairwise) break on
// x, then y, so the result is invariant under any permutation of the input.
//
// Inputs with a length other than 4 are returned unchanged (copied).
func OrderCorners(pts []Point) []Point {
	if len(pts) != 4 {
		out := make([]Point, len(pts))
		copy(out, pts)
		return out
	}

	tlIdx, brIdx := 0, 0
	for i := 1; i < 4; i++ {
		if sumLess(pts[i], pts[tlIdx]) {
			tlIdx = i
		}
		if sumLess(pts[brIdx], pts[i]) {
			brIdx = i
		}
	}
	if tlIdx == brIdx {
		// All four points are identical; pick distinct indices so the
		// remaining pair is still well defined.
		brIdx = (tlIdx + 1) % 4
	}

	rest := make([]int, 0, 2)
	for i := range pts {
		if i != tlIdx && i != brIdx {
			rest = append(rest, i)
		}
	}

	trIdx, blIdx := rest[0], rest[1]
	if diffLess(pts[trIdx], pts[blIdx]) {
		trIdx, blIdx = blIdx, trIdx
	}

	return []Point{pts[tlIdx], pts[trIdx], pts[brIdx], pts[blIdx]}
}

// sumLess orders points by (x+y), breaking ties on x, then y.
func sumLess(a, b Point) bool {
	if a.X+a.Y != b.X+b.Y {
		return a.X+a.Y < b.X+b.Y
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// diffLess orders points by (x−y), breaking ties on x, then y.
func diffLess(a, b Point) bool {
	if a.X-a.Y != b.X-b.Y {
		return a.X-a.Y < b.X-b.Y
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

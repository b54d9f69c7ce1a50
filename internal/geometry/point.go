package geometry

import "math"

// Space identifies the coordinate space a point is expressed in.
type Space int

const (
	// SpaceWorking is the small fixed analysis resolution.
	SpaceWorking Space = iota

	// SpacePreview is the camera preview resolution.
	SpacePreview

	// SpaceImage is the full-resolution still image.
	SpaceImage
)

// String returns a human-readable space name.
func (s Space) String() string {
	switch s {
	case SpaceWorking:
		return "working"
	case SpacePreview:
		return "preview"
	case SpaceImage:
		return "image"
	default:
		return "unknown"
	}
}

// Point represents a 2D coordinate in pixel space.
//
// Coordinates are floating point because simplification and rectification
// produce sub-pixel positions. The containing structure declares which Space
// the point belongs to.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Distance returns the Euclidean distance to q.
func (p Point) Distance(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Transform is an explicit linear mapping between two coordinate spaces.
//
// X and Y scale independently because downsampling to the working resolution
// may not preserve the source aspect ratio.
type Transform struct {
	ScaleX float64
	ScaleY float64
}

// NewTransform builds the transform that maps points from a srcW×srcH space
// into a dstW×dstH space.
func NewTransform(srcW, srcH, dstW, dstH int) Transform {
	if srcW <= 0 || srcH <= 0 {
		return Transform{ScaleX: 1, ScaleY: 1}
	}
	return Transform{
		ScaleX: float64(dstW) / float64(srcW),
		ScaleY: float64(dstH) / float64(srcH),
	}
}

// Apply maps a single point into the destination space.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X * t.ScaleX, Y: p.Y * t.ScaleY}
}

// ApplyAll maps a slice of points into the destination space.
// The input slice is not modified.
func (t Transform) ApplyAll(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = t.Apply(p)
	}
	return out
}

// PolygonArea returns the absolute area of a closed polygon using the
// shoelace formula. The polygon is implicitly closed (last vertex connects
// back to the first).
func PolygonArea(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the closed perimeter length of a polygon.
func Perimeter(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].Distance(pts[j])
	}
	return sum
}

// InteriorAngle returns the interior angle at vertex b of the path a-b-c,
// in radians, computed from the dot product of the two edge vectors.
//
// Degenerate (zero-length) edges yield an angle of 0.
func InteriorAngle(a, b, c Point) float64 {
	v1x, v1y := a.X-b.X, a.Y-b.Y
	v2x, v2y := c.X-b.X, c.Y-b.Y

	len1 := math.Sqrt(v1x*v1x + v1y*v1y)
	len2 := math.Sqrt(v2x*v2x + v2y*v2y)
	if len1 == 0 || len2 == 0 {
		return 0
	}

	cos := (v1x*v2x + v1y*v2y) / (len1 * len2)
	// Clamp against floating point drift before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

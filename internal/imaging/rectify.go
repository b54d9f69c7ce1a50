package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// RectifyResult carries a rectified document image and its derived geometry.
type RectifyResult struct {
	// Image is the upright rectified document.
	Image *image.NRGBA `json:"-"`

	// Width and Height are the derived output dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Projective reports whether the true homography mapping was used.
	// False means the quad was degenerate and the bilinear corner
	// interpolation fallback was applied instead.
	Projective bool `json:"projective"`
}

// Rectify maps the region of src bounded by an ordered quadrilateral
// (top-left, top-right, bottom-right, bottom-left, in src pixel space) to an
// upright rectangle.
//
// Output dimensions derive from the quad's edge lengths:
//
//	width  = max(|top edge|, |bottom edge|)
//	height = max(|left edge|, |right edge|)
//
// For each destination pixel the corresponding source coordinate is computed
// with a projective homography solved from the four corner correspondences,
// evaluated at the pixel center so the sampling grid spans the full source
// quad, and the source is sampled nearest-neighbor. If the homography solve
// is degenerate (collinear corners), bilinear interpolation of the corner
// positions is used instead; that fallback only approximates a perspective
// transform and distorts at sharp viewing angles.
//
// Corners must already be in the ordering produced by geometry.OrderCorners.
func Rectify(src image.Image, corners []geometry.Point) (*RectifyResult, error) {
	if len(corners) != 4 {
		return nil, fmt.Errorf("rectify: need exactly 4 corners, got %d", len(corners))
	}

	tl, tr, br, bl := corners[0], corners[1], corners[2], corners[3]

	width := int(math.Round(math.Max(tl.Distance(tr), bl.Distance(br))))
	height := int(math.Round(math.Max(tl.Distance(bl), tr.Distance(br))))
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("rectify: degenerate output size %dx%d", width, height)
	}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	bounds := src.Bounds()

	h, err := solveHomography(corners, width, height)
	projective := err == nil

	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			// Evaluate at the destination pixel center; sampling the integer
			// grid against corners at (width, height) would stop a pixel
			// short of the quad's far edges.
			cx := float64(dx) + 0.5
			cy := float64(dy) + 0.5

			var sx, sy float64
			if projective {
				sx, sy = h.apply(cx, cy)
			} else {
				// Bilinear interpolation of the corner positions.
				u := cx / float64(width)
				v := cy / float64(height)
				topX := tl.X + (tr.X-tl.X)*u
				topY := tl.Y + (tr.Y-tl.Y)*u
				botX := bl.X + (br.X-bl.X)*u
				botY := bl.Y + (br.Y-bl.Y)*u
				sx = topX + (botX-topX)*v
				sy = topY + (botY-topY)*v
			}

			px := clamp(int(math.Floor(sx))+bounds.Min.X, bounds.Min.X, bounds.Max.X-1)
			py := clamp(int(math.Floor(sy))+bounds.Min.Y, bounds.Min.Y, bounds.Max.Y-1)

			r, g, b, a := src.At(px, py).RGBA()
			i := out.PixOffset(dx, dy)
			out.Pix[i] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b >> 8)
			out.Pix[i+3] = uint8(a >> 8)
		}
	}

	return &RectifyResult{
		Image:      out,
		Width:      width,
		Height:     height,
		Projective: projective,
	}, nil
}

// homography is a 3×3 projective transform in row-major order with h[8]
// normalized to 1.
type homography [8]float64

// apply maps a destination coordinate to its source coordinate.
func (h homography) apply(x, y float64) (float64, float64) {
	w := h[6]*x + h[7]*y + 1
	if w == 0 {
		return 0, 0
	}
	sx := (h[0]*x + h[1]*y + h[2]) / w
	sy := (h[3]*x + h[4]*y + h[5]) / w
	return sx, sy
}

// solveHomography computes the projective transform that maps the upright
// destination rectangle (0,0)-(w,h) onto the source quadrilateral, using the
// standard 8-equation direct linear system solved by Gaussian elimination
// with partial pivoting.
func solveHomography(corners []geometry.Point, width, height int) (homography, error) {
	dst := []geometry.Point{
		{X: 0, Y: 0},
		{X: float64(width), Y: 0},
		{X: float64(width), Y: float64(height)},
		{X: 0, Y: float64(height)},
	}

	// Each correspondence (d -> s) contributes two rows:
	//   dx dy 1  0  0 0 -dx*sx -dy*sx | sx
	//   0  0  0 dx dy 1 -dx*sy -dy*sy | sy
	var m [8][9]float64
	for i := 0; i < 4; i++ {
		d, s := dst[i], corners[i]
		m[i*2] = [9]float64{d.X, d.Y, 1, 0, 0, 0, -d.X * s.X, -d.Y * s.X, s.X}
		m[i*2+1] = [9]float64{0, 0, 0, d.X, d.Y, 1, -d.X * s.Y, -d.Y * s.Y, s.Y}
	}

	for col := 0; col < 8; col++ {
		pivot := col
		for row := col + 1; row < 8; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < 1e-10 {
			return homography{}, fmt.Errorf("homography: singular system at column %d", col)
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := 0; row < 8; row++ {
			if row == col {
				continue
			}
			factor := m[row][col] / m[col][col]
			for k := col; k < 9; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	var h homography
	for i := 0; i < 8; i++ {
		h[i] = m[i][8] / m[i][i]
	}
	return h, nil
}

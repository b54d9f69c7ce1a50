package detection

import (
	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// Contour tracing bounds. The point cap bounds worst-case cost per contour;
// contours below the minimum length are discarded as noise.
const (
	MaxContourPoints = 1000
	MinContourPoints = 20

	// edgeJump is the minimum luminance difference to a 4-neighbor for a
	// white pixel to qualify as a contour seed or member.
	edgeJump = 64
)

// pixel is an integer raster coordinate used during tracing.
type pixel struct {
	x, y int
}

// traceContours walks a binarized luma plane and groups qualifying edge
// pixels into contours.
//
// A pixel qualifies when it is white (above the binarization midpoint) and
// at least one 4-connected neighbor differs in luminance by more than
// edgeJump. Tracing is a stack-based flood walk over 4-connected neighbors,
// expanding while unvisited qualifying pixels remain and the contour is
// below MaxContourPoints.
func traceContours(bin []byte, width, height int) [][]geometry.Point {
	visited := make([]bool, width*height)
	contours := make([][]geometry.Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if visited[idx] || !isEdgePixel(bin, width, height, x, y) {
				continue
			}

			contour := floodWalk(bin, visited, width, height, x, y)
			if len(contour) >= MinContourPoints {
				contours = append(contours, contour)
			}
		}
	}

	return contours
}

// isEdgePixel reports whether (x, y) is a white pixel with at least one
// 4-neighbor whose luminance differs by more than edgeJump.
func isEdgePixel(bin []byte, width, height, x, y int) bool {
	v := int(bin[y*width+x])
	if v < 128 {
		return false
	}

	neighbors := [4]pixel{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
	for _, n := range neighbors {
		if n.x < 0 || n.x >= width || n.y < 0 || n.y >= height {
			continue
		}
		diff := v - int(bin[n.y*width+n.x])
		if diff > edgeJump || diff < -edgeJump {
			return true
		}
	}
	return false
}

// floodWalk collects one contour starting at (startX, startY) using an
// explicit stack (no recursion, bounded depth).
func floodWalk(bin []byte, visited []bool, width, height, startX, startY int) []geometry.Point {
	contour := make([]geometry.Point, 0, 64)
	stack := []pixel{{startX, startY}}

	for len(stack) > 0 && len(contour) < MaxContourPoints {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.x < 0 || p.x >= width || p.y < 0 || p.y >= height {
			continue
		}
		idx := p.y*width + p.x
		if visited[idx] || !isEdgePixel(bin, width, height, p.x, p.y) {
			continue
		}

		visited[idx] = true
		contour = append(contour, geometry.Point{X: float64(p.x), Y: float64(p.y)})

		stack = append(stack,
			pixel{p.x - 1, p.y},
			pixel{p.x + 1, p.y},
			pixel{p.x, p.y - 1},
			pixel{p.x, p.y + 1},
		)
	}

	return contour
}

package detection

import (
	"context"
	"time"

	"github.com/ironsheep/docscan-engine/internal/camera"
	"github.com/ironsheep/docscan-engine/internal/geometry"
	"github.com/ironsheep/docscan-engine/internal/imaging"
)

// DefaultTimeout is the hard per-attempt budget for one frame. A timeout is
// treated as "no detection" for that frame, never as an error.
const DefaultTimeout = 150 * time.Millisecond

// DefaultConfidenceFloor gates which strategy result the chain accepts.
const DefaultConfidenceFloor = 0.3

// Detector locates a document boundary in a working frame. Implementations
// must be stateless and safe for reuse across frames.
type Detector interface {
	// Detect analyzes one frame. It returns NoDetection(), not an error,
	// when the scene contains no plausible document. Errors are reserved
	// for unreadable input.
	Detect(ctx context.Context, frame *camera.Frame) (Detection, error)
}

// Chain tries an ordered list of detectors until one clears the confidence
// floor. The final detector in DefaultChain always produces a result, so a
// chain never returns an empty detection for a readable frame.
type Chain struct {
	detectors []Detector
	floor     float64
}

// NewChain builds a chain over the given strategies with the given
// confidence floor.
func NewChain(floor float64, detectors ...Detector) *Chain {
	if floor <= 0 {
		floor = DefaultConfidenceFloor
	}
	return &Chain{detectors: detectors, floor: floor}
}

// DefaultChain is the production strategy order: contour tracing, then
// gradient-edge fitting, then the centered default.
func DefaultChain() *Chain {
	return NewChain(DefaultConfidenceFloor,
		&ContourDetector{},
		&EdgeDetector{},
		&CenterDetector{},
	)
}

// Detect runs the chain. The context deadline is the frame's hard timeout:
// when it expires the chain stops between stages and reports no detection.
func (c *Chain) Detect(ctx context.Context, frame *camera.Frame) Detection {
	start := time.Now()

	var fallback Detection
	for _, d := range c.detectors {
		if ctx.Err() != nil {
			return timed(NoDetection(), start)
		}

		result, err := d.Detect(ctx, frame)
		if err != nil {
			continue
		}
		if result.Found() && result.Confidence >= c.floor {
			return timed(result, start)
		}
		// Below the floor: remember the best sub-floor candidate in case
		// nothing clears it.
		if result.Found() && result.Confidence > fallback.Confidence {
			fallback = result
		}
	}

	if fallback.Found() {
		return timed(fallback, start)
	}
	return timed(NoDetection(), start)
}

func timed(d Detection, start time.Time) Detection {
	d.TimingMs = float64(time.Since(start).Microseconds()) / 1000
	return d
}

// ContourDetector is the primary strategy: blur, Otsu binarization, contour
// tracing, Douglas-Peucker simplification, and rectangle scoring.
type ContourDetector struct{}

// Detect implements Detector.
func (d *ContourDetector) Detect(ctx context.Context, frame *camera.Frame) (Detection, error) {
	if frame == nil || len(frame.Pix) == 0 {
		return NoDetection(), nil
	}

	luma := imaging.Grayscale(frame)
	blurred := imaging.Blur(luma, frame.Width, frame.Height)

	if ctx.Err() != nil {
		return NoDetection(), nil
	}

	threshold := imaging.OtsuThreshold(imaging.Histogram(blurred))
	bin := imaging.Binarize(blurred, threshold)

	contours := traceContours(bin, frame.Width, frame.Height)
	if ctx.Err() != nil {
		return NoDetection(), nil
	}

	corners, score := selectRectangle(contours, frame.Width, frame.Height)
	if corners == nil {
		return NoDetection(), nil
	}

	return Detection{
		Corners:    corners,
		Space:      frame.Space,
		Confidence: score,
		Method:     MethodContour,
	}, nil
}

// EdgeDetector is the weaker fallback: gradient-threshold edges grouped into
// contours, with the largest contour's bounding box taken as the candidate.
// It survives low-contrast scenes where global binarization washes out the
// document boundary.
type EdgeDetector struct{}

// gradientThreshold is the minimum luminance step for a gradient edge.
const gradientThreshold = 30

// Detect implements Detector.
func (d *EdgeDetector) Detect(ctx context.Context, frame *camera.Frame) (Detection, error) {
	if frame == nil || len(frame.Pix) == 0 {
		return NoDetection(), nil
	}

	luma := imaging.Grayscale(frame)
	w, h := frame.Width, frame.Height

	// Mark pixels whose horizontal or vertical gradient exceeds the step.
	edges := make([]byte, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := int(luma[y*w+x])
			dx := c - int(luma[y*w+x+1])
			dy := c - int(luma[(y+1)*w+x])
			if dx > gradientThreshold || dx < -gradientThreshold ||
				dy > gradientThreshold || dy < -gradientThreshold {
				edges[y*w+x] = 255
			}
		}
	}

	if ctx.Err() != nil {
		return NoDetection(), nil
	}

	contours := traceContours(edges, w, h)
	if len(contours) == 0 {
		return NoDetection(), nil
	}

	// Largest contour by point count wins.
	largest := contours[0]
	for _, c := range contours[1:] {
		if len(c) > len(largest) {
			largest = c
		}
	}

	minX, minY := float64(w), float64(h)
	maxX, maxY := 0.0, 0.0
	for _, p := range largest {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	boxW, boxH := maxX-minX, maxY-minY
	areaRatio := boxW * boxH / float64(w*h)
	if areaRatio < minAreaRatio || areaRatio > maxAreaRatio {
		return NoDetection(), nil
	}

	// Rectangularity: contour length against the box perimeter, as a crude
	// confidence. Capped below the contour detector's ceiling so a clean
	// contour result is always preferred.
	perimeter := 2 * (boxW + boxH)
	rectangularity := 1 - abs(float64(len(largest))-perimeter)/perimeter
	confidence := clampUnit(rectangularity) * 0.6

	return Detection{
		Corners: geometry.OrderCorners([]geometry.Point{
			{X: minX, Y: minY},
			{X: maxX, Y: minY},
			{X: maxX, Y: maxY},
			{X: minX, Y: maxY},
		}),
		Space:      frame.Space,
		Confidence: confidence,
		Method:     MethodEdge,
	}, nil
}

// CenterDetector is the terminal default: a centered rectangle covering 70%
// of the frame at a fixed low confidence, so the chain always has a guess to
// hand downstream.
type CenterDetector struct{}

// CenterConfidence is the fixed confidence of the default guess.
const CenterConfidence = 0.2

// Detect implements Detector.
func (d *CenterDetector) Detect(_ context.Context, frame *camera.Frame) (Detection, error) {
	if frame == nil || frame.Width == 0 || frame.Height == 0 {
		return NoDetection(), nil
	}

	insetX := float64(frame.Width) * 0.15
	insetY := float64(frame.Height) * 0.15
	w, h := float64(frame.Width), float64(frame.Height)

	return Detection{
		Corners: []geometry.Point{
			{X: insetX, Y: insetY},
			{X: w - insetX, Y: insetY},
			{X: w - insetX, Y: h - insetY},
			{X: insetX, Y: h - insetY},
		},
		Space:      frame.Space,
		Confidence: CenterConfidence,
		Method:     MethodCenter,
	}, nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

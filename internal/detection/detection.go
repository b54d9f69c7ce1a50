package detection

import (
	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// Method identifies which strategy produced a detection.
type Method string

const (
	// MethodContour is the primary contour-tracing detector.
	MethodContour Method = "contour"

	// MethodEdge is the gradient-edge fallback detector.
	MethodEdge Method = "edge"

	// MethodCenter is the fixed centered-rectangle default.
	MethodCenter Method = "center"

	// MethodNone marks the absence of a detection.
	MethodNone Method = "none"
)

// Detection is one document-boundary candidate for a frame.
//
// Corners, when present, are exactly 4 points ordered top-left, top-right,
// bottom-right, bottom-left in the declared Space. An empty corner list
// means "no detection".
type Detection struct {
	// Corners is the ordered document quadrilateral, or empty.
	Corners []geometry.Point `json:"corners"`

	// Space is the coordinate space the corners are expressed in.
	Space geometry.Space `json:"-"`

	// Confidence scores the candidate in [0,1]; 0 when no detection.
	Confidence float64 `json:"confidence"`

	// Method names the strategy that produced the candidate.
	Method Method `json:"method"`

	// TimingMs is the processing duration of the detection attempt.
	TimingMs float64 `json:"timing_ms"`

	// Skipped marks a frame that short-circuited the heavy path and reused
	// the previous detection.
	Skipped bool `json:"skipped"`
}

// NoDetection is the default result for unreadable frames, timeouts, and
// empty scenes.
func NoDetection() Detection {
	return Detection{Method: MethodNone}
}

// Found reports whether the detection carries a quadrilateral.
func (d Detection) Found() bool {
	return len(d.Corners) == 4
}

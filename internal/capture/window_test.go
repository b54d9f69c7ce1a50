package capture

import (
	"testing"

	"github.com/ironsheep/docscan-engine/internal/detection"
	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// det builds a detection with corners offset by (dx, dy) from a base quad.
func det(confidence, dx, dy float64) detection.Detection {
	return detection.Detection{
		Corners: []geometry.Point{
			{X: 30 + dx, Y: 20 + dy},
			{X: 130 + dx, Y: 20 + dy},
			{X: 130 + dx, Y: 100 + dy},
			{X: 30 + dx, Y: 100 + dy},
		},
		Confidence: confidence,
		Method:     detection.MethodContour,
	}
}

func TestStabilityWindow_Eviction(t *testing.T) {
	w := NewStabilityWindow()

	for i := 0; i < WindowCapacity+3; i++ {
		w.Add(det(float64(i)/10, 0, 0))
	}

	if w.Len() != WindowCapacity {
		t.Errorf("len = %d, want capacity %d", w.Len(), WindowCapacity)
	}

	// The latest entry must be the last inserted.
	latest, ok := w.Latest()
	if !ok {
		t.Fatal("Latest returned no entry")
	}
	wantConf := float64(WindowCapacity+2) / 10
	if latest.Confidence != wantConf {
		t.Errorf("latest confidence = %v, want %v", latest.Confidence, wantConf)
	}
}

func TestStabilityWindow_StableWhenStill(t *testing.T) {
	w := NewStabilityWindow()
	for i := 0; i < StableFrames; i++ {
		w.Add(det(0.9, float64(i), 0)) // 1px drift per frame
	}

	if !w.IsStable(0.6) {
		t.Error("still, confident detections should be stable")
	}
}

func TestStabilityWindow_TooFewFrames(t *testing.T) {
	w := NewStabilityWindow()
	w.Add(det(0.9, 0, 0))
	w.Add(det(0.9, 0, 0))

	if w.IsStable(0.6) {
		t.Error("stability requires at least StableFrames detections")
	}
}

func TestStabilityWindow_LowConfidenceBreaks(t *testing.T) {
	w := NewStabilityWindow()
	w.Add(det(0.9, 0, 0))
	w.Add(det(0.4, 0, 0)) // below floor
	w.Add(det(0.9, 0, 0))

	if w.IsStable(0.6) {
		t.Error("a low-confidence frame inside the window must break stability")
	}
}

func TestStabilityWindow_DisplacementBreaks(t *testing.T) {
	w := NewStabilityWindow()
	w.Add(det(0.9, 0, 0))
	w.Add(det(0.9, 20, 0)) // 20px jump, above the 15px gate
	w.Add(det(0.9, 20, 0))

	if w.IsStable(0.6) {
		t.Error("a 20px corner jump must break stability")
	}

	// The displacement gate is pairwise-consecutive: a slow 10px/frame
	// drift stays stable even though first-to-last exceeds the gate.
	w2 := NewStabilityWindow()
	w2.Add(det(0.9, 0, 0))
	w2.Add(det(0.9, 10, 0))
	w2.Add(det(0.9, 20, 0))

	if !w2.IsStable(0.6) {
		t.Error("pairwise displacement below the gate should be stable")
	}
}

func TestStabilityWindow_NoDetectionBreaks(t *testing.T) {
	w := NewStabilityWindow()
	w.Add(det(0.9, 0, 0))
	w.Add(det(0.9, 0, 0))
	w.Add(detection.NoDetection())

	if w.IsStable(0.6) {
		t.Error("an empty detection must break stability")
	}
}

func TestStabilityWindow_OlderFramesIgnored(t *testing.T) {
	// Only the last StableFrames matter; an old bad frame must not block.
	w := NewStabilityWindow()
	w.Add(detection.NoDetection())
	w.Add(det(0.9, 0, 0))
	w.Add(det(0.9, 0, 0))
	w.Add(det(0.9, 0, 0))

	if !w.IsStable(0.6) {
		t.Error("frames older than the stable span must not affect stability")
	}
}

func TestStabilityWindow_Clear(t *testing.T) {
	w := NewStabilityWindow()
	w.Add(det(0.9, 0, 0))
	w.Clear()

	if w.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", w.Len())
	}
	if _, ok := w.Latest(); ok {
		t.Error("Latest after clear should report no entry")
	}
}

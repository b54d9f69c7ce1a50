package capture

import (
	"github.com/ironsheep/docscan-engine/internal/detection"
)

// Stability gates.
const (
	// WindowCapacity is the number of recent detections retained.
	WindowCapacity = 5

	// StableFrames is how many consecutive detections must agree for the
	// window to count as stable.
	StableFrames = 3

	// MaxCornerDisplacement is the largest per-corner movement, in working
	// pixels, allowed between consecutive stable detections.
	MaxCornerDisplacement = 15.0
)

// StabilityWindow is a bounded FIFO of recent detections. Capacity is fixed;
// the oldest entry is evicted on insert. It carries no synchronization; the
// owning controller serializes access.
type StabilityWindow struct {
	entries []detection.Detection
}

// NewStabilityWindow creates an empty window with WindowCapacity slots.
func NewStabilityWindow() *StabilityWindow {
	return &StabilityWindow{entries: make([]detection.Detection, 0, WindowCapacity)}
}

// Add inserts a detection, evicting the oldest when full.
func (w *StabilityWindow) Add(d detection.Detection) {
	if len(w.entries) == WindowCapacity {
		copy(w.entries, w.entries[1:])
		w.entries = w.entries[:WindowCapacity-1]
	}
	w.entries = append(w.entries, d)
}

// Len returns the number of detections held.
func (w *StabilityWindow) Len() int { return len(w.entries) }

// Latest returns the most recent detection and whether one exists.
func (w *StabilityWindow) Latest() (detection.Detection, bool) {
	if len(w.entries) == 0 {
		return detection.Detection{}, false
	}
	return w.entries[len(w.entries)-1], true
}

// Clear drops all entries.
func (w *StabilityWindow) Clear() {
	w.entries = w.entries[:0]
}

// IsStable reports whether the last StableFrames detections all clear
// minConfidence and show pairwise per-corner displacement at or below
// MaxCornerDisplacement between consecutive frames.
func (w *StabilityWindow) IsStable(minConfidence float64) bool {
	if len(w.entries) < StableFrames {
		return false
	}

	recent := w.entries[len(w.entries)-StableFrames:]
	for _, d := range recent {
		if !d.Found() || d.Confidence < minConfidence {
			return false
		}
	}

	for i := 1; i < len(recent); i++ {
		prev, cur := recent[i-1], recent[i]
		for c := 0; c < 4; c++ {
			if prev.Corners[c].Distance(cur.Corners[c]) > MaxCornerDisplacement {
				return false
			}
		}
	}
	return true
}

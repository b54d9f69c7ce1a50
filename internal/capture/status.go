package capture

// Phase is the auto-capture lifecycle state. Exactly one phase is active per
// session; the controller owns all transitions.
type Phase int

const (
	// PhaseDetecting scans frames for a stable document.
	PhaseDetecting Phase = iota

	// PhaseCountingDown runs the pre-capture countdown.
	PhaseCountingDown

	// PhaseCapturing waits for the capture collaborator to finish.
	PhaseCapturing

	// PhaseCompleted holds the post-capture cooldown.
	PhaseCompleted
)

// String returns the phase name used in logs and status reports.
func (p Phase) String() string {
	switch p {
	case PhaseDetecting:
		return "detecting"
	case PhaseCountingDown:
		return "counting_down"
	case PhaseCapturing:
		return "capturing"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Status is the coarse auto-capture condition derived from current
// confidence and stability, for host status messaging.
type Status int

const (
	// StatusDisabled means auto-capture is turned off in settings.
	StatusDisabled Status = iota

	// StatusSearching means no plausible document is in frame.
	StatusSearching

	// StatusLowConfidence means a candidate exists below the confidence
	// floor.
	StatusLowConfidence

	// StatusStabilizing means confidence is good but the detection has not
	// been still long enough.
	StatusStabilizing

	// StatusReady means the stable condition holds and capture is imminent.
	StatusReady
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusSearching:
		return "searching"
	case StatusLowConfidence:
		return "low_confidence"
	case StatusStabilizing:
		return "stabilizing"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Guidance returns the user-facing hint for a status. Raw error text never
// reaches the user; this string is the only failure surface.
func (s Status) Guidance() string {
	switch s {
	case StatusDisabled:
		return ""
	case StatusSearching:
		return "Position document in frame"
	case StatusLowConfidence:
		return "Improve lighting"
	case StatusStabilizing:
		return "Hold steady"
	case StatusReady:
		return "Capturing..."
	default:
		return ""
	}
}

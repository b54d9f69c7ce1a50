// Package config holds the engine configuration and the capture settings
// supplied by the host application. Zero values are filled with defaults so
// callers can construct partial configs.
package config

import (
	"os"
	"strconv"
	"time"
)

// Engine defaults.
const (
	DefaultWorkingWidth  = 160
	DefaultWorkingHeight = 120
	DefaultSkipInterval  = 3
	DefaultPoolCapacity  = 5

	DefaultDetectTimeout   = 150 * time.Millisecond
	DefaultConfidenceFloor = 0.3

	DefaultCountdown    = 3 * time.Second
	DefaultTickInterval = 100 * time.Millisecond
	DefaultCooldown     = time.Second
)

// Capture settings defaults.
const (
	DefaultMinConfidence  = 0.6
	DefaultStableDuration = 2 * time.Second
)

// Config tunes the streaming engine. The zero value is usable after
// WithDefaults.
type Config struct {
	// WorkingWidth and WorkingHeight set the streaming analysis resolution.
	WorkingWidth  int
	WorkingHeight int

	// SkipInterval processes every Nth delivered frame.
	SkipInterval int

	// PoolCapacity is the number of working buffers retained by the pool.
	PoolCapacity int

	// DetectTimeout is the hard per-frame detection budget.
	DetectTimeout time.Duration

	// ConfidenceFloor gates which detector-chain result is accepted.
	ConfidenceFloor float64

	// Countdown is the auto-capture countdown duration.
	Countdown time.Duration

	// TickInterval is the period of the countdown/cooldown clock.
	TickInterval time.Duration

	// Cooldown is the pause after a completed capture before detection
	// resumes, so the same frame cannot immediately re-trigger.
	Cooldown time.Duration
}

// WithDefaults returns a copy with every zero field filled in.
func (c Config) WithDefaults() Config {
	if c.WorkingWidth <= 0 {
		c.WorkingWidth = DefaultWorkingWidth
	}
	if c.WorkingHeight <= 0 {
		c.WorkingHeight = DefaultWorkingHeight
	}
	if c.SkipInterval <= 0 {
		c.SkipInterval = DefaultSkipInterval
	}
	if c.PoolCapacity <= 0 {
		c.PoolCapacity = DefaultPoolCapacity
	}
	if c.DetectTimeout <= 0 {
		c.DetectTimeout = DefaultDetectTimeout
	}
	if c.ConfidenceFloor <= 0 {
		c.ConfidenceFloor = DefaultConfidenceFloor
	}
	if c.Countdown <= 0 {
		c.Countdown = DefaultCountdown
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.Cooldown <= 0 {
		c.Cooldown = DefaultCooldown
	}
	return c
}

// FromEnv applies DOCSCAN_* environment overrides on top of c.
// Unparsable values are ignored.
func (c Config) FromEnv() Config {
	if v, ok := envInt("DOCSCAN_SKIP_INTERVAL"); ok {
		c.SkipInterval = v
	}
	if v, ok := envInt("DOCSCAN_POOL_CAPACITY"); ok {
		c.PoolCapacity = v
	}
	if v, ok := envDuration("DOCSCAN_DETECT_TIMEOUT"); ok {
		c.DetectTimeout = v
	}
	if v, ok := envDuration("DOCSCAN_COUNTDOWN"); ok {
		c.Countdown = v
	}
	return c
}

// CaptureSettings is the immutable per-session configuration supplied by the
// host UI layer.
type CaptureSettings struct {
	// Enabled turns the auto-capture state machine on.
	Enabled bool

	// MinConfidence is the detection confidence floor for stability.
	MinConfidence float64

	// StableDuration is how long detections must stay stable before the
	// countdown starts.
	StableDuration time.Duration

	// PreferredType optionally pins the document type used for quality
	// gates ("a4", "card", "receipt"; empty classifies automatically).
	PreferredType string
}

// WithDefaults returns a copy with zero fields filled in. Enabled is left
// as-is; false is a valid setting.
func (s CaptureSettings) WithDefaults() CaptureSettings {
	if s.MinConfidence <= 0 {
		s.MinConfidence = DefaultMinConfidence
	}
	if s.StableDuration <= 0 {
		s.StableDuration = DefaultStableDuration
	}
	return s
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

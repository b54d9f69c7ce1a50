package config

import (
	"testing"
	"time"
)

func TestConfig_WithDefaults(t *testing.T) {
	c := Config{}.WithDefaults()

	if c.WorkingWidth != DefaultWorkingWidth || c.WorkingHeight != DefaultWorkingHeight {
		t.Errorf("working size = %dx%d, want %dx%d", c.WorkingWidth, c.WorkingHeight, DefaultWorkingWidth, DefaultWorkingHeight)
	}
	if c.SkipInterval != DefaultSkipInterval {
		t.Errorf("skip interval = %d, want %d", c.SkipInterval, DefaultSkipInterval)
	}
	if c.PoolCapacity != DefaultPoolCapacity {
		t.Errorf("pool capacity = %d, want %d", c.PoolCapacity, DefaultPoolCapacity)
	}
	if c.DetectTimeout != DefaultDetectTimeout {
		t.Errorf("detect timeout = %v, want %v", c.DetectTimeout, DefaultDetectTimeout)
	}
	if c.ConfidenceFloor != DefaultConfidenceFloor {
		t.Errorf("confidence floor = %v, want %v", c.ConfidenceFloor, DefaultConfidenceFloor)
	}
	if c.Countdown != DefaultCountdown || c.TickInterval != DefaultTickInterval || c.Cooldown != DefaultCooldown {
		t.Errorf("timers = %v/%v/%v, want defaults", c.Countdown, c.TickInterval, c.Cooldown)
	}
}

func TestConfig_WithDefaultsKeepsExplicitValues(t *testing.T) {
	c := Config{
		WorkingWidth:  320,
		WorkingHeight: 240,
		SkipInterval:  1,
		DetectTimeout: 50 * time.Millisecond,
	}.WithDefaults()

	if c.WorkingWidth != 320 || c.WorkingHeight != 240 {
		t.Errorf("working size = %dx%d, want 320x240", c.WorkingWidth, c.WorkingHeight)
	}
	if c.SkipInterval != 1 {
		t.Errorf("skip interval = %d, want 1", c.SkipInterval)
	}
	if c.DetectTimeout != 50*time.Millisecond {
		t.Errorf("detect timeout = %v, want 50ms", c.DetectTimeout)
	}
	// Untouched fields still get defaults.
	if c.PoolCapacity != DefaultPoolCapacity {
		t.Errorf("pool capacity = %d, want default", c.PoolCapacity)
	}
}

func TestConfig_FromEnv(t *testing.T) {
	t.Setenv("DOCSCAN_SKIP_INTERVAL", "5")
	t.Setenv("DOCSCAN_DETECT_TIMEOUT", "250ms")
	t.Setenv("DOCSCAN_COUNTDOWN", "1s")
	t.Setenv("DOCSCAN_POOL_CAPACITY", "not-a-number")

	c := Config{}.FromEnv().WithDefaults()

	if c.SkipInterval != 5 {
		t.Errorf("skip interval = %d, want 5 from env", c.SkipInterval)
	}
	if c.DetectTimeout != 250*time.Millisecond {
		t.Errorf("detect timeout = %v, want 250ms from env", c.DetectTimeout)
	}
	if c.Countdown != time.Second {
		t.Errorf("countdown = %v, want 1s from env", c.Countdown)
	}
	// Unparsable values fall through to the default.
	if c.PoolCapacity != DefaultPoolCapacity {
		t.Errorf("pool capacity = %d, want default for bad env value", c.PoolCapacity)
	}
}

func TestCaptureSettings_WithDefaults(t *testing.T) {
	s := CaptureSettings{}.WithDefaults()

	if s.Enabled {
		t.Error("Enabled must stay false unless set")
	}
	if s.MinConfidence != DefaultMinConfidence {
		t.Errorf("min confidence = %v, want %v", s.MinConfidence, DefaultMinConfidence)
	}
	if s.StableDuration != DefaultStableDuration {
		t.Errorf("stable duration = %v, want %v", s.StableDuration, DefaultStableDuration)
	}

	pinned := CaptureSettings{Enabled: true, MinConfidence: 0.8, PreferredType: "receipt"}.WithDefaults()
	if !pinned.Enabled || pinned.MinConfidence != 0.8 || pinned.PreferredType != "receipt" {
		t.Errorf("explicit settings were overwritten: %+v", pinned)
	}
}

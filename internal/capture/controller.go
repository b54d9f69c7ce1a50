package capture

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/docscan-engine/internal/camera"
	"github.com/ironsheep/docscan-engine/internal/config"
	"github.com/ironsheep/docscan-engine/internal/detection"
	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// DetectionUpdate is the per-frame result pushed to the host for overlay and
// status rendering. Corners are in preview space.
type DetectionUpdate struct {
	Corners          []geometry.Point `json:"corners"`
	Confidence       float64          `json:"confidence"`
	Method           detection.Method `json:"method"`
	TimingMs         float64          `json:"timing_ms"`
	Skipped          bool             `json:"skipped"`
	Phase            Phase            `json:"-"`
	Status           Status           `json:"-"`
	CountdownSeconds float64          `json:"countdown_seconds"`
	Guidance         string           `json:"guidance"`
}

// Event is the one-shot auto-capture notification emitted when the countdown
// completes and the capture collaborator returns a still.
type Event struct {
	// SessionID identifies the capture session that produced the still.
	SessionID string

	// Path is the still-image file path produced by the capture trigger.
	Path string

	// Timestamp is when the capture completed.
	Timestamp time.Time
}

// Callbacks are the host-supplied hooks. All are optional; nil hooks are
// skipped. Hooks are invoked without controller locks held but from engine
// goroutines, so they must return promptly.
type Callbacks struct {
	// OnUpdate receives one DetectionUpdate per delivered frame.
	OnUpdate func(DetectionUpdate)

	// OnCapture receives the one-shot auto-capture event.
	OnCapture func(Event)

	// OnFeedback fires when the countdown completes, for haptic-style
	// feedback in the host UI.
	OnFeedback func()
}

// Controller owns all cross-frame state: the stability window, the capture
// phase, and the countdown/cooldown timers. Frame delivery, the processing
// worker, and the periodic clock all funnel their mutations through one
// mutex, keeping transitions strictly serialized.
type Controller struct {
	cfg      config.Config
	settings config.CaptureSettings

	chain   *detection.Chain
	pool    *camera.BufferPool
	down    *camera.Downsampler
	pipe    *pipeline
	trigger func() (string, error)
	hooks   Callbacks
	src     camera.Source

	mu          sync.Mutex
	phase       Phase
	countdown   time.Duration
	cooldown    time.Duration
	stableSince time.Time
	window      *StabilityWindow
	last        detection.Detection
	toPreview   geometry.Transform
	sessionID   string
	closed      bool
	started     bool

	done chan struct{}
	wg   sync.WaitGroup
	now  func() time.Time
}

// New builds a controller. The trigger is the capture collaborator: it takes
// the full-resolution still and returns its file path. A nil trigger is
// allowed when the controller is driven through Run, which substitutes the
// source's Capture method.
func New(cfg config.Config, settings config.CaptureSettings, trigger func() (string, error), hooks Callbacks) *Controller {
	cfg = cfg.WithDefaults()
	settings = settings.WithDefaults()

	chain := detection.NewChain(cfg.ConfidenceFloor,
		&detection.ContourDetector{},
		&detection.EdgeDetector{},
		&detection.CenterDetector{},
	)

	return &Controller{
		cfg:       cfg,
		settings:  settings,
		chain:     chain,
		pool:      camera.NewBufferPool(cfg.WorkingWidth, cfg.WorkingHeight, camera.FormatGray, cfg.PoolCapacity),
		down:      camera.NewDownsampler(cfg.SkipInterval),
		pipe:      newPipeline(),
		trigger:   trigger,
		hooks:     hooks,
		window:    NewStabilityWindow(),
		phase:     PhaseDetecting,
		toPreview: geometry.Transform{ScaleX: 1, ScaleY: 1},
		done:      make(chan struct{}),
		now:       time.Now,
	}
}

// Start launches the processing worker and the periodic clock. It is not
// idempotent; call it exactly once.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.wg.Add(2)
	go c.runWorker()
	go c.runClock()
}

// Run wires a frame source into the controller and starts it: the source's
// delivery callback feeds HandleFrame, and if New received a nil trigger the
// source's Capture method becomes the capture trigger. Stop closes the
// source.
func (c *Controller) Run(src camera.Source) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("capture: controller stopped")
	}
	if c.trigger == nil {
		c.trigger = src.Capture
	}
	c.src = src
	c.mu.Unlock()

	if err := src.Frames(c.HandleFrame); err != nil {
		return fmt.Errorf("capture: register frame callback: %w", err)
	}
	c.Start()
	return nil
}

// HandleFrame is the sensor delivery callback. It must be wired as the
// single frame callback of the camera source; it never blocks and never
// panics past its own boundary.
//
// Every SkipInterval-th frame is downsampled and offered to the worker; the
// rest short-circuit and republish the last detection tagged as skipped. A
// frame arriving while one is already in flight is dropped.
func (c *Controller) HandleFrame(raw camera.RawFrame) {
	defer func() {
		// A fault here would stall the entire camera stream; log and drop
		// the frame instead.
		if r := recover(); r != nil {
			log.Printf("[Capture] frame handler panic recovered: %v", r)
		}
	}()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	pw, ph := raw.PreviewWidth, raw.PreviewHeight
	if pw <= 0 || ph <= 0 {
		pw, ph = raw.Width, raw.Height
	}
	c.toPreview = geometry.NewTransform(c.cfg.WorkingWidth, c.cfg.WorkingHeight, pw, ph)

	admit := c.down.Admit()
	if !admit {
		update := c.updateLocked(c.last, true)
		c.mu.Unlock()
		c.emitUpdate(update)
		return
	}
	c.mu.Unlock()

	frame := c.pool.Checkout()
	c.down.Downsample(raw, frame)

	if !c.pipe.offer(frame) {
		// Worker busy: drop, never queue.
		c.pool.Return(frame)
	}
}

// handleDetection folds one detector result into the state machine. Called
// from the worker goroutine only.
func (c *Controller) handleDetection(det detection.Detection) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.last = det
	c.window.Add(det)

	stable := det.Found() &&
		det.Confidence >= c.settings.MinConfidence &&
		c.window.IsStable(c.settings.MinConfidence)

	if stable {
		if c.stableSince.IsZero() {
			c.stableSince = c.now()
		}
	} else {
		// Any violating frame resets the held-stable clock.
		c.stableSince = time.Time{}
	}

	switch c.phase {
	case PhaseDetecting:
		held := !c.stableSince.IsZero() && c.now().Sub(c.stableSince) >= c.settings.StableDuration
		if c.settings.Enabled && stable && held {
			c.phase = PhaseCountingDown
			c.countdown = c.cfg.Countdown
			c.sessionID = uuid.NewString()
			log.Printf("[Capture] stable for %v, counting down (session %s)", c.settings.StableDuration, c.sessionID)
		}
	case PhaseCountingDown:
		if !stable {
			c.phase = PhaseDetecting
			c.countdown = 0
			log.Printf("[Capture] stability lost, countdown cancelled")
		}
	}

	update := c.updateLocked(det, false)
	c.mu.Unlock()

	c.emitUpdate(update)
}

// runClock drives the countdown and cooldown timers on a periodic tick,
// independent of frame arrival.
func (c *Controller) runClock() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.tick(c.cfg.TickInterval)
		}
	}
}

func (c *Controller) tick(dt time.Duration) {
	c.mu.Lock()

	switch c.phase {
	case PhaseCountingDown:
		c.countdown -= dt
		if c.countdown <= 0 {
			c.countdown = 0
			c.phase = PhaseCapturing
			session := c.sessionID
			c.mu.Unlock()

			if c.hooks.OnFeedback != nil {
				c.hooks.OnFeedback()
			}
			go c.doCapture(session)
			return
		}
	case PhaseCompleted:
		c.cooldown -= dt
		if c.cooldown <= 0 {
			c.cooldown = 0
			c.phase = PhaseDetecting
			c.stableSince = time.Time{}
			c.window.Clear()
		}
	}

	c.mu.Unlock()
}

// doCapture invokes the capture collaborator off the clock goroutine and
// completes the cycle.
func (c *Controller) doCapture(session string) {
	c.mu.Lock()
	trigger := c.trigger
	c.mu.Unlock()

	var path string
	err := fmt.Errorf("no capture trigger configured")
	if trigger != nil {
		path, err = trigger()
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseCompleted
	c.cooldown = c.cfg.Cooldown
	c.stableSince = time.Time{}
	c.mu.Unlock()

	if err != nil {
		// The cycle still completes; the host sees the status string, not
		// the error.
		log.Printf("[Capture] capture trigger failed: %v", err)
		return
	}

	log.Printf("[Capture] captured %s (session %s)", path, session)
	if c.hooks.OnCapture != nil {
		c.hooks.OnCapture(Event{SessionID: session, Path: path, Timestamp: c.now()})
	}
}

// Stop cancels any pending countdown, resets the phase, releases pending
// buffers, and discards in-flight results. Safe to call at any time,
// including mid-frame-processing, and idempotent.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	started := c.started
	src := c.src
	c.phase = PhaseDetecting
	c.countdown = 0
	c.stableSince = time.Time{}
	c.mu.Unlock()

	if src != nil {
		if err := src.Close(); err != nil {
			log.Printf("[Capture] source close: %v", err)
		}
	}
	if pending := c.pipe.close(); pending != nil {
		c.pool.Return(pending)
	}
	if started {
		close(c.done)
		c.wg.Wait()
	}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// CountdownSeconds returns the remaining countdown, 0 outside
// PhaseCountingDown.
func (c *Controller) CountdownSeconds() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseCountingDown {
		return 0
	}
	return c.countdown.Seconds()
}

// Status derives the coarse auto-capture condition for status messaging.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Controller) statusLocked() Status {
	if !c.settings.Enabled {
		return StatusDisabled
	}
	if c.phase == PhaseCountingDown || c.phase == PhaseCapturing {
		return StatusReady
	}
	if !c.last.Found() {
		return StatusSearching
	}
	if c.last.Confidence < c.settings.MinConfidence {
		return StatusLowConfidence
	}
	if c.stableSince.IsZero() || c.now().Sub(c.stableSince) < c.settings.StableDuration {
		return StatusStabilizing
	}
	return StatusReady
}

// Stats is a snapshot of engine counters.
type Stats struct {
	FramesSeen uint64           `json:"frames_seen"`
	Processed  uint64           `json:"processed"`
	Dropped    uint64           `json:"dropped"`
	Pool       camera.PoolStats `json:"pool"`
}

// EngineStats returns a snapshot of frame and pool counters.
func (c *Controller) EngineStats() Stats {
	dropped, processed := c.pipe.stats()
	return Stats{
		FramesSeen: c.down.FrameCount(),
		Processed:  processed,
		Dropped:    dropped,
		Pool:       c.pool.Stats(),
	}
}

// updateLocked builds the host-facing update snapshot. Caller holds c.mu.
func (c *Controller) updateLocked(det detection.Detection, skipped bool) DetectionUpdate {
	status := c.statusLocked()
	countdown := 0.0
	if c.phase == PhaseCountingDown {
		countdown = c.countdown.Seconds()
	}

	return DetectionUpdate{
		Corners:          c.toPreview.ApplyAll(det.Corners),
		Confidence:       det.Confidence,
		Method:           det.Method,
		TimingMs:         det.TimingMs,
		Skipped:          skipped,
		Phase:            c.phase,
		Status:           status,
		CountdownSeconds: countdown,
		Guidance:         status.Guidance(),
	}
}

func (c *Controller) emitUpdate(u DetectionUpdate) {
	if c.hooks.OnUpdate != nil {
		c.hooks.OnUpdate(u)
	}
}

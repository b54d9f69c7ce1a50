// Package capture implements the auto-capture state machine and the
// streaming pipeline around it.
//
// # Lifecycle
//
// The phase cycle is
//
//	Detecting → CountingDown → Capturing → Completed → Detecting
//
// with CountingDown → Detecting as the cancellation edge when stability is
// lost mid-countdown. The countdown starts only after the most recent
// detection clears the configured confidence floor and the last three
// detections have shown at most 15px of per-corner movement continuously for
// the configured stable duration. After a capture completes, a cooldown
// keeps the machine in Completed so the same frame cannot immediately
// re-trigger.
//
// # Concurrency
//
// Frames arrive on the sensor delivery goroutine, detection runs on a single
// worker, and the countdown/cooldown timers run on a periodic clock
// goroutine. All three funnel their state mutations through the controller's
// mutex: the controller is the single owner of phase, window, and timer
// state. The hand-off between delivery and worker is a single-slot mailbox:
// a frame arriving while one is in flight is dropped, never queued.
package capture

package capture

import (
	"context"
	"sync"

	"github.com/ironsheep/docscan-engine/internal/camera"
)

// pipeline is the single-slot hand-off between the frame delivery callback
// and the processing worker. At most one frame is in flight through the
// heavy path; a frame arriving while the slot is occupied is dropped, not
// queued, to bound memory and latency.
//
// The slot holds a buffer checked out from the pool; ownership passes to the
// worker on take and back to the pool when processing ends. Closing the
// pipeline wakes the worker, which drains and returns any pending buffer.
type pipeline struct {
	mu     sync.Mutex
	cond   *sync.Cond
	slot   *camera.Frame
	closed bool

	dropped   uint64
	processed uint64
}

func newPipeline() *pipeline {
	p := &pipeline{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// offer hands a frame to the worker. Returns false (caller keeps ownership)
// when the worker is busy or the pipeline is closed.
func (p *pipeline) offer(f *camera.Frame) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.slot != nil {
		p.dropped++
		return false
	}
	p.slot = f
	p.cond.Signal()
	return true
}

// take blocks until a frame is available or the pipeline closes. A nil
// return means shutdown.
func (p *pipeline) take() *camera.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.slot == nil && !p.closed {
		p.cond.Wait()
	}
	if p.slot == nil {
		return nil
	}
	f := p.slot
	p.slot = nil
	p.processed++
	return f
}

// close shuts the pipeline down and returns any undelivered frame so the
// caller can release it back to the pool.
func (p *pipeline) close() *camera.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	f := p.slot
	p.slot = nil
	p.cond.Broadcast()
	return f
}

func (p *pipeline) stats() (dropped, processed uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped, p.processed
}

// runWorker is the processing loop: it owns exactly one in-flight frame at a
// time, runs the detector chain under the per-frame timeout, and always
// returns the buffer to the pool before delivering the result.
func (c *Controller) runWorker() {
	defer c.wg.Done()

	for {
		frame := c.pipe.take()
		if frame == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.DetectTimeout)
		det := c.chain.Detect(ctx, frame)
		cancel()

		c.pool.Return(frame)

		// handleDetection discards the result if the controller was
		// disposed while this frame was in flight; the buffer was still
		// returned above either way.
		c.handleDetection(det)
	}
}

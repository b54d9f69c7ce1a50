package camera

import (
	"log"
	"sync"
	"time"

	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// DefaultPoolCapacity is the number of working buffers a pool retains.
const DefaultPoolCapacity = 5

// BufferPool is a fixed-capacity pool of working-resolution frames.
//
// Checkout returns a pooled frame when one is free and allocates transiently
// on a miss; a miss is logged but never fails the frame. Returned buffers are
// zero-filled before re-entering the pool so a stale frame can never leak
// into the next detection. All methods are safe for concurrent use.
type BufferPool struct {
	mu       sync.Mutex
	free     []*Frame
	capacity int

	width  int
	height int
	format PixelFormat

	allocations uint64
	misses      uint64
}

// PoolStats is a snapshot of pool counters.
type PoolStats struct {
	// Allocations is the lifetime number of buffers allocated.
	Allocations uint64 `json:"allocations"`

	// Misses counts checkouts that found no pooled buffer free.
	Misses uint64 `json:"misses"`

	// Free is the number of buffers currently available.
	Free int `json:"free"`

	// Capacity is the configured pool size.
	Capacity int `json:"capacity"`
}

// NewBufferPool creates a pool of working buffers of the given geometry.
// A capacity <= 0 falls back to DefaultPoolCapacity.
func NewBufferPool(width, height int, format PixelFormat, capacity int) *BufferPool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &BufferPool{
		capacity: capacity,
		width:    width,
		height:   height,
		format:   format,
	}
}

// Checkout hands out a frame buffer. The caller owns the frame until it calls
// Return; exactly one in-flight task may hold a given buffer.
func (p *BufferPool) Checkout() *Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		f := p.free[n-1]
		p.free = p.free[:n-1]
		return f
	}

	p.misses++
	p.allocations++
	if p.allocations > uint64(p.capacity) {
		log.Printf("[Pool] miss: growing beyond capacity %d (allocation #%d)", p.capacity, p.allocations)
	}
	return &Frame{
		Pix:    make([]byte, p.width*p.height*p.format.BytesPerPixel()),
		Width:  p.width,
		Height: p.height,
		Format: p.format,
		Space:  geometry.SpaceWorking,
	}
}

// Return gives a buffer back to the pool. The buffer is zero-filled first.
// Frames beyond capacity are dropped for the garbage collector.
func (p *BufferPool) Return(f *Frame) {
	if f == nil {
		return
	}
	for i := range f.Pix {
		f.Pix[i] = 0
	}
	f.Seq = 0
	f.Timestamp = time.Time{}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) < p.capacity {
		p.free = append(p.free, f)
	}
}

// Stats returns a snapshot of the pool counters.
func (p *BufferPool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		Allocations: p.allocations,
		Misses:      p.misses,
		Free:        len(p.free),
		Capacity:    p.capacity,
	}
}

package camera

import "testing"

func TestBufferPool_ReuseWithinCapacity(t *testing.T) {
	pool := NewBufferPool(StreamWidth, StreamHeight, FormatGray, 5)

	// Sequential checkout/return cycles must keep reusing one buffer.
	for i := 0; i < 4; i++ {
		f := pool.Checkout()
		if f == nil {
			t.Fatal("Checkout returned nil")
		}
		pool.Return(f)
	}

	stats := pool.Stats()
	if stats.Allocations != 1 {
		t.Errorf("allocations = %d, want 1", stats.Allocations)
	}
}

func TestBufferPool_GrowthBeyondCapacity(t *testing.T) {
	const capacity = 3
	const held = 5
	pool := NewBufferPool(StreamWidth, StreamHeight, FormatGray, capacity)

	// Hold more buffers than the pool can supply.
	frames := make([]*Frame, held)
	for i := range frames {
		frames[i] = pool.Checkout()
	}

	stats := pool.Stats()
	if stats.Allocations != held {
		t.Errorf("allocations = %d, want %d", stats.Allocations, held)
	}

	// Returning all of them keeps only capacity buffers pooled.
	for _, f := range frames {
		pool.Return(f)
	}
	stats = pool.Stats()
	if stats.Free != capacity {
		t.Errorf("free after return = %d, want %d", stats.Free, capacity)
	}
}

func TestBufferPool_ZeroFillOnReturn(t *testing.T) {
	pool := NewBufferPool(4, 4, FormatGray, 2)

	f := pool.Checkout()
	for i := range f.Pix {
		f.Pix[i] = 0xAB
	}
	pool.Return(f)

	g := pool.Checkout()
	for i, v := range g.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %#x after return, want 0", i, v)
		}
	}
}

func TestBufferPool_ReturnNil(t *testing.T) {
	pool := NewBufferPool(4, 4, FormatGray, 2)
	pool.Return(nil) // must not panic
}

func TestBufferPool_FrameGeometry(t *testing.T) {
	pool := NewBufferPool(StreamWidth, StreamHeight, FormatRGB, 2)
	f := pool.Checkout()

	want := StreamWidth * StreamHeight * 3
	if len(f.Pix) != want {
		t.Errorf("RGB buffer size = %d, want %d", len(f.Pix), want)
	}
	if f.Format != FormatRGB {
		t.Errorf("format = %v, want FormatRGB", f.Format)
	}
}

package camera

import (
	"time"

	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// PixelFormat identifies the layout of a working buffer.
type PixelFormat int

const (
	// FormatGray is a single luma byte per pixel.
	FormatGray PixelFormat = iota

	// FormatRGB is packed 8-bit R, G, B, three bytes per pixel.
	FormatRGB
)

// BytesPerPixel returns the per-pixel byte width of the format.
func (f PixelFormat) BytesPerPixel() int {
	if f == FormatRGB {
		return 3
	}
	return 1
}

// Default working resolutions. Streaming analysis runs at a very small size
// to hold the per-frame latency budget; the single-shot still path can afford
// more detail.
const (
	StreamWidth  = 160
	StreamHeight = 120

	StillWidth  = 640
	StillHeight = 480
)

// Frame is a timestamped working-resolution buffer.
//
// A Frame is owned exclusively by the acquisition stage until it is handed to
// a detection task, and must be returned to its pool once detection completes
// or times out. Pix must not be retained after the frame is returned.
type Frame struct {
	// Pix holds the pixel data, Width×Height×BytesPerPixel bytes, row-major.
	Pix []byte

	// Width and Height are the buffer dimensions in pixels.
	Width  int
	Height int

	// Format declares the pixel layout of Pix.
	Format PixelFormat

	// Space declares the coordinate space of the buffer.
	Space geometry.Space

	// Seq is a monotonically increasing frame sequence number.
	Seq uint64

	// Timestamp is the sensor capture time, not the processing time.
	Timestamp time.Time
}

// Gray returns the luminance at (x, y) in the 0–255 range.
// Out-of-bounds coordinates return mid-gray.
func (f *Frame) Gray(x, y int) uint8 {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return 128
	}
	if f.Format == FormatGray {
		return f.Pix[y*f.Width+x]
	}
	i := (y*f.Width + x) * 3
	r := int(f.Pix[i])
	g := int(f.Pix[i+1])
	b := int(f.Pix[i+2])
	// Integer BT.601 luma approximation.
	return uint8((299*r + 587*g + 114*b) / 1000)
}

// RawFrame is a planar luma/chroma sensor frame as delivered by the camera
// hardware callback. The chroma planes are subsampled 2:1 on both axes
// (YUV 4:2:0); UV may be nil for luma-only sources.
type RawFrame struct {
	Y []byte
	U []byte
	V []byte

	// YStride and UVStride are the row strides of the respective planes.
	YStride  int
	UVStride int

	// UVPixelStride is the byte distance between successive chroma samples
	// in a row (1 for planar, 2 for semi-planar sources).
	UVPixelStride int

	Width  int
	Height int

	// PreviewWidth and PreviewHeight declare the preview-space dimensions
	// used to scale detection corners for overlay rendering.
	PreviewWidth  int
	PreviewHeight int

	Timestamp time.Time
}

// Source delivers raw sensor frames. Implementations are provided by the
// host application (a hardware camera, a file simulator, a test fixture).
type Source interface {
	// Frames registers the delivery callback. The callback runs on the
	// source's own delivery goroutine and must never block or panic.
	Frames(fn func(RawFrame)) error

	// Capture asks the collaborator for a full-resolution still and returns
	// the path of the written image file.
	Capture() (string, error)

	// Close stops frame delivery.
	Close() error
}

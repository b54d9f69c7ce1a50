package camera

import "sync/atomic"

// Downsampler converts raw sensor frames into working-resolution buffers
// using fixed integer stride sampling. It also owns the frame-skip counter:
// only every Nth frame is selected for full processing, the rest
// short-circuit and reuse the previous detection.
//
// Admit and Downsample must be called from the single frame-delivery
// goroutine; FrameCount may be read concurrently.
type Downsampler struct {
	skipInterval int
	frameCount   atomic.Uint64
}

// DefaultSkipInterval processes every 3rd delivered frame.
const DefaultSkipInterval = 3

// NewDownsampler creates a downsampler with the given frame-skip interval.
// An interval <= 0 falls back to DefaultSkipInterval.
func NewDownsampler(skipInterval int) *Downsampler {
	if skipInterval <= 0 {
		skipInterval = DefaultSkipInterval
	}
	return &Downsampler{skipInterval: skipInterval}
}

// Admit advances the frame counter and reports whether this frame should be
// fully processed (true) or skipped (false).
func (d *Downsampler) Admit() bool {
	return d.frameCount.Add(1)%uint64(d.skipInterval) == 0
}

// FrameCount returns the number of frames seen so far.
func (d *Downsampler) FrameCount() uint64 { return d.frameCount.Load() }

// Downsample fills dst from raw using stride sampling. The destination
// geometry (size and format) comes from dst; raw pixels are sampled at
// stride = sourceDim / targetDim on each axis, with no interpolation.
//
// For FormatRGB destinations the chroma planes are converted with the
// integer BT.601 formula, clamped per channel. A source index that falls
// outside the provided planes yields a neutral mid-gray pixel rather than
// failing the whole frame.
func (d *Downsampler) Downsample(raw RawFrame, dst *Frame) {
	strideX := raw.Width / dst.Width
	strideY := raw.Height / dst.Height
	if strideX < 1 {
		strideX = 1
	}
	if strideY < 1 {
		strideY = 1
	}

	uvPixelStride := raw.UVPixelStride
	if uvPixelStride < 1 {
		uvPixelStride = 1
	}

	for dy := 0; dy < dst.Height; dy++ {
		sy := dy * strideY
		for dx := 0; dx < dst.Width; dx++ {
			sx := dx * strideX

			yIdx := sy*raw.YStride + sx
			if sx >= raw.Width || sy >= raw.Height || yIdx >= len(raw.Y) {
				// Neutral fallback instead of failing the frame.
				d.setGrayPixel(dst, dx, dy, 128, 128, 128)
				continue
			}
			luma := int(raw.Y[yIdx])

			if dst.Format == FormatGray {
				dst.Pix[dy*dst.Width+dx] = uint8(luma)
				continue
			}

			// Chroma planes are subsampled 2:1 on both axes.
			uvIdx := (sy/2)*raw.UVStride + (sx/2)*uvPixelStride
			if raw.U == nil || raw.V == nil || uvIdx >= len(raw.U) || uvIdx >= len(raw.V) {
				d.setGrayPixel(dst, dx, dy, uint8(luma), uint8(luma), uint8(luma))
				continue
			}
			u := int(raw.U[uvIdx]) - 128
			v := int(raw.V[uvIdx]) - 128

			// Integer BT.601 YUV -> RGB, clamped to [0,255].
			r := clamp255(luma + (1402*v)/1000)
			g := clamp255(luma - (344*u)/1000 - (714*v)/1000)
			b := clamp255(luma + (1772*u)/1000)

			i := (dy*dst.Width + dx) * 3
			dst.Pix[i] = r
			dst.Pix[i+1] = g
			dst.Pix[i+2] = b
		}
	}

	dst.Seq = d.frameCount.Load()
	dst.Timestamp = raw.Timestamp
}

func (d *Downsampler) setGrayPixel(dst *Frame, x, y int, r, g, b uint8) {
	if dst.Format == FormatGray {
		dst.Pix[y*dst.Width+x] = r
		return
	}
	i := (y*dst.Width + x) * 3
	dst.Pix[i] = r
	dst.Pix[i+1] = g
	dst.Pix[i+2] = b
}

func clamp255(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

package imaging

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/ironsheep/docscan-engine/internal/camera"
	"github.com/ironsheep/docscan-engine/internal/geometry"
)

// Grayscale converts a working frame to a luma plane using ITU-R BT.601
// weights. FormatGray frames return their pixel data directly (no copy).
func Grayscale(f *camera.Frame) []byte {
	if f.Format == camera.FormatGray {
		return f.Pix
	}
	out := make([]byte, f.Width*f.Height)
	for i := 0; i < len(out); i++ {
		r := int(f.Pix[i*3])
		g := int(f.Pix[i*3+1])
		b := int(f.Pix[i*3+2])
		out[i] = uint8((299*r + 587*g + 114*b) / 1000)
	}
	return out
}

// GrayscaleImage converts a decoded image to a luma plane with the image's
// own dimensions.
func GrayscaleImage(img image.Image) ([]byte, int, int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			out[y*w+x] = uint8((299*int(r>>8) + 587*int(g>>8) + 114*int(b>>8)) / 1000)
		}
	}
	return out, w, h
}

// FrameFromImage scales a decoded still image into a working frame of the
// given size. Scaling uses nearest-neighbor resampling; the still path cares
// about geometry, not appearance, and the detectors rebinarize anyway.
func FrameFromImage(img image.Image, width, height int) *camera.Frame {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return &camera.Frame{
		Pix:    dst.Pix,
		Width:  width,
		Height: height,
		Format: camera.FormatGray,
		Space:  geometry.SpaceWorking,
	}
}

// Blur applies a small-radius (3×3, 1-2-1 binomial) Gaussian blur to a luma
// plane, enough to suppress sensor noise before thresholding without
// softening document edges. Border pixels use clamped edge values.
func Blur(luma []byte, width, height int) []byte {
	kernel := [3][3]int{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}

	out := make([]byte, len(luma))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += int(luma[py*width+px]) * kernel[ky+1][kx+1]
				}
			}
			out[y*width+x] = uint8(sum / 16)
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

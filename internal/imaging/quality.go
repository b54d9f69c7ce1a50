package imaging

import (
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// QualityMetrics describes how usable a captured document image is.
// Every metric is normalized to [0,1].
type QualityMetrics struct {
	// Sharpness is the RMS discrete Laplacian response, normalized by 255.
	// Higher is crisper; blurred captures score near zero.
	Sharpness float64 `json:"sharpness"`

	// Brightness is the mean perceptual lightness (CIE Lab L, 0–100 scaled
	// to [0,1]).
	Brightness float64 `json:"brightness"`

	// Contrast is the spread between the 95th and 5th luminance
	// percentiles, normalized by 255.
	Contrast float64 `json:"contrast"`

	// Skew is the deviation of the dominant edge direction from the nearest
	// right angle, normalized by π/2. 0 means perfectly axis-aligned.
	Skew float64 `json:"skew"`

	// Overall is a weighted blend of the individual metrics.
	Overall float64 `json:"overall"`

	// Acceptable reports whether the metrics clear the acceptance
	// thresholds for the classified (or requested) document type.
	Acceptable bool `json:"acceptable"`
}

// AssessQuality computes quality metrics for a captured image against the
// acceptance thresholds of the given document type.
//
// Sharpness uses the 4-neighbor discrete Laplacian (4·center − top − bottom −
// left − right) squared, averaged over interior pixels, square-rooted and
// normalized. Contrast is the P95−P5 luminance spread. Skew buckets edge
// gradient angles into a coarse directional histogram and maps the dominant
// bucket to its deviation from the nearest right angle. Brightness averages
// perceptual lightness rather than raw luma so a warm or cool cast does not
// move the brightness band check.
func AssessQuality(img image.Image, docType DocumentType) *QualityMetrics {
	luma, w, h := GrayscaleImage(img)

	m := &QualityMetrics{
		Sharpness:  sharpness(luma, w, h),
		Brightness: perceptualBrightness(img),
		Contrast:   contrast(luma),
		Skew:       skew(luma, w, h),
	}

	// Sharpness and contrast dominate OCR usefulness; brightness scores by
	// distance from the 0.55 sweet spot, skew by how upright the capture is.
	m.Overall = 0.35*m.Sharpness +
		0.25*m.Contrast +
		0.20*(1-math.Min(math.Abs(m.Brightness-0.55)/0.55, 1)) +
		0.20*(1-m.Skew)

	t := docType.thresholds()
	m.Acceptable = m.Sharpness >= t.MinSharpness &&
		m.Contrast >= t.MinContrast &&
		m.Brightness >= t.MinBrightness &&
		m.Brightness <= t.MaxBrightness &&
		m.Skew <= t.MaxSkew

	return m
}

func sharpness(luma []byte, w, h int) float64 {
	if w < 3 || h < 3 {
		return 0
	}
	var sum float64
	count := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			lap := 4*int(luma[y*w+x]) -
				int(luma[(y-1)*w+x]) - int(luma[(y+1)*w+x]) -
				int(luma[y*w+x-1]) - int(luma[y*w+x+1])
			sum += float64(lap * lap)
			count++
		}
	}
	rms := math.Sqrt(sum / float64(count))
	return math.Min(rms/255, 1)
}

func contrast(luma []byte) float64 {
	if len(luma) == 0 {
		return 0
	}
	sorted := make([]byte, len(luma))
	copy(sorted, luma)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	p5 := sorted[len(sorted)*5/100]
	p95 := sorted[len(sorted)*95/100]
	return float64(p95-p5) / 255
}

func perceptualBrightness(img image.Image) float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	// Sample a coarse grid; per-pixel Lab conversion over a full still is
	// needless for a mean.
	stepX := clamp(w/64, 1, w)
	stepY := clamp(h/64, 1, h)

	var sum float64
	count := 0
	for y := 0; y < h; y += stepY {
		for x := 0; x < w; x += stepX {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			sum += l
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Min(sum/float64(count), 1)
}

// skewBuckets is the resolution of the directional histogram: 10° per bucket
// over [0,180).
const skewBuckets = 18

func skew(luma []byte, w, h int) float64 {
	if w < 3 || h < 3 {
		return 0
	}

	var hist [skewBuckets]int
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := int(luma[y*w+x+1]) - int(luma[y*w+x-1])
			gy := int(luma[(y+1)*w+x]) - int(luma[(y-1)*w+x])
			if gx*gx+gy*gy < 900 { // weak gradients are noise
				continue
			}
			angle := math.Atan2(float64(gy), float64(gx))
			if angle < 0 {
				angle += math.Pi
			}
			bucket := int(angle/math.Pi*skewBuckets) % skewBuckets
			hist[bucket]++
		}
	}

	best, votes := 0, 0
	for i, v := range hist {
		if v > votes {
			best, votes = i, v
		}
	}
	if votes == 0 {
		return 0
	}

	// Bucket center angle, folded onto its deviation from the nearest
	// multiple of 90°.
	angle := (float64(best) + 0.5) * math.Pi / skewBuckets
	dev := math.Mod(angle, math.Pi/2)
	if dev > math.Pi/4 {
		dev = math.Pi/2 - dev
	}
	return dev / (math.Pi / 2)
}

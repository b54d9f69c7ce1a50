package imaging

import (
	"math"
)

// DocumentType is a coarse classification of a captured document, used to
// pick correction parameters and acceptance thresholds.
type DocumentType int

const (
	// TypeUnknown is the fallback when no reference shape fits.
	TypeUnknown DocumentType = iota

	// TypeA4 covers A4/letter-style text pages (portrait ratio ≈ 0.707).
	TypeA4

	// TypeCard covers ID and business cards (portrait ratio ≈ 0.63).
	TypeCard

	// TypeReceipt covers narrow till receipts (ratio ≤ 0.4).
	TypeReceipt
)

// String returns the type name used in reports and logs.
func (t DocumentType) String() string {
	switch t {
	case TypeA4:
		return "a4"
	case TypeCard:
		return "card"
	case TypeReceipt:
		return "receipt"
	default:
		return "unknown"
	}
}

// ParseDocumentType maps a settings hint string to a DocumentType.
// Unrecognized hints map to TypeUnknown.
func ParseDocumentType(s string) DocumentType {
	switch s {
	case "a4", "letter", "page":
		return TypeA4
	case "card", "id":
		return TypeCard
	case "receipt":
		return TypeReceipt
	default:
		return TypeUnknown
	}
}

// qualityThresholds are the per-type acceptance gates applied by
// AssessQuality.
type qualityThresholds struct {
	MinSharpness  float64
	MinContrast   float64
	MinBrightness float64
	MaxBrightness float64
	MaxSkew       float64
}

func (t DocumentType) thresholds() qualityThresholds {
	switch t {
	case TypeCard:
		// Cards carry small print and holograms; demand a crisper capture.
		return qualityThresholds{
			MinSharpness:  0.15,
			MinContrast:   0.25,
			MinBrightness: 0.30,
			MaxBrightness: 0.90,
			MaxSkew:       0.15,
		}
	case TypeReceipt:
		// Thermal paper is low contrast by nature; relax that gate.
		return qualityThresholds{
			MinSharpness:  0.10,
			MinContrast:   0.15,
			MinBrightness: 0.35,
			MaxBrightness: 0.95,
			MaxSkew:       0.20,
		}
	case TypeA4:
		return qualityThresholds{
			MinSharpness:  0.12,
			MinContrast:   0.20,
			MinBrightness: 0.30,
			MaxBrightness: 0.92,
			MaxSkew:       0.15,
		}
	default:
		return qualityThresholds{
			MinSharpness:  0.10,
			MinContrast:   0.15,
			MinBrightness: 0.25,
			MaxBrightness: 0.95,
			MaxSkew:       0.25,
		}
	}
}

// referenceRatio is the portrait (short/long side) aspect ratio of each
// known document shape.
var referenceRatios = map[DocumentType]float64{
	TypeA4:      1.0 / math.Sqrt2, // ≈ 0.707
	TypeCard:    0.63,             // ISO/IEC 7810 ID-1 ≈ 54/85.6
	TypeReceipt: 0.30,
}

// TypeScore is one candidate document type with its blended score.
type TypeScore struct {
	Type  DocumentType `json:"type"`
	Score float64      `json:"score"`
}

// ClassifyDocument scores the rectified document against the known reference
// shapes and returns candidates sorted best-first.
//
// The score blends three signals:
//
//   - aspect-ratio proximity to the type's reference ratio (weight 0.5)
//   - text-line density: the fraction of rows that are projection peaks,
//     which is high for text pages and low for cards (weight 0.3)
//   - presence of a small high-variance region suggestive of a logo or
//     portrait, typical of cards (weight 0.2)
func ClassifyDocument(luma []byte, width, height int) []TypeScore {
	ratio := portraitRatio(width, height)
	lineDensity := textLineDensity(luma, width, height)
	logo := hasLogoRegion(luma, width, height)

	scores := make([]TypeScore, 0, len(referenceRatios))
	for t, ref := range referenceRatios {
		s := 0.5 * ratioProximity(ratio, ref)

		switch t {
		case TypeA4:
			// Text pages show many projection peaks.
			s += 0.3 * lineDensity
			if !logo {
				s += 0.2
			}
		case TypeCard:
			// Cards have sparse text and usually a logo/portrait block.
			s += 0.3 * (1 - lineDensity)
			if logo {
				s += 0.2
			}
		case TypeReceipt:
			s += 0.3 * lineDensity
			if !logo {
				s += 0.2
			}
		}

		scores = append(scores, TypeScore{Type: t, Score: s})
	}

	// Sort best-first; stable order not required, ties are arbitrary.
	for i := 1; i < len(scores); i++ {
		for j := i; j > 0 && scores[j].Score > scores[j-1].Score; j-- {
			scores[j], scores[j-1] = scores[j-1], scores[j]
		}
	}
	return scores
}

// BestDocumentType returns the highest scoring type, or TypeUnknown when no
// candidate reaches minScore.
func BestDocumentType(luma []byte, width, height int, minScore float64) DocumentType {
	scores := ClassifyDocument(luma, width, height)
	if len(scores) == 0 || scores[0].Score < minScore {
		return TypeUnknown
	}
	return scores[0].Type
}

func portraitRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	short, long := float64(width), float64(height)
	if short > long {
		short, long = long, short
	}
	return short / long
}

// ratioProximity maps the relative distance between two aspect ratios to
// [0,1], 1 meaning an exact match.
func ratioProximity(got, ref float64) float64 {
	if ref == 0 {
		return 0
	}
	d := math.Abs(got-ref) / ref
	if d > 1 {
		return 0
	}
	return 1 - d
}

// textLineDensity measures how much of the page is organized in horizontal
// text lines, via peaks in the row-wise dark-pixel projection profile.
func textLineDensity(luma []byte, width, height int) float64 {
	if width == 0 || height == 0 {
		return 0
	}

	hist := Histogram(luma)
	threshold := OtsuThreshold(hist)

	// Row projection of dark (ink) pixels.
	rows := make([]int, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if luma[y*width+x] <= threshold {
				rows[y]++
			}
		}
	}

	var mean float64
	for _, v := range rows {
		mean += float64(v)
	}
	mean /= float64(height)
	if mean == 0 {
		return 0
	}

	// A row is part of a text line when its ink count clearly exceeds the
	// page mean; alternating peak runs are counted as lines.
	lines := 0
	inLine := false
	for _, v := range rows {
		peak := float64(v) > mean*1.3
		if peak && !inLine {
			lines++
		}
		inLine = peak
	}

	// Normalize against how many lines could plausibly fit (≈ every 8 rows).
	maxLines := height / 8
	if maxLines == 0 {
		return 0
	}
	return math.Min(float64(lines)/float64(maxLines), 1)
}

// hasLogoRegion probes a coarse grid of blocks for a small region whose
// luminance variance is far above the page average, typical of logos,
// stamps, and ID portraits.
func hasLogoRegion(luma []byte, width, height int) bool {
	const grid = 4
	bw, bh := width/grid, height/grid
	if bw == 0 || bh == 0 {
		return false
	}

	variances := make([]float64, 0, grid*grid)
	for gy := 0; gy < grid; gy++ {
		for gx := 0; gx < grid; gx++ {
			variances = append(variances, blockVariance(luma, width, gx*bw, gy*bh, bw, bh))
		}
	}

	var mean float64
	for _, v := range variances {
		mean += v
	}
	mean /= float64(len(variances))
	if mean == 0 {
		return false
	}

	// One standout block (not many) is the logo signature; a page of text
	// has uniformly high variance everywhere.
	standouts := 0
	for _, v := range variances {
		if v > mean*2.5 {
			standouts++
		}
	}
	return standouts >= 1 && standouts <= 3
}

func blockVariance(luma []byte, width, x0, y0, bw, bh int) float64 {
	var sum, sumSq float64
	n := float64(bw * bh)
	for y := y0; y < y0+bh; y++ {
		for x := x0; x < x0+bw; x++ {
			v := float64(luma[y*width+x])
			sum += v
			sumSq += v * v
		}
	}
	mean := sum / n
	return sumSq/n - mean*mean
}

// Package scan provides the single-shot still-photo entry point: detect a
// document in a decoded image, rectify it upright, and report quality and
// document-type classification. It shares the detector chain with the
// streaming pipeline but runs at a larger working resolution since a still
// capture has no per-frame latency budget.
package scan

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/anthonynsimon/bild/blur"

	"github.com/ironsheep/docscan-engine/internal/camera"
	"github.com/ironsheep/docscan-engine/internal/detection"
	"github.com/ironsheep/docscan-engine/internal/geometry"
	"github.com/ironsheep/docscan-engine/internal/imaging"
)

// Options tune a still scan. The zero value selects sensible defaults.
type Options struct {
	// WorkingWidth and WorkingHeight set the analysis resolution.
	// Zero values default to the single-shot working size (640×480).
	WorkingWidth  int
	WorkingHeight int

	// BlurSigma is the Gaussian pre-blur applied to the still before
	// analysis. Zero defaults to 1.0; negative disables the blur.
	BlurSigma float64

	// Timeout bounds the detection attempt. Zero defaults to 1s; stills
	// get a far larger budget than streaming frames.
	Timeout time.Duration

	// TypeHint pins the document type used for the quality gates instead
	// of classifying, when non-empty ("a4", "card", "receipt").
	TypeHint string
}

func (o Options) withDefaults() Options {
	if o.WorkingWidth <= 0 {
		o.WorkingWidth = camera.StillWidth
	}
	if o.WorkingHeight <= 0 {
		o.WorkingHeight = camera.StillHeight
	}
	if o.BlurSigma == 0 {
		o.BlurSigma = 1.0
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Second
	}
	return o
}

// Result is the outcome of a still scan.
type Result struct {
	// Detection holds the document corners in original image space.
	Detection detection.Detection `json:"detection"`

	// Rectified is the upright document image, nil when detection found
	// nothing usable.
	Rectified *image.NRGBA `json:"-"`

	// Width and Height are the rectified output dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Projective reports whether the true homography mapping was used.
	Projective bool `json:"projective"`

	// Type is the classified (or hinted) document type.
	Type string `json:"type"`

	// Quality holds the quality metrics of the rectified document.
	Quality *imaging.QualityMetrics `json:"quality"`
}

// Image runs the full still pipeline on a decoded photo: pre-blur, downscale
// to the analysis resolution, detector chain, corner scaling back to image
// space, rectification, classification, and quality assessment.
func Image(ctx context.Context, img image.Image, opts Options) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("scan: nil image")
	}
	opts = opts.withDefaults()

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("scan: empty image %dx%d", bounds.Dx(), bounds.Dy())
	}

	analyzed := img
	if opts.BlurSigma > 0 {
		analyzed = blur.Gaussian(img, opts.BlurSigma)
	}

	frame := imaging.FrameFromImage(analyzed, opts.WorkingWidth, opts.WorkingHeight)

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	det := detection.DefaultChain().Detect(ctx, frame)
	if !det.Found() {
		return &Result{Detection: det, Type: imaging.TypeUnknown.String()}, nil
	}

	// Scale corners from working space into the original image space.
	toImage := geometry.NewTransform(opts.WorkingWidth, opts.WorkingHeight, bounds.Dx(), bounds.Dy())
	det.Corners = toImage.ApplyAll(det.Corners)
	det.Space = geometry.SpaceImage

	rectified, err := imaging.Rectify(img, det.Corners)
	if err != nil {
		return nil, fmt.Errorf("scan: rectify: %w", err)
	}

	luma, w, h := imaging.GrayscaleImage(rectified.Image)

	docType := imaging.ParseDocumentType(opts.TypeHint)
	if docType == imaging.TypeUnknown {
		docType = imaging.BestDocumentType(luma, w, h, 0.4)
	}

	return &Result{
		Detection:  det,
		Rectified:  rectified.Image,
		Width:      rectified.Width,
		Height:     rectified.Height,
		Projective: rectified.Projective,
		Type:       docType.String(),
		Quality:    imaging.AssessQuality(rectified.Image, docType),
	}, nil
}

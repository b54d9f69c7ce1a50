package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	dimaging "github.com/disintegration/imaging"
)

// StillLoader provides thread-safe caching of decoded still photos so a batch
// scan that revisits an input does not decode it twice.
//
// Images are decoded with EXIF auto-orientation applied, so a photo shot in
// portrait arrives upright before any detection runs. Cached stills remain in
// memory until Evict or Clear; a batch runner should Evict inputs it has
// finished with.
type StillLoader struct {
	mu     sync.RWMutex
	stills map[string]image.Image
}

// NewStillLoader creates an empty loader ready for concurrent use.
func NewStillLoader() *StillLoader {
	return &StillLoader{
		stills: make(map[string]image.Image),
	}
}

// Load returns the decoded still for path, reading and decoding it on the
// first call and serving the cached copy afterwards. Supported formats are
// PNG, JPEG, GIF, TIFF, and BMP; EXIF orientation is applied during decode.
//
// The still is cached under the exact path string provided; different
// spellings of the same file get separate entries.
func (l *StillLoader) Load(path string) (image.Image, error) {
	l.mu.RLock()
	if img, ok := l.stills[path]; ok {
		l.mu.RUnlock()
		return img, nil
	}
	l.mu.RUnlock()

	img, err := dimaging.Open(path, dimaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load still: %w", err)
	}

	l.mu.Lock()
	l.stills[path] = img
	l.mu.Unlock()

	return img, nil
}

// Evict removes one still from the cache. Unknown paths are ignored.
func (l *StillLoader) Evict(path string) {
	l.mu.Lock()
	delete(l.stills, path)
	l.mu.Unlock()
}

// Clear drops every cached still, freeing the associated memory.
func (l *StillLoader) Clear() {
	l.mu.Lock()
	l.stills = make(map[string]image.Image)
	l.mu.Unlock()
}

// SaveStill writes img to path, choosing the encoder from the file extension
// (.png, .jpg/.jpeg, .gif, .tif/.tiff, .bmp).
func SaveStill(img image.Image, path string) error {
	if err := dimaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save still: %w", err)
	}
	return nil
}

// StillInfo is the input-file metadata reported alongside a scan result.
type StillInfo struct {
	// Width and Height are the decoded dimensions in pixels, after EXIF
	// orientation is applied.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the format implied by the file extension: "png", "jpeg",
	// "gif", "tiff", "bmp", or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the on-disk size of the input file.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Inspect loads a still through the loader and returns its metadata.
func Inspect(l *StillLoader, path string) (*StillInfo, error) {
	img, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat still: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".tif", ".tiff":
		format = "tiff"
	case ".bmp":
		format = "bmp"
	}

	bounds := img.Bounds()
	return &StillInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}

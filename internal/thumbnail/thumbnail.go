// Package thumbnail derives bounded-size JPEG previews of imported images.
package thumbnail

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	defaultMaxWidth  = 400
	defaultMaxHeight = 300
	defaultQuality   = 85
)

// Options bounds the generated preview. Zero values fall back to the
// defaults (400x300 at quality 85).
type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = defaultMaxWidth
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = defaultMaxHeight
	}
	if o.Quality <= 0 {
		o.Quality = defaultQuality
	}
	return o
}

// Create decodes the image at src, downscales it with Lanczos resampling so
// neither dimension exceeds the configured bounds (aspect ratio preserved,
// never upscaled), and writes the result as a JPEG named name inside dir.
// Indexed and alpha-channel sources are flattened to plain color during
// re-encoding.
func Create(src, dir, name string, opts Options) error {
	opts = opts.withDefaults()

	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(src), err)
	}

	preview := imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)

	target := filepath.Join(dir, name)
	if err := imaging.Save(preview, target, imaging.JPEGQuality(opts.Quality)); err != nil {
		return fmt.Errorf("save preview %s: %w", name, err)
	}
	return nil
}

package images

import (
	"bytes"
	"fmt"
	"image"

	// Registered decoders: the sizer reads only the header, never full pixels.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// maxDisplayWidth caps how wide an embedded report image renders. The cap
// only ever shrinks an image; narrower images keep their native size.
const maxDisplayWidth = 450

// Sized is an image buffer with its computed display dimensions.
type Sized struct {
	Data   []byte
	Format string // "png", "jpeg", "gif", "webp"
	Width  int
	Height int
}

// Size decodes just enough header data to recover native pixel dimensions and
// computes the bounded display size, preserving aspect ratio.
func Size(data []byte) (Sized, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Sized{}, fmt.Errorf("decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Sized{}, fmt.Errorf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)
	}

	w := cfg.Width
	h := cfg.Height
	if w > maxDisplayWidth {
		w = maxDisplayWidth
		h = int(float64(w)*float64(cfg.Height)/float64(cfg.Width) + 0.5)
	}
	return Sized{Data: data, Format: format, Width: w, Height: h}, nil
}

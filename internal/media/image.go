package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var ErrInvalidImage = errors.New("invalid image")

const (
	DefaultMaxSide = 1200
	webpQuality    = 82
)

// ToWebP decodes any supported upload, fits it inside maxSide x maxSide and
// re-encodes it as lossy webp.
func ToWebP(r io.Reader, maxSide int) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	var out image.Image = img
	if b := img.Bounds(); b.Dx() > maxSide || b.Dy() > maxSide {
		out = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, out, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

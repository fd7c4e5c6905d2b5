package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	// MaxImageDimension bounds the longer side of an uploaded image
	MaxImageDimension = 1600
	imageQuality      = 85
)

// OptimizeImage decodes png, jpeg, gif, bmp or tiff data, fits it inside
// MaxImageDimension and re-encodes it as JPEG
func OptimizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxImageDimension || bounds.Dy() > MaxImageDimension {
		img = imaging.Fit(img, MaxImageDimension, MaxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(imageQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

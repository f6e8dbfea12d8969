package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// ShrinkToWidth downscales an image to maxWidth pixels, preserving aspect
// ratio and format. Images already within the limit, unlimited maxWidth, or
// bytes that do not decode as an image pass through unchanged.
func ShrinkToWidth(data []byte, maxWidth int, contentType string) ([]byte, error) {
	if maxWidth <= 0 {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data, nil
	}

	if img.Bounds().Dx() <= maxWidth {
		return data, nil
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	format := imaging.JPEG
	if contentType == "image/png" {
		format = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}

// SPDX-License-Identifier: AGPL-3.0-only
package helpers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/gen2brain/webp"
	"golang.org/x/image/draw"
)

// EncodeImage decodes an uploaded image, scales it down so the longest side
// is at most maxDim, re-encodes it as webp and returns it base64-encoded for
// storage.
func EncodeImage(r io.Reader, maxDim int) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxDim || h > maxDim {
		if w > h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode webp: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeStoredImage reverses EncodeImage for serving.
func DecodeStoredImage(stored string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(stored)
}

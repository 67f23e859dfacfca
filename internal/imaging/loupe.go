package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// LoupeResult is a magnified view of the pixels around a sample point.
type LoupeResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	// CenterX and CenterY locate the sampled pixel's top-left corner inside
	// the magnified image.
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`

	// Color is the exact color at the sample point.
	Color ColorResult `json:"color"`
}

// Loupe crops the (2*radius+1)² square around (x, y) and enlarges it by an
// integer scale factor using nearest-neighbour resampling, so every source
// pixel becomes a crisp scale×scale block.
//
// The square is clipped at the buffer edges. The point itself must lie inside
// the buffer.
func Loupe(buf *PixelBuffer, x, y, radius, scale int) (*LoupeResult, error) {
	if radius < 0 {
		return nil, fmt.Errorf("radius must be >= 0, got %d", radius)
	}
	if scale < 1 {
		return nil, fmt.Errorf("scale must be >= 1, got %d", scale)
	}
	c, err := buf.At(x, y)
	if err != nil {
		return nil, err
	}

	rect := image.Rect(x-radius, y-radius, x+radius+1, y+radius+1).Intersect(buf.Bounds())
	patch := buf.crop(rect)
	if scale > 1 {
		patch = imaging.Resize(patch, rect.Dx()*scale, rect.Dy()*scale, imaging.NearestNeighbor)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, patch); err != nil {
		return nil, fmt.Errorf("failed to encode loupe image: %w", err)
	}

	return &LoupeResult{
		Width:       patch.Bounds().Dx(),
		Height:      patch.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    "image/png",
		CenterX:     (x - rect.Min.X) * scale,
		CenterY:     (y - rect.Min.Y) * scale,
		Color:       *Describe(c),
	}, nil
}

package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var (
	// ErrOutOfBounds is returned when a sample position lies outside the buffer.
	ErrOutOfBounds = errors.New("coordinates outside image bounds")

	// ErrEmptyBuffer is returned for nil buffers or images with no pixels.
	ErrEmptyBuffer = errors.New("empty pixel buffer")
)

// PixelBuffer is an immutable grid of 8-bit, non-premultiplied color samples.
//
// A PixelBuffer is created once per decoded image and only read afterwards.
// Its origin is always (0,0) regardless of the source image's bounds, so valid
// positions are x in [0, Width) and y in [0, Height).
//
// PixelBuffer is safe for concurrent reads.
type PixelBuffer struct {
	pix *image.NRGBA
}

// NewPixelBuffer copies img into a new PixelBuffer.
//
// The source image may be any image.Image; it is cloned so later writes to it
// are not observed. Returns ErrEmptyBuffer when img is nil or has no pixels.
func NewPixelBuffer(img image.Image) (*PixelBuffer, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyBuffer
	}
	// imaging.Clone always returns an NRGBA with its origin at (0,0).
	return &PixelBuffer{pix: imaging.Clone(img)}, nil
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int {
	if b == nil || b.pix == nil {
		return 0
	}
	return b.pix.Rect.Dx()
}

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int {
	if b == nil || b.pix == nil {
		return 0
	}
	return b.pix.Rect.Dy()
}

// Bounds returns the rectangle of valid positions.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width(), b.Height())
}

// Contains reports whether (x, y) is a valid sample position.
func (b *PixelBuffer) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Bounds())
}

// At returns the color stored at (x, y).
//
// Out-of-range positions return an error wrapping ErrOutOfBounds; no default
// color is ever substituted.
func (b *PixelBuffer) At(x, y int) (Color, error) {
	if b.Width() == 0 || b.Height() == 0 {
		return Color{}, ErrEmptyBuffer
	}
	if !b.Contains(x, y) {
		return Color{}, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfBounds, x, y, b.Width(), b.Height())
	}
	i := b.pix.PixOffset(x, y)
	p := b.pix.Pix[i : i+3 : i+3]
	return Color{R: p[0], G: p[1], B: p[2]}, nil
}

// Clamp moves (x, y) to the nearest valid position.
//
// Use it for coordinates coming from pointer or tap input that may land on
// the image edge or slightly outside it.
func (b *PixelBuffer) Clamp(x, y int) (int, int) {
	return clamp(x, 0, b.Width()-1), clamp(y, 0, b.Height()-1)
}

// crop returns an opaque copy of the pixels in rect, which must lie inside
// the buffer. The copy has its origin at (0,0) and is owned by the caller.
func (b *PixelBuffer) crop(rect image.Rectangle) *image.NRGBA {
	patch := imaging.Crop(b.pix, rect)
	for i := 3; i < len(patch.Pix); i += 4 {
		patch.Pix[i] = 0xff
	}
	return patch
}

func clamp(val, min, max int) int {
	if max < min {
		return min
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

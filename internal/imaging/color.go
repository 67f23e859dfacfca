package imaging

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a string cannot be parsed as a hex color.
var ErrInvalidHex = errors.New("invalid hex color")

// Color represents an opaque RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
//
// Color has value semantics: two colors are equal when their components are
// equal, so it can be compared with == and used as a map key. Alpha is not
// modeled.
type Color struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSV represents a color in the cylindrical HSV (Hue, Saturation, Value) space.
type HSV struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	V int `json:"v"` // Value: 0-100 percent (0=black, 100=full brightness)
}

// HSL represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSL struct {
	H int `json:"h"` // Hue: 0-359 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// NewColor builds a Color from normalized components.
//
// Each component is clamped to [0.0, 1.0] and rounded to the nearest 8-bit
// value, so out-of-range inputs never produce wrapped channels.
func NewColor(r, g, b float64) Color {
	return Color{R: unitTo8(r), G: unitTo8(g), B: unitTo8(b)}
}

// FromColor converts any color.Color to a Color, dropping alpha.
//
// The conversion goes through the non-premultiplied NRGBA model so that
// translucent pixels keep their stored channel values.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#RRGGBB" or "#RGB" (case-insensitive, leading '#'
// optional) into a Color.
func ParseHex(s string) (Color, error) {
	h := strings.TrimSpace(s)
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	if len(h) != 7 && len(h) != 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// RGBA implements color.Color. The result is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the color as an uppercase "#RRGGBB" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer using the hex form.
func (c Color) String() string {
	return c.Hex()
}

// HSV converts the color to HSV.
//
// The conversion uses the standard max/min-channel formula:
//
//	value      = max(r, g, b)
//	saturation = 0 if value == 0 else (value - min(r, g, b)) / value
//	hue        = piecewise on the max channel, 0 when achromatic
//
// Components are rounded to the nearest integer. A hue that rounds up to 360
// wraps to 0 so H always stays in [0, 360).
func (c Color) HSV() HSV {
	h, s, v := c.colorful().Hsv()
	return HSV{H: roundHue(h), S: percent(s), V: percent(v)}
}

// HSL converts the color to HSL, rounding each component.
func (c Color) HSL() HSL {
	h, s, l := c.colorful().Hsl()
	return HSL{H: roundHue(h), S: percent(s), L: percent(l)}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// String formats the triple for display, e.g. "210°, 45%, 80%".
func (h HSV) String() string {
	return fmt.Sprintf("%d°, %d%%, %d%%", h.H, h.S, h.V)
}

// ColorResult contains a color value in multiple representations.
//
// The same color is provided in several formats to suit different consumers:
//   - Hex: compact string for CSS/web usage
//   - RGB: 8-bit components
//   - HSV/HSVText: the picker's display form
//   - HSL: perceptual lightness form
type ColorResult struct {
	Hex     string `json:"hex"`      // Hex format "#RRGGBB"
	RGB     Color  `json:"rgb"`      // RGB components
	HSV     HSV    `json:"hsv"`      // HSV representation
	HSVText string `json:"hsv_text"` // HSV formatted as "h°, s%, v%"
	HSL     HSL    `json:"hsl"`      // HSL representation
}

// Describe expands a Color into every supported representation.
func Describe(c Color) *ColorResult {
	hsv := c.HSV()
	return &ColorResult{
		Hex:     c.Hex(),
		RGB:     c,
		HSV:     hsv,
		HSVText: hsv.String(),
		HSL:     c.HSL(),
	}
}

func unitTo8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

func roundHue(h float64) int {
	deg := int(math.Round(h))
	if deg >= 360 || deg < 0 {
		deg = ((deg % 360) + 360) % 360
	}
	return deg
}

func percent(f float64) int {
	return int(math.Round(f * 100))
}

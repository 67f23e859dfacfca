// Package imaging implements color sampling over decoded images.
//
// An image is decoded once into a PixelBuffer, an immutable grid of 8-bit
// samples. A Sampler reads colors from it, either at explicit positions or at
// uniformly random ones, and each Color can be rendered as hex, HSV or HSL
// text. Saved colors live in a Swatches collection owned by the caller.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Bounds
//
// Sampling outside the buffer is an error wrapping ErrOutOfBounds; a default
// color is never returned. Callers that take pointer input can snap positions
// into range with PixelBuffer.Clamp before sampling.
//
// # Color Representation
//
//   - Hex: uppercase "#RRGGBB"
//   - RGB: 8-bit components (0-255)
//   - HSV: Hue (0-359), Saturation (0-100), Value (0-100), shown as "h°, s%, v%"
//   - HSL: Hue (0-359), Saturation (0-100), Lightness (0-100)
//
// # Thread Safety
//
// ImageCache is safe for concurrent use, and PixelBuffer and Color are
// immutable. Sampler and Swatches belong to a single caller.
package imaging

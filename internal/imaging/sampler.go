package imaging

import (
	"fmt"
	"image"
	"math/rand/v2"
	"sort"
)

// Sampler picks colors out of a PixelBuffer.
//
// All methods except SampleRandom are pure functions of their arguments.
// SampleRandom draws positions from the Sampler's random source, which is
// injected so tests and reproducible sessions can fix the sequence.
//
// A Sampler is not safe for concurrent use because *rand.Rand is not.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler drawing random positions from rng.
// A nil rng is replaced with a randomly seeded PCG source.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sampler{rng: rng}
}

// NewSeededSampler creates a Sampler whose random positions are fully
// determined by seed.
func NewSeededSampler(seed uint64) *Sampler {
	return NewSampler(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Sample is a color together with the position it was read from.
type Sample struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Color Color `json:"color"`
}

// SampleAt returns the color stored at (x, y).
//
// Parameters:
//   - buf: The buffer to read. Must not be nil or empty.
//   - x: X coordinate, valid range 0 to width-1.
//   - y: Y coordinate, valid range 0 to height-1.
//
// Returns an error wrapping ErrOutOfBounds for positions outside the buffer.
// Callers handling pointer input should Clamp first.
func (s *Sampler) SampleAt(buf *PixelBuffer, x, y int) (Color, error) {
	return buf.At(x, y)
}

// SampleRandom picks x uniformly from [0, width) and y uniformly from
// [0, height) and returns the color found there along with the position.
func (s *Sampler) SampleRandom(buf *PixelBuffer) (Sample, error) {
	w, h := buf.Width(), buf.Height()
	if w == 0 || h == 0 {
		return Sample{}, ErrEmptyBuffer
	}
	x := s.rng.IntN(w)
	y := s.rng.IntN(h)
	c, err := s.SampleAt(buf, x, y)
	if err != nil {
		return Sample{}, err
	}
	return Sample{X: x, Y: y, Color: c}, nil
}

// SampleSmoothed returns the box-averaged color around (x, y).
//
// The neighbourhood is the (2*radius+1)² square centred on the point, clipped
// to the buffer, and every pixel inside it counts once. A radius of 0 is
// equivalent to SampleAt. The averaging reduces the influence of single noisy
// pixels in photos and JPEG artifacts.
func (s *Sampler) SampleSmoothed(buf *PixelBuffer, x, y, radius int) (Color, error) {
	if radius < 0 {
		return Color{}, fmt.Errorf("radius must be >= 0, got %d", radius)
	}
	c, err := buf.At(x, y)
	if err != nil || radius == 0 {
		return c, err
	}

	rect := image.Rect(x-radius, y-radius, x+radius+1, y+radius+1).Intersect(buf.Bounds())
	return meanColor(buf.crop(rect)), nil
}

// SampleColor extracts the color at (x, y) in every supported representation.
//
// # Coordinate System
//
// Coordinates are 0-based with origin at top-left:
//   - Valid X range: 0 to width-1
//   - Valid Y range: 0 to height-1
func (s *Sampler) SampleColor(buf *PixelBuffer, x, y int) (*ColorResult, error) {
	c, err := s.SampleAt(buf, x, y)
	if err != nil {
		return nil, err
	}
	return Describe(c), nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
//
// Labels are useful for identifying specific points in the results, such as
// "sky" or "skin_tone". If Label is empty, the point is still sampled.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"` // Optional label (empty if not provided)
	X     int         `json:"x"`               // X coordinate that was sampled
	Y     int         `json:"y"`               // Y coordinate that was sampled
	Color ColorResult `json:"color"`           // The color at this location
}

// MultiColorResult contains color samples from multiple points.
//
// Results are returned in the same order as the input points.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"` // Color samples in input order
}

// SampleColorsMulti extracts colors at multiple pixel coordinates in a single call.
//
// Returns an error if any coordinate is outside the buffer. On error, no
// partial results are returned.
//
// # Example
//
//	points := []imaging.LabeledPoint{
//	    {X: 10, Y: 20, Label: "background"},
//	    {X: 50, Y: 100, Label: "text"},
//	}
//	result, err := sampler.SampleColorsMulti(buf, points)
func (s *Sampler) SampleColorsMulti(buf *PixelBuffer, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := s.SampleColor(buf, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int // Left edge X coordinate (inclusive)
	Y1 int // Top edge Y coordinate (inclusive)
	X2 int // Right edge X coordinate (exclusive)
	Y2 int // Bottom edge Y coordinate (exclusive)
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string  `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64 `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        Color   `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult contains the most frequently occurring colors in an image.
//
// Colors are sorted by frequency in descending order (most common first).
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"` // Colors sorted by frequency (descending)
}

// DominantColors extracts the count most common colors from a buffer or region.
//
// # Color Quantization
//
// To group similar colors, each component is quantized to a multiple of 16:
//
//	quantized = (original / 16) * 16
//
// For example, #F0F0F0 and #FAFAFA both count towards #F0F0F0. Ties are
// ordered by hex string so the result is deterministic.
func DominantColors(buf *PixelBuffer, count int, region *Region) (*DominantColorsResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	bounds := buf.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyBuffer
	}
	if region != nil {
		r, err := regionRect(buf, *region)
		if err != nil {
			return nil, err
		}
		bounds = r
	}

	counts := make(map[Color]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, _ := buf.At(x, y)
			counts[Color{R: c.R / 16 * 16, G: c.G / 16 * 16, B: c.B / 16 * 16}]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        c.Hex(),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        c,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Colors: colors}, nil
}

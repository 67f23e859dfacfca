package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/histogram"
)

// pixelDiffThreshold is the mean per-channel difference above which two
// pixels count as different.
const pixelDiffThreshold = 10

// AverageColor returns the mean color of a region, rounding each channel.
func AverageColor(buf *PixelBuffer, region Region) (Color, error) {
	rect, err := regionRect(buf, region)
	if err != nil {
		return Color{}, err
	}
	return meanColor(buf.crop(rect)), nil
}

// meanColor averages every pixel of an opaque patch.
func meanColor(patch *image.NRGBA) Color {
	h := histogram.NewRGBAHistogram(patch)
	n := patch.Rect.Dx() * patch.Rect.Dy()
	return Color{
		R: channelMean(h.R, n),
		G: channelMean(h.G, n),
		B: channelMean(h.B, n),
	}
}

func channelMean(h histogram.Histogram, n int) uint8 {
	if n == 0 {
		return 0
	}
	sum := 0
	for v, count := range h.Bins {
		sum += v * count
	}
	return uint8(math.Round(float64(sum) / float64(n)))
}

// CompareRegionsResult describes how two regions of a buffer differ in color.
type CompareRegionsResult struct {
	Average1 ColorResult `json:"average1"` // Mean color of the first region
	Average2 ColorResult `json:"average2"` // Mean color of the second region

	// DeltaE is the CIEDE2000 distance between the two averages, scaled to
	// the usual 0-100 range. Values under about 2 are hard to tell apart.
	DeltaE float64 `json:"delta_e"`

	SimilarityScore  float64 `json:"similarity_score"`   // Fraction of compared pixels that match (0-1)
	PixelsDifferent  int     `json:"pixels_different"`   // Pixels whose difference exceeds the threshold
	TotalPixels      int     `json:"total_pixels"`       // Pixels compared (overlap of both sizes)
	SameSize         bool    `json:"same_size"`          // Whether both regions have equal dimensions
	AverageColorDiff float64 `json:"average_color_diff"` // Mean per-channel difference (0-255)
}

// CompareRegions compares two regions of a buffer.
//
// Pixel-by-pixel statistics are computed over the overlapping size of the two
// regions, aligned at their top-left corners. Averages and DeltaE use each
// full region.
func CompareRegions(buf *PixelBuffer, r1, r2 Region) (*CompareRegionsResult, error) {
	rect1, err := regionRect(buf, r1)
	if err != nil {
		return nil, fmt.Errorf("region 1: %w", err)
	}
	rect2, err := regionRect(buf, r2)
	if err != nil {
		return nil, fmt.Errorf("region 2: %w", err)
	}

	minW := min(rect1.Dx(), rect2.Dx())
	minH := min(rect1.Dy(), rect2.Dy())

	totalPixels := minW * minH
	pixelsDifferent := 0
	var totalColorDiff float64

	for dy := 0; dy < minH; dy++ {
		for dx := 0; dx < minW; dx++ {
			c1, _ := buf.At(rect1.Min.X+dx, rect1.Min.Y+dy)
			c2, _ := buf.At(rect2.Min.X+dx, rect2.Min.Y+dy)

			diff := float64(absDiff(c1.R, c2.R)+absDiff(c1.G, c2.G)+absDiff(c1.B, c2.B)) / 3.0
			totalColorDiff += diff
			if diff > pixelDiffThreshold {
				pixelsDifferent++
			}
		}
	}

	avg1, _ := AverageColor(buf, r1)
	avg2, _ := AverageColor(buf, r2)
	deltaE := avg1.colorful().DistanceCIEDE2000(avg2.colorful()) * 100

	similarity := 1.0 - float64(pixelsDifferent)/float64(totalPixels)

	return &CompareRegionsResult{
		Average1:         *Describe(avg1),
		Average2:         *Describe(avg2),
		DeltaE:           math.Round(deltaE*100) / 100,
		SimilarityScore:  math.Round(similarity*1000) / 1000,
		PixelsDifferent:  pixelsDifferent,
		TotalPixels:      totalPixels,
		SameSize:         rect1.Size() == rect2.Size(),
		AverageColorDiff: math.Round(totalColorDiff/float64(totalPixels)*100) / 100,
	}, nil
}

// regionRect validates region against buf and converts it to a rectangle.
func regionRect(buf *PixelBuffer, region Region) (image.Rectangle, error) {
	if buf.Width() == 0 || buf.Height() == 0 {
		return image.Rectangle{}, ErrEmptyBuffer
	}
	if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
		return image.Rectangle{}, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	r := image.Rect(region.X1, region.Y1, region.X2, region.Y2)
	if !r.In(buf.Bounds()) {
		return image.Rectangle{}, fmt.Errorf("%w: region (%d,%d)-(%d,%d)", ErrOutOfBounds, region.X1, region.Y1, region.X2, region.Y2)
	}
	return r, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

package imaging

import (
	"errors"
	"image/color"
	"testing"
)

func TestAverageColor(t *testing.T) {
	buf := mustBuffer(t, createPatternImage(100, 100))

	tests := []struct {
		name   string
		region Region
		want   Color
	}{
		{"red quadrant", Region{X1: 0, Y1: 0, X2: 50, Y2: 50}, Color{255, 0, 0}},
		{"top half", Region{X1: 0, Y1: 0, X2: 100, Y2: 50}, Color{128, 128, 0}},
		{"whole image", Region{X1: 0, Y1: 0, X2: 100, Y2: 100}, Color{128, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AverageColor(buf, tt.region)
			if err != nil {
				t.Fatalf("AverageColor failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverageColor_InvalidRegion(t *testing.T) {
	buf := mustBuffer(t, createPatternImage(100, 100))

	if _, err := AverageColor(buf, Region{X1: 10, Y1: 10, X2: 10, Y2: 20}); err == nil {
		t.Error("empty region should fail")
	}
	if _, err := AverageColor(buf, Region{X1: 90, Y1: 90, X2: 110, Y2: 100}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("got %v, want ErrOutOfBounds", err)
	}
}

func TestCompareRegions(t *testing.T) {
	buf := mustBuffer(t, createPatternImage(100, 100))

	tests := []struct {
		name         string
		r1, r2       Region
		wantSimilar  bool // expect > 0.9 similarity
		wantSameSize bool
	}{
		{
			"identical regions",
			Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			true,
			true,
		},
		{
			"different regions (red vs green)",
			Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			Region{X1: 50, Y1: 0, X2: 100, Y2: 50},
			false,
			true,
		},
		{
			"different sizes",
			Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			Region{X1: 0, Y1: 0, X2: 30, Y2: 30},
			true, // overlap is identical (both red top-left)
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareRegions(buf, tt.r1, tt.r2)
			if err != nil {
				t.Fatalf("CompareRegions failed: %v", err)
			}

			if result.SameSize != tt.wantSameSize {
				t.Errorf("SameSize: got %v, want %v", result.SameSize, tt.wantSameSize)
			}

			highSimilarity := result.SimilarityScore > 0.9
			if highSimilarity != tt.wantSimilar {
				t.Errorf("SimilarityScore: got %.3f, wantSimilar=%v", result.SimilarityScore, tt.wantSimilar)
			}
		})
	}
}

func TestCompareRegions_DeltaE(t *testing.T) {
	buf := mustBuffer(t, createPatternImage(100, 100))

	same, err := CompareRegions(buf,
		Region{X1: 0, Y1: 0, X2: 20, Y2: 20},
		Region{X1: 20, Y1: 20, X2: 40, Y2: 40},
	)
	if err != nil {
		t.Fatalf("CompareRegions failed: %v", err)
	}
	if same.DeltaE != 0 {
		t.Errorf("DeltaE for matching colors: got %.2f, want 0", same.DeltaE)
	}
	if same.Average1.Hex != "#FF0000" || same.Average2.Hex != "#FF0000" {
		t.Errorf("averages: got %s and %s", same.Average1.Hex, same.Average2.Hex)
	}

	diff, err := CompareRegions(buf,
		Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
		Region{X1: 0, Y1: 50, X2: 50, Y2: 100},
	)
	if err != nil {
		t.Fatalf("CompareRegions failed: %v", err)
	}
	if diff.DeltaE < 10 {
		t.Errorf("DeltaE for red vs blue: got %.2f, want a large distance", diff.DeltaE)
	}
}

func TestCompareRegions_Identical(t *testing.T) {
	buf := mustBuffer(t, createInMemoryImage(100, 100, color.RGBA{128, 128, 128, 255}))

	result, err := CompareRegions(buf,
		Region{X1: 10, Y1: 10, X2: 40, Y2: 40},
		Region{X1: 50, Y1: 50, X2: 80, Y2: 80},
	)
	if err != nil {
		t.Fatalf("CompareRegions failed: %v", err)
	}

	if result.SimilarityScore != 1.0 {
		t.Errorf("SimilarityScore: got %.3f, want 1.0", result.SimilarityScore)
	}
	if result.PixelsDifferent != 0 {
		t.Errorf("PixelsDifferent: got %d, want 0", result.PixelsDifferent)
	}
	if result.TotalPixels != 900 {
		t.Errorf("TotalPixels: got %d, want 900", result.TotalPixels)
	}
}

func TestCompareRegions_InvalidRegion(t *testing.T) {
	buf := mustBuffer(t, createPatternImage(100, 100))

	_, err := CompareRegions(buf,
		Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
		Region{X1: 60, Y1: 60, X2: 200, Y2: 200},
	)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("got %v, want ErrOutOfBounds", err)
	}
}

func TestAbsDiff(t *testing.T) {
	tests := []struct {
		a, b uint8
		want int
	}{
		{10, 5, 5},
		{5, 10, 5},
		{0, 255, 255},
		{255, 0, 255},
		{128, 128, 0},
	}

	for _, tt := range tests {
		if got := absDiff(tt.a, tt.b); got != tt.want {
			t.Errorf("absDiff(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

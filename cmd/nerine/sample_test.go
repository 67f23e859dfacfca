package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/airi103/nerine/internal/config"
	"github.com/airi103/nerine/internal/imaging"
)

func writeSolidPNG(t *testing.T, c color.Color) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "sample.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	return path
}

func TestRenderSample(t *testing.T) {
	out := renderSample(imaging.Sample{X: 3, Y: 1, Color: imaging.Color{R: 255, G: 128, B: 64}})

	for _, want := range []string{"#FF8040", "255, 128, 64", "20°, 75%, 100%", "(3, 1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSample(t *testing.T) {
	path := writeSolidPNG(t, color.NRGBA{0, 255, 0, 255})
	cfg := config.Default()
	cfg.Seed, cfg.HasSeed = 1, true

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"point", []string{path, "2", "3"}, "#00FF00", false},
		{"random", []string{path}, "#00FF00", false},
		{"out of bounds", []string{path, "6", "0"}, "", true},
		{"bad x", []string{path, "a", "0"}, "", true},
		{"missing y", []string{path, "1"}, "", true},
		{"no args", nil, "", true},
		{"missing file", []string{"/nonexistent.png"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runSample(cfg, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got output %q", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %s:\n%s", tt.want, out)
			}
		})
	}
}

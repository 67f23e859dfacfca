package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/airi103/nerine/internal/config"
	"github.com/airi103/nerine/internal/imaging"
)

var (
	colorMuted = lipgloss.Color("#626262")

	hexStyle = lipgloss.NewStyle().
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(5)

	chipStyle = lipgloss.NewStyle().
			Width(8).
			Height(3).
			MarginRight(2)
)

// runSample handles `nerine sample <path> [x y]`. Without coordinates a
// random pixel is chosen.
func runSample(cfg *config.Config, args []string) (string, error) {
	if len(args) != 1 && len(args) != 3 {
		return "", fmt.Errorf("usage: nerine sample <path> [x y]")
	}

	buf, err := imaging.NewImageCache().Load(args[0])
	if err != nil {
		return "", err
	}

	sampler := imaging.NewSampler(nil)
	if cfg.HasSeed {
		sampler = imaging.NewSeededSampler(cfg.Seed)
	}

	var sample imaging.Sample
	if len(args) == 3 {
		x, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("invalid x %q: %w", args[1], err)
		}
		y, err := strconv.Atoi(args[2])
		if err != nil {
			return "", fmt.Errorf("invalid y %q: %w", args[2], err)
		}
		c, err := sampler.SampleAt(buf, x, y)
		if err != nil {
			return "", err
		}
		sample = imaging.Sample{X: x, Y: y, Color: c}
	} else {
		sample, err = sampler.SampleRandom(buf)
		if err != nil {
			return "", err
		}
	}

	return renderSample(sample), nil
}

// renderSample draws a color chip next to the color's textual forms.
func renderSample(s imaging.Sample) string {
	c := imaging.Describe(s.Color)

	chip := chipStyle.Background(lipgloss.Color(c.Hex)).Render("")
	rows := lipgloss.JoinVertical(
		lipgloss.Left,
		hexStyle.Render(c.Hex),
		labelStyle.Render("rgb")+fmt.Sprintf("%d, %d, %d", c.RGB.R, c.RGB.G, c.RGB.B),
		labelStyle.Render("hsv")+c.HSVText,
		labelStyle.Render("at")+fmt.Sprintf("(%d, %d)", s.X, s.Y),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chip, rows)
}

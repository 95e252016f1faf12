package chart

import (
	"fmt"
	"image"
	"image/color"

	"github.com/jmylchreest/calref/internal/colour"
)

// DefaultSampleHalfWidth matches the 50x50 window the native pipeline
// averages inside each swatch.
const DefaultSampleHalfWidth = 25

// Sample averages the colour of the square [c-half, c+half] of img. The
// average is rounded to the nearest integer per channel.
func Sample(img image.Image, c Point, half int) (colour.RGB, error) {
	b := img.Bounds()
	region := image.Rect(c.X-half, c.Y-half, c.X+half+1, c.Y+half+1)
	if half < 0 || !region.In(b) {
		return colour.RGB{}, fmt.Errorf("%w: sample region %v outside image bounds %v", ErrOutOfBounds, region, b)
	}

	var sr, sg, sb int
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			sr += int(n.R)
			sg += int(n.G)
			sb += int(n.B)
		}
	}

	n := region.Dx() * region.Dy()
	return colour.RGB{
		R: uint8((sr + n/2) / n),
		G: uint8((sg + n/2) / n),
		B: uint8((sb + n/2) / n),
	}, nil
}

// PatchResult is the verification outcome for one swatch.
type PatchResult struct {
	Index int
	Label string
	Want  colour.RGB
	Got   colour.RGB
}

// OK reports whether the sampled colour matches the ground truth exactly.
func (r PatchResult) OK() bool {
	return r.Want == r.Got
}

// MarkerResult is the verification outcome for one corner marker.
type MarkerResult struct {
	Index  int
	Corner Point
	OK     bool
}

// Report is the result of verifying an image against a chart definition.
type Report struct {
	Patches []PatchResult
	Markers []MarkerResult
}

// OK reports whether every patch and marker verified.
func (r *Report) OK() bool {
	for _, p := range r.Patches {
		if !p.OK() {
			return false
		}
	}
	for _, m := range r.Markers {
		if !m.OK {
			return false
		}
	}
	return true
}

// Failures returns the number of patches and markers that did not verify.
func (r *Report) Failures() int {
	n := 0
	for _, p := range r.Patches {
		if !p.OK() {
			n++
		}
	}
	for _, m := range r.Markers {
		if !m.OK {
			n++
		}
	}
	return n
}

// Verify samples every swatch of img and compares it with the ground truth
// in cfg. It also checks that each corner centre carries an opaque white
// marker pixel unless a swatch was painted over it.
func Verify(img image.Image, cfg Config, half int) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if half > cfg.SwatchHalfWidth {
		return nil, fmt.Errorf("%w: sample half-width %d exceeds swatch half-width %d",
			ErrConfigurationMismatch, half, cfg.SwatchHalfWidth)
	}

	b := img.Bounds()
	if b.Dx() != cfg.Width || b.Dy() != cfg.Height {
		return nil, fmt.Errorf("%w: image is %dx%d, chart is %dx%d",
			ErrConfigurationMismatch, b.Dx(), b.Dy(), cfg.Width, cfg.Height)
	}

	report := &Report{}
	for i, p := range cfg.Patches {
		got, err := Sample(img, Point{X: b.Min.X + p.Centroid.X, Y: b.Min.Y + p.Centroid.Y}, half)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		report.Patches = append(report.Patches, PatchResult{
			Index: i,
			Label: p.Label,
			Want:  p.Colour,
			Got:   got,
		})
	}

	for i, c := range cfg.Corners {
		if coveredBySwatch(cfg, c) {
			continue
		}
		n := color.NRGBAModel.Convert(img.At(b.Min.X+c.X, b.Min.Y+c.Y)).(color.NRGBA)
		report.Markers = append(report.Markers, MarkerResult{
			Index:  i,
			Corner: c,
			OK:     n == color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		})
	}

	return report, nil
}

func coveredBySwatch(cfg Config, p Point) bool {
	w := cfg.SwatchHalfWidth
	for _, patch := range cfg.Patches {
		c := patch.Centroid
		if p.X >= c.X-w && p.X <= c.X+w && p.Y >= c.Y-w && p.Y <= c.Y+w {
			return true
		}
	}
	return false
}

package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jmylchreest/calref/internal/colour"
)

var (
	// ErrConfigurationMismatch is returned when the chart definition is
	// internally inconsistent (wrong corner or patch count, bad sizes).
	ErrConfigurationMismatch = errors.New("configuration mismatch")

	// ErrOutOfBounds is returned when a marker centre or swatch square
	// falls outside the canvas.
	ErrOutOfBounds = errors.New("geometry out of bounds")
)

// Config holds every constant needed to generate a chart.
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// MarkerHalfLength is the number of pixels each crosshair arm extends
	// from the corner point.
	MarkerHalfLength int `json:"marker_half_length"`

	// SwatchHalfWidth is the number of pixels a swatch extends from its
	// centroid in each direction.
	SwatchHalfWidth int `json:"swatch_half_width"`

	// Columns is the number of swatches per grid row.
	Columns int `json:"columns"`

	// Order is the channel order of the generated canvas.
	Order colour.ChannelOrder `json:"order"`

	Geometry
}

// DefaultConfig returns the ColorChecker Classic chart used by the native
// calibration pipeline.
func DefaultConfig() Config {
	return Config{
		Width:            608,
		Height:           512,
		MarkerHalfLength: 5,
		SwatchHalfWidth:  44,
		Columns:          6,
		Order:            colour.OrderBGR,
		Geometry:         ColorCheckerGeometry(),
	}
}

// Validate checks the configuration. It never touches pixels, so a chart
// that fails validation is never partially drawn.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrConfigurationMismatch, c.Width, c.Height)
	}
	if c.MarkerHalfLength < 0 || c.SwatchHalfWidth < 0 {
		return fmt.Errorf("%w: negative marker or swatch size", ErrConfigurationMismatch)
	}
	if c.Columns <= 0 {
		return fmt.Errorf("%w: columns must be positive (got %d)", ErrConfigurationMismatch, c.Columns)
	}
	if err := c.Order.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigurationMismatch, err)
	}
	if len(c.Corners) != CornerCount {
		return fmt.Errorf("%w: %d corner points, want %d", ErrConfigurationMismatch, len(c.Corners), CornerCount)
	}
	if len(c.Patches) != PatchCount {
		return fmt.Errorf("%w: %d patches, want %d", ErrConfigurationMismatch, len(c.Patches), PatchCount)
	}

	for i, p := range c.Corners {
		if !c.contains(p.X, p.Y) {
			return fmt.Errorf("%w: corner %d at %s outside %dx%d canvas", ErrOutOfBounds, i, p, c.Width, c.Height)
		}
	}

	w := c.SwatchHalfWidth
	for i, p := range c.Patches {
		ct := p.Centroid
		if !c.contains(ct.X-w, ct.Y-w) || !c.contains(ct.X+w, ct.Y+w) {
			return fmt.Errorf("%w: patch %d (%s) at %s with half-width %d exceeds %dx%d canvas",
				ErrOutOfBounds, i, p.Label, ct, w, c.Width, c.Height)
		}
	}

	return nil
}

func (c Config) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// definition is the on-disk chart definition. Besides the Config fields it
// accepts the parallel centroid/colour lists the native sources use.
type definition struct {
	Config
	Centroids  []Point    `json:"centroids,omitempty"`
	ColoursBGR [][3]uint8 `json:"colours_bgr,omitempty"`
	Labels     []string   `json:"labels,omitempty"`
}

// LoadConfig reads a JSON chart definition. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified chart definition, intended to be read
	if err != nil {
		return Config{}, fmt.Errorf("failed to read chart definition: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a JSON chart definition and validates it.
func ParseConfig(data []byte) (Config, error) {
	defaults := DefaultConfig()

	// Geometry lists start empty so decoded elements never inherit fields
	// from the default chart.
	def := definition{Config: defaults}
	def.Geometry = Geometry{}
	if err := json.Unmarshal(data, &def); err != nil {
		return Config{}, fmt.Errorf("failed to parse chart definition: %w", err)
	}
	if def.Corners == nil {
		def.Corners = defaults.Corners
	}
	if def.Patches == nil {
		def.Patches = defaults.Patches
	}

	if len(def.Centroids) != 0 || len(def.ColoursBGR) != 0 {
		colours := make([]colour.RGB, len(def.ColoursBGR))
		for i, c := range def.ColoursBGR {
			colours[i] = colour.FromBGR(c[0], c[1], c[2])
		}
		patches, err := NewPatches(def.Centroids, colours, def.Labels)
		if err != nil {
			return Config{}, err
		}
		def.Patches = patches
	}

	if err := def.Validate(); err != nil {
		return Config{}, err
	}
	return def.Config, nil
}

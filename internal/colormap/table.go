package colormap

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/jmylchreest/calref/internal/colour"
)

// ErrInvalidConfig is returned for an unusable table configuration.
var ErrInvalidConfig = errors.New("invalid colormap configuration")

// Triple is one table entry, channels in the table's channel order.
type Triple [3]uint8

// Table is a discrete colormap. Entry 0 is the favourable end of the scale.
type Table struct {
	Name     string
	Gradient string
	Order    colour.ChannelOrder
	Reversed bool
	Entries  []Triple
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.Entries)
}

// Colour returns entry i as an RGB colour.
func (t *Table) Colour(i int) colour.RGB {
	return t.Order.Invert(t.Entries[i])
}

// Index maps a scalar to an entry index the way the native pipeline does:
// truncate toward zero and clamp to the table.
func (t *Table) Index(value float64) int {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value >= float64(t.Len()-1) {
		return t.Len() - 1
	}
	return int(value)
}

// Label is the table name without its "colormap_" prefix.
func (t *Table) Label() string {
	return strings.TrimPrefix(t.Name, "colormap_")
}

// Config describes a table to generate.
type Config struct {
	// Name is the identifier used when the table is emitted as source.
	Name string `json:"name"`

	// Length is the number of entries.
	Length int `json:"length"`

	// DomainMin and DomainMax define the linear map from entry index to
	// gradient position: index i samples (i-DomainMin)/(DomainMax-DomainMin).
	DomainMin float64 `json:"domain_min"`
	DomainMax float64 `json:"domain_max"`

	// Gradient is the registered gradient name.
	Gradient string `json:"gradient"`

	// Order is the channel order of the emitted entries.
	Order colour.ChannelOrder `json:"order"`

	// Reverse flips the table so the gradient's high end becomes entry 0.
	Reverse bool `json:"reverse"`
}

// DefaultConfig returns the 60-entry green-yellow-red error scale used by
// the native pipeline: RdYlGn sampled over [0, 60], stored BGR and reversed
// so entry 0 is green.
func DefaultConfig() Config {
	return Config{
		Name:      "colormap_GrYlRd",
		Length:    60,
		DomainMin: 0,
		DomainMax: 60,
		Gradient:  "RdYlGn",
		Order:     colour.OrderBGR,
		Reverse:   true,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Length < 1 {
		return fmt.Errorf("%w: length must be at least 1, got %d", ErrInvalidConfig, c.Length)
	}
	if math.IsNaN(c.DomainMin) || math.IsNaN(c.DomainMax) || math.IsInf(c.DomainMin, 0) || math.IsInf(c.DomainMax, 0) {
		return fmt.Errorf("%w: domain bounds must be finite", ErrInvalidConfig)
	}
	if c.DomainMax <= c.DomainMin {
		return fmt.Errorf("%w: domain max %g must exceed domain min %g", ErrInvalidConfig, c.DomainMax, c.DomainMin)
	}
	if err := c.Order.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Generate samples the configured gradient into a table. Channel reordering
// and reversal are applied independently of each other.
func Generate(cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grad, err := Lookup(cfg.Gradient)
	if err != nil {
		return nil, err
	}

	return Sample(grad, cfg)
}

// Sample builds a table from an explicit gradient, ignoring cfg.Gradient.
func Sample(grad Gradient, cfg Config) (*Table, error) {
	if grad == nil {
		return nil, fmt.Errorf("%w: nil gradient", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	span := cfg.DomainMax - cfg.DomainMin

	entries := make([]Triple, cfg.Length)
	for i := range entries {
		r, g, b := grad.At((float64(i) - cfg.DomainMin) / span)
		rgb := colour.RGB{R: quantize(r), G: quantize(g), B: quantize(b)}
		entries[i] = cfg.Order.Apply(rgb)
	}

	if cfg.Reverse {
		slices.Reverse(entries)
	}

	return &Table{
		Name:     cfg.Name,
		Gradient: grad.Name(),
		Order:    cfg.Order,
		Reversed: cfg.Reverse,
		Entries:  entries,
	}, nil
}

// quantize scales a [0, 1] channel to 0-255 by truncation, not rounding,
// so tables match ones already compiled into the native pipeline.
func quantize(v float64) uint8 {
	return uint8(clampUnit(v) * 255.0)
}

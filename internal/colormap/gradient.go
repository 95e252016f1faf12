// Package colormap builds discrete colormap lookup tables by sampling a
// continuous colour gradient and renders them as source-embeddable literals.
package colormap

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/jmylchreest/calref/internal/colour"
)

// ErrUnknownGradient is returned when a gradient name is not registered.
var ErrUnknownGradient = errors.New("unknown gradient")

// DefaultLUTSize is the resolution of segmented gradients. It matches the
// lookup size used by common plotting libraries, which keeps generated
// tables bit-compatible with ones produced there.
const DefaultLUTSize = 256

// Gradient is a continuous colour scale over [0, 1]. Channels are returned
// in red, green, blue order in the range [0, 1].
type Gradient interface {
	Name() string
	At(t float64) (r, g, b float64)
}

// Segmented is a gradient stored as a lookup table built by linear
// interpolation between evenly spaced colour stops.
type Segmented struct {
	name string
	lut  [][3]float64
}

// NewSegmented builds a segmented gradient with lutSize entries from the
// given stops.
func NewSegmented(name string, stops []colour.RGB, lutSize int) (*Segmented, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("gradient %s needs at least 2 stops, got %d", name, len(stops))
	}
	if lutSize < 2 {
		return nil, fmt.Errorf("gradient %s needs a lookup size of at least 2, got %d", name, lutSize)
	}

	// Stop positions and sample positions are computed the way an evenly
	// spaced linspace is, then scaled to the table size.
	x := linspace(len(stops))
	for i := range x {
		x[i] *= float64(lutSize - 1)
	}
	xind := linspace(lutSize)
	for i := range xind {
		xind[i] *= float64(lutSize - 1)
	}

	lut := make([][3]float64, lutSize)
	for ch := 0; ch < 3; ch++ {
		y := make([]float64, len(stops))
		for i, s := range stops {
			y[i] = float64(channel(s, ch)) / 255.0
		}

		lut[0][ch] = y[0]
		lut[lutSize-1][ch] = y[len(y)-1]
		for i := 1; i < lutSize-1; i++ {
			ind := max(sort.SearchFloat64s(x, xind[i]), 1)
			distance := (xind[i] - x[ind-1]) / (x[ind] - x[ind-1])
			// The explicit conversion keeps the compiler from fusing the
			// multiply and add, which would change the rounding.
			v := float64(distance*(y[ind]-y[ind-1])) + y[ind-1]
			lut[i][ch] = clampUnit(v)
		}
	}

	return &Segmented{name: name, lut: lut}, nil
}

// Name returns the gradient name.
func (s *Segmented) Name() string {
	return s.name
}

// Len returns the number of lookup entries.
func (s *Segmented) Len() int {
	return len(s.lut)
}

// At returns the lookup entry for t. Values are truncated to an entry index;
// t == 1 maps to the last entry and values outside [0, 1] clamp.
func (s *Segmented) At(t float64) (r, g, b float64) {
	n := len(s.lut)
	xa := t * float64(n)

	var idx int
	switch {
	case math.IsNaN(xa) || xa < 0:
		idx = 0
	case xa >= float64(n):
		idx = n - 1
	default:
		idx = int(xa)
	}

	e := s.lut[idx]
	return e[0], e[1], e[2]
}

// linspace returns n evenly spaced values over [0, 1], with the last value
// pinned to exactly 1.
func linspace(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	step := 1.0 / float64(n-1)
	for i := range out {
		out[i] = float64(i) * step
	}
	out[n-1] = 1.0
	return out
}

func channel(c colour.RGB, ch int) uint8 {
	switch ch {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

type registration struct {
	name string
	fn   func() (Gradient, error)
}

// registry maps lower-cased gradient names to constructors.
var registry = map[string]registration{}

func register(name string, fn func() (Gradient, error)) {
	registry[strings.ToLower(name)] = registration{name: name, fn: fn}
}

// Lookup returns the named gradient. Names are case-insensitive.
func Lookup(name string) (Gradient, error) {
	reg, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownGradient, name, strings.Join(Names(), ", "))
	}
	return reg.fn()
}

// Names returns the registered gradient names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, reg := range registry {
		names = append(names, reg.name)
	}
	slices.Sort(names)
	return names
}

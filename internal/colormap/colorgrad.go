package colormap

import (
	"github.com/mazznoer/colorgrad"
)

// gradPrefix namespaces gradients backed by colorgrad presets. They use
// spline interpolation, so tables differ slightly from segmented ones.
const gradPrefix = "colorgrad:"

var gradPresets = map[string]func() colorgrad.Gradient{
	"rdylgn":   colorgrad.RdYlGn,
	"rdylbu":   colorgrad.RdYlBu,
	"spectral": colorgrad.Spectral,
	"ylorrd":   colorgrad.YlOrRd,
	"viridis":  colorgrad.Viridis,
	"inferno":  colorgrad.Inferno,
	"magma":    colorgrad.Magma,
	"plasma":   colorgrad.Plasma,
	"cividis":  colorgrad.Cividis,
	"turbo":    colorgrad.Turbo,
}

type presetGradient struct {
	name string
	grad colorgrad.Gradient
}

func (p presetGradient) Name() string {
	return p.name
}

func (p presetGradient) At(t float64) (r, g, b float64) {
	c := p.grad.At(t)
	return c.R, c.G, c.B
}

func init() {
	for name, fn := range gradPresets {
		name, fn := name, fn
		register(gradPrefix+name, func() (Gradient, error) {
			return presetGradient{name: gradPrefix + name, grad: fn()}, nil
		})
	}
}

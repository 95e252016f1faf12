package chart

// markerColour is the crosshair colour. White is the same in every channel
// order.
var markerColour = [3]uint8{255, 255, 255}

const opaque = 255

// Generate draws the reference chart described by cfg. It returns the canvas
// and a copy of the geometry used to build it. The configuration is fully
// validated before anything is drawn.
//
// Corner crosshairs are drawn first, then swatches in patch order; later
// writes overwrite earlier ones outright.
func Generate(cfg Config) (*Image, Geometry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Geometry{}, err
	}

	img := NewImage(cfg.Width, cfg.Height, cfg.Order)

	for _, p := range cfg.Corners {
		img.drawCrosshair(p, cfg.MarkerHalfLength)
	}

	for _, patch := range cfg.Patches {
		img.fillSquare(patch.Centroid, cfg.SwatchHalfWidth, cfg.Order.Apply(patch.Colour))
	}

	return img, cfg.Geometry.Clone(), nil
}

// drawCrosshair draws a one pixel wide horizontal and vertical segment
// covering [c-half, c+half], clamped to the canvas.
func (m *Image) drawCrosshair(c Point, half int) {
	x0, x1 := clamp(c.X-half, 0, m.Width-1), clamp(c.X+half, 0, m.Width-1)
	y0, y1 := clamp(c.Y-half, 0, m.Height-1), clamp(c.Y+half, 0, m.Height-1)

	for x := x0; x <= x1; x++ {
		m.set(x, c.Y, markerColour, opaque)
	}
	for y := y0; y <= y1; y++ {
		m.set(c.X, y, markerColour, opaque)
	}
}

// fillSquare fills [c-half, c+half] on both axes. Callers validate bounds.
func (m *Image) fillSquare(c Point, half int, px [3]uint8) {
	for y := c.Y - half; y <= c.Y+half; y++ {
		for x := c.X - half; x <= c.X+half; x++ {
			m.set(x, y, px, opaque)
		}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

package chart

import (
	"image"
	"image/color"

	"github.com/jmylchreest/calref/internal/colour"
)

// BytesPerPixel is the size of one canvas pixel: three colour channels in
// the canvas channel order followed by alpha.
const BytesPerPixel = 4

// Image is a generated chart canvas. Pix holds rows top to bottom, each pixel
// stored as the three colour channels in Order followed by alpha, so a BGR
// canvas is laid out exactly like an OpenCV CV_8UC4 (BGRA) buffer.
type Image struct {
	Width  int
	Height int
	Order  colour.ChannelOrder
	Pix    []byte
}

// NewImage allocates a fully transparent canvas.
func NewImage(width, height int, order colour.ChannelOrder) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Order:  order,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

func (m *Image) offset(x, y int) int {
	return (y*m.Width + x) * BytesPerPixel
}

// PixelAt returns the raw stored bytes of a pixel.
func (m *Image) PixelAt(x, y int) [BytesPerPixel]byte {
	var px [BytesPerPixel]byte
	copy(px[:], m.Pix[m.offset(x, y):])
	return px
}

func (m *Image) set(x, y int, c [3]uint8, alpha uint8) {
	i := m.offset(x, y)
	m.Pix[i+0] = c[0]
	m.Pix[i+1] = c[1]
	m.Pix[i+2] = c[2]
	m.Pix[i+3] = alpha
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements image.Image, translating the stored channel order back to
// RGB so encoders see the true colours.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(m.Bounds())) {
		return color.NRGBA{}
	}
	px := m.PixelAt(x, y)
	rgb := m.Order.Invert([3]uint8{px[0], px[1], px[2]})
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: px[3]}
}

// NRGBA converts the canvas to a standard library image.
func (m *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(m.Bounds())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			px := m.PixelAt(x, y)
			rgb := m.Order.Invert([3]uint8{px[0], px[1], px[2]})
			i := out.PixOffset(x, y)
			out.Pix[i+0] = rgb.R
			out.Pix[i+1] = rgb.G
			out.Pix[i+2] = rgb.B
			out.Pix[i+3] = px[3]
		}
	}
	return out
}

//go:build gocv

package chart

import (
	"fmt"

	"github.com/jmylchreest/calref/internal/colour"
	"gocv.io/x/gocv"
)

// ToMat copies the canvas into an OpenCV CV_8UC4 matrix. Only BGR canvases
// can be converted, since that is the layout OpenCV assumes for four-channel
// images. The caller must Close the returned Mat.
func (m *Image) ToMat() (gocv.Mat, error) {
	if m.Order != colour.OrderBGR {
		return gocv.Mat{}, fmt.Errorf("%w: OpenCV expects bgr canvases, got %s", ErrConfigurationMismatch, m.Order)
	}

	pix := append([]byte(nil), m.Pix...)
	mat, err := gocv.NewMatFromBytes(m.Height, m.Width, gocv.MatTypeCV8UC4, pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to create Mat: %w", err)
	}
	return mat, nil
}

// Package chart generates the synthetic colour-calibration reference chart:
// a canvas carrying fiducial crosshairs at known corner positions and a grid
// of ground-truth colour swatches, together with the geometry describing it.
package chart

import (
	"fmt"

	"github.com/jmylchreest/calref/internal/colour"
)

const (
	// CornerCount is the number of fiducial corner markers on a chart.
	CornerCount = 4

	// PatchCount is the number of colour swatches on a chart.
	PatchCount = 24
)

// Point is an integer pixel coordinate on the canvas.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ColorPatch binds a swatch centroid to its ground-truth colour. Keeping both
// in one record means the index of a patch always refers to the same physical
// swatch for both position and colour.
type ColorPatch struct {
	Label    string     `json:"label,omitempty"`
	Centroid Point      `json:"centroid"`
	Colour   colour.RGB `json:"colour"`
}

// Geometry describes the layout of a chart.
type Geometry struct {
	// Corners are the fiducial marker positions, clockwise from top-left.
	// Consumers index them by position.
	Corners []Point `json:"corners"`

	// Patches are the swatches in row-major order.
	Patches []ColorPatch `json:"patches"`
}

// Centroids returns the patch centroids in patch order.
func (g Geometry) Centroids() []Point {
	out := make([]Point, len(g.Patches))
	for i, p := range g.Patches {
		out[i] = p.Centroid
	}
	return out
}

// Colours returns the patch colours in patch order.
func (g Geometry) Colours() []colour.RGB {
	out := make([]colour.RGB, len(g.Patches))
	for i, p := range g.Patches {
		out[i] = p.Colour
	}
	return out
}

// Clone returns a deep copy of g.
func (g Geometry) Clone() Geometry {
	return Geometry{
		Corners: append([]Point(nil), g.Corners...),
		Patches: append([]ColorPatch(nil), g.Patches...),
	}
}

// NewPatches zips parallel centroid, colour and label lists into patches.
// Labels are optional; when given they must match the other lists in length.
func NewPatches(centroids []Point, colours []colour.RGB, labels []string) ([]ColorPatch, error) {
	if len(centroids) != len(colours) {
		return nil, fmt.Errorf("%w: %d centroids but %d colours", ErrConfigurationMismatch, len(centroids), len(colours))
	}
	if len(labels) != 0 && len(labels) != len(centroids) {
		return nil, fmt.Errorf("%w: %d centroids but %d labels", ErrConfigurationMismatch, len(centroids), len(labels))
	}

	patches := make([]ColorPatch, len(centroids))
	for i := range centroids {
		patches[i] = ColorPatch{Centroid: centroids[i], Colour: colours[i]}
		if len(labels) != 0 {
			patches[i].Label = labels[i]
		}
	}
	return patches, nil
}

// gridCentroids lays out centroids row-major from column and row positions.
func gridCentroids(xs, ys []int) []Point {
	points := make([]Point, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			points = append(points, Point{X: x, Y: y})
		}
	}
	return points
}

// ColorCheckerLabels names the ColorChecker Classic swatches in row-major order.
var ColorCheckerLabels = []string{
	"Dark Skin", "Light Skin", "Blue Sky", "Foliage", "Blue Flower", "Bluish Green",
	"Orange", "Purple Red", "Moderate Red", "Purple", "Yellow Green", "Orange Yellow",
	"Blue", "Green", "Red", "Yellow", "Magenta", "Cyan",
	"White", "Neutral 8", "Neutral 6.5", "Neutral 5", "Neutral 3.5", "Black",
}

// colorCheckerBGR holds the ColorChecker Classic ground truth in the
// native pipeline's BGR notation.
var colorCheckerBGR = [PatchCount][3]uint8{
	{68, 82, 115}, {130, 150, 192}, {157, 122, 98}, {67, 108, 87}, {177, 128, 133}, {170, 189, 103},
	{44, 126, 214}, {166, 91, 80}, {99, 90, 193}, {108, 60, 94}, {64, 188, 157}, {46, 163, 224},
	{150, 61, 56}, {73, 148, 70}, {60, 54, 175}, {31, 199, 231}, {149, 86, 187}, {161, 133, 8},
	{242, 243, 243}, {200, 200, 200}, {160, 160, 160}, {121, 122, 122}, {85, 85, 85}, {52, 52, 52},
}

// ColorCheckerGeometry returns the 608x512 ColorChecker Classic layout.
func ColorCheckerGeometry() Geometry {
	colours := make([]colour.RGB, len(colorCheckerBGR))
	for i, c := range colorCheckerBGR {
		colours[i] = colour.FromBGR(c[0], c[1], c[2])
	}

	centroids := gridCentroids(
		[]int{46, 150, 252, 355, 458, 561},
		[]int{103, 205, 307, 409},
	)

	// Lengths are fixed above, so NewPatches cannot fail.
	patches, _ := NewPatches(centroids, colours, ColorCheckerLabels)

	return Geometry{
		Corners: []Point{{0, 57}, {607, 57}, {607, 455}, {0, 455}},
		Patches: patches,
	}
}

// ArucoCorners returns the ArUco region-of-interest corners the native
// pipeline registers captured frames against.
func ArucoCorners() []Point {
	return []Point{{0, 0}, {607, 0}, {607, 511}, {0, 511}}
}

package colormap

import "github.com/jmylchreest/calref/internal/colour"

// ColorBrewer 11-class diverging schemes.
var brewer = map[string][]colour.RGB{
	"RdYlGn": {
		{R: 165, G: 0, B: 38}, {R: 215, G: 48, B: 39}, {R: 244, G: 109, B: 67}, {R: 253, G: 174, B: 97},
		{R: 254, G: 224, B: 139}, {R: 255, G: 255, B: 191}, {R: 217, G: 239, B: 139}, {R: 166, G: 217, B: 106},
		{R: 102, G: 189, B: 99}, {R: 26, G: 152, B: 80}, {R: 0, G: 104, B: 55},
	},
	"RdYlBu": {
		{R: 165, G: 0, B: 38}, {R: 215, G: 48, B: 39}, {R: 244, G: 109, B: 67}, {R: 253, G: 174, B: 97},
		{R: 254, G: 224, B: 144}, {R: 255, G: 255, B: 191}, {R: 224, G: 243, B: 248}, {R: 171, G: 217, B: 233},
		{R: 116, G: 173, B: 209}, {R: 69, G: 117, B: 180}, {R: 49, G: 54, B: 149},
	},
	"Spectral": {
		{R: 158, G: 1, B: 66}, {R: 213, G: 62, B: 79}, {R: 244, G: 109, B: 67}, {R: 253, G: 174, B: 97},
		{R: 254, G: 224, B: 139}, {R: 255, G: 255, B: 191}, {R: 230, G: 245, B: 152}, {R: 171, G: 221, B: 164},
		{R: 102, G: 194, B: 165}, {R: 50, G: 136, B: 189}, {R: 94, G: 79, B: 162},
	},
	"RdBu": {
		{R: 103, G: 0, B: 31}, {R: 178, G: 24, B: 43}, {R: 214, G: 96, B: 77}, {R: 244, G: 165, B: 130},
		{R: 253, G: 219, B: 199}, {R: 247, G: 247, B: 247}, {R: 209, G: 229, B: 240}, {R: 146, G: 197, B: 222},
		{R: 67, G: 147, B: 195}, {R: 33, G: 102, B: 172}, {R: 5, G: 48, B: 97},
	},
}

func init() {
	for name, stops := range brewer {
		name, stops := name, stops
		register(name, func() (Gradient, error) {
			return NewSegmented(name, stops, DefaultLUTSize)
		})
	}
}

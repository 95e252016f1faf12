package colour

import (
	"fmt"
	"strings"
)

// ChannelOrder is the position of red, green and blue within a stored
// triple. Consumers index triples by position, so the order is always
// carried explicitly alongside the data it describes.
type ChannelOrder string

const (
	// OrderBGR is the OpenCV convention used by the native calibration
	// pipeline (cv::Scalar, CV_8UC3/CV_8UC4 buffers).
	OrderBGR ChannelOrder = "bgr"

	// OrderRGB is the conventional red, green, blue order.
	OrderRGB ChannelOrder = "rgb"
)

// Orders lists the supported channel orders.
func Orders() []ChannelOrder {
	return []ChannelOrder{OrderBGR, OrderRGB}
}

// Validate reports whether o is a supported channel order.
func (o ChannelOrder) Validate() error {
	switch o {
	case OrderBGR, OrderRGB:
		return nil
	default:
		return fmt.Errorf("unsupported channel order: %q (supported: bgr, rgb)", string(o))
	}
}

// Apply lays out c in the channel order o.
func (o ChannelOrder) Apply(c RGB) [3]uint8 {
	if o == OrderBGR {
		return [3]uint8{c.B, c.G, c.R}
	}
	return [3]uint8{c.R, c.G, c.B}
}

// Invert reads a triple stored in channel order o back into an RGB.
func (o ChannelOrder) Invert(t [3]uint8) RGB {
	if o == OrderBGR {
		return RGB{R: t[2], G: t[1], B: t[0]}
	}
	return RGB{R: t[0], G: t[1], B: t[2]}
}

// String implements pflag.Value.
func (o ChannelOrder) String() string {
	return string(o)
}

// Set implements pflag.Value.
func (o *ChannelOrder) Set(s string) error {
	v := ChannelOrder(strings.ToLower(strings.TrimSpace(s)))
	if err := v.Validate(); err != nil {
		return err
	}
	*o = v
	return nil
}

// UnmarshalText accepts the same spellings as the --order flag, so chart
// and colormap definitions may write "BGR" or "bgr".
func (o *ChannelOrder) UnmarshalText(text []byte) error {
	return o.Set(string(text))
}

// Type implements pflag.Value.
func (o *ChannelOrder) Type() string {
	return "order"
}

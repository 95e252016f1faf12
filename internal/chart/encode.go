package chart

import (
	"fmt"
	"image/png"
	"io"

	"github.com/jmylchreest/calref/internal/util"
)

// EncodePNG writes the canvas as a lossless 8-bit RGBA PNG. Encoding is
// deterministic: the same canvas always produces the same bytes.
func EncodePNG(w io.Writer, img *Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img.NRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WritePNG encodes the canvas to path. On failure no file is left at path.
func WritePNG(path string, img *Image) error {
	return util.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		return EncodePNG(w, img)
	})
}

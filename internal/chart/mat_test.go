//go:build gocv

package chart

import "testing"

func TestToMat(t *testing.T) {
	cfg := DefaultConfig()
	img, _, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	mat, err := img.ToMat()
	if err != nil {
		t.Fatalf("ToMat() error = %v", err)
	}
	defer mat.Close()

	if mat.Rows() != cfg.Height || mat.Cols() != cfg.Width || mat.Channels() != 4 {
		t.Fatalf("Mat is %dx%dx%d, want %dx%dx4", mat.Cols(), mat.Rows(), mat.Channels(), cfg.Width, cfg.Height)
	}

	for i, p := range cfg.Patches {
		v := mat.GetVecbAt(p.Centroid.Y, p.Centroid.X)
		want := cfg.Order.Apply(p.Colour)
		if v[0] != want[0] || v[1] != want[1] || v[2] != want[2] || v[3] != 255 {
			t.Errorf("patch %d: Mat pixel = %v, want %v with alpha 255", i, v, want)
		}
	}
}

package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(1, 1, color.NRGBA{R: 115, G: 82, B: 68, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	writeTestPNG(t, path, 4, 3)

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(4, 3) {
		t.Errorf("Load() size = %v, want (4,3)", got)
	}

	got := color.NRGBAModel.Convert(img.At(1, 1)).(color.NRGBA)
	if want := (color.NRGBA{R: 115, G: 82, B: 68, A: 255}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	jpeg := filepath.Join(dir, "chart.jpg")
	if err := os.WriteFile(jpeg, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(dir, "missing.png")},
		{"directory", dir},
		{"lossy extension", jpeg},
		{"undecodable", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFileLoader().Load(tt.path); err == nil {
				t.Errorf("Load(%q) expected error", tt.path)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	writeTestPNG(t, path, 608, 512)

	w, h, err := Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 608 || h != 512 {
		t.Errorf("Dimensions() = %dx%d, want 608x512", w, h)
	}
}

func TestIsSupported(t *testing.T) {
	tests := map[string]bool{
		"a.png":  true,
		"a.PNG":  true,
		"a.webp": true,
		"a.jpg":  false,
		"a":      false,
	}
	for path, want := range tests {
		if got := IsSupported(path); got != want {
			t.Errorf("IsSupported(%q) = %v, want %v", path, got, want)
		}
	}
}

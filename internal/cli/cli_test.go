package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmylchreest/calref/internal/bundle"
	"github.com/jmylchreest/calref/internal/chart"
	"github.com/jmylchreest/calref/internal/colormap"
)

// execute runs the command tree with args and captures both streams.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "calref version ") {
		t.Errorf("version output = %q", out)
	}
}

func TestVerboseQuietExclusive(t *testing.T) {
	if _, _, err := execute(t, "-v", "-q", "version"); err == nil {
		t.Error("expected error when --verbose and --quiet are both set")
	}
}

func TestColormapDefault(t *testing.T) {
	out, _, err := execute(t, "colormap")
	if err != nil {
		t.Fatalf("colormap error = %v", err)
	}

	for _, want := range []string{
		"std::vector<cv::Scalar> colormap_GrYlRd =",
		"{  58, 111,   4 },",
		"{  38,   0, 165 },",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := strings.Count(out, "},"); n != 60 {
		t.Errorf("output has %d entries, want 60", n)
	}
}

func TestColormapJSONOrderRGB(t *testing.T) {
	out, _, err := execute(t, "colormap", "--format", "json", "--order", "rgb")
	if err != nil {
		t.Fatalf("colormap error = %v", err)
	}

	var doc struct {
		Order   string     `json:"order"`
		Entries [][3]uint8 `json:"entries"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.Order != "rgb" {
		t.Errorf("order = %q, want rgb", doc.Order)
	}
	if len(doc.Entries) != 60 {
		t.Fatalf("entries = %d, want 60", len(doc.Entries))
	}
	if want := [3]uint8{4, 111, 58}; doc.Entries[0] != want {
		t.Errorf("entries[0] = %v, want %v", doc.Entries[0], want)
	}
}

func TestColormapOutputFileMatchesStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colormap.hpp")

	stdout, _, err := execute(t, "colormap")
	if err != nil {
		t.Fatalf("colormap error = %v", err)
	}
	if _, _, err := execute(t, "colormap", "-o", path); err != nil {
		t.Fatalf("colormap -o error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != stdout {
		t.Error("file output differs from stdout output")
	}
}

func TestColormapErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown format", []string{"colormap", "--format", "yaml"}, colormap.ErrUnknownFormat},
		{"unknown gradient", []string{"colormap", "--gradient", "nope"}, colormap.ErrUnknownGradient},
		{"zero length", []string{"colormap", "--length", "0"}, colormap.ErrInvalidConfig},
		{"empty domain", []string{"colormap", "--domain-min", "5", "--domain-max", "5"}, colormap.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, _, err := execute(t, "colormap", "--order", "grb"); err == nil {
		t.Error("expected error for unsupported --order")
	}
}

func TestColormapPreview(t *testing.T) {
	_, stderr, err := execute(t, "colormap", "--preview", "--length", "12", "--domain-max", "12")
	if err != nil {
		t.Fatalf("colormap error = %v", err)
	}
	if lines := strings.Count(stderr, "\n"); lines != 2 {
		t.Errorf("preview has %d lines, want 2", lines)
	}
	if !strings.Contains(stderr, "11") {
		t.Error("preview missing label for the last entry")
	}
}

func TestColormapList(t *testing.T) {
	out, _, err := execute(t, "colormap", "list")
	if err != nil {
		t.Fatalf("colormap list error = %v", err)
	}
	for _, want := range []string{"RdYlGn", "colorgrad:turbo", "colorgrad", "cpp", "csv", "json"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q", want)
		}
	}
}

func TestColormapLookup(t *testing.T) {
	out, _, err := execute(t, "colormap", "lookup", "--", "0", "12.7", "59.9", "100", "-3")
	if err != nil {
		t.Fatalf("colormap lookup error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")[2:]
	want := []string{"0", "12", "59", "59", "0"}
	if len(lines) != len(want) {
		t.Fatalf("got %d rows, want %d", len(lines), len(want))
	}
	for i, line := range lines {
		if got := strings.Fields(line)[1]; got != want[i] {
			t.Errorf("row %d index = %s, want %s", i, got, want[i])
		}
	}

	if _, _, err := execute(t, "colormap", "lookup", "abc"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestChartGenerateAndVerify(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "chart.png")
	geom := filepath.Join(dir, "chart_geometry.hpp")

	_, stderr, err := execute(t, "-v", "chart", "generate", "-o", pngPath, "--geometry-out", geom)
	if err != nil {
		t.Fatalf("chart generate error = %v", err)
	}
	if !strings.Contains(stderr, "calref.chart") {
		t.Errorf("verbose log missing named logger, got %q", stderr)
	}

	data, err := os.ReadFile(geom)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "chartColorsRef") {
		t.Error("geometry file missing chartColorsRef")
	}

	out, _, err := execute(t, "chart", "verify", pngPath)
	if err != nil {
		t.Fatalf("chart verify error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Dark Skin") || strings.Contains(out, "MISMATCH") {
		t.Errorf("unexpected verify report:\n%s", out)
	}
}

func TestChartVerifyMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 608, 512))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out, _, err := execute(t, "chart", "verify", path)
	if !errors.Is(err, ErrVerifyFailed) {
		t.Fatalf("error = %v, want ErrVerifyFailed", err)
	}
	if !strings.Contains(out, "MISMATCH") {
		t.Error("report should flag mismatched patches")
	}
}

func TestChartVerifyWrongSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 64, 48))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out, _, err := execute(t, "chart", "verify", path)
	if !errors.Is(err, chart.ErrConfigurationMismatch) {
		t.Fatalf("error = %v, want ErrConfigurationMismatch", err)
	}
	if !strings.Contains(err.Error(), "64x48") {
		t.Errorf("error %q should report the image size", err)
	}
	if out != "" {
		t.Errorf("no report expected for a wrongly sized image, got:\n%s", out)
	}

	if _, _, err := execute(t, "chart", "verify", filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for a missing image")
	}
}

func TestChartGeometryJSON(t *testing.T) {
	out, _, err := execute(t, "chart", "geometry", "--format", "json")
	if err != nil {
		t.Fatalf("chart geometry error = %v", err)
	}

	got, err := chart.ParseConfig([]byte(out))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if diff := cmp.Diff(chart.DefaultConfig(), got); diff != "" {
		t.Errorf("geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestChartGeometryOverrides(t *testing.T) {
	out, _, err := execute(t, "chart", "geometry", "--format", "json", "--order", "rgb", "--aruco-corners")
	if err != nil {
		t.Fatalf("chart geometry error = %v", err)
	}

	got, err := chart.ParseConfig([]byte(out))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if got.Order != "rgb" {
		t.Errorf("order = %q, want rgb", got.Order)
	}
	if diff := cmp.Diff(chart.ArucoCorners(), got.Corners); diff != "" {
		t.Errorf("corners mismatch (-want +got):\n%s", diff)
	}
}

func TestChartGeometryPreview(t *testing.T) {
	_, stderr, err := execute(t, "chart", "geometry", "--preview")
	if err != nil {
		t.Fatalf("chart geometry error = %v", err)
	}
	if lines := strings.Count(stderr, "\n"); lines != chart.PatchCount {
		t.Errorf("preview has %d lines, want %d", lines, chart.PatchCount)
	}
	if !strings.Contains(stderr, "Dark Skin") || !strings.Contains(stderr, "#735244") {
		t.Errorf("preview missing first patch:\n%s", stderr)
	}
}

func TestChartGeometryUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "chart", "geometry", "--format", "yaml")
	if !errors.Is(err, chart.ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestBundleCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.tar.xz")

	if _, _, err := execute(t, "-q", "bundle", "-o", path); err != nil {
		t.Fatalf("bundle error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	entries, err := bundle.Read(f)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"chart.png", "chart_geometry.hpp", "chart.json", "colormap.hpp", "colormap.json"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("bundle entries mismatch (-want +got):\n%s", diff)
	}
}

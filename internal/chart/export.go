package chart

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
)

//go:embed *.tmpl
var templates embed.FS

// ErrUnknownFormat is returned for an unsupported geometry export format.
var ErrUnknownFormat = errors.New("unknown geometry format")

// GeometryFormats lists the supported geometry export formats.
func GeometryFormats() []string {
	return []string{"cpp", "json"}
}

type geometryRow struct {
	Labels string
	Values string
	Last   bool
}

type geometryData struct {
	Width     int
	Height    int
	Order     string
	Corners   string
	Centroids []geometryRow
	Colours   []geometryRow
}

// ExportGeometry renders the chart constants for the native pipeline. The
// "cpp" format reproduces the OpenCV declarations the pipeline compiles in;
// "json" writes a chart definition that LoadConfig reads back.
func ExportGeometry(w io.Writer, cfg Config, format string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal geometry: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write geometry: %w", err)
		}
		return nil
	case "cpp":
		return exportCpp(w, cfg)
	default:
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnknownFormat, format, strings.Join(GeometryFormats(), ", "))
	}
}

func exportCpp(w io.Writer, cfg Config) error {
	tmpl, err := template.ParseFS(templates, "geometry_cpp.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse geometry template: %w", err)
	}

	data := geometryData{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Order:   strings.ToUpper(cfg.Order.String()),
		Corners: joinPoints(cfg.Corners),
	}

	for start := 0; start < len(cfg.Patches); start += cfg.Columns {
		row := cfg.Patches[start:min(start+cfg.Columns, len(cfg.Patches))]
		last := start+cfg.Columns >= len(cfg.Patches)

		var points []Point
		var labels, values []string
		for _, p := range row {
			points = append(points, p.Centroid)
			labels = append(labels, fmt.Sprintf("%-14s", p.Label))
			t := cfg.Order.Apply(p.Colour)
			values = append(values, fmt.Sprintf("{%3d,%3d,%3d}", t[0], t[1], t[2]))
		}

		data.Centroids = append(data.Centroids, geometryRow{Values: joinPoints(points), Last: last})
		data.Colours = append(data.Colours, geometryRow{
			Labels: strings.TrimRight(strings.Join(labels, " "), " "),
			Values: strings.Join(values, ", "),
			Last:   last,
		})
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render geometry: %w", err)
	}
	return nil
}

func joinPoints(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("{%3d,%3d}", p.X, p.Y)
	}
	return strings.Join(parts, ", ")
}

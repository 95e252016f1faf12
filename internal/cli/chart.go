package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/calref/internal/chart"
	"github.com/jmylchreest/calref/internal/colour"
	"github.com/jmylchreest/calref/internal/image"
	"github.com/jmylchreest/calref/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrVerifyFailed is returned when an image does not match its chart.
var ErrVerifyFailed = errors.New("chart verification failed")

// chartOptions holds the flags shared by the chart subcommands.
type chartOptions struct {
	config string
	order  colour.ChannelOrder
	aruco  bool
}

func (o *chartOptions) register(fs *pflag.FlagSet) {
	o.order = colour.OrderBGR
	fs.StringVar(&o.config, "config", "", "JSON chart definition (default: built-in ColorChecker chart)")
	fs.Var(&o.order, "order", "channel order of the canvas and tables (bgr, rgb)")
	fs.BoolVar(&o.aruco, "aruco-corners", false, "use the ArUco ROI reference corners instead of the chart corners")
}

// resolve loads the chart configuration and applies flag overrides.
func (o *chartOptions) resolve(fs *pflag.FlagSet) (chart.Config, error) {
	cfg := chart.DefaultConfig()
	if o.config != "" {
		loaded, err := chart.LoadConfig(o.config)
		if err != nil {
			return chart.Config{}, err
		}
		cfg = loaded
	}
	if fs.Changed("order") {
		cfg.Order = o.order
	}
	if o.aruco {
		cfg.Corners = chart.ArucoCorners()
	}
	return cfg, cfg.Validate()
}

func newChartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Generate and verify the calibration chart reference",
		Long: `Generate the synthetic calibration chart: four crosshair markers at the
chart corners and 24 solid ground-truth swatches, plus the geometry table that
describes them.`,
	}

	cmd.AddCommand(newChartGenerateCmd(a))
	cmd.AddCommand(newChartVerifyCmd(a))
	cmd.AddCommand(newChartGeometryCmd(a))
	return cmd
}

func newChartGenerateCmd(a *app) *cobra.Command {
	var (
		opts           chartOptions
		output         string
		geometryOut    string
		geometryFormat string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the reference chart image",
		Long: `Render the reference chart image as a lossless PNG.

Examples:
  # Default 608x512 ColorChecker chart
  calref chart generate -o chart.png

  # Also emit the matching C++ constants
  calref chart generate -o chart.png --geometry-out chart_geometry.hpp

  # Alternate chart definition, RGB canvas
  calref chart generate --config mychart.json --order rgb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := a.logger.Named("chart")

			cfg, err := opts.resolve(cmd.Flags())
			if err != nil {
				return err
			}

			img, geom, err := chart.Generate(cfg)
			if err != nil {
				return fmt.Errorf("failed to generate chart: %w", err)
			}
			if err := chart.WritePNG(output, img); err != nil {
				return err
			}
			log.Info("wrote chart", "path", output, "width", img.Width, "height", img.Height,
				"order", img.Order, "patches", len(geom.Patches))

			if geometryOut == "" {
				return nil
			}
			var buf bytes.Buffer
			if err := chart.ExportGeometry(&buf, cfg, geometryFormat); err != nil {
				return err
			}
			if err := util.WriteFile(geometryOut, buf.Bytes(), 0o644); err != nil {
				return err
			}
			log.Info("wrote geometry", "path", geometryOut, "format", geometryFormat)
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "chart.png", "output PNG path")
	cmd.Flags().StringVar(&geometryOut, "geometry-out", "", "also write the geometry table to this path")
	cmd.Flags().StringVar(&geometryFormat, "geometry-format", "cpp",
		"geometry format ("+strings.Join(chart.GeometryFormats(), ", ")+")")
	return cmd
}

func newChartVerifyCmd(a *app) *cobra.Command {
	var (
		opts chartOptions
		half int
	)

	cmd := &cobra.Command{
		Use:   "verify <image>",
		Short: "Check a chart image against its ground truth",
		Long: `Decode a chart image (PNG or WebP lossless), average a square window at each
swatch centroid and compare it with the ground-truth colour. Corner markers are
checked for an opaque white centre pixel. Exits non-zero on any mismatch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := a.logger.Named("chart")

			cfg, err := opts.resolve(cmd.Flags())
			if err != nil {
				return err
			}

			w, h, err := image.Dimensions(args[0])
			if err != nil {
				return err
			}
			if w != cfg.Width || h != cfg.Height {
				return fmt.Errorf("%w: image is %dx%d, chart is %dx%d",
					chart.ErrConfigurationMismatch, w, h, cfg.Width, cfg.Height)
			}

			img, err := image.NewFileLoader().Load(args[0])
			if err != nil {
				return err
			}
			log.Debug("loaded image", "path", args[0], "bounds", img.Bounds())

			report, err := chart.Verify(img, cfg, half)
			if err != nil {
				return err
			}

			table := NewTable("#", "Label", "Want", "Got", "Result")
			for _, p := range report.Patches {
				table.AddRow(strconv.Itoa(p.Index), p.Label, p.Want.String(), p.Got.String(), result(p.OK()))
			}
			for _, m := range report.Markers {
				table.AddRow("c"+strconv.Itoa(m.Index), "marker "+m.Corner.String(), "", "", result(m.OK))
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())

			if !report.OK() {
				return fmt.Errorf("%w: %d of %d checks failed", ErrVerifyFailed,
					report.Failures(), len(report.Patches)+len(report.Markers))
			}
			log.Info("chart verified", "path", args[0], "patches", len(report.Patches), "markers", len(report.Markers))
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().IntVar(&half, "sample-half-width", chart.DefaultSampleHalfWidth,
		"half-width of the averaged window around each centroid")
	return cmd
}

func newChartGeometryCmd(a *app) *cobra.Command {
	var (
		opts    chartOptions
		format  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print the chart geometry constants",
		Long: `Print the chart corners, swatch centroids and ground-truth colours.
The cpp format matches the declarations compiled into the native consumer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			a.logger.Named("chart").Debug("exporting geometry", "format", format, "order", cfg.Order)
			if preview {
				for _, p := range cfg.Patches {
					fmt.Fprintln(cmd.ErrOrStderr(), colour.FormatWithLabel(p.Colour, p.Label, previewWidth))
				}
			}
			return chart.ExportGeometry(cmd.OutOrStdout(), cfg, format)
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "cpp", "output format ("+strings.Join(chart.GeometryFormats(), ", ")+")")
	cmd.Flags().BoolVar(&preview, "preview", false, "render the swatch colours on stderr")
	return cmd
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "MISMATCH"
}

package cli

import (
	"bytes"

	"github.com/jmylchreest/calref/internal/bundle"
	"github.com/jmylchreest/calref/internal/chart"
	"github.com/jmylchreest/calref/internal/colormap"
	"github.com/spf13/cobra"
)

func newBundleCmd(a *app) *cobra.Command {
	var (
		chartOpts    chartOptions
		colormapOpts colormapOptions
		output       string
	)

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Package every reference artifact into one tar.xz archive",
		Long: `Generate the chart image, its geometry (C++ and JSON) and the colormap table
(C++ and JSON) and pack them into a single xz-compressed tar archive.

Example:
  calref bundle -o refs.tar.xz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := a.logger.Named("bundle")

			cfg, err := chartOpts.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			entries, err := buildEntries(cfg, colormapOpts.cfg)
			if err != nil {
				return err
			}
			if err := bundle.WriteFile(output, entries); err != nil {
				return err
			}

			for _, e := range entries {
				log.Debug("bundled", "name", e.Name, "bytes", len(e.Data))
			}
			log.Info("wrote bundle", "path", output, "entries", len(entries))
			return nil
		},
	}

	chartOpts.register(cmd.Flags())
	// Chart and colormap share --order; the colormap follows the chart's.
	colormapOpts.cfg = colormap.DefaultConfig()
	cmd.Flags().StringVar(&colormapOpts.cfg.Gradient, "gradient", colormapOpts.cfg.Gradient, "colormap gradient")
	cmd.Flags().IntVar(&colormapOpts.cfg.Length, "length", colormapOpts.cfg.Length, "colormap entries")
	cmd.Flags().StringVarP(&output, "output", "o", "refs.tar.xz", "output archive path")
	return cmd
}

// buildEntries renders every artifact in memory, in a fixed order.
func buildEntries(cfg chart.Config, cmCfg colormap.Config) ([]bundle.Entry, error) {
	cmCfg.Order = cfg.Order

	img, _, err := chart.Generate(cfg)
	if err != nil {
		return nil, err
	}
	var png bytes.Buffer
	if err := chart.EncodePNG(&png, img); err != nil {
		return nil, err
	}
	entries := []bundle.Entry{{Name: "chart.png", Data: png.Bytes()}}

	for _, g := range []struct{ name, format string }{
		{"chart_geometry.hpp", "cpp"},
		{"chart.json", "json"},
	} {
		var buf bytes.Buffer
		if err := chart.ExportGeometry(&buf, cfg, g.format); err != nil {
			return nil, err
		}
		entries = append(entries, bundle.Entry{Name: g.name, Data: buf.Bytes()})
	}

	table, err := colormap.Generate(cmCfg)
	if err != nil {
		return nil, err
	}
	registry := colormap.DefaultRegistry()
	for _, c := range []struct{ name, format string }{
		{"colormap.hpp", "cpp"},
		{"colormap.json", "json"},
	} {
		f, err := registry.Get(c.format)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := f.Format(&buf, table); err != nil {
			return nil, err
		}
		entries = append(entries, bundle.Entry{Name: c.name, Data: buf.Bytes()})
	}

	return entries, nil
}

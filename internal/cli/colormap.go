package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/calref/internal/colormap"
	"github.com/jmylchreest/calref/internal/colour"
	"github.com/jmylchreest/calref/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	previewColumns = 10
	previewWidth   = 5
)

// colormapOptions holds the table configuration flags.
type colormapOptions struct {
	cfg colormap.Config
}

func (o *colormapOptions) register(fs *pflag.FlagSet) {
	o.cfg = colormap.DefaultConfig()
	fs.StringVar(&o.cfg.Name, "name", o.cfg.Name, "identifier of the emitted table")
	fs.IntVar(&o.cfg.Length, "length", o.cfg.Length, "number of entries")
	fs.StringVar(&o.cfg.Gradient, "gradient", o.cfg.Gradient, "gradient to sample (see 'calref colormap list')")
	fs.Var(&o.cfg.Order, "order", "channel order of the entries (bgr, rgb)")
	fs.BoolVar(&o.cfg.Reverse, "reverse", o.cfg.Reverse, "reverse the table so the gradient's high end is entry 0")
	fs.Float64Var(&o.cfg.DomainMin, "domain-min", o.cfg.DomainMin, "value mapped to the start of the gradient")
	fs.Float64Var(&o.cfg.DomainMax, "domain-max", o.cfg.DomainMax, "value mapped to the end of the gradient")
}

func newColormapCmd(a *app) *cobra.Command {
	var (
		opts    colormapOptions
		format  string
		output  string
		preview bool
	)
	registry := colormap.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "colormap",
		Short: "Generate the error colormap lookup table",
		Long: `Generate a discretised colormap as a source-embeddable literal.

The defaults reproduce colormap_GrYlRd: 60 entries of RdYlGn sampled over
[0, 60], stored BGR and reversed so entry 0 is green and entry 59 is red.

Examples:
  # C++ table for the native pipeline
  calref colormap > colormap.hpp

  # Same values as JSON, in RGB order
  calref colormap --format json --order rgb

  # A longer table from a colorgrad preset
  calref colormap --gradient colorgrad:turbo --length 256 --domain-max 256 -o turbo.hpp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := a.logger.Named("colormap")

			f, err := registry.Get(format)
			if err != nil {
				return err
			}
			table, err := colormap.Generate(opts.cfg)
			if err != nil {
				return err
			}
			log.Debug("generated table", "name", table.Name, "gradient", table.Gradient,
				"entries", table.Len(), "order", table.Order, "reversed", table.Reversed)

			if preview {
				writePreview(cmd.ErrOrStderr(), table, log)
			}

			if output == "" {
				return f.Format(cmd.OutOrStdout(), table)
			}

			var buf bytes.Buffer
			if err := f.Format(&buf, table); err != nil {
				return err
			}
			if err := util.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			log.Info("wrote colormap", "path", output, "format", format, "entries", table.Len())
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "cpp", "output format ("+strings.Join(registry.List(), ", ")+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&preview, "preview", false, "render the table as colour swatches on stderr")

	cmd.AddCommand(newColormapListCmd(registry))
	cmd.AddCommand(newColormapLookupCmd(a))
	return cmd
}

// writePreview renders swatches to w, skipping terminals that cannot show them.
func writePreview(w io.Writer, table *colormap.Table, log hclog.Logger) {
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		log.Warn("preview skipped, output is not a terminal")
		return
	}

	var b strings.Builder
	for i, n := 0, table.Len(); i < n; i++ {
		b.WriteString(colour.PreviewWithText(table.Colour(i), strconv.Itoa(i), previewWidth))
		if (i+1)%previewColumns == 0 || i == table.Len()-1 {
			b.WriteString("\n")
		}
	}
	fmt.Fprint(w, b.String())
}

func newColormapListCmd(registry *colormap.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available gradients and output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gradients := NewTable("Gradient", "Source")
			for _, name := range colormap.Names() {
				source := "colorbrewer"
				if strings.HasPrefix(name, "colorgrad:") {
					source = "colorgrad"
				}
				gradients.AddRow(name, source)
			}

			formats := NewTable("Format", "Description")
			for _, name := range registry.List() {
				f, err := registry.Get(name)
				if err != nil {
					return err
				}
				formats.AddRow(name, f.Description())
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, gradients.Render())
			fmt.Fprintln(out)
			fmt.Fprint(out, formats.Render())
			return nil
		},
	}
}

func newColormapLookupCmd(a *app) *cobra.Command {
	var opts colormapOptions

	cmd := &cobra.Command{
		Use:   "lookup <value>...",
		Short: "Show the table entry the native pipeline picks for each value",
		Long: `Map scalar values to table entries with the native lookup rule: truncate
toward zero, then clamp to the table bounds.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := colormap.Generate(opts.cfg)
			if err != nil {
				return err
			}

			out := NewTable("Value", "Index", "Entry", "Colour")
			for _, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", arg, err)
				}
				i := table.Index(v)
				e := table.Entries[i]
				out.AddRow(arg, strconv.Itoa(i),
					fmt.Sprintf("%s{%d, %d, %d}", table.Order, e[0], e[1], e[2]), table.Colour(i).Hex())
			}
			a.logger.Named("colormap").Debug("lookup", "values", len(args), "entries", table.Len())

			fmt.Fprint(cmd.OutOrStdout(), out.Render())
			return nil
		},
	}

	opts.register(cmd.Flags())
	return cmd
}

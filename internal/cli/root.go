// Package cli provides the command-line interface for calref.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/calref/internal/version"
	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand.
type app struct {
	verbose bool
	quiet   bool
	logger  hclog.Logger
}

// NewRootCmd builds the calref command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "calref",
		Short: "Reference asset generator for colour calibration",
		Long: `calref produces the frozen reference assets of the colour-calibration
pipeline: the synthetic calibration chart with its geometry and ground-truth
colours, and the discretised colormap used to render per-patch error.

Generated artifacts are written to stdout or files; diagnostics go to stderr.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newChartCmd(a))
	rootCmd.AddCommand(newColormapCmd(a))
	rootCmd.AddCommand(newBundleCmd(a))

	return rootCmd
}

// newLogger returns the calref logger. Quiet keeps errors only.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "calref",
		Output: w,
		Level:  level,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

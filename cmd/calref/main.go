// calref generates the frozen reference assets of a colour-calibration
// pipeline: the synthetic calibration chart and the error colormap table.
package main

import (
	"fmt"
	"os"

	"github.com/jmylchreest/calref/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

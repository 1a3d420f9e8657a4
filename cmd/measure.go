package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/gopyramid/internal/constants"
	"github.com/alexiusacademia/gopyramid/internal/pyramid"
	"github.com/spf13/cobra"
)

var (
	measureBase   int
	measureHeight int
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Report every derived dimension of a pyramid",
	Long: `Build a square pyramid from an integer base length and height and
report its lengths, angles (in degrees), areas and volume with 15
significant digits, followed by how the pyramid scales to the earth.

Examples:
  # The Great Pyramid in royal cubits
  gopyramid measure --base 440 --height 280

  # Using short flags
  gopyramid measure -b 220 -H 140`,
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().IntVarP(&measureBase, "base", "b", 440, "Base length")
	measureCmd.Flags().IntVarP(&measureHeight, "height", "H", 280, "Height")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	if err := checkDimensions(measureBase, measureHeight); err != nil {
		return err
	}

	p := pyramid.New(measureBase, measureHeight)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     PYRAMID DIMENSIONS - BASE %d, HEIGHT %d\n", measureBase, measureHeight)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	if err := p.WriteReport(out); err != nil {
		return err
	}
	fmt.Fprintln(out)

	circumference, polarRadius := constants.EarthScale(p)

	fmt.Fprintln(out, "EARTH SCALE:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Equatorial circumference / base perimeter:\t%.4f\n", circumference)
	fmt.Fprintf(w, "  Polar radius / height:\t%.4f\n", polarRadius)
	w.Flush()
	fmt.Fprintln(out)

	return nil
}

// checkDimensions rejects non-positive inputs.
func checkDimensions(base, height int) error {
	if base <= 0 || height <= 0 {
		return fmt.Errorf("base length and height must be positive, got %d and %d", base, height)
	}
	return nil
}

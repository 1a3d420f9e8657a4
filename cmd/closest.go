package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gopyramid/internal/constants"
	"github.com/alexiusacademia/gopyramid/internal/experiment"
	"github.com/alexiusacademia/gopyramid/internal/pyramid"
	"github.com/alexiusacademia/gopyramid/internal/ratio"
	"github.com/spf13/cobra"
)

var (
	closestBase    int
	closestHeight  int
	closestTargets []string
	closestDivide  bool
	closestLegacy  bool
	closestDetail  bool
)

var closestCmd = &cobra.Command{
	Use:   "closest",
	Short: "Find the dimension ratio closest to each target constant",
	Long: `Search every pair of dimensions within each group of a pyramid,
scaled by the factors 0.1, 0.125, 0.25, 0.5, 1, 2, 4, 8 and 10, for the
ratio closest to each target constant. The sum of relative errors over
all targets scores the pyramid.

Examples:
  # The Great Pyramid against π, φ and e
  gopyramid closest --base 440 --height 280

  # Only π, searching the three-group layout with divided factors
  gopyramid closest -b 440 -H 280 --target pi --legacy --divide

  # Every winning ratio with both dimension values
  gopyramid closest --detail`,
	RunE: runClosest,
}

func init() {
	rootCmd.AddCommand(closestCmd)

	closestCmd.Flags().IntVarP(&closestBase, "base", "b", 440, "Base length")
	closestCmd.Flags().IntVarP(&closestHeight, "height", "H", 280, "Height")
	closestCmd.Flags().StringSliceVarP(&closestTargets, "target", "t", []string{"pi", "phi", "e"}, "Target constants (pi, phi, e)")
	closestCmd.Flags().BoolVar(&closestDivide, "divide", false, "Divide ratios by the factor instead of multiplying")
	closestCmd.Flags().BoolVar(&closestLegacy, "legacy", false, "Use the three-group layout (lengths, angles, areas)")
	closestCmd.Flags().BoolVar(&closestDetail, "detail", false, "Print the dimension values behind each ratio")
}

func runClosest(cmd *cobra.Command, args []string) error {
	if err := checkDimensions(closestBase, closestHeight); err != nil {
		return err
	}

	targets, err := constants.LookupAll(closestTargets)
	if err != nil {
		return err
	}

	layout := pyramid.FinalLayout()
	if closestLegacy {
		layout = pyramid.LegacyLayout()
	}
	var search []ratio.Option
	if closestDivide {
		search = append(search, ratio.WithDivision())
	}

	c := experiment.Candidate{BaseLength: closestBase, Height: closestHeight}
	ev := experiment.Evaluate(c, targets, layout, search...)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     CLOSEST RATIOS - BASE %d, HEIGHT %d\n", closestBase, closestHeight)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	writeApproximations(out, ev)

	if closestDetail {
		for _, a := range ev.Approximations {
			if !a.Found {
				continue
			}
			fmt.Fprintf(out, "%s:\n", strings.ToUpper(a.Target.Name))
			fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
			if err := a.Result.Write(out); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
	}

	return nil
}

// writeApproximations prints one row per target and the error sum.
func writeApproximations(out io.Writer, ev experiment.Evaluation) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  TARGET\tVALUE\tRATIO\tAPPROXIMATION\tRELATIVE ERROR")
	for _, a := range ev.Approximations {
		if !a.Found {
			fmt.Fprintf(w, "  %s\t%.6f\t(none)\t-\t-\n", a.Target.Name, a.Target.Value)
			continue
		}
		fmt.Fprintf(w, "  %s\t%.6f\t%s\t%.6f\t%.3e\n",
			a.Target.Name, a.Target.Value, a.Result.Expression(), a.Result.Value, a.Result.RelativeError)
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Error sum: %.6e\n", ev.ErrorSum)
	fmt.Fprintln(out)
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/alexiusacademia/gopyramid/internal/mathutil"
	"github.com/spf13/cobra"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce X Y",
	Short: "Reduce the fraction X/Y to lowest terms",
	Long: `Divide X and Y by their greatest common divisor. The sweep uses
this to recognise pyramids with the same height/base ratio.

Examples:
  gopyramid reduce 280 440   # 7/11`,
	Args: cobra.ExactArgs(2),
	RunE: runReduce,
}

func init() {
	rootCmd.AddCommand(reduceCmd)
}

func runReduce(cmd *cobra.Command, args []string) error {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid numerator %q: %w", args[0], err)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid denominator %q: %w", args[1], err)
	}

	rx, ry := mathutil.ReduceFraction(x, y)
	fmt.Fprintf(cmd.OutOrStdout(), "%d/%d\n", rx, ry)
	return nil
}

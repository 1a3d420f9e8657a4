package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alexiusacademia/gopyramid/internal/config"
	"github.com/alexiusacademia/gopyramid/internal/diagram"
	"github.com/alexiusacademia/gopyramid/internal/experiment"
	"github.com/alexiusacademia/gopyramid/pkg/logger"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	sweepMinBase     int
	sweepMaxBase     int
	sweepMinHeight   int
	sweepMaxHeight   int
	sweepMinRatio    float64
	sweepMaxRatio    float64
	sweepMinVolume   float64
	sweepMaxVolume   float64
	sweepWorkers     int
	sweepTop         int
	sweepTargets     []string
	sweepNoDedupe    bool
	sweepDivide      bool
	sweepLegacy      bool
	sweepProgress    bool
	sweepChart       bool
	sweepExportFile  string
	sweepChartWidth  int
	sweepChartHeight int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Rank many pyramids by how well they approximate the targets",
	Long: `Evaluate every integer (base length, height) pair in the configured
range and compare each pyramid's error sum with the reference pyramid.

Candidates are filtered by height/base ratio, then by volume, then
deduplicated by reduced height/base ratio so that scaled copies are
evaluated once. Flags override values from the configuration file and
GOPYR_ environment variables.

Examples:
  # The full default sweep
  gopyramid sweep

  # A small grid with a chart and an exported plot
  gopyramid sweep --max-base 100 --max-height 100 --chart -o sweep.png

  # Only tall pyramids, every ratio, 8 workers
  gopyramid sweep --min-ratio 1 --no-dedupe --workers 8`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	// Grid flags
	sweepCmd.Flags().IntVar(&sweepMinBase, "min-base", experiment.DefaultMinBaseLength, "Smallest base length")
	sweepCmd.Flags().IntVar(&sweepMaxBase, "max-base", experiment.DefaultMaxBaseLength, "Largest base length")
	sweepCmd.Flags().IntVar(&sweepMinHeight, "min-height", experiment.DefaultMinHeight, "Smallest height")
	sweepCmd.Flags().IntVar(&sweepMaxHeight, "max-height", experiment.DefaultMaxHeight, "Largest height")

	// Filter flags
	sweepCmd.Flags().Float64Var(&sweepMinRatio, "min-ratio", experiment.DefaultMinHeightToBase, "Smallest height/base ratio")
	sweepCmd.Flags().Float64Var(&sweepMaxRatio, "max-ratio", experiment.DefaultMaxHeightToBase, "Largest height/base ratio")
	sweepCmd.Flags().Float64Var(&sweepMinVolume, "min-volume", 0, "Smallest volume")
	sweepCmd.Flags().Float64Var(&sweepMaxVolume, "max-volume", 0, "Largest volume (0 for unbounded)")
	sweepCmd.Flags().BoolVar(&sweepNoDedupe, "no-dedupe", false, "Evaluate every pair, including scaled copies")

	// Search flags
	sweepCmd.Flags().StringSliceVarP(&sweepTargets, "target", "t", []string{"pi", "phi", "e"}, "Target constants (pi, phi, e)")
	sweepCmd.Flags().BoolVar(&sweepDivide, "divide", false, "Divide ratios by the factor instead of multiplying")
	sweepCmd.Flags().BoolVar(&sweepLegacy, "legacy", false, "Use the three-group layout (lengths, angles, areas)")

	// Execution and output flags
	sweepCmd.Flags().IntVarP(&sweepWorkers, "workers", "w", 0, "Number of workers (0 for one per CPU)")
	sweepCmd.Flags().IntVar(&sweepTop, "top", experiment.DefaultTopN, "Number of ranked candidates to show")
	sweepCmd.Flags().BoolVar(&sweepProgress, "progress", true, "Show a progress bar on stderr")
	sweepCmd.Flags().BoolVar(&sweepChart, "chart", false, "Draw an ASCII chart of error sum against height/base")
	sweepCmd.Flags().IntVar(&sweepChartWidth, "chart-width", 60, "Chart width in columns")
	sweepCmd.Flags().IntVar(&sweepChartHeight, "chart-height", 12, "Chart height in rows")
	sweepCmd.Flags().StringVarP(&sweepExportFile, "output", "o", "", "Export plot to file (png, svg, pdf)")
}

// sweepConfig applies changed flags over the loaded configuration.
func sweepConfig(cmd *cobra.Command, base config.SweepConfig) config.SweepConfig {
	flags := cmd.Flags()
	if flags.Changed("min-base") {
		base.MinBaseLength = sweepMinBase
	}
	if flags.Changed("max-base") {
		base.MaxBaseLength = sweepMaxBase
	}
	if flags.Changed("min-height") {
		base.MinHeight = sweepMinHeight
	}
	if flags.Changed("max-height") {
		base.MaxHeight = sweepMaxHeight
	}
	if flags.Changed("min-ratio") {
		base.MinHeightToBase = sweepMinRatio
	}
	if flags.Changed("max-ratio") {
		base.MaxHeightToBase = sweepMaxRatio
	}
	if flags.Changed("min-volume") {
		base.MinVolume = sweepMinVolume
	}
	if flags.Changed("max-volume") {
		base.MaxVolume = sweepMaxVolume
	}
	if flags.Changed("no-dedupe") {
		base.Dedupe = !sweepNoDedupe
	}
	if flags.Changed("target") {
		base.Targets = sweepTargets
	}
	if flags.Changed("divide") {
		base.Division = sweepDivide
	}
	if flags.Changed("legacy") {
		base.Layout = "final"
		if sweepLegacy {
			base.Layout = "legacy"
		}
	}
	if flags.Changed("workers") {
		base.Workers = sweepWorkers
	}
	if flags.Changed("top") {
		base.Top = sweepTop
	}
	return base
}

func runSweep(cmd *cobra.Command, args []string) error {
	opts, err := sweepConfig(cmd, appConfig.Sweep).Options()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Global().Named("sweep")
	runner := experiment.NewRunner(opts, log)

	var bar *progressbar.ProgressBar
	if sweepProgress {
		runner.OnProgress(func(done, total int) {
			if bar == nil {
				bar = newSweepBar(cmd.ErrOrStderr(), total)
			}
			_ = bar.Set(done)
		})
	}

	summary, err := runner.Run(ctx)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeSweepSummary(out, opts, summary)

	if sweepChart {
		chart := diagram.DrawErrorChart(summary.Points, summary.Reference.ErrorSum, sweepChartWidth, sweepChartHeight)
		if chart != "" {
			fmt.Fprintln(out, "ERROR CHART:")
			fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
			fmt.Fprintln(out, chart)
			fmt.Fprintln(out)
		}
	}

	if sweepExportFile != "" {
		if err := diagram.ExportSweepPlot(summary.Points, summary.Reference.Point(), summary.Winner.Point(), sweepExportFile); err != nil {
			log.Error("Plot export failed", "run_id", summary.RunID, "file", sweepExportFile, "error", err)
			return fmt.Errorf("exporting plot: %w", err)
		}
		fmt.Fprintf(out, "Plot exported to: %s\n\n", sweepExportFile)
	}

	return nil
}

func newSweepBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("pyramids"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Sweeping[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func writeSweepSummary(out io.Writer, opts experiment.Options, s *experiment.Summary) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     PYRAMID RATIO SWEEP")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "INPUT DATA:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Base length:\t%d .. %d\n", opts.MinBaseLength, opts.MaxBaseLength)
	fmt.Fprintf(w, "  Height:\t%d .. %d\n", opts.MinHeight, opts.MaxHeight)
	fmt.Fprintf(w, "  Height/base:\t%g .. %g\n", opts.MinHeightToBase, opts.MaxHeightToBase)
	if opts.MaxVolume > 0 {
		fmt.Fprintf(w, "  Volume:\t%s .. %s\n", humanize.Commaf(opts.MinVolume), humanize.Commaf(opts.MaxVolume))
	} else {
		fmt.Fprintf(w, "  Volume:\t>= %s\n", humanize.Commaf(opts.MinVolume))
	}
	fmt.Fprintf(w, "  Reference:\t%s\n", opts.Reference)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "CANDIDATES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Considered:\t%s\n", humanize.Comma(int64(s.Considered)))
	fmt.Fprintf(w, "  Rejected by height/base:\t%s\n", humanize.Comma(int64(s.RejectedRatio)))
	fmt.Fprintf(w, "  Rejected by volume:\t%s\n", humanize.Comma(int64(s.RejectedVolume)))
	fmt.Fprintf(w, "  Duplicate ratios:\t%s\n", humanize.Comma(int64(s.Duplicates)))
	fmt.Fprintf(w, "  Evaluated:\t%s\n", humanize.Comma(int64(s.Evaluated)))
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintf(out, "REFERENCE %s:\n", s.Reference.Candidate)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	writeApproximations(out, s.Reference)

	if !s.HasWinner {
		fmt.Fprintln(out, "No candidates evaluated.")
		fmt.Fprintln(out)
		return
	}

	fmt.Fprint(out, diagram.DrawSummaryBox("WINNER", []string{
		fmt.Sprintf("Base length %d, height %d", s.Winner.Candidate.BaseLength, s.Winner.Candidate.Height),
		fmt.Sprintf("Height/base %.6f", s.Winner.HeightToBase),
		fmt.Sprintf("Error sum %.6e", s.Winner.ErrorSum),
	}))
	fmt.Fprintln(out)
	writeApproximations(out, s.Winner)

	if len(s.Ranking) > 0 {
		fmt.Fprintln(out, "RANKING:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  #\tPYRAMID\tHEIGHT/BASE\tERROR SUM")
		for i, ev := range s.Ranking {
			fmt.Fprintf(w, "  %d\t%s\t%.6f\t%.6e\n", i+1, ev.Candidate, ev.HeightToBase, ev.ErrorSum)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "ACCURACY VS REFERENCE:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  More accurate:\t%s\t(%.2f%%)\n", humanize.CommafWithDigits(s.MoreAccurate, 1), percent(s.MoreAccurate, s.Evaluated))
	fmt.Fprintf(w, "  Less accurate:\t%s\t(%.2f%%)\n", humanize.CommafWithDigits(s.LessAccurate, 1), percent(s.LessAccurate, s.Evaluated))
	fmt.Fprintf(w, "  Average error sum:\t%.6e\t\n", s.Average())
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Run %s finished in %s\n\n", s.RunID, s.Elapsed.Round(time.Millisecond))
}

func percent(part float64, total int) float64 {
	if total == 0 {
		return 0
	}
	return part / float64(total) * 100
}

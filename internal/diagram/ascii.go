package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gopyramid/internal/experiment"
	"github.com/guptarohit/asciigraph"
)

// errorFloor keeps exact matches plottable on the log axis.
const errorFloor = 1e-12

// ChartData is the bucketed series behind DrawErrorChart.
type ChartData struct {
	// Series holds log10 of the best error sum per bucket, NaN where a
	// bucket has no finite point.
	Series []float64

	MinRatio float64
	MaxRatio float64
}

// BucketErrors splits the height/base range of points into buckets and keeps
// the smallest finite error sum of each. It returns false when no point has a
// finite error sum.
func BucketErrors(points []experiment.Point, buckets int) (ChartData, bool) {
	if buckets < 1 {
		buckets = 1
	}

	data := ChartData{MinRatio: math.Inf(1), MaxRatio: math.Inf(-1)}
	for _, p := range points {
		if math.IsInf(p.ErrorSum, 0) || math.IsNaN(p.ErrorSum) {
			continue
		}
		data.MinRatio = math.Min(data.MinRatio, p.HeightToBase)
		data.MaxRatio = math.Max(data.MaxRatio, p.HeightToBase)
	}
	if math.IsInf(data.MinRatio, 1) {
		return ChartData{}, false
	}

	best := make([]float64, buckets)
	for i := range best {
		best[i] = math.Inf(1)
	}
	span := data.MaxRatio - data.MinRatio
	for _, p := range points {
		if math.IsInf(p.ErrorSum, 0) || math.IsNaN(p.ErrorSum) {
			continue
		}
		i := 0
		if span > 0 {
			i = int((p.HeightToBase - data.MinRatio) / span * float64(buckets))
		}
		if i >= buckets {
			i = buckets - 1
		}
		best[i] = math.Min(best[i], p.ErrorSum)
	}

	data.Series = make([]float64, buckets)
	for i, e := range best {
		if math.IsInf(e, 1) {
			data.Series[i] = math.NaN()
			continue
		}
		data.Series[i] = math.Log10(math.Max(e, errorFloor))
	}
	return data, true
}

// DrawErrorChart plots the best error sum across the height/base range as an
// ASCII line chart, width columns by height rows. A finite reference error sum
// is drawn as a second, flat series. It returns an empty string when there is
// nothing to plot.
func DrawErrorChart(points []experiment.Point, reference float64, width, height int) string {
	data, ok := BucketErrors(points, width)
	if !ok {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("log10(error sum) vs height/base %.3f .. %.3f", data.MinRatio, data.MaxRatio)),
	}

	if math.IsInf(reference, 0) || math.IsNaN(reference) {
		return asciigraph.Plot(data.Series, opts...)
	}

	flat := make([]float64, len(data.Series))
	for i := range flat {
		flat[i] = math.Log10(math.Max(reference, errorFloor))
	}
	opts = append(opts,
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends("best", "reference"),
	)
	return asciigraph.PlotMany([][]float64{data.Series, flat}, opts...)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if d := n - len([]rune(s)); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

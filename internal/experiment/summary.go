package experiment

import (
	"sort"
	"time"

	"github.com/alexiusacademia/gopyramid/internal/mathutil"
)

// Point is one evaluated candidate reduced to what the charts need.
type Point struct {
	Candidate    Candidate
	HeightToBase float64
	ErrorSum     float64
}

// Point reduces e to a chart point.
func (e Evaluation) Point() Point {
	return Point{Candidate: e.Candidate, HeightToBase: e.HeightToBase, ErrorSum: e.ErrorSum}
}

// Summary is the outcome of a sweep.
type Summary struct {
	RunID   string
	Elapsed time.Duration

	Reference Evaluation

	// Winner is the candidate with the smallest error sum. Among equal sums
	// the one found first in grid order (base length, then height) wins.
	Winner    Evaluation
	HasWinner bool

	// Ranking holds the best candidates in ascending error sum order.
	Ranking []Evaluation

	// Points holds every evaluated candidate in grid order.
	Points []Point

	Considered     int
	RejectedRatio  int
	RejectedVolume int
	Duplicates     int
	Evaluated      int

	ErrorSumTotal float64

	// Candidates with the reference's height/base ratio, or scoring exactly
	// like it, count half to each side.
	MoreAccurate float64
	LessAccurate float64
}

// Average returns the mean error sum over evaluated candidates.
func (s *Summary) Average() float64 {
	if s.Evaluated == 0 {
		return 0
	}
	return s.ErrorSumTotal / float64(s.Evaluated)
}

// scored pairs an evaluation with its position in the grid.
type scored struct {
	index int
	ev    Evaluation
}

func better(a, b scored) bool {
	if a.ev.ErrorSum != b.ev.ErrorSum {
		return a.ev.ErrorSum < b.ev.ErrorSum
	}
	return a.index < b.index
}

// tally aggregates evaluations. Merging tallies gives the same result in any
// order, so each worker keeps its own. The error sum total is computed in
// grid order by fill.
type tally struct {
	topN      int
	reference float64
	shape     [2]int

	count int
	more  float64
	less  float64

	best    scored
	hasBest bool

	top    []scored
	points []indexedPoint
}

type indexedPoint struct {
	index int
	Point
}

func newTally(topN int, reference Evaluation) *tally {
	return &tally{
		topN:      topN,
		reference: reference.ErrorSum,
		shape:     shapeOf(reference.Candidate),
	}
}

// shapeOf returns the reduced (height, base) pair of c.
func shapeOf(c Candidate) [2]int {
	h, b := mathutil.ReduceFraction(c.Height, c.BaseLength)
	return [2]int{h, b}
}

func (t *tally) add(s scored) {
	t.count++

	switch {
	case shapeOf(s.ev.Candidate) == t.shape:
		t.more += 0.5
		t.less += 0.5
	case s.ev.ErrorSum < t.reference:
		t.more++
	case s.ev.ErrorSum > t.reference:
		t.less++
	default:
		t.more += 0.5
		t.less += 0.5
	}

	if !t.hasBest || better(s, t.best) {
		t.best = s
		t.hasBest = true
	}

	t.insertTop(s)
	t.points = append(t.points, indexedPoint{index: s.index, Point: s.ev.Point()})
}

func (t *tally) insertTop(s scored) {
	if t.topN == 0 {
		return
	}
	if len(t.top) == t.topN && !better(s, t.top[len(t.top)-1]) {
		return
	}
	i := sort.Search(len(t.top), func(i int) bool { return better(s, t.top[i]) })
	t.top = append(t.top, scored{})
	copy(t.top[i+1:], t.top[i:])
	t.top[i] = s
	if len(t.top) > t.topN {
		t.top = t.top[:t.topN]
	}
}

func (t *tally) merge(o *tally) {
	t.count += o.count
	t.more += o.more
	t.less += o.less
	if o.hasBest && (!t.hasBest || better(o.best, t.best)) {
		t.best = o.best
		t.hasBest = true
	}
	for _, s := range o.top {
		t.insertTop(s)
	}
	t.points = append(t.points, o.points...)
}

func (t *tally) fill(s *Summary) {
	s.Evaluated = t.count
	s.MoreAccurate = t.more
	s.LessAccurate = t.less
	s.Winner = t.best.ev
	s.HasWinner = t.hasBest

	s.Ranking = make([]Evaluation, len(t.top))
	for i, sc := range t.top {
		s.Ranking[i] = sc.ev
	}

	sort.Slice(t.points, func(i, j int) bool { return t.points[i].index < t.points[j].index })
	s.Points = make([]Point, len(t.points))
	for i, ip := range t.points {
		s.Points[i] = ip.Point
		s.ErrorSumTotal += ip.ErrorSum
	}
}

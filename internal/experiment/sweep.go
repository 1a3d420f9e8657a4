package experiment

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexiusacademia/gopyramid/internal/mathutil"
	"github.com/google/uuid"
)

// Logger is the logging surface the runner needs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// ProgressFunc receives the number of evaluated candidates and the total.
type ProgressFunc func(done, total int)

// Runner executes sweeps.
type Runner struct {
	opts     Options
	log      Logger
	progress ProgressFunc
	interval time.Duration
}

// NewRunner creates a runner. A nil logger discards log output.
func NewRunner(opts Options, log Logger) *Runner {
	if log == nil {
		log = nopLogger{}
	}
	return &Runner{
		opts:     opts,
		log:      log,
		interval: 100 * time.Millisecond,
	}
}

// OnProgress registers fn to be called periodically during Run and once at
// the end.
func (r *Runner) OnProgress(fn ProgressFunc) {
	r.progress = fn
}

// Plan is the filtered, deduplicated candidate list of a sweep.
type Plan struct {
	Jobs           []Candidate
	Considered     int
	RejectedRatio  int
	RejectedVolume int
	Duplicates     int
}

// Plan enumerates the grid in base length then height order and applies the
// ratio, volume and duplicate filters, in that order.
func (r *Runner) Plan() Plan {
	o := r.opts
	var plan Plan
	seen := make(map[[2]int]struct{})

	for base := o.MinBaseLength; base <= o.MaxBaseLength; base++ {
		for height := o.MinHeight; height <= o.MaxHeight; height++ {
			plan.Considered++
			c := Candidate{BaseLength: base, Height: height}

			if !o.acceptRatio(c) {
				plan.RejectedRatio++
				continue
			}
			if !o.acceptVolume(PyramidVolume(c)) {
				plan.RejectedVolume++
				continue
			}
			if o.Dedupe {
				x, y := mathutil.ReduceFraction(height, base)
				key := [2]int{x, y}
				if _, dup := seen[key]; dup {
					plan.Duplicates++
					continue
				}
				seen[key] = struct{}{}
			}

			plan.Jobs = append(plan.Jobs, c)
		}
	}

	return plan
}

// Run evaluates every planned candidate and summarizes the results. It
// returns ctx.Err() if ctx is cancelled before all candidates are evaluated.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := r.opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	summary := &Summary{RunID: uuid.NewString()}
	log := r.log

	summary.Reference = r.opts.EvaluateReference()
	log.Info("Reference evaluated",
		"run_id", summary.RunID,
		"reference", r.opts.Reference.String(),
		"error_sum", summary.Reference.ErrorSum,
	)

	plan := r.Plan()
	summary.Considered = plan.Considered
	summary.RejectedRatio = plan.RejectedRatio
	summary.RejectedVolume = plan.RejectedVolume
	summary.Duplicates = plan.Duplicates

	threads := r.opts.workers()
	log.Info("Sweep starting",
		"run_id", summary.RunID,
		"considered", plan.Considered,
		"rejected_ratio", plan.RejectedRatio,
		"rejected_volume", plan.RejectedVolume,
		"duplicates", plan.Duplicates,
		"candidates", len(plan.Jobs),
		"workers", threads,
	)

	jobs := make(chan job, threads*2)
	var processed atomic.Int64
	var wg sync.WaitGroup

	workers := make([]*worker, threads)
	for i := range workers {
		wg.Add(1)
		workers[i] = newWorker(i, r.opts, summary.Reference, &wg, jobs, ctx, &processed)
		workers[i].start()
	}

	done := make(chan struct{})
	reported := make(chan struct{})
	if r.progress != nil {
		go r.report(done, reported, &processed, len(plan.Jobs))
	} else {
		close(reported)
	}

	go func() {
		defer close(jobs)
		for i, c := range plan.Jobs {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{index: i, candidate: c}:
			}
		}
	}()

	wg.Wait()
	close(done)
	<-reported

	if err := ctx.Err(); err != nil {
		log.Info("Sweep cancelled", "run_id", summary.RunID, "processed", processed.Load())
		return nil, err
	}
	if r.progress != nil {
		r.progress(len(plan.Jobs), len(plan.Jobs))
	}

	total := newTally(r.opts.TopN, summary.Reference)
	for _, w := range workers {
		log.Debug("Worker finished", "run_id", summary.RunID, "worker", w.id, "evaluated", w.tally.count)
		total.merge(w.tally)
	}
	total.fill(summary)
	summary.Elapsed = time.Since(start)

	log.Info("Sweep finished",
		"run_id", summary.RunID,
		"evaluated", summary.Evaluated,
		"winner", summary.Winner.Candidate.String(),
		"winner_error_sum", summary.Winner.ErrorSum,
		"elapsed", summary.Elapsed.String(),
	)

	return summary, nil
}

func (r *Runner) report(done <-chan struct{}, reported chan<- struct{}, processed *atomic.Int64, total int) {
	defer close(reported)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := int64(-1)
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			current := processed.Load()
			if current != last {
				r.progress(int(current), total)
				last = current
			}
		}
	}
}

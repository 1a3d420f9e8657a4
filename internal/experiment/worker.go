package experiment

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/alexiusacademia/gopyramid/internal/pyramid"
	"github.com/alexiusacademia/gopyramid/internal/ratio"
)

// job is a candidate and its position in the grid.
type job struct {
	index     int
	candidate Candidate
}

// worker evaluates candidates from jobs into its own tally.
type worker struct {
	id        int
	opts      Options
	layout    pyramid.Layout
	search    []ratio.Option
	tally     *tally
	wg        *sync.WaitGroup
	jobs      <-chan job
	ctx       context.Context
	processed *atomic.Int64
}

func newWorker(id int, opts Options, reference Evaluation, wg *sync.WaitGroup,
	jobs <-chan job, ctx context.Context, processed *atomic.Int64) *worker {
	return &worker{
		id:        id,
		opts:      opts,
		layout:    opts.layout(),
		search:    opts.searchOptions(),
		tally:     newTally(opts.TopN, reference),
		wg:        wg,
		jobs:      jobs,
		ctx:       ctx,
		processed: processed,
	}
}

// start runs the worker in its own goroutine.
func (w *worker) start() {
	go w.run()
}

func (w *worker) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case j, ok := <-w.jobs:
			if !ok {
				return
			}
			w.process(j)
		}
	}
}

func (w *worker) process(j job) {
	defer w.processed.Add(1)

	ev := Evaluate(j.candidate, w.opts.Targets, w.layout, w.search...)
	w.tally.add(scored{index: j.index, ev: ev})
}

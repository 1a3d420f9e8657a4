package experiment

import (
	"math"

	"github.com/alexiusacademia/gopyramid/internal/constants"
	"github.com/alexiusacademia/gopyramid/internal/pyramid"
	"github.com/alexiusacademia/gopyramid/internal/ratio"
)

// Approximation is the best ratio found for one target.
type Approximation struct {
	Target constants.Target
	Result ratio.Result
	Found  bool
}

// Evaluation scores one candidate against every target.
type Evaluation struct {
	Candidate      Candidate
	HeightToBase   float64
	Volume         float64
	Approximations []Approximation

	// ErrorSum is the sum of relative errors over all targets. It is +Inf
	// when any target had no candidate ratio.
	ErrorSum float64
}

// Evaluate builds the pyramid for c and searches every target in order.
func Evaluate(c Candidate, targets []constants.Target, layout pyramid.Layout, opts ...ratio.Option) Evaluation {
	var popts []pyramid.Option
	if len(layout) > 0 {
		popts = append(popts, pyramid.WithLayout(layout))
	}
	p := pyramid.New(c.BaseLength, c.Height, popts...)

	ev := Evaluation{
		Candidate:      c,
		HeightToBase:   p.HeightToBase(),
		Volume:         p.Volume(),
		Approximations: make([]Approximation, 0, len(targets)),
	}

	for _, t := range targets {
		r, ok := ratio.ClosestAll(p, t.Value, opts...)
		if ok {
			r = r.WithRelativeError(t.Value)
			ev.ErrorSum += r.RelativeError
		} else {
			ev.ErrorSum = math.Inf(1)
		}
		ev.Approximations = append(ev.Approximations, Approximation{Target: t, Result: r, Found: ok})
	}

	return ev
}

func (o Options) searchOptions() []ratio.Option {
	if o.Division {
		return []ratio.Option{ratio.WithDivision()}
	}
	return nil
}

// EvaluateReference scores the reference pyramid of o.
func (o Options) EvaluateReference() Evaluation {
	return Evaluate(o.Reference, o.Targets, o.layout(), o.searchOptions()...)
}

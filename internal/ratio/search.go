// Package ratio searches the ratios of pyramid dimensions for the closest
// approximation of a target value.
//
// A candidate is the ratio of two distinct dimensions from the same group,
// multiplied by one of a small set of scaling factors. The factors model
// simple human scaling (halves, quarters, tenfold) applied to a measured
// proportion.
package ratio

import (
	"math"

	"github.com/alexiusacademia/gopyramid/internal/pyramid"
)

var allowedFactors = [...]float64{0.1, 0.125, 0.25, 0.5, 1.0, 2.0, 4.0, 8.0, 10.0}

// Factors returns the allowed scaling factors in search order.
func Factors() []float64 {
	out := make([]float64, len(allowedFactors))
	copy(out, allowedFactors[:])
	return out
}

type settings struct {
	divide bool
}

// Option configures a search.
type Option func(*settings)

// WithDivision divides the ratio by the factor instead of multiplying.
// This is the older convention and changes which pyramids
// score best; multiplication is the default.
func WithDivision() Option {
	return func(s *settings) {
		s.divide = true
	}
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) scale(ratio, factor float64) float64 {
	if s.divide {
		return ratio / factor
	}
	return ratio * factor
}

// AbsoluteError returns |actual - expected|.
func AbsoluteError(actual, expected float64) float64 {
	return math.Abs(actual - expected)
}

// Closest finds the ordered pair of distinct dimensions and the factor whose
// scaled ratio is nearest to target.
//
// Pairs are visited with i in the outer loop, j in the inner loop and the
// factor innermost. Only a strictly smaller error replaces the current best,
// so the first minimum found wins ties. Candidates that are NaN or infinite
// never win. ok is false when no candidate was accepted, which happens for
// groups with fewer than two dimensions.
func Closest(group []pyramid.Dimension, target float64, opts ...Option) (Result, bool) {
	s := newSettings(opts)

	var best Result
	minErr := math.MaxFloat64
	found := false

	for i := range group {
		for j := range group {
			if i == j {
				continue
			}

			r := group[i].Value / group[j].Value

			for _, factor := range allowedFactors {
				v := s.scale(r, factor)
				e := AbsoluteError(v, target)
				if e < minErr {
					best = Result{
						Dimension1: group[i],
						Dimension2: group[j],
						Factor:     factor,
						Value:      v,
						Divided:    s.divide,
					}
					minErr = e
					found = true
				}
			}
		}
	}

	return best, found
}

// ClosestAll runs Closest on every group of p's layout and returns the result
// with the smallest absolute error. Earlier groups win exact ties. Groups
// without a result are skipped.
func ClosestAll(p *pyramid.Pyramid, target float64, opts ...Option) (Result, bool) {
	return ClosestInGroups(p.Groups(), target, opts...)
}

// ClosestInGroups is ClosestAll over explicit groups.
func ClosestInGroups(groups [][]pyramid.Dimension, target float64, opts ...Option) (Result, bool) {
	var best Result
	minErr := math.MaxFloat64
	found := false

	for _, g := range groups {
		r, ok := Closest(g, target, opts...)
		if !ok {
			continue
		}
		if e := AbsoluteError(r.Value, target); e < minErr {
			best = r
			minErr = e
			found = true
		}
	}

	return best, found
}

// Package experiment sweeps integer (base length, height) pairs and ranks
// the resulting pyramids by how well their dimension ratios approximate a
// set of target constants, compared with a reference pyramid.
package experiment

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/alexiusacademia/gopyramid/internal/constants"
	"github.com/alexiusacademia/gopyramid/internal/pyramid"
)

// Default sweep limits.
const (
	DefaultMinBaseLength   = 10
	DefaultMaxBaseLength   = 800
	DefaultMinHeight       = 10
	DefaultMaxHeight       = 600
	DefaultMinHeightToBase = 0.2
	DefaultMaxHeightToBase = 5.0
	DefaultTopN            = 10
)

// Khufu is the Great Pyramid, base 440 and height 280 royal cubits.
var Khufu = Candidate{BaseLength: 440, Height: 280}

// ErrInvalidBounds is returned by Validate for inconsistent sweep limits.
var ErrInvalidBounds = errors.New("invalid sweep bounds")

// Candidate is one (base length, height) pair.
type Candidate struct {
	BaseLength int
	Height     int
}

func (c Candidate) String() string {
	return fmt.Sprintf("%dx%d", c.BaseLength, c.Height)
}

// Options configures a sweep.
type Options struct {
	MinBaseLength int
	MaxBaseLength int
	MinHeight     int
	MaxHeight     int

	// Height / base length bounds, inclusive.
	MinHeightToBase float64
	MaxHeightToBase float64

	// Volume bounds, inclusive. MaxVolume 0 means unbounded.
	MinVolume float64
	MaxVolume float64

	// Dedupe keeps only the first pair of each reduced height/base ratio.
	Dedupe bool

	// Workers is the number of evaluation goroutines. 0 means one per CPU.
	Workers int

	// TopN is the length of the ranking kept in the summary.
	TopN int

	Targets   []constants.Target
	Reference Candidate
	Layout    pyramid.Layout

	// Division selects the divide-by-factor search convention.
	Division bool
}

// DefaultOptions returns the default sweep limits with the
// final grouping layout.
func DefaultOptions() Options {
	return Options{
		MinBaseLength:   DefaultMinBaseLength,
		MaxBaseLength:   DefaultMaxBaseLength,
		MinHeight:       DefaultMinHeight,
		MaxHeight:       DefaultMaxHeight,
		MinHeightToBase: DefaultMinHeightToBase,
		MaxHeightToBase: DefaultMaxHeightToBase,
		Dedupe:          true,
		TopN:            DefaultTopN,
		Targets:         constants.DefaultTargets(),
		Reference:       Khufu,
		Layout:          pyramid.FinalLayout(),
	}
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	switch {
	case o.MinBaseLength <= 0 || o.MinHeight <= 0:
		return fmt.Errorf("%w: base length and height must start above zero", ErrInvalidBounds)
	case o.MaxBaseLength < o.MinBaseLength:
		return fmt.Errorf("%w: base length %d..%d", ErrInvalidBounds, o.MinBaseLength, o.MaxBaseLength)
	case o.MaxHeight < o.MinHeight:
		return fmt.Errorf("%w: height %d..%d", ErrInvalidBounds, o.MinHeight, o.MaxHeight)
	case o.MaxHeightToBase < o.MinHeightToBase:
		return fmt.Errorf("%w: height to base ratio %g..%g", ErrInvalidBounds, o.MinHeightToBase, o.MaxHeightToBase)
	case o.MaxVolume != 0 && o.MaxVolume < o.MinVolume:
		return fmt.Errorf("%w: volume %g..%g", ErrInvalidBounds, o.MinVolume, o.MaxVolume)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidBounds)
	case o.TopN < 0:
		return fmt.Errorf("%w: top must not be negative", ErrInvalidBounds)
	case len(o.Targets) == 0:
		return fmt.Errorf("%w: no target constants", ErrInvalidBounds)
	case o.Reference.BaseLength <= 0 || o.Reference.Height <= 0:
		return fmt.Errorf("%w: reference pyramid %s", ErrInvalidBounds, o.Reference)
	}
	return nil
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) layout() pyramid.Layout {
	if len(o.Layout) == 0 {
		return pyramid.FinalLayout()
	}
	return o.Layout
}

// acceptRatio reports whether height / base is within bounds.
func (o Options) acceptRatio(c Candidate) bool {
	r := float64(c.Height) / float64(c.BaseLength)
	return r >= o.MinHeightToBase && r <= o.MaxHeightToBase
}

// acceptVolume reports whether volume is within bounds.
func (o Options) acceptVolume(volume float64) bool {
	if volume < o.MinVolume {
		return false
	}
	return o.MaxVolume == 0 || volume <= o.MaxVolume
}

// PyramidVolume is L²H/3 computed the same way as the pyramid model.
func PyramidVolume(c Candidate) float64 {
	l := float64(c.BaseLength)
	return l * l * float64(c.Height) / 3.0
}

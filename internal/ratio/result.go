package ratio

import (
	"fmt"
	"io"

	"github.com/alexiusacademia/gopyramid/internal/mathutil"
	"github.com/alexiusacademia/gopyramid/internal/pyramid"
)

// Result is the best approximation found by a search.
//
// Value is Dimension1.Value / Dimension2.Value scaled by Factor.
// RelativeError is zero until the caller fills it in with WithRelativeError.
type Result struct {
	Dimension1    pyramid.Dimension
	Dimension2    pyramid.Dimension
	Factor        float64
	Value         float64
	RelativeError float64

	// Divided is set when Value was divided by Factor.
	Divided bool
}

// WithRelativeError returns a copy of r with RelativeError set against target.
func (r Result) WithRelativeError(target float64) Result {
	r.RelativeError = mathutil.RelativeError(r.Value, target)
	return r
}

// Expression renders the ratio, e.g. "BASE_PERIMETER / HEIGHT * 0.5".
func (r Result) Expression() string {
	op := "*"
	if r.Divided {
		op = "/"
	}
	return fmt.Sprintf("%s / %s %s %g", r.Dimension1.Kind, r.Dimension2.Kind, op, r.Factor)
}

// Write prints the result as labelled lines.
func (r Result) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"dimension 1 value: %g dimension 1 type: %s\n"+
			"dimension 2 value: %g dimension 2 type: %s\n"+
			"factor: %g\n"+
			"value: %g\n"+
			"relative error: %g\n",
		r.Dimension1.Value, r.Dimension1.Kind,
		r.Dimension2.Value, r.Dimension2.Kind,
		r.Factor,
		r.Value,
		r.RelativeError,
	)
	return err
}

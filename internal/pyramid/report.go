package pyramid

import (
	"fmt"
	"io"
)

// ReportPrecision is the number of significant digits written by WriteReport.
const ReportPrecision = 15

// WriteReport writes one "label: value" line per dimension in report order.
// Angles are written in degrees.
func (p *Pyramid) WriteReport(w io.Writer) error {
	for _, d := range p.dims {
		if _, err := fmt.Fprintf(w, "%s: %.*g\n", d.Kind.Label(), ReportPrecision, d.Display()); err != nil {
			return err
		}
	}
	return nil
}

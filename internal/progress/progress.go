// Package progress provides progress emission for downloads.
//
// The fetcher reports completion as a fraction in [0,1] through a Func, so
// core packages never print to a console themselves. The Reporter here is
// the default console sink, emitting one line per whole percent:
//
//	Download 45%
package progress

import (
	"fmt"
	"io"
	"os"
)

// Func receives the completed fraction of a download in [0,1]. Fractions
// are non-decreasing within a single download and reach 1.0 on success.
type Func func(fraction float64)

// Discard ignores all progress updates.
func Discard(float64) {}

// Reporter writes human-readable percent lines to an output stream.
type Reporter struct {
	out         io.Writer
	lastPercent int
}

// NewReporter creates a console reporter. A nil out defaults to stdout.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out, lastPercent: -1}
}

// Report emits the fraction as a whole percent, skipping repeats so slow
// chunked transfers do not flood the output.
func (r *Reporter) Report(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	percent := int(fraction * 100)
	if percent == r.lastPercent {
		return
	}
	r.lastPercent = percent

	fmt.Fprintf(r.out, "Download %d%%\n", percent)
}

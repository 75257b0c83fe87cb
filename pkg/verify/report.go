package verify

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stitchkit/pkg/pattern"
)

// Kind classifies a divergence.
type Kind string

const (
	// KindAttributes means the decoded attribute set differs from the original.
	KindAttributes Kind = "attributes"
	// KindStitches means the decoded stitch sequence differs from the original.
	KindStitches Kind = "stitches"
)

// Divergence describes one difference between a decoded pattern and the
// original.
type Divergence struct {
	Kind      Kind `json:"kind"`
	Iteration int  `json:"iteration"`

	// Attribute divergences. Added holds attributes only the decoded pattern
	// has; Missing holds attributes the decoded pattern lost.
	Added   []pattern.Attribute `json:"added,omitempty"`
	Missing []pattern.Attribute `json:"missing,omitempty"`

	// Stitch divergences. Index is the first differing position in the flat
	// stitch sequence and is always emitted, as 0 is a valid position. Want
	// or Got is nil when that sequence ends at Index.
	Index int             `json:"index"`
	Want  *pattern.Stitch `json:"want,omitempty"`
	Got   *pattern.Stitch `json:"got,omitempty"`
}

func (d Divergence) String() string {
	switch d.Kind {
	case KindAttributes:
		var parts []string
		if len(d.Added) > 0 {
			parts = append(parts, "new "+joinAttributes(d.Added))
		}
		if len(d.Missing) > 0 {
			parts = append(parts, "missing "+joinAttributes(d.Missing))
		}
		return fmt.Sprintf("iteration %d: attributes differ: %s", d.Iteration, strings.Join(parts, "; "))
	case KindStitches:
		return fmt.Sprintf("iteration %d: stitch %d is %s, want %s",
			d.Iteration, d.Index, stitchString(d.Got), stitchString(d.Want))
	}
	return fmt.Sprintf("iteration %d: %s", d.Iteration, d.Kind)
}

func joinAttributes(attrs []pattern.Attribute) string {
	s := make([]string, len(attrs))
	for i, a := range attrs {
		s[i] = a.String()
	}
	return strings.Join(s, ", ")
}

func stitchString(s *pattern.Stitch) string {
	if s == nil {
		return "absent"
	}
	return fmt.Sprintf("(%v, %v)", s.X, s.Y)
}

// Report accumulates the outcome of a run.
type Report struct {
	// Iterations is the number of completed encode/decode cycles.
	Iterations  int          `json:"iterations"`
	Divergences []Divergence `json:"divergences"`
}

// OK reports whether no divergence was found.
func (r *Report) OK() bool { return len(r.Divergences) == 0 }

// Reporter receives divergences as soon as they are found, before the run
// fails.
type Reporter interface {
	Report(d Divergence)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Divergence)

// Report calls f(d).
func (f ReporterFunc) Report(d Divergence) { f(d) }

// LogReporter writes divergences as warnings.
type LogReporter struct {
	Logger *log.Logger
}

// Report logs d with structured fields.
func (r LogReporter) Report(d Divergence) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	switch d.Kind {
	case KindAttributes:
		logger.Warn("attribute divergence", "iteration", d.Iteration,
			"new", joinAttributes(d.Added), "missing", joinAttributes(d.Missing))
	case KindStitches:
		logger.Warn("stitch divergence", "iteration", d.Iteration, "index", d.Index,
			"want", stitchString(d.Want), "got", stitchString(d.Got))
	}
}

// FidelityError is the cause of a FIDELITY_VIOLATION error.
type FidelityError struct {
	Iteration   int
	Divergences []Divergence
}

func (e *FidelityError) Error() string {
	if len(e.Divergences) == 1 {
		return e.Divergences[0].String()
	}
	return fmt.Sprintf("iteration %d: %d divergences", e.Iteration, len(e.Divergences))
}

package verify

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/format"
	"github.com/matzehuels/stitchkit/pkg/observability"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

// Verifier runs encode/decode cycles through a codec pair.
type Verifier struct {
	// Name labels the codec in logs and hooks.
	Name   string
	Reader format.Reader
	Writer format.Writer

	// Logger receives per-iteration debug output. Nil uses log.Default().
	Logger *log.Logger
	// Reporter receives divergences. Nil logs them through Logger.
	Reporter Reporter
}

// Run encodes and decodes ref k times and returns the last decoded pattern.
//
// ref is never modified. With k = 0 no codec call is made and Run returns a
// copy of ref. After each cycle the decoded pattern is compared with ref;
// divergences are passed to the Reporter and appended to the report, and
// the run then fails with a FIDELITY_VIOLATION error. Codec failures return
// ENCODE_ERROR or DECODE_ERROR immediately. ctx is checked between cycles.
func (v *Verifier) Run(ctx context.Context, ref *pattern.Pattern, k int) (out *pattern.Pattern, report *Report, err error) {
	if err := stitcherrors.ValidateIterations(k); err != nil {
		return nil, nil, err
	}
	if ref == nil || v.Reader == nil || v.Writer == nil {
		return nil, nil, stitcherrors.New(stitcherrors.ErrCodeInvalidInput, "verify: pattern and codec pair are required")
	}

	hooks := observability.Pipeline()
	hooks.OnVerifyStart(ctx, v.Name, k)
	start := time.Now()
	defer func() { hooks.OnVerifyComplete(ctx, v.Name, k, time.Since(start), err) }()

	logger := v.logger()
	reporter := v.Reporter
	if reporter == nil {
		reporter = LogReporter{Logger: logger}
	}

	baseline := ref.Stitches()
	baseAttrs := ref.AttributeSet()
	work := ref.Clone()
	report = &Report{}

	var buf bytes.Buffer
	for i := 1; i <= k; i++ {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		buf.Reset()
		if err := v.Writer.Write(work, &buf); err != nil {
			return nil, report, stitcherrors.Wrap(stitcherrors.ErrCodeEncode, err, "iteration %d: encode", i)
		}
		encoded := buf.Len()
		next, err := v.Reader.Read(&buf)
		if err != nil {
			return nil, report, stitcherrors.Wrap(stitcherrors.ErrCodeDecode, err, "iteration %d: decode", i)
		}
		if next == nil {
			return nil, report, stitcherrors.New(stitcherrors.ErrCodeDecode, "iteration %d: decoder returned no pattern", i)
		}
		work = next

		divs := compare(i, baseline, baseAttrs, work)
		for _, d := range divs {
			reporter.Report(d)
		}
		report.Divergences = append(report.Divergences, divs...)
		report.Iterations = i
		hooks.OnVerifyIteration(ctx, i, len(divs))
		logger.Debug("round trip", "codec", v.Name, "iteration", i, "bytes", encoded,
			"stitches", work.StitchCount(), "divergences", len(divs))

		if len(divs) > 0 {
			return nil, report, stitcherrors.Wrap(stitcherrors.ErrCodeFidelity,
				&FidelityError{Iteration: i, Divergences: divs},
				"%s round trip is not exact", v.name())
		}
	}
	return work, report, nil
}

func (v *Verifier) logger() *log.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return log.Default()
}

func (v *Verifier) name() string {
	if v.Name != "" {
		return v.Name
	}
	return "codec"
}

// compare diffs p against the baseline. Attribute differences come first.
func compare(iteration int, baseline []pattern.Stitch, baseAttrs pattern.AttributeSet, p *pattern.Pattern) []Divergence {
	var divs []Divergence

	attrs := p.AttributeSet()
	if !attrs.Equal(baseAttrs) {
		divs = append(divs, Divergence{
			Kind:      KindAttributes,
			Iteration: iteration,
			Added:     attrs.Difference(baseAttrs),
			Missing:   baseAttrs.Difference(attrs),
		})
	}

	if d, ok := firstMismatch(baseline, p.Stitches()); ok {
		d.Iteration = iteration
		divs = append(divs, d)
	}
	return divs
}

// firstMismatch finds the first position where want and got differ. When one
// sequence is a prefix of the other, the mismatch is at the shorter length.
func firstMismatch(want, got []pattern.Stitch) (Divergence, bool) {
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			return Divergence{Kind: KindStitches, Index: i, Want: &want[i], Got: &got[i]}, true
		}
	}
	if len(want) == len(got) {
		return Divergence{}, false
	}
	d := Divergence{Kind: KindStitches, Index: n}
	if n < len(want) {
		d.Want = &want[n]
	}
	if n < len(got) {
		d.Got = &got[n]
	}
	return d, true
}

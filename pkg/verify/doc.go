// Package verify checks that a codec reproduces a pattern exactly.
//
// A [Verifier] pairs a format.Writer with a format.Reader and runs k
// encode/decode cycles. Every generation is compared with the pattern it was
// given, not with the previous generation, so both one-shot corruption and
// slow drift are caught:
//
//	v := verify.Verifier{Reader: dst.Codec{}, Writer: dst.Codec{}}
//	out, report, err := v.Run(ctx, p, 2)
//
// Each iteration first reports every divergence it finds (changed
// attributes, then the first mismatching stitch) and only then fails with a
// FIDELITY_VIOLATION error wrapping a [*FidelityError]. Encode or decode
// failures stop the run immediately.
//
// Stitches are compared by position over the whole pattern, color groups
// concatenated in order. A codec that reorders groups, even one that keeps
// every stitch, does not preserve fidelity.
package verify

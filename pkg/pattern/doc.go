// Package pattern defines the in-memory model of a machine-embroidery design.
//
// # Overview
//
// A [Pattern] is an ordered list of [ColorGroup] values, each one needle pass
// of a single thread. A color group holds ordered [StitchGroup] runs, and each
// run holds ordered [Stitch] needle penetrations:
//
//	Pattern
//	  └── ColorGroup (thread, or nil for "pick a color for me")
//	        └── StitchGroup (sewn without a color change)
//	              └── Stitch{X, Y}
//
// Coordinates are millimetres with y increasing upward, the convention used
// by embroidery machines and the DST format. Image formats flip y at render
// time (see the render package); the model never does.
//
// # Attributes
//
// Design metadata (title, author, ...) is stored as [Attribute] values. They
// have set semantics: order and duplicates carry no meaning, so comparisons go
// through [AttributeSet].
//
// # Ownership
//
// Readers build patterns; renderers and writers only read them. [Pattern.Clone]
// produces a fully independent copy for callers that need a private working
// copy, such as the round-trip verifier.
package pattern

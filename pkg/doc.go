// Package pkg holds the stitchkit libraries.
//
// # Overview
//
// Stitchkit converts machine-embroidery stitch patterns between an in-memory
// model and exchange formats, and checks that repeated round trips through a
// format keep the pattern intact.
//
//  1. [pattern] - the data model (color groups, stitch groups, stitches, attributes)
//  2. [palette] - evenly spaced generated thread colors
//  3. [render] - SVG documents and PNG previews
//  4. [format] - codec interfaces and registry; [format/dst] and [io] implement them
//  5. [verify] - repeated round-trip comparison
//  6. [pipeline] - orchestration shared by the CLI and [server]
//
// # Data Flow
//
//	DST / JSON file
//	       ↓
//	  [format] reader
//	       ↓
//	  [pattern.Pattern]
//	     ↙      ↘
//	[render]   [verify] ⇄ codec
//	   ↓           ↓
//	SVG/PNG    report + re-encoded file
//
// # Quick Start
//
//	p, err := stitchio.ImportJSON("leaf.json")
//	if err != nil {
//	    return err
//	}
//	svg := render.RenderSVG(p, render.WithMetadata())
//
//	v := &verify.Verifier{Name: "dst", Reader: dst.Codec{}, Writer: dst.Codec{}}
//	out, report, err := v.Run(ctx, p, 2)
package pkg

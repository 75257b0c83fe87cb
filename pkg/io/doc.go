// Package io provides JSON import and export for embroidery patterns.
//
// # Overview
//
// JSON is the lossless interchange format of stitchkit. Every part of a
// [pattern.Pattern] is kept: attribute order, threads, empty groups and
// exact float coordinates. It is used to:
//
//   - Hand patterns to and from external tools
//   - Check other codecs against a format that never loses data
//   - Store decoded patterns in the artifact cache
//
// # JSON Format
//
//	{
//	  "attributes": [
//	    {"key": "title", "value": "Rose"}
//	  ],
//	  "color_groups": [
//	    {
//	      "thread": {"color": "#c80a0a", "name": "Red", "code": "1147"},
//	      "stitch_groups": [
//	        {"stitches": [[0, 0], [1.5, 2]]}
//	      ]
//	    },
//	    {
//	      "stitch_groups": [
//	        {"stitches": [[3, 4]]}
//	      ]
//	    }
//	  ]
//	}
//
// A color group without "thread" has no assigned color; renderers generate
// one. Each stitch is an [x, y] pair in millimetres with y pointing up.
//
// # Import
//
// Use [ImportJSON] to read a pattern from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	p, err := io.ImportJSON("rose.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// Use [ExportJSON] to write a pattern to a file, or [WriteJSON] to write to
// any io.Writer. [Codec] adapts both directions to the format.Reader and
// format.Writer interfaces.
package io

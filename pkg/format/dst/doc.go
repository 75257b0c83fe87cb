// Package dst reads and writes Tajima DST embroidery files.
//
// # File Layout
//
// A DST file is a 512-byte text header followed by 3-byte stitch records:
//
//	LA:Label           \r   design name, 16 characters
//	ST:    123\r            record count
//	CO:  2\r                color changes
//	+X:  250\r -X:...       extents in 0.1 mm
//	AX:+   12\r ...         end position
//	PD:******\r
//	AU:...\r CP:...\r       extended: author, copyright
//	TC:#rrggbb,Name,Code\r  extended: one line per thread
//	0x1A, then spaces up to 512 bytes
//
// Each record moves the needle by (dx, dy) in 0.1 mm steps, encoded in
// balanced ternary with digits 81, 27, 9, 3, 1, so a single record covers at
// most ±121 units (12.1 mm) per axis. The third byte also carries the command:
// stitch, jump, color change or end.
//
// # Mapping to the Pattern Model
//
// Stitch records append to the current stitch group; a jump closes it and a
// color change opens a new color group. When writing, every stitch group
// starts with jumps to its first stitch followed by a zero-length stitch
// there, so each stitch of the model becomes exactly one stitch record and
// reading the file back yields the same stitch sequence.
//
// Attributes title, author and copyright map to the LA, AU and CP fields.
// Other attributes have no place in the format and are dropped on write.
package dst

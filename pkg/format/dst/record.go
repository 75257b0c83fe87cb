package dst

// Record commands, stored in the third byte. Bits 0 and 1 are always set.
const (
	cmdStitch      byte = 0x03
	cmdJump        byte = 0x83
	cmdColorChange byte = 0xC3
	cmdEnd         byte = 0xF3
)

// maxDelta is the largest per-axis move a single record can encode.
const maxDelta = 121

type recordKind int

const (
	kindStitch recordKind = iota
	kindJump
	kindColorChange
	kindSequin
	kindEnd
)

type ternaryDigit struct {
	weight int
	byteIx int
	plus   byte
	minus  byte
}

// X and Y digit positions, largest weight first.
var (
	xDigits = []ternaryDigit{
		{81, 2, 1 << 2, 1 << 3},
		{27, 1, 1 << 2, 1 << 3},
		{9, 0, 1 << 2, 1 << 3},
		{3, 1, 1 << 0, 1 << 1},
		{1, 0, 1 << 0, 1 << 1},
	}
	yDigits = []ternaryDigit{
		{81, 2, 1 << 5, 1 << 4},
		{27, 1, 1 << 5, 1 << 4},
		{9, 0, 1 << 5, 1 << 4},
		{3, 1, 1 << 7, 1 << 6},
		{1, 0, 1 << 7, 1 << 6},
	}
)

// encodeRecord packs a move of (dx, dy) with cmd. Both deltas must be within
// ±maxDelta.
func encodeRecord(dx, dy int, cmd byte) [3]byte {
	var b [3]byte
	encodeAxis(&b, dx, xDigits)
	encodeAxis(&b, dy, yDigits)
	b[2] |= cmd
	return b
}

func encodeAxis(b *[3]byte, v int, digits []ternaryDigit) {
	for _, d := range digits {
		half := d.weight / 2
		switch {
		case v > half:
			b[d.byteIx] |= d.plus
			v -= d.weight
		case v < -half:
			b[d.byteIx] |= d.minus
			v += d.weight
		}
	}
}

// decodeRecord unpacks a record.
func decodeRecord(b [3]byte) (dx, dy int, kind recordKind) {
	dx = decodeAxis(b, xDigits)
	dy = decodeAxis(b, yDigits)

	switch c := b[2]; {
	case c&cmdEnd == cmdEnd:
		kind = kindEnd
	case c&cmdColorChange == cmdColorChange:
		kind = kindColorChange
	case c&0x43 == 0x43:
		kind = kindSequin
	case c&cmdJump == cmdJump:
		kind = kindJump
	default:
		kind = kindStitch
	}
	return dx, dy, kind
}

func decodeAxis(b [3]byte, digits []ternaryDigit) int {
	v := 0
	for _, d := range digits {
		if b[d.byteIx]&d.plus != 0 {
			v += d.weight
		}
		if b[d.byteIx]&d.minus != 0 {
			v -= d.weight
		}
	}
	return v
}

// splitMove breaks a move into steps no longer than maxDelta per axis.
func splitMove(dx, dy int) [][2]int {
	var steps [][2]int
	for dx != 0 || dy != 0 {
		sx, sy := clampDelta(dx), clampDelta(dy)
		steps = append(steps, [2]int{sx, sy})
		dx -= sx
		dy -= sy
	}
	return steps
}

func clampDelta(v int) int {
	if v > maxDelta {
		return maxDelta
	}
	if v < -maxDelta {
		return -maxDelta
	}
	return v
}

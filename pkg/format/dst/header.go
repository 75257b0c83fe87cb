package dst

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/stitchkit/pkg/pattern"
)

const (
	headerSize = 512
	labelWidth = 16
	headerEnd  = 0x1A
)

// header holds the fields stitchkit reads from or writes to a DST header.
type header struct {
	Label     string
	Author    string
	Copyright string
	Records   int
	Colors    int
	Extents   extents
	End       [2]int
	Threads   []pattern.Thread
}

// extents is the bounding box of all needle positions in 0.1 mm.
type extents struct {
	MinX, MinY, MaxX, MaxY int
}

func (e *extents) add(x, y int) {
	e.MinX = min(e.MinX, x)
	e.MinY = min(e.MinY, y)
	e.MaxX = max(e.MaxX, x)
	e.MaxY = max(e.MaxY, y)
}

// marshal renders the 512-byte header. Extended lines that do not fit are
// skipped and returned so the caller can report them.
func (h header) marshal() ([]byte, []string) {
	var buf bytes.Buffer
	label := fieldValue(h.Label, labelWidth)
	fmt.Fprintf(&buf, "LA:%s%s\r", label, strings.Repeat(" ", labelWidth-len(label)))
	fmt.Fprintf(&buf, "ST:%7d\r", h.Records)
	fmt.Fprintf(&buf, "CO:%3d\r", h.Colors)
	fmt.Fprintf(&buf, "+X:%5d\r", h.Extents.MaxX)
	fmt.Fprintf(&buf, "-X:%5d\r", -h.Extents.MinX)
	fmt.Fprintf(&buf, "+Y:%5d\r", h.Extents.MaxY)
	fmt.Fprintf(&buf, "-Y:%5d\r", -h.Extents.MinY)
	fmt.Fprintf(&buf, "AX:%s\r", signed(h.End[0]))
	fmt.Fprintf(&buf, "AY:%s\r", signed(h.End[1]))
	fmt.Fprintf(&buf, "MX:%s\r", signed(0))
	fmt.Fprintf(&buf, "MY:%s\r", signed(0))
	buf.WriteString("PD:******\r")

	var extended []string
	if h.Author != "" {
		extended = append(extended, "AU:"+fieldValue(h.Author, 0))
	}
	if h.Copyright != "" {
		extended = append(extended, "CP:"+fieldValue(h.Copyright, 0))
	}
	for _, t := range h.Threads {
		extended = append(extended, fmt.Sprintf("TC:%s,%s,%s",
			t.Color, threadField(t.Name), threadField(t.Code)))
	}

	var dropped []string
	for _, line := range extended {
		// Keep room for the line's \r and the 0x1A terminator.
		if buf.Len()+len(line)+2 > headerSize {
			dropped = append(dropped, line)
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\r')
	}

	buf.WriteByte(headerEnd)
	for buf.Len() < headerSize {
		buf.WriteByte(' ')
	}
	return buf.Bytes(), dropped
}

// parseHeader reads the fields stitchkit understands. Unknown and malformed
// lines are ignored, as real-world headers vary.
func parseHeader(b []byte) header {
	if i := bytes.IndexByte(b, headerEnd); i >= 0 {
		b = b[:i]
	}
	var h header
	for _, line := range strings.FieldsFunc(string(b), func(r rune) bool { return r == '\r' || r == '\n' }) {
		if len(line) < 3 || line[2] != ':' {
			continue
		}
		value := line[3:]
		switch line[:2] {
		case "LA":
			h.Label = strings.TrimSpace(value)
		case "AU":
			h.Author = strings.TrimSpace(value)
		case "CP":
			h.Copyright = strings.TrimSpace(value)
		case "ST":
			_, _ = fmt.Sscan(value, &h.Records)
		case "CO":
			_, _ = fmt.Sscan(value, &h.Colors)
		case "TC":
			if t, ok := parseThread(value); ok {
				h.Threads = append(h.Threads, t)
			}
		}
	}
	return h
}

func parseThread(v string) (pattern.Thread, bool) {
	parts := strings.SplitN(v, ",", 3)
	c, err := pattern.ParseColor(parts[0])
	if err != nil {
		return pattern.Thread{}, false
	}
	t := pattern.Thread{Color: c}
	if len(parts) > 1 {
		t.Name = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		t.Code = strings.TrimSpace(parts[2])
	}
	return t, true
}

// fieldValue strips characters that would end a header line and truncates to
// at most width bytes when width > 0, never splitting a rune.
func fieldValue(s string, width int) string {
	s = strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' || r == headerEnd {
			return ' '
		}
		return r
	}, s)
	if width > 0 && len(s) > width {
		for width > 0 && !utf8.RuneStart(s[width]) {
			width--
		}
		s = s[:width]
	}
	return s
}

func threadField(s string) string {
	return strings.ReplaceAll(fieldValue(s, 0), ",", " ")
}

// signed formats v as a sign followed by a 5-wide magnitude ("+   12").
func signed(v int) string {
	sign := '+'
	if v < 0 {
		sign, v = '-', -v
	}
	return fmt.Sprintf("%c%5d", sign, v)
}

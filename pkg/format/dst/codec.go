package dst

import (
	"bytes"
	"errors"
	"io"
	"math"

	"github.com/charmbracelet/log"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

// unitsPerMM converts model millimetres to DST units.
const unitsPerMM = 10

// maxCoordinate is the largest absolute position the 5-digit extent fields hold.
const maxCoordinate = 99999

// Codec reads and writes DST files. The zero value is ready to use.
type Codec struct {
	// Logger receives debug messages about data the format cannot hold.
	// Nil disables them.
	Logger *log.Logger
}

// Read decodes a DST file.
func (c Codec) Read(r io.Reader) (*pattern.Pattern, error) {
	head := make([]byte, headerSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, stitcherrors.Wrap(stitcherrors.ErrCodeDecode, err, "dst: short header")
	}
	h := parseHeader(head)

	d := decoder{p: &pattern.Pattern{}, newGroup: true}
	var rec [3]byte
	for {
		_, err := io.ReadFull(r, rec[:])
		if errors.Is(err, io.EOF) {
			break // missing end record; tolerated
		}
		if err != nil {
			return nil, stitcherrors.Wrap(stitcherrors.ErrCodeDecode, err, "dst: truncated record %d", d.records)
		}
		if !d.step(rec) {
			break
		}
	}

	for i := range d.p.ColorGroups {
		if i >= len(h.Threads) {
			break
		}
		t := h.Threads[i]
		d.p.ColorGroups[i].Thread = &t
	}
	d.p.Attributes = headerAttributes(h)
	return d.p, nil
}

type decoder struct {
	p        *pattern.Pattern
	x, y     int
	newGroup bool
	records  int
}

func (d *decoder) colorGroup() *pattern.ColorGroup {
	if len(d.p.ColorGroups) == 0 {
		d.p.ColorGroups = append(d.p.ColorGroups, pattern.ColorGroup{})
	}
	return &d.p.ColorGroups[len(d.p.ColorGroups)-1]
}

// step applies one record and reports whether to continue.
func (d *decoder) step(rec [3]byte) bool {
	dx, dy, kind := decodeRecord(rec)
	if kind == kindEnd {
		return false
	}
	d.records++
	d.x += dx
	d.y += dy

	switch kind {
	case kindColorChange:
		d.colorGroup()
		d.p.ColorGroups = append(d.p.ColorGroups, pattern.ColorGroup{})
		d.newGroup = true
	case kindJump, kindSequin:
		d.colorGroup()
		d.newGroup = true
	case kindStitch:
		cg := d.colorGroup()
		if d.newGroup || len(cg.StitchGroups) == 0 {
			cg.StitchGroups = append(cg.StitchGroups, pattern.StitchGroup{})
			d.newGroup = false
		}
		sg := &cg.StitchGroups[len(cg.StitchGroups)-1]
		sg.Stitches = append(sg.Stitches, pattern.Stitch{
			X: float64(d.x) / unitsPerMM,
			Y: float64(d.y) / unitsPerMM,
		})
	}
	return true
}

func headerAttributes(h header) []pattern.Attribute {
	var attrs []pattern.Attribute
	if h.Label != "" {
		attrs = append(attrs, pattern.Attribute{Key: pattern.AttrTitle, Value: h.Label})
	}
	if h.Author != "" {
		attrs = append(attrs, pattern.Attribute{Key: pattern.AttrAuthor, Value: h.Author})
	}
	if h.Copyright != "" {
		attrs = append(attrs, pattern.Attribute{Key: pattern.AttrCopyright, Value: h.Copyright})
	}
	return attrs
}

// Write encodes p as DST. It fails with ENCODE_ERROR when a coordinate is not
// finite or out of range, or when two consecutive stitches are more than
// 12.1 mm apart on either axis.
func (c Codec) Write(p *pattern.Pattern, w io.Writer) error {
	e := encoder{}
	for ci, cg := range p.ColorGroups {
		if ci > 0 {
			e.emit(0, 0, cmdColorChange)
			e.colors++
			e.groupStart = true
		}
		for si, sg := range cg.StitchGroups {
			if err := e.stitchGroup(sg); err != nil {
				return stitcherrors.Wrap(stitcherrors.ErrCodeEncode, err,
					"dst: color group %d, stitch group %d", ci, si)
			}
		}
	}
	e.body.Write([]byte{0, 0, cmdEnd})

	h := header{
		Records: e.records,
		Colors:  e.colors,
		Extents: e.ext,
		End:     [2]int{e.x, e.y},
	}
	for _, a := range p.Attributes {
		switch a.Key {
		case pattern.AttrTitle:
			h.Label = a.Value
		case pattern.AttrAuthor:
			h.Author = a.Value
		case pattern.AttrCopyright:
			h.Copyright = a.Value
		default:
			c.debug("dst cannot store attribute", "attribute", a)
		}
	}
	for _, cg := range p.ColorGroups {
		if cg.Thread == nil {
			// Threads are positional; stop at the first gap.
			break
		}
		h.Threads = append(h.Threads, *cg.Thread)
	}

	head, dropped := h.marshal()
	for _, line := range dropped {
		c.debug("dst header full, dropped field", "field", line)
	}
	if _, err := w.Write(head); err != nil {
		return stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "dst: write header")
	}
	if _, err := w.Write(e.body.Bytes()); err != nil {
		return stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "dst: write records")
	}
	return nil
}

func (c Codec) debug(msg string, keyvals ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, keyvals...)
	}
}

type encoder struct {
	body       bytes.Buffer
	x, y       int
	ext        extents
	records    int
	colors     int
	groupStart bool // next stitch group needs no jump to separate it
	started    bool
}

func (e *encoder) emit(dx, dy int, cmd byte) {
	rec := encodeRecord(dx, dy, cmd)
	e.body.Write(rec[:])
	e.records++
	e.x += dx
	e.y += dy
	e.ext.add(e.x, e.y)
}

func (e *encoder) stitchGroup(sg pattern.StitchGroup) error {
	if len(sg.Stitches) == 0 {
		return nil
	}
	if !e.started {
		e.started = true
		e.groupStart = true
	}

	fx, fy, err := toUnits(sg.Stitches[0])
	if err != nil {
		return err
	}
	steps := splitMove(fx-e.x, fy-e.y)
	if len(steps) == 0 && !e.groupStart {
		steps = [][2]int{{0, 0}}
	}
	for _, s := range steps {
		e.emit(s[0], s[1], cmdJump)
	}
	e.emit(0, 0, cmdStitch)
	e.groupStart = false

	for i, s := range sg.Stitches[1:] {
		x, y, err := toUnits(s)
		if err != nil {
			return err
		}
		dx, dy := x-e.x, y-e.y
		if abs(dx) > maxDelta || abs(dy) > maxDelta {
			return stitcherrors.New(stitcherrors.ErrCodeEncode,
				"stitch %d moves (%d, %d) units, beyond ±%d", i+1, dx, dy, maxDelta)
		}
		e.emit(dx, dy, cmdStitch)
	}
	return nil
}

// toUnits rounds a stitch to the 0.1 mm grid.
func toUnits(s pattern.Stitch) (int, int, error) {
	x, y := math.Round(s.X*unitsPerMM), math.Round(s.Y*unitsPerMM)
	if math.IsNaN(x) || math.IsNaN(y) || math.Abs(x) > maxCoordinate || math.Abs(y) > maxCoordinate {
		return 0, 0, stitcherrors.New(stitcherrors.ErrCodeEncode,
			"coordinate (%v, %v) not representable", s.X, s.Y)
	}
	return int(x), int(y), nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

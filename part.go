package stackfile

import "fmt"

const (
	// partFixedSize is the length of the part descriptor before its text.
	partFixedSize = 32
	// moreFlagsSize is the length of the optional trailing flags word.
	moreFlagsSize = 4
)

// DecodePart decodes the part descriptor starting at off and returns it with
// the number of bytes it occupies, so sibling parts can be read back to back.
//
// MoreFlags is set only when the declared size leaves at least four bytes
// after the name and script. Fewer trailing bytes are alignment padding.
func DecodePart(b []byte, off int, opts ...DecodeOption) (*Part, int, error) {
	return decodePart(b, off, newDecodeConfig(opts))
}

func decodePart(b []byte, off int, cfg decodeConfig) (*Part, int, error) {
	r := newReader(b, off)
	size := r.u16("part size")
	if r.err != nil {
		return nil, 0, r.err
	}
	if size < partFixedSize {
		return nil, 0, fmt.Errorf("%w: part size %d below fixed layout of %d bytes", ErrInvalidSize, size, partFixedSize)
	}
	// Everything below is read from the declared extent only.
	r = newReader(r.take(int(size)-2, "part body"), 0)
	if r.err != nil {
		return nil, 0, r.err
	}
	p := &Part{
		Size:       size,
		ID:         r.i16("part id"),
		Type:       PartType(r.u8("part type")),
		Flags:      r.u8("part flags"),
		Top:        r.i16("top"),
		Left:       r.i16("left"),
		Bottom:     r.i16("bottom"),
		Right:      r.i16("right"),
		ShowName:   r.bool("show name"),
		Hilite:     r.bool("hilite"),
		AutoHilite: r.bool("auto hilite"),
		Family:     r.u8("family"),
		Style:      r.u8("style"),
		TextStyle:  r.u8("text style"),
		TitleWidth: r.i16("title width"),
		IconID:     r.i16("icon id"),
		TextAlign:  r.i16("text align"),
		TextFont:   r.i16("text font"),
		TextSize:   r.i16("text size"),
		TextHeight: r.i16("text height"),
	}
	name := r.text(cfg.revision, "part name")
	script := r.text(cfg.revision, "part script")
	if r.err != nil {
		return nil, 0, fmt.Errorf("%w: part %d text overruns declared size %d: %v", ErrInvalidSize, p.ID, size, r.err)
	}
	if r.remaining() >= moreFlagsSize {
		p.MoreFlags = Some(r.u32("more flags"))
	}

	var err error
	if p.Name, err = decodeText(cfg.charset, name, "part name"); err != nil {
		return nil, 0, err
	}
	if p.Script, err = decodeText(cfg.charset, script, "part script"); err != nil {
		return nil, 0, err
	}
	return p, int(size), nil
}

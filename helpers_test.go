package stackfile

import (
	"bytes"
	"encoding/binary"
)

// be builds big-endian test input.
type be struct{ bytes.Buffer }

func (w *be) u8(v uint8) *be   { w.WriteByte(v); return w }
func (w *be) u16(v uint16) *be { _ = binary.Write(&w.Buffer, binary.BigEndian, v); return w }
func (w *be) i16(v int16) *be  { return w.u16(uint16(v)) }
func (w *be) u32(v uint32) *be { _ = binary.Write(&w.Buffer, binary.BigEndian, v); return w }
func (w *be) i32(v int32) *be  { return w.u32(uint32(v)) }
func (w *be) raw(p []byte) *be { w.Write(p); return w }
func (w *be) str(s string) *be { w.WriteString(s); return w }

func (w *be) text(rev Revision, s string) *be {
	if rev == Revision1 {
		w.WriteString(s)
		w.WriteByte(0)
		return w
	}
	w.u16(uint16(len(s)))
	w.WriteString(s)
	return w
}

func tag(s string) uint32 {
	t, err := ParseBlockType(s)
	if err != nil {
		panic(err)
	}
	return uint32(t)
}

// header returns a raw 16-byte block header.
func header(size int32, typ string, id, filler int32) []byte {
	var w be
	w.i32(size).u32(tag(typ)).i32(id).i32(filler)
	return w.Bytes()
}

// block wraps payload in a header with a matching size.
func block(typ string, id int32, payload []byte) []byte {
	out := header(int32(HeaderSize+len(payload)), typ, id, 0)
	return append(out, payload...)
}

func tailBlock(id int32, s string) []byte {
	var w be
	w.u8(uint8(len(s))).str(s)
	return block("TAIL", id, w.Bytes())
}

// partDef describes a part descriptor to encode. trailing bytes are
// appended after the script and counted in the size.
type partDef struct {
	id                       int16
	typ                      PartType
	top, left, bottom, right int16
	showName, hilite         bool
	textSize                 int16
	name, script             string
	trailing                 []byte
}

func (s partDef) encode(rev Revision) []byte {
	var body be
	body.i16(s.id).u8(uint8(s.typ)).u8(0x01)
	body.i16(s.top).i16(s.left).i16(s.bottom).i16(s.right)
	body.u8(boolByte(s.showName)).u8(boolByte(s.hilite)).u8(0)
	// family, style, text style
	body.u8(3).u8(1).u8(0)
	// title width, icon, align, font, size, height
	body.i16(60).i16(0).i16(0).i16(3).i16(s.textSize).i16(16)
	body.text(rev, s.name).text(rev, s.script)
	body.raw(s.trailing)

	var w be
	w.u16(uint16(2 + body.Len()))
	w.raw(body.Bytes())
	return w.Bytes()
}

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

type richDef struct {
	runs         []StyleRun
	text         string
	name, script string
}

type contentDef struct {
	partID  int16
	content string
	rich    *richDef
}

// encode writes the record; when withGroup is set and rich is nil, the empty
// group (two zero lengths) is written.
func (s contentDef) encode(withGroup bool) []byte {
	var w be
	w.i16(s.partID).u16(uint16(len(s.content))).str(s.content)
	if !withGroup {
		return w.Bytes()
	}
	if s.rich == nil {
		return w.u16(0).u16(0).Bytes()
	}
	w.u16(uint16(len(s.rich.runs) * styleRunSize))
	for _, r := range s.rich.runs {
		w.u16(r.Offset).u16(r.StyleID)
	}
	w.u16(uint16(len(s.rich.text))).str(s.rich.text)
	w.u16(uint16(len(s.rich.name))).str(s.rich.name)
	w.u16(uint16(len(s.rich.script))).str(s.rich.script)
	return w.Bytes()
}

// cardPayload builds a CARD payload in revision rev.
func cardPayload(rev Revision, bgID int32, parts []partDef, contents []contentDef, name, script string) []byte {
	var w be
	w.i32(0).u16(0).i32(bgID)
	writeLayerBody(&w, rev, parts, contents, name, script)
	return w.Bytes()
}

func backgroundPayload(rev Revision, cards int32, parts []partDef, contents []contentDef, name, script string) []byte {
	var w be
	w.i32(0).u16(0).i32(cards).i32(0).i32(0)
	writeLayerBody(&w, rev, parts, contents, name, script)
	return w.Bytes()
}

func writeLayerBody(w *be, rev Revision, parts []partDef, contents []contentDef, name, script string) {
	w.u16(uint16(len(parts))).u16(uint16(len(contents)))
	for _, p := range parts {
		w.raw(p.encode(rev))
	}
	for _, c := range contents {
		w.raw(c.encode(rev == Revision2))
	}
	w.text(rev, name).text(rev, script)
}

func stackPayload(format int32) []byte {
	var w be
	w.i32(format).i32(2).i32(3000).i32(4000).i32(0).i32(0).i32(0).i16(5).u16(0)
	return w.Bytes()
}

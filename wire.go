package stackfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DecodeHeader reads the 16-byte envelope starting at off and returns it
// with the number of bytes consumed. The type tag is not checked here.
//
// The returned Payload is b[off+16 : off+Size].
func DecodeHeader(b []byte, off int) (Envelope, int, error) {
	if off < 0 || off > len(b) || len(b)-off < HeaderSize {
		return Envelope{}, 0, fmt.Errorf("%w: need %d header bytes at offset %d, have %d", ErrTruncatedInput, HeaderSize, off, max(len(b)-off, 0))
	}
	h := b[off : off+HeaderSize]
	env := Envelope{
		Offset: off,
		Size:   int32(binary.BigEndian.Uint32(h[0:4])),
		Type:   BlockType(binary.BigEndian.Uint32(h[4:8])),
		ID:     int32(binary.BigEndian.Uint32(h[8:12])),
		Filler: int32(binary.BigEndian.Uint32(h[12:16])),
	}
	if env.Size < HeaderSize {
		return Envelope{}, 0, fmt.Errorf("%w: block size %d below header size", ErrInvalidSize, env.Size)
	}
	if int64(off)+int64(env.Size) > int64(len(b)) {
		return Envelope{}, 0, fmt.Errorf("%w: block size %d at offset %d overruns buffer of %d bytes", ErrInvalidSize, env.Size, off, len(b))
	}
	env.Payload = b[off+HeaderSize : off+int(env.Size)]
	return env, HeaderSize, nil
}

// reader walks a byte slice big-endian. The first failure sticks: later
// reads return zero values and err reports the original problem, so decoders
// can read a whole fixed layout and check once.
type reader struct {
	b   []byte
	off int
	err error
}

func newReader(b []byte, off int) *reader {
	r := &reader{b: b, off: off}
	if off < 0 || off > len(b) {
		r.err = fmt.Errorf("%w: offset %d outside buffer of %d bytes", ErrTruncatedInput, off, len(b))
	}
	return r
}

func (r *reader) remaining() int {
	if r.err != nil {
		return 0
	}
	return len(r.b) - r.off
}

func (r *reader) take(n int, what string) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.b)-r.off < n {
		r.err = fmt.Errorf("%w: %s needs %d bytes at offset %d, have %d", ErrTruncatedInput, what, n, r.off, len(r.b)-r.off)
		return nil
	}
	p := r.b[r.off : r.off+n]
	r.off += n
	return p
}

func (r *reader) u8(what string) uint8 {
	p := r.take(1, what)
	if p == nil {
		return 0
	}
	return p[0]
}

func (r *reader) bool(what string) bool { return r.u8(what) != 0 }

func (r *reader) u16(what string) uint16 {
	p := r.take(2, what)
	if p == nil {
		return 0
	}
	return binary.BigEndian.Uint16(p)
}

func (r *reader) i16(what string) int16 { return int16(r.u16(what)) }

func (r *reader) u32(what string) uint32 {
	p := r.take(4, what)
	if p == nil {
		return 0
	}
	return binary.BigEndian.Uint32(p)
}

func (r *reader) i32(what string) int32 { return int32(r.u32(what)) }

// cstring returns the bytes up to the next NUL and consumes the terminator.
func (r *reader) cstring(what string) []byte {
	if r.err != nil {
		return nil
	}
	i := bytes.IndexByte(r.b[r.off:], 0)
	if i < 0 {
		r.err = fmt.Errorf("%w: %s at offset %d has no NUL terminator", ErrTruncatedInput, what, r.off)
		return nil
	}
	p := r.b[r.off : r.off+i]
	r.off += i + 1
	return p
}

// pstring returns a uint16 length-prefixed byte string.
func (r *reader) pstring(what string) []byte {
	n := r.u16(what + " length")
	return r.take(int(n), what)
}

// text reads a part or layer text field in the layout of rev.
func (r *reader) text(rev Revision, what string) []byte {
	if rev == Revision1 {
		return r.cstring(what)
	}
	return r.pstring(what)
}

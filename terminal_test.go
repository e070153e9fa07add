package stackfile

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

// envelopeOf decodes the header of buf and points Payload at everything
// after it, regardless of the declared size.
func envelopeOf(t *testing.T, buf []byte) Envelope {
	t.Helper()
	if len(buf) < HeaderSize {
		t.Fatalf("buffer of %d bytes has no header", len(buf))
	}
	return Envelope{
		Size:    int32(binary.BigEndian.Uint32(buf[0:4])),
		Type:    BlockType(binary.BigEndian.Uint32(buf[4:8])),
		ID:      int32(binary.BigEndian.Uint32(buf[8:12])),
		Filler:  int32(binary.BigEndian.Uint32(buf[12:16])),
		Payload: buf[HeaderSize:],
	}
}

func TestDecodeTerminal_Hello(t *testing.T) {
	var w be
	w.raw(header(21, "TAIL", 1, 0)).u8(5).str("hello")
	tb, err := DecodeTerminal(envelopeOf(t, w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if tb.Size != 21 || tb.ID != 1 || tb.StringLength != 5 || tb.Text != "hello" {
		t.Fatalf("unexpected record: %+v", tb)
	}
}

func TestDecodeTerminal_ShortText(t *testing.T) {
	var w be
	w.raw(header(21, "TAIL", 1, 0)).u8(5).str("hel")
	_, err := DecodeTerminal(envelopeOf(t, w.Bytes()))
	if !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput, got %v", err)
	}
}

func TestDecodeTerminal_EmptyPayload(t *testing.T) {
	_, err := DecodeTerminal(envelopeOf(t, header(16, "TAIL", 1, 0)))
	if !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput, got %v", err)
	}
}

func TestDecodeTerminal_WrongType(t *testing.T) {
	var w be
	w.raw(header(22, "CARD", 1, 0)).u8(5).str("hello")
	_, err := DecodeTerminal(envelopeOf(t, w.Bytes()))
	if !errors.Is(err, ErrUnexpectedType) {
		t.Fatalf("expected ErrUnexpectedType, got %v", err)
	}
	if Fatal(err) {
		t.Fatal("type mismatch must not be fatal")
	}
}

func TestDecodeTerminal_AllLengths(t *testing.T) {
	for n := 0; n <= 255; n++ {
		s := strings.Repeat("é", n/2) + strings.Repeat("x", n%2)
		buf := tailBlock(int32(n), s)
		env, _, err := DecodeHeader(buf, 0)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		tb, err := DecodeTerminal(env)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(tb.Text) != n || int(tb.StringLength) != n || tb.Size != int32(len(buf)) {
			t.Fatalf("n=%d: text %d bytes, length %d, size %d", n, len(tb.Text), tb.StringLength, tb.Size)
		}
	}
}

func TestDecodeTerminal_InvalidUTF8(t *testing.T) {
	var w be
	w.u8(3).raw([]byte{'a', 0xC3, 0x28})
	buf := block("TAIL", 1, w.Bytes())
	_, err := DecodeBlock(buf, 0)
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestDecodeTerminal_MacRoman(t *testing.T) {
	var w be
	// "That's all" with a MacRoman right single quote (0xD5).
	w.u8(10).raw([]byte("That\xD5s all"))
	rec, err := DecodeBlock(block("TAIL", -1, w.Bytes()), 0, WithCharset(MacRoman))
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.(*TerminalBlock).Text; got != "That’s all" {
		t.Fatalf("text = %q", got)
	}
}

func TestDecodeTerminal_TrailingPadding(t *testing.T) {
	var w be
	w.u8(2).str("ok").u8(0)
	rec, err := DecodeBlock(block("TAIL", 1, w.Bytes()), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.(*TerminalBlock).Text; got != "ok" {
		t.Fatalf("text = %q", got)
	}
}

package stackfile

import (
	"errors"
	"testing"
)

func TestBlockTypeCodes(t *testing.T) {
	names := []string{"STAK", "MAST", "LIST", "PAGE", "BKGD", "CARD", "BMAP", "FREE", "STBL", "FTBL", "PRNT", "PRST", "PRFT", "TAIL"}
	if len(KnownTypes) != len(names) {
		t.Fatalf("KnownTypes has %d entries", len(KnownTypes))
	}
	for i, name := range names {
		typ, err := ParseBlockType(name)
		if err != nil {
			t.Fatal(err)
		}
		if typ != KnownTypes[i] || !typ.Known() || typ.String() != name {
			t.Fatalf("%s: parsed %#x, known %t, string %q", name, uint32(typ), typ.Known(), typ.String())
		}
	}
	if TypeTail != 0x5441494C {
		t.Fatalf("TAIL = %#x", uint32(TypeTail))
	}
	if typ, _ := ParseBlockType("tail"); typ.Known() {
		t.Fatal("type codes are case sensitive")
	}
	if _, err := ParseBlockType("CARDS"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOptional(t *testing.T) {
	var absent Optional[uint32]
	if v, ok := absent.Get(); ok || v != 0 || absent.IsSet() {
		t.Fatal("zero Optional must be absent")
	}
	zero := Some[uint32](0)
	if v, ok := zero.Get(); !ok || v != 0 || !zero.IsSet() {
		t.Fatal("Some(0) must be present")
	}
	if absent == zero {
		t.Fatal("absent and present zero must differ")
	}
}

func TestParseCharset(t *testing.T) {
	for in, want := range map[string]Charset{"": UTF8, "UTF-8": UTF8, "utf8": UTF8, "MacRoman": MacRoman, "macintosh": MacRoman} {
		got, err := ParseCharset(in)
		if err != nil || got != want {
			t.Fatalf("ParseCharset(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseCharset("latin1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if Revision(7).String() != "Revision(7)" || PartType(9).String() != "PartType(9)" || Charset(9).String() != "Charset(9)" {
		t.Fatal("unexpected String for out-of-range values")
	}
}

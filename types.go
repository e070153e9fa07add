package stackfile

import (
	"fmt"
	"strings"
)

// HeaderSize is the length of the envelope shared by every block.
const HeaderSize = 16

// BlockType is the packed four-character code selecting how a block's
// payload is interpreted. The fourteen constants below form a closed set;
// every other value is unrecognized and reported by Known.
type BlockType uint32

const (
	TypeStack      BlockType = 'S'<<24 | 'T'<<16 | 'A'<<8 | 'K'
	TypeMaster     BlockType = 'M'<<24 | 'A'<<16 | 'S'<<8 | 'T'
	TypeList       BlockType = 'L'<<24 | 'I'<<16 | 'S'<<8 | 'T'
	TypePage       BlockType = 'P'<<24 | 'A'<<16 | 'G'<<8 | 'E'
	TypeBackground BlockType = 'B'<<24 | 'K'<<16 | 'G'<<8 | 'D'
	TypeCard       BlockType = 'C'<<24 | 'A'<<16 | 'R'<<8 | 'D'
	TypeBitmap     BlockType = 'B'<<24 | 'M'<<16 | 'A'<<8 | 'P'
	TypeFree       BlockType = 'F'<<24 | 'R'<<16 | 'E'<<8 | 'E'
	TypeStyleTable BlockType = 'S'<<24 | 'T'<<16 | 'B'<<8 | 'L'
	TypeFontTable  BlockType = 'F'<<24 | 'T'<<16 | 'B'<<8 | 'L'
	TypePrint      BlockType = 'P'<<24 | 'R'<<16 | 'N'<<8 | 'T'
	TypePrintSetup BlockType = 'P'<<24 | 'R'<<16 | 'S'<<8 | 'T'
	TypePrintFont  BlockType = 'P'<<24 | 'R'<<16 | 'F'<<8 | 'T'
	TypeTail       BlockType = 'T'<<24 | 'A'<<16 | 'I'<<8 | 'L'
)

// KnownTypes lists every recognized block type in file-format order.
var KnownTypes = []BlockType{
	TypeStack, TypeMaster, TypeList, TypePage, TypeBackground, TypeCard, TypeBitmap,
	TypeFree, TypeStyleTable, TypeFontTable, TypePrint, TypePrintSetup, TypePrintFont, TypeTail,
}

// Known reports whether t is one of the fourteen defined block types.
func (t BlockType) Known() bool {
	switch t {
	case TypeStack, TypeMaster, TypeList, TypePage, TypeBackground, TypeCard, TypeBitmap,
		TypeFree, TypeStyleTable, TypeFontTable, TypePrint, TypePrintSetup, TypePrintFont, TypeTail:
		return true
	}
	return false
}

func (t BlockType) String() string {
	var sb strings.Builder
	for shift := 24; shift >= 0; shift -= 8 {
		c := byte(t >> shift)
		if c >= 0x20 && c < 0x7F {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, `\x%02X`, c)
		}
	}
	return sb.String()
}

// ParseBlockType packs a four-character code. It does not require the code
// to be a known type.
func ParseBlockType(s string) (BlockType, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: block type %q must be 4 bytes", ErrValidation, s)
	}
	return BlockType(uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3])), nil
}

// Envelope is a block before payload interpretation.
//
// Payload aliases the buffer handed to DecodeHeader unless WithCopyPayload is
// set; the buffer must outlive the envelope in that case.
type Envelope struct {
	Offset  int
	Size    int32
	Type    BlockType
	ID      int32
	Filler  int32
	Payload []byte
}

// Record is a decoded block. The set of implementations is closed:
// *TerminalBlock, *StackBlock, *CardBlock, *BackgroundBlock and *RawBlock.
type Record interface {
	Block() Envelope
	record()
}

func (b *RawBlock) Block() Envelope        { return b.Envelope }
func (b *TerminalBlock) Block() Envelope   { return b.Envelope }
func (b *StackBlock) Block() Envelope      { return b.Envelope }
func (b *CardBlock) Block() Envelope       { return b.Envelope }
func (b *BackgroundBlock) Block() Envelope { return b.Envelope }

func (*RawBlock) record()        {}
func (*TerminalBlock) record()   {}
func (*StackBlock) record()      {}
func (*CardBlock) record()       {}
func (*BackgroundBlock) record() {}

// RawBlock is returned for known block types whose payload is not decoded
// into fields. The payload stays available for lazy decoding.
type RawBlock struct {
	Envelope
}

// TerminalBlock marks the logical end of the block sequence.
type TerminalBlock struct {
	Envelope
	StringLength uint8
	Text         string
}

// Revision selects how part and content text fields are laid out.
type Revision uint8

const (
	// Revision1 stores part text NUL-terminated and content as plain text.
	Revision1 Revision = 1
	// Revision2 stores part text with a uint16 length prefix and content
	// with a trailing rich-text group.
	Revision2 Revision = 2
)

func (r Revision) String() string {
	switch r {
	case Revision1:
		return "1"
	case Revision2:
		return "2"
	default:
		return fmt.Sprintf("Revision(%d)", uint8(r))
	}
}

// StackBlock carries the stack-wide header fields.
type StackBlock struct {
	Envelope
	Format      int32
	CardCount   int32
	FirstCardID int32
	ListID      int32
	FreeCount   int32
	FreeSize    int32
	PrintID     int32
	UserLevel   int16
	Flags       uint16
}

// revision2Format is the first format number written by the 2.x editors.
const revision2Format = 9

// Revision reports the part text layout used by blocks of this stack.
func (s *StackBlock) Revision() Revision {
	if s.Format >= revision2Format {
		return Revision2
	}
	return Revision1
}

// Layer is the part-bearing body shared by cards and backgrounds.
type Layer struct {
	BitmapID int32
	Flags    uint16
	Parts    []*Part
	Contents []*PartContent
	Name     string
	Script   string
}

// PartByID returns the part with the given id, or nil.
func (l *Layer) PartByID(id int16) *Part {
	for _, p := range l.Parts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ContentFor returns the content bound to partID, or nil. Negative ids are
// the card-level contents of background fields and never resolve to a part
// of the same layer.
func (l *Layer) ContentFor(partID int16) *PartContent {
	for _, c := range l.Contents {
		if c.PartID == partID {
			return c
		}
	}
	return nil
}

// CardBlock is a decoded CARD block.
type CardBlock struct {
	Envelope
	Layer
	BackgroundID int32
}

// BackgroundBlock is a decoded BKGD block.
type BackgroundBlock struct {
	Envelope
	Layer
	CardCount        int32
	NextBackgroundID int32
	PrevBackgroundID int32
}

// PartType is the kind of interactive region a part describes.
type PartType uint8

const (
	PartButton PartType = 1
	PartField  PartType = 2
)

func (t PartType) String() string {
	switch t {
	case PartButton:
		return "button"
	case PartField:
		return "field"
	default:
		return fmt.Sprintf("PartType(%d)", uint8(t))
	}
}

// Optional holds a value that a format revision may omit. The zero value is
// absent, which is distinct from a present zero.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

func (o Optional[T]) IsSet() bool { return o.ok }

// Part describes the layout and style of one button or field.
type Part struct {
	Size       uint16
	ID         int16
	Type       PartType
	Flags      uint8
	Top        int16
	Left       int16
	Bottom     int16
	Right      int16
	ShowName   bool
	Hilite     bool
	AutoHilite bool
	Family     uint8
	Style      uint8
	TextStyle  uint8
	TitleWidth int16
	IconID     int16
	TextAlign  int16
	TextFont   int16
	TextSize   int16
	TextHeight int16
	Name       string
	Script     string
	MoreFlags  Optional[uint32]
}

// Inverted reports whether the rectangle has top below bottom or left right
// of right. Such parts decode unchanged.
func (p *Part) Inverted() bool {
	return p.Top > p.Bottom || p.Left > p.Right
}

// PartContent is the text bound to a part.
type PartContent struct {
	PartID      int16
	ContentSize uint16
	Content     string
	// Rich is nil unless the record carries the styled text group.
	Rich *RichText
}

// RichText is the styled text group of a Revision2 content record.
type RichText struct {
	StylesLength uint16
	StylesData   []byte
	Runs         []StyleRun
	TextData     string
	Name         string
	Script       string
}

// StyleRun applies style table entry StyleID from character Offset onward.
type StyleRun struct {
	Offset  uint16
	StyleID uint16
}

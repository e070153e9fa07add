package stackfile

import "fmt"

// styleRunSize is the length of one entry in a styles table.
const styleRunSize = 4

// DecodePartContent decodes the content record starting at off and returns
// it with the number of bytes consumed.
//
// Whether the styled text group follows the plain content is not recorded in
// the record itself; it comes from the caller through WithRevision(Revision2)
// or WithRichText(true). Without either, only the plain content is read.
// Within the group the styles table and the raw text travel together: one
// without the other is ErrMalformedRichText, and two empty lengths mean the
// group is absent. A group cut short after its styles length is also
// ErrMalformedRichText; ErrTruncatedInput is kept for the fixed prefix.
func DecodePartContent(b []byte, off int, opts ...DecodeOption) (*PartContent, int, error) {
	cfg := newDecodeConfig(opts)
	return decodePartContent(b, off, cfg, cfg.callerRich())
}

func decodePartContent(b []byte, off int, cfg decodeConfig, rich bool) (*PartContent, int, error) {
	r := newReader(b, off)
	c := &PartContent{
		PartID:      r.i16("content part id"),
		ContentSize: r.u16("content size"),
	}
	raw := r.take(int(c.ContentSize), "content")
	if r.err != nil {
		return nil, 0, r.err
	}
	var err error
	if c.Content, err = decodeText(cfg.charset, raw, "content"); err != nil {
		return nil, 0, err
	}
	if rich {
		if c.Rich, err = readRichText(r, cfg.charset); err != nil {
			return nil, 0, err
		}
	}
	return c, r.off - off, nil
}

func readRichText(r *reader, cs Charset) (*RichText, error) {
	stylesLen := r.u16("styles length")
	if r.err != nil {
		return nil, r.err
	}
	styles := r.take(int(stylesLen), "styles data")
	text := r.pstring("text data")
	if r.err != nil {
		return nil, partialGroup(r.err)
	}
	if err := validateRichGroup(stylesLen, len(text)); err != nil {
		return nil, err
	}
	if stylesLen == 0 {
		return nil, nil
	}
	name := r.pstring("content name")
	script := r.pstring("content script")
	if r.err != nil {
		return nil, partialGroup(r.err)
	}

	rt := &RichText{
		StylesLength: stylesLen,
		StylesData:   append([]byte(nil), styles...),
		Runs:         make([]StyleRun, 0, len(styles)/styleRunSize),
	}
	sr := newReader(styles, 0)
	for sr.remaining() > 0 {
		rt.Runs = append(rt.Runs, StyleRun{Offset: sr.u16("run offset"), StyleID: sr.u16("run style")})
	}
	var err error
	if rt.TextData, err = decodeText(cs, text, "text data"); err != nil {
		return nil, err
	}
	if rt.Name, err = decodeText(cs, name, "content name"); err != nil {
		return nil, err
	}
	if rt.Script, err = decodeText(cs, script, "content script"); err != nil {
		return nil, err
	}
	if err := validateRuns(rt.Runs, len(text)); err != nil {
		return nil, err
	}
	return rt, nil
}

// partialGroup reports a styled group that ends before all of its fields.
func partialGroup(err error) error {
	return fmt.Errorf("%w: group cut short: %v", ErrMalformedRichText, err)
}

func (c *PartContent) String() string {
	return fmt.Sprintf("PartContent(part=%d, %d bytes, rich=%t)", c.PartID, c.ContentSize, c.Rich != nil)
}

package stackfile

import "fmt"

// DecodeCard decodes a CARD block including its parts and part contents.
func DecodeCard(env Envelope, opts ...DecodeOption) (*CardBlock, error) {
	return decodeCard(env, newDecodeConfig(opts))
}

func decodeCard(env Envelope, cfg decodeConfig) (*CardBlock, error) {
	if err := expectType(env, TypeCard); err != nil {
		return nil, err
	}
	r := newReader(env.Payload, 0)
	c := &CardBlock{}
	c.BitmapID = r.i32("bitmap id")
	c.Flags = r.u16("card flags")
	c.BackgroundID = r.i32("background id")
	if err := readLayerBody(r, &c.Layer, cfg); err != nil {
		return nil, err
	}
	c.Envelope = cfg.envelope(env)
	return c, nil
}

// DecodeBackground decodes a BKGD block including its parts and part
// contents.
func DecodeBackground(env Envelope, opts ...DecodeOption) (*BackgroundBlock, error) {
	return decodeBackground(env, newDecodeConfig(opts))
}

func decodeBackground(env Envelope, cfg decodeConfig) (*BackgroundBlock, error) {
	if err := expectType(env, TypeBackground); err != nil {
		return nil, err
	}
	r := newReader(env.Payload, 0)
	bg := &BackgroundBlock{}
	bg.BitmapID = r.i32("bitmap id")
	bg.Flags = r.u16("background flags")
	bg.CardCount = r.i32("card count")
	bg.NextBackgroundID = r.i32("next background id")
	bg.PrevBackgroundID = r.i32("previous background id")
	if err := readLayerBody(r, &bg.Layer, cfg); err != nil {
		return nil, err
	}
	bg.Envelope = cfg.envelope(env)
	return bg, nil
}

// readLayerBody reads the part and content counts, the records themselves,
// and the trailing layer name and script.
func readLayerBody(r *reader, l *Layer, cfg decodeConfig) error {
	nparts := int(r.u16("part count"))
	ncontents := int(r.u16("content count"))
	if r.err != nil {
		return r.err
	}
	if nparts > cfg.limits.MaxParts {
		return fmt.Errorf("%w: %d parts (max %d)", ErrLimitExceeded, nparts, cfg.limits.MaxParts)
	}
	if ncontents > cfg.limits.MaxContents {
		return fmt.Errorf("%w: %d part contents (max %d)", ErrLimitExceeded, ncontents, cfg.limits.MaxContents)
	}

	l.Parts = make([]*Part, 0, nparts)
	for i := 0; i < nparts; i++ {
		p, n, err := decodePart(r.b, r.off, cfg)
		if err != nil {
			return fmt.Errorf("part %d: %w", i, err)
		}
		r.off += n
		l.Parts = append(l.Parts, p)
	}
	l.Contents = make([]*PartContent, 0, ncontents)
	for i := 0; i < ncontents; i++ {
		c, n, err := decodePartContent(r.b, r.off, cfg, cfg.rich())
		if err != nil {
			return fmt.Errorf("part content %d: %w", i, err)
		}
		r.off += n
		l.Contents = append(l.Contents, c)
	}

	name := r.text(cfg.revision, "layer name")
	script := r.text(cfg.revision, "layer script")
	if r.err != nil {
		return r.err
	}
	var err error
	if l.Name, err = decodeText(cfg.charset, name, "layer name"); err != nil {
		return err
	}
	if l.Script, err = decodeText(cfg.charset, script, "layer script"); err != nil {
		return err
	}
	return validateLayer(l)
}

package stackfile

import "fmt"

// DecodeBlock decodes the block starting at off.
//
// The decoding process:
//  1. Reads the 16-byte header and checks its size against the buffer
//  2. Resolves the type tag against the known block types
//  3. Hands the payload to the decoder for that type
//
// Header failures are returned unwrapped (ErrTruncatedInput, ErrInvalidSize).
// A tag outside the known set yields an *UnknownBlockTypeError carrying the
// envelope, which matches ErrUnknownBlockType. Payload failures are wrapped in
// a *BlockError naming the block's offset, type and id.
//
// Known types without a field layout (MAST, LIST, PAGE, BMAP, FREE, STBL,
// FTBL, PRNT, PRST, PRFT) decode to a *RawBlock.
func DecodeBlock(b []byte, off int, opts ...DecodeOption) (Record, error) {
	cfg := newDecodeConfig(opts)

	env, _, err := DecodeHeader(b, off)
	if err != nil {
		return nil, err
	}
	if !env.Type.Known() {
		return nil, &UnknownBlockTypeError{Envelope: cfg.envelope(env)}
	}
	if env.Size > cfg.limits.MaxBlockSize {
		return nil, blockError(env, fmt.Errorf("%w: block size %d (max %d)", ErrLimitExceeded, env.Size, cfg.limits.MaxBlockSize))
	}

	var rec Record
	switch env.Type {
	case TypeTail:
		rec, err = decodeTerminal(env, cfg)
	case TypeStack:
		rec, err = decodeStack(env, cfg)
	case TypeCard:
		rec, err = decodeCard(env, cfg)
	case TypeBackground:
		rec, err = decodeBackground(env, cfg)
	case TypeMaster, TypeList, TypePage, TypeBitmap, TypeFree, TypeStyleTable,
		TypeFontTable, TypePrint, TypePrintSetup, TypePrintFont:
		rec = &RawBlock{Envelope: cfg.envelope(env)}
	default:
		// Known() and this switch disagree; a type was added to one only.
		return nil, blockError(env, fmt.Errorf("%w: no decoder registered", ErrUnknownBlockType))
	}
	if err != nil {
		return nil, blockError(env, err)
	}
	return rec, nil
}

func blockError(env Envelope, err error) error {
	return &BlockError{Offset: env.Offset, Type: env.Type, ID: env.ID, Err: err}
}

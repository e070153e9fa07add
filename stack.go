package stackfile

// DecodeStack decodes the fixed prefix of a STAK block. The rest of the
// payload stays in Envelope.Payload.
func DecodeStack(env Envelope, opts ...DecodeOption) (*StackBlock, error) {
	return decodeStack(env, newDecodeConfig(opts))
}

func decodeStack(env Envelope, cfg decodeConfig) (*StackBlock, error) {
	if err := expectType(env, TypeStack); err != nil {
		return nil, err
	}
	r := newReader(env.Payload, 0)
	s := &StackBlock{
		Format:      r.i32("format"),
		CardCount:   r.i32("card count"),
		FirstCardID: r.i32("first card id"),
		ListID:      r.i32("list id"),
		FreeCount:   r.i32("free count"),
		FreeSize:    r.i32("free size"),
		PrintID:     r.i32("print id"),
		UserLevel:   r.i16("user level"),
		Flags:       r.u16("flags"),
	}
	if r.err != nil {
		return nil, r.err
	}
	s.Envelope = cfg.envelope(env)
	return s, nil
}

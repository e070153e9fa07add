package stackfile

import "fmt"

// DecodeTerminal decodes a TAIL block from its envelope.
//
// The payload is a one-byte length followed by that many text bytes. Bytes
// past the text are padding and ignored. Truncation is judged against
// env.Payload as given; DecodeBlock always passes exactly Size-16 bytes.
func DecodeTerminal(env Envelope, opts ...DecodeOption) (*TerminalBlock, error) {
	cfg := newDecodeConfig(opts)
	return decodeTerminal(env, cfg)
}

func decodeTerminal(env Envelope, cfg decodeConfig) (*TerminalBlock, error) {
	if err := expectType(env, TypeTail); err != nil {
		return nil, err
	}
	r := newReader(env.Payload, 0)
	n := r.u8("terminal string length")
	raw := r.take(int(n), "terminal string")
	if r.err != nil {
		return nil, r.err
	}
	text, err := decodeText(cfg.charset, raw, "terminal string")
	if err != nil {
		return nil, err
	}
	return &TerminalBlock{Envelope: cfg.envelope(env), StringLength: n, Text: text}, nil
}

func expectType(env Envelope, want BlockType) error {
	if env.Type != want {
		return fmt.Errorf("%w: want %s, got %s", ErrUnexpectedType, want, env.Type)
	}
	return nil
}

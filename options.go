package stackfile

type decodeConfig struct {
	limits      Limits
	revision    Revision
	revisionSet bool
	richText    *bool
	charset     Charset
	copyPayload bool
}

// DecodeOption adjusts how blocks, parts and contents are decoded.
type DecodeOption func(*decodeConfig)

func newDecodeConfig(opts []DecodeOption) decodeConfig {
	cfg := decodeConfig{limits: defaultLimits(), revision: Revision2, charset: UTF8}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

// rich reports whether content records carry the styled text group.
func (c decodeConfig) rich() bool {
	if c.richText != nil {
		return *c.richText
	}
	return c.revision >= Revision2
}

// callerRich is rich without the revision default: the styled group is read
// only when WithRichText or WithRevision asked for it.
func (c decodeConfig) callerRich() bool {
	if c.richText != nil {
		return *c.richText
	}
	return c.revisionSet && c.revision >= Revision2
}

func WithLimits(l Limits) DecodeOption {
	return func(c *decodeConfig) { c.limits = l }
}

// WithRevision sets the text layout of parts and contents. A decoded
// StackBlock reports the right value through its Revision method.
func WithRevision(r Revision) DecodeOption {
	return func(c *decodeConfig) {
		c.revision = r
		c.revisionSet = true
	}
}

// WithRichText forces content records to be read with or without the styled
// text group, regardless of revision.
func WithRichText(v bool) DecodeOption {
	return func(c *decodeConfig) { c.richText = &v }
}

func WithCharset(cs Charset) DecodeOption {
	return func(c *decodeConfig) { c.charset = cs }
}

// WithCopyPayload makes Envelope.Payload an owned copy instead of a view
// into the input buffer.
func WithCopyPayload(v bool) DecodeOption {
	return func(c *decodeConfig) { c.copyPayload = v }
}

// envelope returns env with Payload detached from the input when copying is
// enabled.
func (c decodeConfig) envelope(env Envelope) Envelope {
	if c.copyPayload && env.Payload != nil {
		env.Payload = append([]byte(nil), env.Payload...)
	}
	return env
}

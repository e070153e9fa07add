package stackfile

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Charset names how text bytes inside blocks are decoded.
type Charset uint8

const (
	// UTF8 rejects malformed sequences with ErrInvalidEncoding.
	UTF8 Charset = iota
	// MacRoman maps every byte, so it never fails.
	MacRoman
)

func (c Charset) String() string {
	switch c {
	case UTF8:
		return "utf-8"
	case MacRoman:
		return "macroman"
	default:
		return fmt.Sprintf("Charset(%d)", uint8(c))
	}
}

// ParseCharset accepts the names produced by Charset.String.
func ParseCharset(s string) (Charset, error) {
	switch strings.ToLower(s) {
	case "utf-8", "utf8", "":
		return UTF8, nil
	case "macroman", "mac-roman", "macintosh":
		return MacRoman, nil
	default:
		return 0, fmt.Errorf("%w: unknown charset %q", ErrValidation, s)
	}
}

// decodeText converts raw field bytes into a string owned by the caller.
func decodeText(cs Charset, b []byte, what string) (string, error) {
	switch cs {
	case UTF8:
		if !utf8.Valid(b) {
			return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidEncoding, what)
		}
		return string(b), nil
	case MacRoman:
		s, err := charmap.Macintosh.NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrInvalidEncoding, what, err)
		}
		return string(s), nil
	default:
		return "", fmt.Errorf("%w: unknown charset %d", ErrValidation, cs)
	}
}

// Package source loads stack files into memory for the decoder, unpacking
// the common archive and compression wrappers on the way.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrUnknownCodec = errors.New("source: unknown codec")
	ErrTooLarge     = errors.New("source: input too large")
	ErrCorrupt      = errors.New("source: corrupt compressed input")
)

// DefaultMaxSize caps the unpacked size of a single stack file.
const DefaultMaxSize int64 = 512 << 20

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	zipMagic  = []byte{'P', 'K', 0x03, 0x04}
)

// Detect picks the codec for a file. Magic numbers win over the extension;
// brotli has none, so ".br" is the only way to select it.
func Detect(name string, head []byte) Codec {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CodecZSTD
	case bytes.HasPrefix(head, lz4Magic):
		return CodecLZ4
	case bytes.HasPrefix(head, zipMagic):
		return CodecZIP
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".br":
		return CodecBrotli
	}
	return CodecNone
}

// Load reads the file at path and returns the unpacked stack bytes. A
// maxSize of zero means DefaultMaxSize.
func Load(path string, maxSize int64) ([]byte, Codec, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, CodecNone, err
	}
	if st.IsDir() {
		return nil, CodecNone, fmt.Errorf("source: %s is a directory", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, CodecNone, err
	}
	codec := Detect(path, raw)
	data, err := Decompress(codec, raw, maxSize)
	if err != nil {
		return nil, codec, fmt.Errorf("%s: %w", path, err)
	}
	return data, codec, nil
}

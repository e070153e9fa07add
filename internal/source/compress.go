package source

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies how a stack file was packed for storage or transfer.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecZIP
	CodecZSTD
	CodecLZ4
	CodecBrotli
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZIP:
		return "zip"
	case CodecZSTD:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	case CodecBrotli:
		return "brotli"
	default:
		return fmt.Sprintf("Codec(%d)", uint8(c))
	}
}

// Function variables for testing injection.
var (
	newZstdReader = func(r io.Reader) (*zstd.Decoder, error) { return zstd.NewReader(r) }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll       = io.ReadAll
)

// Decompress unpacks data with codec, refusing output larger than limit.
func Decompress(codec Codec, data []byte, limit int64) ([]byte, error) {
	var out []byte
	var err error
	switch codec {
	case CodecNone:
		if int64(len(data)) > limit {
			return nil, fmt.Errorf("%w: input of %d bytes", ErrTooLarge, len(data))
		}
		return data, nil
	case CodecZIP:
		out, err = zipDecompress(data, limit)
	case CodecZSTD:
		out, err = zstdDecompress(data, limit)
	case CodecLZ4:
		out, err = limitedRead(lz4.NewReader(bytes.NewReader(data)), limit, codec)
	case CodecBrotli:
		out, err = limitedRead(brotli.NewReader(bytes.NewReader(data)), limit, codec)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, codec)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// zipDecompress extracts the only file of a ZIP archive. Stacks are often
// shipped zipped on their own; archives with several files are rejected
// rather than guessed at.
func zipDecompress(zipBytes []byte, limit int64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: zip: %v", ErrCorrupt, err)
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: zip must contain exactly one entry, found %d", ErrCorrupt, len(zr.File))
	}
	zf := zr.File[0]
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("%w: zip entry must be a file", ErrCorrupt)
	}
	if zf.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("%w: zip entry of %d bytes", ErrTooLarge, zf.UncompressedSize64)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return limitedRead(rc, limit, CodecZIP)
}

func zstdDecompress(in []byte, limit int64) ([]byte, error) {
	dec, err := newZstdReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return limitedRead(dec, limit, CodecZSTD)
}

// limitedRead reads r to the end, failing once more than limit bytes appear.
func limitedRead(r io.Reader, limit int64, codec Codec) ([]byte, error) {
	b, err := readAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, codec, err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: %s expands beyond %d bytes", ErrTooLarge, codec, limit)
	}
	return b, nil
}

// Package stackfile decodes the blocks of a legacy stack file.
//
// A stack file is a flat sequence of blocks. Every block starts with the
// same 16-byte big-endian header:
//
//	size   int32  total block length, header included (>= 16)
//	type   uint32 four-character code, e.g. 'CARD'
//	id     int32  unique among blocks of the same type
//	filler int32  reserved
//
// The type selects how the remaining size-16 bytes are read. This package
// decodes the terminal block (TAIL), the stack header (STAK), and cards and
// backgrounds (CARD, BKGD) together with the part descriptors and part
// contents embedded in them. The other known types decode to a [RawBlock]
// whose payload is left for the caller.
//
// # Basic Usage
//
// The package never performs I/O. Hand it the bytes of a stack file and an
// offset:
//
//	rec, err := stackfile.DecodeBlock(buf, off)
//	var unknown *stackfile.UnknownBlockTypeError
//	switch {
//	case errors.As(err, &unknown):
//		off += int(unknown.Envelope.Size) // newer block type, skip it
//	case err != nil:
//		return err
//	}
//	switch b := rec.(type) {
//	case *stackfile.CardBlock:
//		for _, p := range b.Parts {
//			fmt.Println(p.ID, p.Name)
//		}
//	case *stackfile.TerminalBlock:
//		fmt.Println(b.Text)
//	}
//
// # Errors
//
// Failures wrap one of the package's Err values, so errors.Is identifies
// the kind. [Fatal] reports the kinds after which offsets derived from the
// same buffer can no longer be trusted.
//
// # Concurrency
//
// All decoders are pure functions of their input and never modify it, so
// they may run concurrently on shared buffers. Envelope.Payload is a view
// into the input unless [WithCopyPayload] is set; decoded strings and
// styles tables are always copies.
package stackfile

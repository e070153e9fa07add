// Package scan walks every block of an in-memory stack file.
//
// Blocks that fail with a recoverable error (unknown or mismatched type, bad
// text, malformed styles) are recorded and skipped using their declared
// size. Size and truncation failures end the walk, since no later offset can
// be trusted. A terminal block ends it normally.
package scan

import (
	"errors"

	"github.com/logicossoftware/go-stackfile"
)

// Entry is the outcome for one block.
type Entry struct {
	Offset   int
	Envelope stackfile.Envelope // zero when the header itself failed
	Record   stackfile.Record   // nil on error
	Err      error
}

// Result is the outcome of a whole walk.
type Result struct {
	Entries  []Entry
	Revision stackfile.Revision
	// Terminated is set when a terminal block was reached.
	Terminated bool
	// Stopped holds the fatal error that ended the walk early, if any.
	Stopped error
	// Trailing counts bytes after the terminal block.
	Trailing int
}

// Errors returns the entries that failed.
func (r *Result) Errors() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// Options configures a walk.
type Options struct {
	// Revision fixes the part text layout. Zero means "auto": start with
	// Revision2 and follow the format of the first stack block.
	Revision stackfile.Revision
	Charset  stackfile.Charset
	Limits   stackfile.Limits
}

// Scan decodes the blocks of b from offset zero.
func Scan(b []byte, opts Options) *Result {
	auto := opts.Revision == 0
	res := &Result{Revision: opts.Revision}
	if auto {
		res.Revision = stackfile.Revision2
	}

	off := 0
	for off < len(b) {
		rec, err := stackfile.DecodeBlock(b, off,
			stackfile.WithRevision(res.Revision),
			stackfile.WithCharset(opts.Charset),
			stackfile.WithLimits(opts.Limits),
		)
		entry := Entry{Offset: off, Record: rec, Err: err}
		if rec != nil {
			entry.Envelope = rec.Block()
		} else if env, ok := envelopeOf(b, off, err); ok {
			entry.Envelope = env
		}
		res.Entries = append(res.Entries, entry)

		if err != nil && stackfile.Fatal(err) {
			res.Stopped = err
			return res
		}
		if entry.Envelope.Size < stackfile.HeaderSize {
			res.Stopped = err
			return res
		}
		if s, ok := rec.(*stackfile.StackBlock); ok && auto {
			res.Revision = s.Revision()
		}
		off += int(entry.Envelope.Size)
		if _, ok := rec.(*stackfile.TerminalBlock); ok {
			res.Terminated = true
			res.Trailing = len(b) - off
			return res
		}
	}
	return res
}

// envelopeOf recovers the header of a block whose payload failed, so the
// walk can step over it.
func envelopeOf(b []byte, off int, err error) (stackfile.Envelope, bool) {
	var unknown *stackfile.UnknownBlockTypeError
	if errors.As(err, &unknown) {
		return unknown.Envelope, true
	}
	var blockErr *stackfile.BlockError
	if errors.As(err, &blockErr) {
		env, _, herr := stackfile.DecodeHeader(b, off)
		return env, herr == nil
	}
	return stackfile.Envelope{}, false
}

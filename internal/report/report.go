// Package report turns a block scan into a JSON document.
//
// Each block carries a 16 hex character fingerprint of its payload so two
// dumps of the same stack can be diffed block by block.
package report

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"

	"github.com/logicossoftware/go-stackfile"
	"github.com/logicossoftware/go-stackfile/internal/scan"
)

// Fingerprint algorithms.
const (
	AlgNone    = ""
	AlgXXHash3 = "xxh3"    // Default
	AlgBlake2b = "blake2b" // Slower, better distribution
)

var ErrUnknownAlgorithm = errors.New("report: unknown fingerprint algorithm")

// Fingerprint hashes payload with alg into 16 hex characters.
func Fingerprint(payload []byte, alg string) (string, error) {
	switch alg {
	case AlgXXHash3:
		return fmt.Sprintf("%016x", xxh3.Hash(payload)), nil
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write(payload)
		return fmt.Sprintf("%016x", h.Sum(nil)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
}

// Report describes one stack file.
type Report struct {
	File       string `json:"file"`
	Codec      string `json:"codec"`
	Size       int    `json:"size"`
	Revision   string `json:"revision"`
	Terminated bool   `json:"terminated"`
	Trailing   int    `json:"trailing,omitempty"`
	Stopped    string `json:"stopped,omitempty"`
	// Error is set when the file could not be loaded at all.
	Error   string  `json:"error,omitempty"`
	Blocks  []Block `json:"blocks"`
	Summary Summary `json:"summary"`
}

// Summary counts blocks by tag.
type Summary struct {
	Blocks int            `json:"blocks"`
	Errors int            `json:"errors"`
	ByType map[string]int `json:"by_type"`
}

// Block is one entry of the walk.
type Block struct {
	Offset      int     `json:"offset"`
	Type        string  `json:"type,omitempty"`
	ID          int32   `json:"id"`
	Size        int32   `json:"size"`
	Fingerprint string  `json:"fingerprint,omitempty"`
	Error       string  `json:"error,omitempty"`
	Stack       *Stack  `json:"stack,omitempty"`
	Layer       *Layer  `json:"layer,omitempty"`
	Tail        *string `json:"tail,omitempty"`
}

// Stack summarises a STAK block.
type Stack struct {
	Format      int32  `json:"format"`
	Revision    string `json:"revision"`
	CardCount   int32  `json:"card_count"`
	FirstCardID int32  `json:"first_card_id"`
	UserLevel   int16  `json:"user_level"`
}

// Layer summarises a card or background.
type Layer struct {
	BackgroundID int32  `json:"background_id,omitempty"`
	CardCount    int32  `json:"card_count,omitempty"`
	Name         string `json:"name,omitempty"`
	Parts        []Part `json:"parts"`
	Contents     int    `json:"contents"`
	ScriptBytes  int    `json:"script_bytes"`
}

// Part summarises one part descriptor and the content bound to it.
type Part struct {
	ID          int16    `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name,omitempty"`
	Rect        [4]int16 `json:"rect"`
	ScriptBytes int      `json:"script_bytes"`
	Content     string   `json:"content,omitempty"`
	StyleRuns   int      `json:"style_runs,omitempty"`
}

// Input is what Build needs besides the scan itself.
type Input struct {
	File  string
	Codec string
	Size  int
	// Fingerprint selects the payload hash; AlgNone leaves it out.
	Fingerprint string
}

// Failed returns the report for a file that could not be loaded.
func Failed(file string, err error) *Report {
	return &Report{
		File:    file,
		Error:   err.Error(),
		Blocks:  []Block{},
		Summary: Summary{ByType: map[string]int{}},
	}
}

// OK reports whether the file loaded, every block decoded and the walk
// reached its end.
func (r *Report) OK() bool {
	return r.Error == "" && r.Stopped == "" && r.Summary.Errors == 0
}

// Build assembles the report for a finished scan.
func Build(in Input, res *scan.Result) (*Report, error) {
	r := &Report{
		File:       in.File,
		Codec:      in.Codec,
		Size:       in.Size,
		Revision:   res.Revision.String(),
		Terminated: res.Terminated,
		Trailing:   res.Trailing,
		Blocks:     make([]Block, 0, len(res.Entries)),
		Summary:    Summary{ByType: make(map[string]int)},
	}
	if res.Stopped != nil {
		r.Stopped = res.Stopped.Error()
	}

	for _, e := range res.Entries {
		b := Block{
			Offset: e.Offset,
			ID:     e.Envelope.ID,
			Size:   e.Envelope.Size,
		}
		if e.Envelope.Size > 0 {
			b.Type = e.Envelope.Type.String()
			r.Summary.ByType[b.Type]++
		}
		if e.Err != nil {
			b.Error = e.Err.Error()
			r.Summary.Errors++
		}
		if in.Fingerprint != AlgNone && e.Envelope.Size > 0 {
			fp, err := Fingerprint(e.Envelope.Payload, in.Fingerprint)
			if err != nil {
				return nil, err
			}
			b.Fingerprint = fp
		}
		describe(&b, e.Record)
		r.Blocks = append(r.Blocks, b)
	}
	r.Summary.Blocks = len(r.Blocks)
	return r, nil
}

func describe(b *Block, rec stackfile.Record) {
	switch v := rec.(type) {
	case *stackfile.StackBlock:
		b.Stack = &Stack{
			Format:      v.Format,
			Revision:    v.Revision().String(),
			CardCount:   v.CardCount,
			FirstCardID: v.FirstCardID,
			UserLevel:   v.UserLevel,
		}
	case *stackfile.CardBlock:
		l := layerOf(&v.Layer)
		l.BackgroundID = v.BackgroundID
		b.Layer = l
	case *stackfile.BackgroundBlock:
		l := layerOf(&v.Layer)
		l.CardCount = v.CardCount
		b.Layer = l
	case *stackfile.TerminalBlock:
		s := v.Text
		b.Tail = &s
	}
}

func layerOf(src *stackfile.Layer) *Layer {
	l := &Layer{
		Name:        src.Name,
		Parts:       make([]Part, 0, len(src.Parts)),
		Contents:    len(src.Contents),
		ScriptBytes: len(src.Script),
	}
	for _, p := range src.Parts {
		out := Part{
			ID:          p.ID,
			Kind:        p.Type.String(),
			Name:        p.Name,
			Rect:        [4]int16{p.Top, p.Left, p.Bottom, p.Right},
			ScriptBytes: len(p.Script),
		}
		if c := src.ContentFor(p.ID); c != nil {
			out.Content = c.Content
			if c.Rich != nil {
				out.StyleRuns = len(c.Rich.Runs)
			}
		}
		l.Parts = append(l.Parts, out)
	}
	return l
}

// Write encodes reports as an indented JSON array.
func Write(w io.Writer, reports []*Report) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

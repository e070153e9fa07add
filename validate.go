package stackfile

import "fmt"

// validateRichGroup checks that the styles table and the raw text are either
// both present or both absent.
func validateRichGroup(stylesLen uint16, textLen int) error {
	switch {
	case stylesLen == 0 && textLen == 0:
		return nil
	case stylesLen == 0:
		return fmt.Errorf("%w: %d bytes of text data without a styles table", ErrMalformedRichText, textLen)
	case textLen == 0:
		return fmt.Errorf("%w: styles table of %d bytes without text data", ErrMalformedRichText, stylesLen)
	case stylesLen%styleRunSize != 0:
		return fmt.Errorf("%w: styles length %d is not a multiple of %d", ErrMalformedRichText, stylesLen, styleRunSize)
	}
	return nil
}

func validateRuns(runs []StyleRun, textLen int) error {
	var prev uint16
	for i, run := range runs {
		if int(run.Offset) > textLen {
			return fmt.Errorf("%w: style run %d starts at %d past text of %d bytes", ErrMalformedRichText, i, run.Offset, textLen)
		}
		if i > 0 && run.Offset < prev {
			return fmt.Errorf("%w: style run %d starts at %d before previous run at %d", ErrMalformedRichText, i, run.Offset, prev)
		}
		prev = run.Offset
	}
	return nil
}

// validateLayer checks the cross-record rules of a card or background.
// Content part ids are lookup keys and are not required to resolve.
func validateLayer(l *Layer) error {
	seen := make(map[int16]struct{}, len(l.Parts))
	for i, p := range l.Parts {
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: part %d repeats part id %d", ErrValidation, i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

package decode

import (
	"fmt"

	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/pipe"
)

// SyntaxError describes bytes that can never form a value.
type SyntaxError struct {
	// Offset is the absolute stream offset of the offending byte.
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("json syntax error at offset %d: %s", e.Offset, e.Msg)
}

// frameStackSize is the nesting depth handled without allocating.
const frameStackSize = 32

// Frame returns the length of the object at the start of seq.
//
// It tracks strings, escapes and nesting only; the content is validated by
// whoever decodes the framed bytes. Frame returns errs.ErrNotObject when seq
// does not start with '{', errs.ErrTruncated when seq ends inside the
// object, and a *SyntaxError for mismatched brackets.
func Frame(seq pipe.Sequence) (int64, error) {
	if seq.IsEmpty() {
		return 0, errs.ErrTruncated
	}
	if first := seq.FirstSpan()[0]; first != '{' {
		return 0, fmt.Errorf("%w: got %q at offset %d", errs.ErrNotObject, first, seq.Start().Offset())
	}

	var (
		buf     [frameStackSize]byte
		closers = buf[:0]
		inStr   bool
		escaped bool
		off     int64
	)

	for span := range seq.Segments() {
		for i, b := range span {
			if inStr {
				switch {
				case escaped:
					escaped = false
				case b == '\\':
					escaped = true
				case b == '"':
					inStr = false
				}

				continue
			}

			switch b {
			case '"':
				inStr = true
			case '{':
				closers = append(closers, '}')
			case '[':
				closers = append(closers, ']')
			case '}', ']':
				top := closers[len(closers)-1]
				if b != top {
					return 0, &SyntaxError{
						Offset: seq.Start().Offset() + off + int64(i),
						Msg:    fmt.Sprintf("unexpected %q, expected %q", b, top),
					}
				}
				closers = closers[:len(closers)-1]
				if len(closers) == 0 {
					return off + int64(i) + 1, nil
				}
			}
		}
		off += int64(len(span))
	}

	return 0, errs.ErrTruncated
}

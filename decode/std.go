package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/pipe"
)

type stdDecoder[T any] struct{}

// Std returns a decoder backed by encoding/json.Decoder. The consumed length
// is the decoder's input offset after the value, so no separate framing pass
// is needed.
func Std[T any]() Decoder[T] {
	return stdDecoder[T]{}
}

func (stdDecoder[T]) Decode(seq pipe.Sequence) (T, int64, error) {
	var v T

	if seq.IsEmpty() {
		return v, 0, errs.ErrTruncated
	}

	dec := json.NewDecoder(seq.Reader())
	if err := dec.Decode(&v); err != nil {
		var zero T
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return zero, 0, errs.ErrTruncated
		}

		return zero, 0, fmt.Errorf("unmarshal value at offset %d: %w", seq.Start().Offset(), err)
	}

	return v, dec.InputOffset(), nil
}

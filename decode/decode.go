// Package decode turns the bytes at the front of a window into one array
// element.
//
// A Decoder finds the end of the value itself and reports exactly how many
// bytes it consumed. When the window ends before the value does it returns
// an error matching errs.ErrTruncated; the caller then waits for more bytes
// and tries again from the same start. Every other error means the bytes
// can never form a value.
//
// Decoders provided by this package:
//   - GoJSON: frames the value and unmarshals it with github.com/goccy/go-json
//   - Std: encoding/json.Decoder, for types relying on its exact behavior
//   - JSONIter: frames the value and unmarshals it with github.com/json-iterator/go
//   - Raw: yields a copy of the element bytes without unmarshaling
//   - Func: adapts a plain function
package decode

import "github.com/arloliu/jsonpipe/pipe"

// Decoder decodes one value from the start of a window.
//
// Decode returns the value and the number of bytes it occupied, counted from
// seq.Start(). It must not retain seq or any of its spans after returning.
type Decoder[T any] interface {
	Decode(seq pipe.Sequence) (T, int64, error)
}

// Func adapts an ordinary function to the Decoder interface.
type Func[T any] func(seq pipe.Sequence) (T, int64, error)

// Decode calls f(seq).
func (f Func[T]) Decode(seq pipe.Sequence) (T, int64, error) {
	return f(seq)
}

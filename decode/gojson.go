package decode

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/jsonpipe/internal/pool"
	"github.com/arloliu/jsonpipe/pipe"
)

type goJSONDecoder[T any] struct{}

// GoJSON returns the default decoder. It frames the object with Frame and
// unmarshals the framed bytes with github.com/goccy/go-json. Objects split
// across segments are flattened into a pooled buffer first.
func GoJSON[T any]() Decoder[T] {
	return goJSONDecoder[T]{}
}

func (goJSONDecoder[T]) Decode(seq pipe.Sequence) (T, int64, error) {
	var v T

	n, err := Frame(seq)
	if err != nil {
		return v, 0, err
	}

	frame := seq.SliceTo(n)
	if frame.IsSingleSegment() {
		err = gojson.Unmarshal(frame.FirstSpan(), &v)
	} else {
		bb := pool.GetFrameBuffer()
		bb.B = frame.AppendTo(bb.B)
		err = gojson.Unmarshal(bb.Bytes(), &v)
		pool.PutFrameBuffer(bb)
	}
	if err != nil {
		var zero T
		return zero, 0, fmt.Errorf("unmarshal value at offset %d: %w", seq.Start().Offset(), err)
	}

	return v, n, nil
}

package decode

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/arloliu/jsonpipe/internal/pool"
	"github.com/arloliu/jsonpipe/pipe"
)

var jsonIterAPI = jsoniter.Config{
	EscapeHTML:             true,
	ValidateJsonRawMessage: true,
}.Froze()

type jsonIterDecoder[T any] struct{}

// JSONIter returns a decoder that frames the object with Frame and
// unmarshals it with github.com/json-iterator/go in encoding/json
// compatible mode.
func JSONIter[T any]() Decoder[T] {
	return jsonIterDecoder[T]{}
}

func (jsonIterDecoder[T]) Decode(seq pipe.Sequence) (T, int64, error) {
	var v T

	n, err := Frame(seq)
	if err != nil {
		return v, 0, err
	}

	frame := seq.SliceTo(n)
	if frame.IsSingleSegment() {
		err = jsonIterAPI.Unmarshal(frame.FirstSpan(), &v)
	} else {
		bb := pool.GetFrameBuffer()
		bb.B = frame.AppendTo(bb.B)
		err = jsonIterAPI.Unmarshal(bb.Bytes(), &v)
		pool.PutFrameBuffer(bb)
	}
	if err != nil {
		var zero T
		return zero, 0, fmt.Errorf("unmarshal value at offset %d: %w", seq.Start().Offset(), err)
	}

	return v, n, nil
}

package decode

import "github.com/arloliu/jsonpipe/pipe"

type rawDecoder struct{}

// Raw returns a decoder yielding a copy of each object's bytes, unparsed
// beyond framing.
func Raw() Decoder[[]byte] {
	return rawDecoder{}
}

func (rawDecoder) Decode(seq pipe.Sequence) ([]byte, int64, error) {
	n, err := Frame(seq)
	if err != nil {
		return nil, 0, err
	}

	return seq.SliceTo(n).AppendTo(make([]byte, 0, n)), n, nil
}

package jsonpipe

import (
	"context"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsonpipe/decode"
	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/pipe"
	"github.com/arloliu/jsonpipe/stream"
)

type event struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

func TestItems(t *testing.T) {
	r := iotest.OneByteReader(strings.NewReader(`[{"id":1,"name":"a"},{"id":2}]`))

	var got []event
	for ev, err := range Items[event](context.Background(), r) {
		require.NoError(t, err)
		got = append(got, ev)
	}

	assert.Equal(t, []event{{ID: 1, Name: "a"}, {ID: 2}}, got)
}

func TestItems_ErrorYieldedLast(t *testing.T) {
	var (
		got  []event
		errN int
	)
	for ev, err := range Items[event](context.Background(), strings.NewReader(`[{"id":1},7]`)) {
		if err != nil {
			errN++
			require.ErrorIs(t, err, errs.ErrUnsupportedShape)
			assert.Zero(t, ev)

			continue
		}
		got = append(got, ev)
	}

	assert.Equal(t, []event{{ID: 1}}, got)
	assert.Equal(t, 1, errN)
}

func TestSeq_Break(t *testing.T) {
	r, err := pipe.NewStreamReader(strings.NewReader(`[{"id":1},{"id":2},{"id":3}]`))
	require.NoError(t, err)

	var got []int
	for ev, err := range Seq[event](context.Background(), r) {
		require.NoError(t, err)
		got = append(got, ev.ID)
		if ev.ID == 2 {
			break
		}
	}

	assert.Equal(t, []int{1, 2}, got)

	// The reader is left after the last yielded element, so a new iteration
	// picks up the rest of the array.
	got = got[:0]
	for ev, err := range Seq[event](context.Background(), r) {
		require.NoError(t, err)
		got = append(got, ev.ID)
	}
	assert.Equal(t, []int{3}, got)
}

func TestSeq_InvalidOption(t *testing.T) {
	r, err := pipe.NewStreamReader(strings.NewReader(`[]`))
	require.NoError(t, err)

	for _, err := range Seq[event](context.Background(), r, stream.WithDecoder(decode.Raw())) {
		require.ErrorIs(t, err, errs.ErrDecoderType)
	}
}

func TestDecodeAll(t *testing.T) {
	items, err := DecodeAll[event](context.Background(), strings.NewReader(`[{"id":1},{"id":2}]`))
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = DecodeAll[event](context.Background(), strings.NewReader(`[{"id":1},{"id"`))
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
	assert.Len(t, items, 1, "items decoded before the fault are returned")
}

func TestDecodeAll_Options(t *testing.T) {
	raw, err := DecodeAll[[]byte](context.Background(),
		strings.NewReader("[ {\"id\":1} ,\n{\"id\":2} ]"),
		stream.WithWhitespace(true),
		stream.WithDecoder(decode.Raw()),
	)
	require.NoError(t, err)
	require.Len(t, raw, 2)
	assert.Equal(t, `{"id":2}`, string(raw[1]))
}

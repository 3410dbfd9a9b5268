package pipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsonpipe/errs"
)

func TestBuffer_WriteSpansSegments(t *testing.T) {
	b := newBuffer(MinSegmentSize)
	b.write([]byte("0123456789abcdefXYZ"))

	assert.Len(t, b.segs, 2)
	assert.Equal(t, int64(19), b.unexamined())

	w := b.window()
	assert.Equal(t, "0123456789abcdefXYZ", w.String())
	assert.False(t, w.IsSingleSegment())
}

func TestBuffer_AdvanceReleasesSegments(t *testing.T) {
	b := newBuffer(MinSegmentSize)
	b.write([]byte("0123456789abcdefXYZ"))

	w := b.window()
	require.NoError(t, b.advance(w.GetPosition(17), w.GetPosition(17)))

	assert.Len(t, b.segs, 1, "first segment is wholly committed")
	assert.Equal(t, int64(16), b.base)
	assert.Equal(t, "YZ", b.window().String())
	assert.Equal(t, int64(17), b.window().Start().Offset())
	assert.Equal(t, int64(2), b.unconsumed())
}

func TestBuffer_RewindsLastSegment(t *testing.T) {
	b := newBuffer(MinSegmentSize)
	b.write([]byte("abc"))

	w := b.window()
	require.NoError(t, b.advance(w.End(), w.End()))
	require.Len(t, b.segs, 1)
	assert.Equal(t, 0, b.segs[0].Len(), "fully consumed segment is reused from the start")

	b.write([]byte("def"))
	w = b.window()
	assert.Equal(t, "def", w.String())
	assert.Equal(t, int64(3), w.Start().Offset())
	assert.Equal(t, int64(6), w.End().Offset())
}

func TestBuffer_InvalidAdvance(t *testing.T) {
	b := newBuffer(MinSegmentSize)
	b.write([]byte("abcdef"))
	w := b.window()
	require.NoError(t, b.advance(w.GetPosition(2), w.GetPosition(3)))

	w = b.window()
	tests := []struct {
		name               string
		consumed, examined Position
	}{
		{name: "consumed moves backward", consumed: Position{off: 1}, examined: Position{off: 3}},
		{name: "consumed past examined", consumed: Position{off: 5}, examined: Position{off: 4}},
		{name: "examined past end", consumed: w.Start(), examined: Position{off: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.advance(tt.consumed, tt.examined)
			require.ErrorIs(t, err, errs.ErrInvalidAdvance)
		})
	}
}

func TestBuffer_TailCommit(t *testing.T) {
	b := newBuffer(MinSegmentSize)
	tail := b.tail()
	require.Len(t, tail, MinSegmentSize)

	copy(tail, "hello")
	b.commitTail(5)
	assert.Equal(t, "hello", b.window().String())

	b.commitTail(0)
	assert.Equal(t, int64(5), b.unexamined())
}

func TestBuffer_Reset(t *testing.T) {
	b := newBuffer(MinSegmentSize)
	b.write([]byte("0123456789abcdefXYZ"))
	b.reset()

	assert.Empty(t, b.segs)
	assert.Equal(t, int64(0), b.unconsumed())
	assert.True(t, b.window().IsEmpty())
	assert.Equal(t, int64(19), b.window().Start().Offset())
}

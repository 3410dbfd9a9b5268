package pipe

import (
	"fmt"
	"io"
	"iter"
)

// Sequence is a read-only view over a run of bytes held by a byte source,
// possibly split across several segments. It is the byte window handed out
// by Reader.Read and stays valid only until the next AdvanceTo call.
//
// A Sequence never copies or mutates the bytes it exposes.
type Sequence struct {
	segs  [][]byte // non-empty spans; segs[0] begins at start
	start int64
	end   int64
}

// NewSequence builds a Sequence starting at offset zero from the given spans.
// Empty spans are dropped. The spans are not copied.
func NewSequence(spans ...[]byte) Sequence {
	return newSequenceAt(0, spans)
}

func newSequenceAt(start int64, spans [][]byte) Sequence {
	seq := Sequence{start: start, end: start}
	for _, s := range spans {
		if len(s) == 0 {
			continue
		}
		seq.segs = append(seq.segs, s)
		seq.end += int64(len(s))
	}

	return seq
}

// Start returns the position of the first byte.
func (s Sequence) Start() Position {
	return Position{off: s.start}
}

// End returns the position just past the last byte.
func (s Sequence) End() Position {
	return Position{off: s.end}
}

// Len returns the number of bytes in the sequence.
func (s Sequence) Len() int64 {
	return s.end - s.start
}

// IsEmpty reports whether the sequence holds no bytes.
func (s Sequence) IsEmpty() bool {
	return s.end == s.start
}

// IsSingleSegment reports whether all bytes are in one contiguous span.
func (s Sequence) IsSingleSegment() bool {
	return len(s.segs) <= 1
}

// FirstSpan returns the first contiguous span, or nil for an empty sequence.
func (s Sequence) FirstSpan() []byte {
	if len(s.segs) == 0 {
		return nil
	}

	return s.segs[0]
}

// Segments iterates over the contiguous spans in order.
func (s Sequence) Segments() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, seg := range s.segs {
			if !yield(seg) {
				return
			}
		}
	}
}

// GetPosition returns the position n bytes past Start.
// Panics if n is negative or larger than Len.
func (s Sequence) GetPosition(n int64) Position {
	return s.PositionFrom(s.Start(), n)
}

// PositionFrom returns the position n bytes past p.
// Panics if p lies outside the sequence or the result would.
func (s Sequence) PositionFrom(p Position, n int64) Position {
	if p.off < s.start || p.off > s.end {
		panic(fmt.Sprintf("pipe: position %s outside sequence [%d,%d]", p, s.start, s.end))
	}
	if n < 0 || p.off+n > s.end {
		panic(fmt.Sprintf("pipe: offset %d from %s outside sequence [%d,%d]", n, p, s.start, s.end))
	}

	return Position{off: p.off + n}
}

// Slice returns the sub-sequence [from, to).
// Panics if the positions are out of order or outside the sequence.
func (s Sequence) Slice(from, to Position) Sequence {
	if from.off < s.start || to.off > s.end || from.off > to.off {
		panic(fmt.Sprintf("pipe: slice [%s,%s) outside sequence [%d,%d]", from, to, s.start, s.end))
	}

	out := Sequence{start: from.off, end: to.off}
	if from.off == to.off {
		return out
	}

	off := s.start
	for _, seg := range s.segs {
		segStart, segEnd := off, off+int64(len(seg))
		off = segEnd
		if segEnd <= from.off {
			continue
		}
		if segStart >= to.off {
			break
		}
		lo := max(from.off, segStart) - segStart
		hi := min(to.off, segEnd) - segStart
		out.segs = append(out.segs, seg[lo:hi])
	}

	return out
}

// SliceFrom returns the bytes from n bytes past Start to End.
func (s Sequence) SliceFrom(n int64) Sequence {
	return s.Slice(s.GetPosition(n), s.End())
}

// SliceTo returns the first n bytes.
func (s Sequence) SliceTo(n int64) Sequence {
	return s.Slice(s.Start(), s.GetPosition(n))
}

// AppendTo appends all bytes to dst and returns the extended slice.
func (s Sequence) AppendTo(dst []byte) []byte {
	for _, seg := range s.segs {
		dst = append(dst, seg...)
	}

	return dst
}

// Bytes returns the bytes as one slice. A single-segment sequence is returned
// without copying; otherwise a new slice is allocated.
func (s Sequence) Bytes() []byte {
	if len(s.segs) == 1 {
		return s.segs[0]
	}

	return s.AppendTo(make([]byte, 0, s.Len()))
}

// String returns the content as a string, for diagnostics.
func (s Sequence) String() string {
	return string(s.Bytes())
}

// Reader returns an io.Reader over the bytes of the sequence.
func (s Sequence) Reader() io.Reader {
	return &sequenceReader{segs: s.segs}
}

type sequenceReader struct {
	segs [][]byte
	off  int
}

func (r *sequenceReader) Read(p []byte) (int, error) {
	for len(r.segs) > 0 && r.off == len(r.segs[0]) {
		r.segs = r.segs[1:]
		r.off = 0
	}
	if len(r.segs) == 0 {
		return 0, io.EOF
	}

	n := copy(p, r.segs[0][r.off:])
	r.off += n

	return n, nil
}

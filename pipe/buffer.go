package pipe

import (
	"fmt"

	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/internal/pool"
)

// buffer is the segment arena behind both Reader implementations.
//
// Bytes live in fixed-size pooled segments. The reclaim boundary (committed)
// only moves forward; once a segment lies wholly before it the segment goes
// back to the pool. Segments are filled but never grown, so spans handed out
// in a Sequence keep pointing at stable memory until they are released.
//
//	base        committed   examined        end
//	 |-----------|-----------|---------------|
//	  reclaimable  looked at    not yet examined
type buffer struct {
	pool *pool.ByteBufferPool
	segs []*pool.ByteBuffer

	base      int64 // offset of segs[0].B[0]
	committed int64
	examined  int64
	end       int64
}

func newBuffer(segmentSize int) buffer {
	return buffer{pool: pool.SegmentPool(segmentSize)}
}

// unexamined returns how many bytes the reader has not looked at yet.
func (b *buffer) unexamined() int64 {
	return b.end - b.examined
}

// unconsumed returns how many bytes are held for the reader.
func (b *buffer) unconsumed() int64 {
	return b.end - b.committed
}

func (b *buffer) write(p []byte) {
	for len(p) > 0 {
		seg := b.writableSegment()
		n := seg.Fill(p)
		p = p[n:]
		b.end += int64(n)
	}
}

// tail returns free space in the last segment for a direct io.Reader read.
func (b *buffer) tail() []byte {
	return b.writableSegment().Tail()
}

func (b *buffer) commitTail(n int) {
	if n == 0 {
		return
	}
	b.segs[len(b.segs)-1].Commit(n)
	b.end += int64(n)
}

func (b *buffer) writableSegment() *pool.ByteBuffer {
	if n := len(b.segs); n > 0 && b.segs[n-1].Available() > 0 {
		return b.segs[n-1]
	}

	seg := b.pool.Get()
	if len(b.segs) == 0 {
		b.base = b.end
	}
	b.segs = append(b.segs, seg)

	return seg
}

// window returns the bytes in [committed, end).
func (b *buffer) window() Sequence {
	spans := make([][]byte, 0, len(b.segs))
	off := b.base
	for _, seg := range b.segs {
		data := seg.Bytes()
		segEnd := off + int64(len(data))
		if segEnd > b.committed {
			if off < b.committed {
				data = data[b.committed-off:]
			}
			spans = append(spans, data)
		}
		off = segEnd
	}

	return newSequenceAt(b.committed, spans)
}

func (b *buffer) advance(consumed, examined Position) error {
	c, e := consumed.off, examined.off
	if c < b.committed || c > e || e > b.end {
		return fmt.Errorf("%w: consumed=%s examined=%s window=[%d,%d]",
			errs.ErrInvalidAdvance, consumed, examined, b.committed, b.end)
	}

	b.committed = c
	b.examined = e
	b.release()

	return nil
}

// release returns every segment lying wholly before committed to the pool.
// The last segment is kept while it still has room, and rewound when all of
// it has been consumed.
func (b *buffer) release() {
	for len(b.segs) > 0 {
		seg := b.segs[0]
		segEnd := b.base + int64(seg.Len())
		if segEnd > b.committed {
			return
		}
		if len(b.segs) == 1 && seg.Available() > 0 {
			seg.Reset()
			b.base = segEnd
			return
		}
		b.segs[0] = nil
		b.segs = b.segs[1:]
		b.base = segEnd
		b.pool.Put(seg)
	}
}

// reset drops all bytes and returns every segment to the pool.
func (b *buffer) reset() {
	for i, seg := range b.segs {
		b.pool.Put(seg)
		b.segs[i] = nil
	}
	b.segs = b.segs[:0]
	b.committed = b.end
	b.examined = b.end
	b.base = b.end
}

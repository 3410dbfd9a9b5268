package pool

import (
	"sync"
)

// Default sizes for the shared pools.
const (
	SegmentDefaultSize     = 1024 * 4    // 4KiB
	FrameBufferDefaultSize = 1024 * 16   // 16KiB
	FrameBufferMaxSize     = 1024 * 1024 // 1MiB
)

// ByteBuffer is a reusable byte slice. Segments of a byte window are
// ByteBuffers filled up to their capacity and never grown.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates an empty ByteBuffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, capacity),
	}
}

// Bytes returns the filled part of the buffer.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of filled bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Available returns how many bytes can still be filled without reallocating.
func (bb *ByteBuffer) Available() int {
	return cap(bb.B) - len(bb.B)
}

// Fill copies as much of data as fits into the free capacity and returns the
// number of bytes copied. Fill never reallocates, so slices previously taken
// from Bytes stay valid and unchanged.
func (bb *ByteBuffer) Fill(data []byte) int {
	n := copy(bb.B[len(bb.B):cap(bb.B)], data)
	bb.B = bb.B[:len(bb.B)+n]

	return n
}

// Tail returns the free capacity as a zero-offset slice, suitable as the
// destination of an io.Reader.Read call. Commit must be called afterwards
// with the number of bytes written.
func (bb *ByteBuffer) Tail() []byte {
	return bb.B[len(bb.B):cap(bb.B)]
}

// Commit extends the filled length by n bytes written through Tail.
// Panics if n exceeds the free capacity.
func (bb *ByteBuffer) Commit(n int) {
	if n < 0 || n > bb.Available() {
		panic("Commit: invalid length")
	}
	bb.B = bb.B[:len(bb.B)+n]
}

// ByteBufferPool is a sync.Pool of ByteBuffers with a fixed initial size.
//
// Buffers that grew beyond maxThreshold are dropped on Put instead of being
// retained, so a single oversized value does not pin memory forever.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers with defaultSize capacity.
// A maxThreshold of zero disables the size check.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	segmentDefaultPool = NewByteBufferPool(SegmentDefaultSize, SegmentDefaultSize)
	frameDefaultPool   = NewByteBufferPool(FrameBufferDefaultSize, FrameBufferMaxSize)
)

// SegmentPool returns the shared pool for default-sized window segments.
// A pool for another size is created on demand.
func SegmentPool(size int) *ByteBufferPool {
	if size == SegmentDefaultSize {
		return segmentDefaultPool
	}

	return NewByteBufferPool(size, size)
}

// GetFrameBuffer retrieves a buffer used to flatten a multi-segment value.
func GetFrameBuffer() *ByteBuffer {
	return frameDefaultPool.Get()
}

// PutFrameBuffer returns a frame buffer to the shared pool.
func PutFrameBuffer(bb *ByteBuffer) {
	frameDefaultPool.Put(bb)
}

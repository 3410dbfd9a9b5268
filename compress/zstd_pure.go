//go:build !gozstd || !cgo

package compress

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse; the decoder is designed to
// run without allocations after a warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1), // synchronous streaming, no goroutines
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

type zstdReader struct {
	dec *zstd.Decoder
}

func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	if err := dec.Reset(r); err != nil {
		zstdDecoderPool.Put(dec)
		return nil, fmt.Errorf("zstd reader: %w", err)
	}

	return &zstdReader{dec: dec}, nil
}

func (z *zstdReader) Read(p []byte) (int, error) {
	if z.dec == nil {
		return 0, io.ErrClosedPipe
	}

	return z.dec.Read(p)
}

// Close returns the decoder to the pool.
func (z *zstdReader) Close() error {
	if z.dec == nil {
		return nil
	}
	// Reset(nil) drops the reference to the source.
	_ = z.dec.Reset(nil)
	zstdDecoderPool.Put(z.dec)
	z.dec = nil

	return nil
}

func newZstdWriter(w io.Writer) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}

	return enc, nil
}

package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/format"
)

// NewReader returns a reader decompressing r according to t.
//
// Returns errs.ErrInvalidCompression for an unknown type, or the error of
// the underlying decoder when the stream header is invalid (gzip reads its
// header eagerly).
func NewReader(r io.Reader, t format.CompressionType) (io.ReadCloser, error) {
	switch t {
	case format.CompressionNone:
		return io.NopCloser(r), nil
	case format.CompressionZstd:
		return newZstdReader(r)
	case format.CompressionS2:
		return newS2Reader(r), nil
	case format.CompressionLZ4:
		return newLZ4Reader(r), nil
	case format.CompressionGzip:
		return newGzipReader(r)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, t)
	}
}

// NewWriter returns a writer compressing into w according to t. The caller
// must Close it to flush the last frame.
func NewWriter(w io.Writer, t format.CompressionType) (io.WriteCloser, error) {
	switch t {
	case format.CompressionNone:
		return nopWriteCloser{w}, nil
	case format.CompressionZstd:
		return newZstdWriter(w)
	case format.CompressionS2:
		return newS2Writer(w), nil
	case format.CompressionLZ4:
		return newLZ4Writer(w), nil
	case format.CompressionGzip:
		return newGzipWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, t)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

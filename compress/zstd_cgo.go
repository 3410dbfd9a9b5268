//go:build gozstd && cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

type zstdReader struct {
	zr *gozstd.Reader
}

func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	return &zstdReader{zr: gozstd.NewReader(r)}, nil
}

func (z *zstdReader) Read(p []byte) (int, error) {
	if z.zr == nil {
		return 0, io.ErrClosedPipe
	}

	return z.zr.Read(p)
}

// Close frees the C decoder context.
func (z *zstdReader) Close() error {
	if z.zr == nil {
		return nil
	}
	z.zr.Release()
	z.zr = nil

	return nil
}

type zstdWriter struct {
	zw *gozstd.Writer
}

func newZstdWriter(w io.Writer) (io.WriteCloser, error) {
	return &zstdWriter{zw: gozstd.NewWriterLevel(w, 3)}, nil
}

func (z *zstdWriter) Write(p []byte) (int, error) {
	return z.zw.Write(p)
}

// Close flushes the final frame and frees the C encoder context.
func (z *zstdWriter) Close() error {
	err := z.zw.Close()
	z.zw.Release()

	return err
}

package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

func newGzipReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}

	return zr, nil
}

func newGzipWriter(w io.Writer) io.WriteCloser {
	return gzip.NewWriter(w)
}

// Package compress wraps byte sources and sinks with streaming
// (de)compression, so a compressed JSON array can be fed to a pipe.Reader
// without inflating it up front.
//
// # Supported Algorithms
//
//   - None: bytes pass through unchanged
//   - Zstd: github.com/klauspost/compress/zstd, or github.com/valyala/gozstd
//     when built with the gozstd tag and cgo enabled
//   - S2: github.com/klauspost/compress/s2 stream format
//   - LZ4: github.com/pierrec/lz4/v4 frame format
//   - Gzip: github.com/klauspost/compress/gzip
//
// # Usage
//
//	zr, err := compress.NewReader(conn, format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	defer zr.Close()
//
//	for ev, err := range jsonpipe.Items[Event](ctx, zr) {
//	    ...
//	}
//
// Closing a reader releases decoder resources; it never closes the wrapped
// io.Reader. Closing a writer flushes the final frame; it never closes the
// wrapped io.Writer.
package compress

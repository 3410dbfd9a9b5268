// Package jsonpipe incrementally decodes a top-level JSON array whose bytes
// arrive in chunks of arbitrary size, handing out each element as soon as it
// is complete without buffering the whole array.
//
// The accepted wire shape is an array of objects:
//
//	[{"id":1},{"id":2},...]
//
// Whitespace between elements is rejected unless stream.WithWhitespace is
// set. Any other top-level byte faults the stream with
// errs.ErrUnsupportedShape.
//
// Element decoding is strict by default: only a value that runs past the end
// of the buffered bytes (errs.ErrTruncated) is retried once more bytes
// arrive, and any other decode error faults the stream at once.
// stream.WithLenientDecode treats every decode failure as "need more bytes"
// instead; a malformed value then surfaces as errs.ErrUnexpectedEOF when the
// source completes, or as errs.ErrValueTooLarge once stream.WithMaxValueSize
// is exceeded.
//
// # Core Features
//
//   - Pull iteration with Seq / Items (range-over-func)
//   - Bounded queue with backpressure via Start / StartReader
//   - Pooled, fixed-size byte segments released as soon as they are consumed
//   - Pluggable element decoders (goccy/go-json by default, encoding/json, raw bytes)
//   - Optional streaming decompression of the source (see package compress)
//   - Per-stream statistics with an xxHash64 digest of all consumed bytes
//
// # Basic Usage
//
// Iterating over elements read from any io.Reader:
//
//	type Event struct {
//	    ID   int    `json:"id"`
//	    Name string `json:"name"`
//	}
//
//	for ev, err := range jsonpipe.Items[Event](ctx, resp.Body) {
//	    if err != nil {
//	        return err
//	    }
//	    handle(ev)
//	}
//
// Decoding in the background into a queue of 64 elements:
//
//	q, _ := jsonpipe.StartReader[Event](ctx, conn, 64)
//	defer q.Close()
//	for ev := range q.All() {
//	    handle(ev)
//	}
//	if err := q.Err(); err != nil {
//	    return err
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers. Byte sources live in
// package pipe, the read loop in package stream and element decoders in
// package decode; use them directly for fine-grained control.
package jsonpipe

import (
	"context"
	"io"
	"iter"

	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/pipe"
	"github.com/arloliu/jsonpipe/stream"
)

// Seq returns a single-use iterator over the elements read from r.
//
// The read loop runs on the consumer's goroutine while the range statement
// pulls. A terminal error is yielded once as the final pair, with the zero
// value of T. Breaking out of the loop stops reading and leaves the driver in
// stream.StateStopped; r is left positioned after the last yielded element.
func Seq[T any](ctx context.Context, r pipe.Reader, opts ...stream.Option) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		d, err := stream.New[T](r, opts...)
		if err != nil {
			yield(zero, err)
			return
		}

		err = d.Run(ctx, stream.SinkFunc[T](func(_ context.Context, item T) error {
			if !yield(item, nil) {
				return errs.ErrStopped
			}

			return nil
		}))
		if err != nil {
			yield(zero, err)
		}
	}
}

// Items is Seq over an io.Reader.
func Items[T any](ctx context.Context, r io.Reader, opts ...stream.Option) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		sr, err := pipe.NewStreamReader(r)
		if err != nil {
			var zero T
			yield(zero, err)

			return
		}
		defer sr.Close()

		for item, err := range Seq[T](ctx, sr, opts...) {
			if !yield(item, err) {
				return
			}
		}
	}
}

// DecodeAll reads every element from r into a slice.
func DecodeAll[T any](ctx context.Context, r io.Reader, opts ...stream.Option) ([]T, error) {
	var items []T
	for item, err := range Items[T](ctx, r, opts...) {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}

	return items, nil
}

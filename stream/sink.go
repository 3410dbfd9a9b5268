package stream

import "context"

// Sink receives decoded items in stream order.
//
// Emit may block; the driver does not read further bytes until it returns.
// A non-nil error stops the stream and is returned from Driver.Run.
type Sink[T any] interface {
	Emit(ctx context.Context, item T) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc[T any] func(ctx context.Context, item T) error

// Emit calls f(ctx, item).
func (f SinkFunc[T]) Emit(ctx context.Context, item T) error {
	return f(ctx, item)
}

// ChanSink sends items to a channel, waiting for room or for ctx to be done.
type ChanSink[T any] chan<- T

// Emit sends item to the channel.
func (c ChanSink[T]) Emit(ctx context.Context, item T) error {
	select {
	case c <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

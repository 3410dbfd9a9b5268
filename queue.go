package jsonpipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/pipe"
	"github.com/arloliu/jsonpipe/stream"
)

// Queue is a bounded buffer of decoded elements filled by a background
// goroutine. When the queue is full the producer stops reading until the
// consumer catches up.
//
// A Queue has a single consumer: Next, All and C must not be used
// concurrently.
type Queue[T any] struct {
	items  chan T
	done   chan struct{}
	err    error
	driver *stream.Driver[T]
	cancel context.CancelFunc
}

// Start begins decoding r on a new goroutine into a queue holding at most
// capacity elements.
//
// The producer stops when the array ends, when r cancels its pending read,
// on the first fatal error, or when ctx is done.
//
// Returns errs.ErrQueueCapacity if capacity is not positive, or an error
// from a driver option.
func Start[T any](ctx context.Context, r pipe.Reader, capacity int, opts ...stream.Option) (*Queue[T], error) {
	return start[T](ctx, r, capacity, nil, opts)
}

// start runs the producer; release, if set, is called once the driver has
// returned and before the queue reports done.
func start[T any](ctx context.Context, r pipe.Reader, capacity int, release func(), opts []stream.Option) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrQueueCapacity, capacity)
	}

	d, err := stream.New[T](r, opts...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	q := &Queue[T]{
		items:  make(chan T, capacity),
		done:   make(chan struct{}),
		driver: d,
		cancel: cancel,
	}

	go func() {
		defer cancel()

		err := d.Run(ctx, stream.ChanSink[T](q.items))
		if release != nil {
			release()
		}
		q.err = err
		close(q.done)
		close(q.items)
	}()

	return q, nil
}

// StartReader is Start over an io.Reader. The buffered segments are released
// when the producer stops. A read blocked inside r is not interrupted by Close
// or ctx; close r to unblock it.
func StartReader[T any](ctx context.Context, r io.Reader, capacity int, opts ...stream.Option) (*Queue[T], error) {
	sr, err := pipe.NewStreamReader(r)
	if err != nil {
		return nil, err
	}

	q, err := start[T](ctx, sr, capacity, func() { _ = sr.Close() }, opts)
	if err != nil {
		_ = sr.Close()
		return nil, err
	}

	return q, nil
}

// Next returns the next element. It returns false once the queue is drained
// and the producer has stopped, or when ctx is done; check Err afterwards.
func (q *Queue[T]) Next(ctx context.Context) (T, bool) {
	select {
	case item, ok := <-q.items:
		return item, ok
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

// All iterates over the remaining elements until the queue is drained.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}

// C returns the channel elements are delivered on. It is closed once the
// producer has stopped.
func (q *Queue[T]) C() <-chan T {
	return q.items
}

// Done is closed when the producer has stopped.
func (q *Queue[T]) Done() <-chan struct{} {
	return q.done
}

// Err returns the error that stopped the producer, or nil while it is still
// running or after a clean end of stream.
func (q *Queue[T]) Err() error {
	select {
	case <-q.done:
		return q.err
	default:
		return nil
	}
}

// Stats returns the producer's counters.
func (q *Queue[T]) Stats() stream.Stats {
	return q.driver.Stats()
}

// Close stops the producer and waits for it. Elements still queued remain
// readable. The returned error is Err, with the cancellation caused by Close
// itself filtered out.
func (q *Queue[T]) Close() error {
	q.cancel()
	<-q.done

	if errors.Is(q.err, context.Canceled) {
		return nil
	}

	return q.err
}

package pipe

import "context"

// ReadResult is what a Reader hands out per read cycle: the currently
// visible window plus the state of the stream.
type ReadResult struct {
	// Buffer holds every byte not yet consumed. It is invalidated by the next
	// AdvanceTo call.
	Buffer Sequence
	// Completed reports that the writer finished; no more bytes will arrive.
	Completed bool
	// Canceled reports that the pending read was canceled with CancelPendingRead.
	Canceled bool
}

// Done reports whether no further bytes will be delivered after this result.
func (r ReadResult) Done() bool {
	return r.Completed || r.Canceled
}

// Reader is a chunked byte source with explicit consumption accounting.
//
// Every successful Read must be followed by exactly one AdvanceTo call before
// the next Read. consumed marks the bytes the caller is finished with; the
// source may reuse their memory. examined marks how far the caller looked
// without making progress: when examined equals the end of the buffer, the
// next Read blocks until new bytes arrive, the stream completes, or the read
// is canceled.
type Reader interface {
	Read(ctx context.Context) (ReadResult, error)
	AdvanceTo(consumed, examined Position) error
	// CancelPendingRead makes the current or next Read return a result with
	// Canceled set. It is safe to call from any goroutine.
	CancelPendingRead()
}

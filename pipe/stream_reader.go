package pipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/arloliu/jsonpipe/errs"
)

// StreamReader is a Reader that pulls bytes from an io.Reader on the
// caller's goroutine. Each Read that needs data performs at most one
// successful read of up to one segment, so chunk boundaries follow the
// underlying reader.
//
// A blocked io.Reader cannot be interrupted; ctx and CancelPendingRead are
// observed between reads. Use a Pipe fed by Copy when the source must be
// abandoned while blocked.
type StreamReader struct {
	r   io.Reader
	buf buffer

	reading   bool
	completed bool
	err       error
	canceled  atomic.Bool
}

var _ Reader = (*StreamReader)(nil)

// NewStreamReader wraps r.
func NewStreamReader(r io.Reader, opts ...Option) (*StreamReader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &StreamReader{r: r, buf: newBuffer(cfg.segmentSize)}, nil
}

// Read returns the current window, reading from the io.Reader first when
// every buffered byte has already been examined.
func (s *StreamReader) Read(ctx context.Context) (ReadResult, error) {
	if s.reading {
		return ReadResult{}, errs.ErrReadNotAdvanced
	}
	if s.err != nil {
		return ReadResult{}, s.err
	}
	if s.canceled.Swap(false) {
		s.reading = true
		return ReadResult{Buffer: s.buf.window(), Canceled: true}, nil
	}
	if s.completed {
		s.reading = true
		return ReadResult{Buffer: s.buf.window(), Completed: true}, nil
	}
	if s.buf.unexamined() > 0 {
		s.reading = true
		return ReadResult{Buffer: s.buf.window()}, nil
	}

	for empty := 0; empty < maxConsecutiveEmptyReads; empty++ {
		if err := ctx.Err(); err != nil {
			return ReadResult{}, err
		}
		if s.canceled.Swap(false) {
			s.reading = true
			return ReadResult{Buffer: s.buf.window(), Canceled: true}, nil
		}

		n, err := s.r.Read(s.buf.tail())
		s.buf.commitTail(n)

		switch {
		case errors.Is(err, io.EOF):
			s.completed = true
			s.reading = true

			return ReadResult{Buffer: s.buf.window(), Completed: true}, nil
		case err != nil:
			s.err = fmt.Errorf("read source: %w", err)
			return ReadResult{}, s.err
		case n > 0:
			s.reading = true
			return ReadResult{Buffer: s.buf.window()}, nil
		}
	}

	s.err = io.ErrNoProgress

	return ReadResult{}, s.err
}

// AdvanceTo releases consumed bytes and records the examined boundary.
func (s *StreamReader) AdvanceTo(consumed, examined Position) error {
	if !s.reading {
		return errs.ErrAdvanceWithoutRead
	}
	if err := s.buf.advance(consumed, examined); err != nil {
		return err
	}
	s.reading = false

	return nil
}

// CancelPendingRead makes the next Read return a canceled result.
func (s *StreamReader) CancelPendingRead() {
	s.canceled.Store(true)
}

// Close releases all buffered segments. It does not close the io.Reader.
func (s *StreamReader) Close() error {
	s.buf.reset()
	s.reading = false

	return nil
}

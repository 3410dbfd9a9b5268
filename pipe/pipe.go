package pipe

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/arloliu/jsonpipe/errs"
)

// Pipe is an in-memory byte source fed by a writer goroutine.
//
// The writer side (Write, Complete) and the reader side (Read, AdvanceTo,
// CancelPendingRead, CloseReader) may run on different goroutines. Written
// bytes are copied into pooled segments, so the caller may reuse the slice
// passed to Write immediately.
type Pipe struct {
	mu  sync.Mutex
	buf buffer

	pauseThreshold int64

	reading       bool
	cancelPending bool
	completed     bool
	completeErr   error
	readerClosed  bool

	// readSignal is closed whenever the state observed by a blocked reader
	// changes; writeSignal likewise for a paused writer.
	readSignal  chan struct{}
	writeSignal chan struct{}
}

var (
	_ Reader    = (*Pipe)(nil)
	_ io.Writer = (*Pipe)(nil)
)

// New creates an empty Pipe.
func New(opts ...Option) (*Pipe, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Pipe{
		buf:            newBuffer(cfg.segmentSize),
		pauseThreshold: cfg.pauseThreshold,
		readSignal:     make(chan struct{}),
		writeSignal:    make(chan struct{}),
	}, nil
}

// Write appends p to the pipe. It blocks while the reader lags more than the
// pause threshold behind, and fails once the pipe is completed or the
// reader is closed.
func (p *Pipe) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		if p.completed {
			return 0, errs.ErrPipeCompleted
		}
		if p.readerClosed {
			return 0, io.ErrClosedPipe
		}
		if p.pauseThreshold == 0 || p.buf.unexamined() < p.pauseThreshold {
			break
		}

		ch := p.writeSignal
		p.mu.Unlock()
		<-ch
		p.mu.Lock()
	}

	if len(data) == 0 {
		return 0, nil
	}

	p.buf.write(data)
	p.notifyReader()

	return len(data), nil
}

// Complete marks the end of the stream. A non-nil err is reported by the next
// Read instead of a result. Completing twice is a no-op.
func (p *Pipe) Complete(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.completed {
		return
	}
	p.completed = true
	p.completeErr = err
	p.notifyReader()
	p.notifyWriter()
}

// Read waits until unexamined bytes are available, the pipe completes, the
// read is canceled, or ctx is done.
func (p *Pipe) Read(ctx context.Context) (ReadResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reading {
		return ReadResult{}, errs.ErrReadNotAdvanced
	}

	for {
		if p.readerClosed {
			return ReadResult{}, io.ErrClosedPipe
		}
		if p.cancelPending {
			p.cancelPending = false
			p.reading = true

			return ReadResult{Buffer: p.buf.window(), Canceled: true}, nil
		}
		if p.completed {
			if p.completeErr != nil {
				return ReadResult{}, fmt.Errorf("pipe writer failed: %w", p.completeErr)
			}
			p.reading = true

			return ReadResult{Buffer: p.buf.window(), Completed: true}, nil
		}
		if p.buf.unexamined() > 0 {
			p.reading = true

			return ReadResult{Buffer: p.buf.window()}, nil
		}

		ch := p.readSignal
		p.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			p.mu.Lock()
			return ReadResult{}, ctx.Err()
		}
		p.mu.Lock()
	}
}

// AdvanceTo releases the bytes before consumed and records how far the
// reader examined.
func (p *Pipe) AdvanceTo(consumed, examined Position) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.reading {
		return errs.ErrAdvanceWithoutRead
	}
	if err := p.buf.advance(consumed, examined); err != nil {
		return err
	}
	p.reading = false
	p.notifyWriter()

	return nil
}

// CancelPendingRead makes the pending or next Read return a canceled result.
func (p *Pipe) CancelPendingRead() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelPending = true
	p.notifyReader()
}

// CloseReader tells the writer that nobody reads anymore. Blocked and future
// writes fail with io.ErrClosedPipe and all buffered bytes are released.
func (p *Pipe) CloseReader() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.readerClosed {
		return
	}
	p.readerClosed = true
	p.reading = false
	p.buf.reset()
	p.notifyWriter()
	p.notifyReader()
}

// Buffered returns the number of bytes written but not yet consumed.
func (p *Pipe) Buffered() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.buf.unconsumed()
}

func (p *Pipe) notifyReader() {
	close(p.readSignal)
	p.readSignal = make(chan struct{})
}

func (p *Pipe) notifyWriter() {
	close(p.writeSignal)
	p.writeSignal = make(chan struct{})
}

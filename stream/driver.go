// Package stream drives the decode loop turning a chunked byte source into
// the elements of a top-level JSON array.
//
// One read cycle makes at most one step: skip a single delimiter, decode one
// object, or wait for more bytes. The loop:
//
//	AwaitingBytes -> Classifying -> StructuralSkip | Decoding -> Advancing
//	     ^                                                           |
//	     +-----------------------------------------------------------+
//
// ends in Completed, Canceled or Faulted. Each cycle reports back to the
// source how far it consumed (bytes the driver is done with) and how far it
// examined (bytes it looked at without making progress). A value that does
// not fit in the window yet leaves consumed at its start and examined at the
// window end, so the source only wakes the driver once more bytes arrive.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/arloliu/jsonpipe/decode"
	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/internal/hash"
	"github.com/arloliu/jsonpipe/pipe"
	"github.com/arloliu/jsonpipe/scan"
)

// Driver runs the read loop for one stream. It is single use.
type Driver[T any] struct {
	r          pipe.Reader
	dec        decode.Decoder[T]
	classifier scan.Classifier
	cfg        *Config
	log        *slog.Logger

	started atomic.Bool
	state   atomic.Uint32

	committed     pipe.Position
	lastDecodeErr error

	mu     sync.Mutex
	stats  Stats
	digest *hash.Digest
}

// New creates a driver reading from r.
//
// Returns errs.ErrDecoderType if WithDecoder supplied a decoder for another
// item type, or the first error reported by an option.
func New[T any](r pipe.Reader, opts ...Option) (*Driver[T], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	var dec decode.Decoder[T]
	switch d := cfg.decoder.(type) {
	case nil:
		dec = decode.GoJSON[T]()
	case decode.Decoder[T]:
		dec = d
	default:
		var zero T
		return nil, fmt.Errorf("%w: %T does not decode %T", errs.ErrDecoderType, cfg.decoder, zero)
	}

	return &Driver[T]{
		r:          r,
		dec:        dec,
		classifier: scan.Classifier{SkipWhitespace: cfg.whitespace},
		cfg:        cfg,
		log:        cfg.logger,
		digest:     hash.NewDigest(),
	}, nil
}

// State returns the current state. It is safe to call from any goroutine.
func (d *Driver[T]) State() State {
	return State(d.state.Load())
}

// Stats returns a snapshot of the counters. It is safe to call from any
// goroutine, also while Run is in progress.
func (d *Driver[T]) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.stats
	s.BytesCommitted = d.digest.Bytes()
	s.Digest = d.digest.Sum64()

	return s
}

// Run reads the stream to its end and hands every element to sink.
//
// It returns nil when the array ends with the source completing, when the
// source cancels the pending read, or when sink returns errs.ErrStopped. In
// the last case the element that was being emitted counts as consumed and the
// driver ends in StateStopped. Otherwise it returns the first fatal
// error: a read error (including ctx.Err()), a top-level byte that is not
// one of , [ ] {, a malformed value, residue left at completion, or an error
// returned by sink.
func (d *Driver[T]) Run(ctx context.Context, sink Sink[T]) error {
	if !d.started.CompareAndSwap(false, true) {
		return errs.ErrAlreadyStarted
	}

	for {
		d.setState(StateAwaitingBytes)
		res, err := d.r.Read(ctx)
		if err != nil {
			return d.fault(ctx, fmt.Errorf("read: %w", err))
		}
		d.count(func(s *Stats) { s.Reads++ })

		buf := res.Buffer
		d.log.LogAttrs(ctx, slog.LevelDebug, "read cycle",
			slog.Int64("offset", buf.Start().Offset()),
			slog.Int64("len", buf.Len()),
			slog.Bool("completed", res.Completed),
			slog.Bool("canceled", res.Canceled),
		)

		if res.Canceled {
			d.setState(StateAdvancing)
			if err := d.advance(buf.Start(), buf.Start()); err != nil {
				return d.fault(ctx, err)
			}
			d.setState(StateCanceled)

			return nil
		}

		consumed, examined, stepErr := d.step(ctx, buf, sink)

		d.setState(StateAdvancing)
		advErr := d.advance(consumed, examined)
		if errors.Is(stepErr, errs.ErrStopped) && advErr == nil {
			d.setState(StateStopped)
			d.log.LogAttrs(ctx, slog.LevelDebug, "stream stopped by sink",
				slog.Int64("offset", consumed.Offset()),
			)

			return nil
		}
		if stepErr != nil {
			return d.fault(ctx, stepErr)
		}
		if advErr != nil {
			return d.fault(ctx, advErr)
		}

		if res.Completed && consumed == buf.Start() {
			if !buf.IsEmpty() {
				return d.fault(ctx, d.residueError(buf))
			}
			d.setState(StateCompleted)

			return nil
		}
	}
}

// step classifies the window and makes at most one unit of progress.
func (d *Driver[T]) step(ctx context.Context, buf pipe.Sequence, sink Sink[T]) (consumed, examined pipe.Position, err error) {
	start := buf.Start()

	d.setState(StateClassifying)
	class := d.classifier.Classify(buf)

	switch {
	case class == scan.ClassEmpty:
		return start, start, nil

	case class.Structural():
		d.setState(StateStructuralSkip)
		next := buf.GetPosition(1)
		d.commit(buf.SliceTo(1), func(s *Stats) { s.StructuralBytes++ })
		d.log.LogAttrs(ctx, slog.LevelDebug, "skip",
			slog.String("class", class.String()),
			slog.Int64("offset", start.Offset()),
		)

		return next, next, nil

	case class == scan.ClassValueStart:
		d.setState(StateDecoding)

		return d.decodeOne(ctx, buf, sink)

	default:
		return start, start, fmt.Errorf("%w: got %q at offset %d",
			errs.ErrUnsupportedShape, buf.FirstSpan()[0], start.Offset())
	}
}

func (d *Driver[T]) decodeOne(ctx context.Context, buf pipe.Sequence, sink Sink[T]) (consumed, examined pipe.Position, err error) {
	start := buf.Start()

	item, n, err := d.dec.Decode(buf)
	if err != nil {
		if !d.cfg.lenient && !errors.Is(err, errs.ErrTruncated) {
			return start, start, err
		}
		d.lastDecodeErr = err
		d.count(func(s *Stats) { s.DecodeRetries++ })

		if limit := d.cfg.maxValueSize; limit > 0 && buf.Len() > limit {
			return start, start, fmt.Errorf("%w: %d bytes buffered at offset %d, limit %d",
				errs.ErrValueTooLarge, buf.Len(), start.Offset(), limit)
		}

		return start, buf.End(), nil
	}

	if n <= 0 || n > buf.Len() {
		return start, start, fmt.Errorf("%w: decoder consumed %d of %d bytes",
			errs.ErrInvalidAdvance, n, buf.Len())
	}

	next := buf.GetPosition(n)
	d.lastDecodeErr = nil
	d.commit(buf.SliceTo(n), func(s *Stats) { s.Items++ })

	if err := sink.Emit(ctx, item); err != nil {
		return next, next, err
	}

	return next, next, nil
}

func (d *Driver[T]) advance(consumed, examined pipe.Position) error {
	if consumed.Before(d.committed) {
		panic(fmt.Sprintf("stream: committed position moved backward from %s to %s", d.committed, consumed))
	}
	if err := d.r.AdvanceTo(consumed, examined); err != nil {
		return fmt.Errorf("advance: %w", err)
	}
	d.committed = consumed

	return nil
}

func (d *Driver[T]) residueError(buf pipe.Sequence) error {
	err := fmt.Errorf("%w: %d bytes left at offset %d",
		errs.ErrUnexpectedEOF, buf.Len(), buf.Start().Offset())
	if d.lastDecodeErr != nil && !errors.Is(d.lastDecodeErr, errs.ErrTruncated) {
		err = fmt.Errorf("%w (last decode error: %w)", err, d.lastDecodeErr)
	}

	return err
}

// commit records bytes the driver is done with.
func (d *Driver[T]) commit(seq pipe.Sequence, update func(*Stats)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for span := range seq.Segments() {
		d.digest.Add(span)
	}
	update(&d.stats)
}

func (d *Driver[T]) count(update func(*Stats)) {
	d.mu.Lock()
	update(&d.stats)
	d.mu.Unlock()
}

func (d *Driver[T]) fault(ctx context.Context, err error) error {
	d.setState(StateFaulted)
	d.log.LogAttrs(ctx, slog.LevelDebug, "stream faulted",
		slog.Int64("offset", d.committed.Offset()),
		slog.Any("error", err),
	)

	return err
}

func (d *Driver[T]) setState(s State) {
	d.state.Store(uint32(s))
}

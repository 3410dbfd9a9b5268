package pipe

import (
	"context"
	"errors"
	"io"
)

// copyChunkSize is the read size Copy uses.
const copyChunkSize = 1024 * 32

// Copy reads from r into p until EOF, a read error, or ctx is done, then
// completes the pipe. The read error, if any, is passed to Complete and also
// returned. A closed reader side stops the copy without error.
func Copy(ctx context.Context, p *Pipe, r io.Reader) error {
	chunk := make([]byte, copyChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			p.Complete(err)
			return err
		}

		n, err := r.Read(chunk)
		if n > 0 {
			if _, werr := p.Write(chunk[:n]); werr != nil {
				if errors.Is(werr, io.ErrClosedPipe) {
					return nil
				}

				return werr
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			p.Complete(nil)
			return nil
		case err != nil:
			p.Complete(err)
			return err
		}
	}
}

// CopyAsync starts Copy on a new goroutine and returns a channel receiving
// its result.
func CopyAsync(ctx context.Context, p *Pipe, r io.Reader) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- Copy(ctx, p, r)
	}()

	return done
}

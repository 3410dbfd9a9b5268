package pipe

import (
	"fmt"

	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/internal/options"
	"github.com/arloliu/jsonpipe/internal/pool"
)

const (
	// MinSegmentSize is the smallest segment size accepted by WithSegmentSize.
	MinSegmentSize = 16
	// DefaultPauseThreshold is the default amount of unexamined bytes at which
	// Pipe.Write blocks.
	DefaultPauseThreshold = 1024 * 64
	// maxConsecutiveEmptyReads bounds how often an io.Reader may return
	// (0, nil) before the StreamReader gives up with io.ErrNoProgress.
	maxConsecutiveEmptyReads = 100
)

// Config holds settings shared by Pipe and StreamReader.
type Config struct {
	segmentSize    int
	pauseThreshold int64
}

// Option configures a Pipe or a StreamReader.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		segmentSize:    pool.SegmentDefaultSize,
		pauseThreshold: DefaultPauseThreshold,
	}
}

func newConfig(opts []Option) (*Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithSegmentSize sets the size of the pooled segments bytes are stored in.
// For a StreamReader it is also the largest single read from the io.Reader.
func WithSegmentSize(size int) Option {
	return options.New(func(c *Config) error {
		if size < MinSegmentSize {
			return fmt.Errorf("%w: %d (minimum %d)", errs.ErrInvalidSegmentSize, size, MinSegmentSize)
		}
		c.segmentSize = size

		return nil
	})
}

// WithPauseThreshold sets how many unexamined bytes a Pipe buffers before
// Write blocks. Zero disables writer backpressure. Only bytes the reader has
// not examined count, so a reader waiting for the rest of a large value never
// deadlocks a paused writer.
func WithPauseThreshold(n int64) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: pause threshold %d", errs.ErrInvalidOption, n)
		}
		c.pauseThreshold = n

		return nil
	})
}

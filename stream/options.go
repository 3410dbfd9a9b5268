package stream

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/jsonpipe/decode"
	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/internal/options"
)

// Config holds the driver settings assembled from options.
type Config struct {
	decoder      any
	whitespace   bool
	lenient      bool
	maxValueSize int64
	logger       *slog.Logger
}

// Option configures a Driver and the adapters built on it.
type Option = options.Option[*Config]

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	return cfg, nil
}

// WithDecoder sets the decoder used for array elements. Its item type must
// match the driver's; the default is decode.GoJSON.
func WithDecoder[T any](dec decode.Decoder[T]) Option {
	return options.NoError(func(c *Config) {
		c.decoder = dec
	})
}

// WithWhitespace allows insignificant JSON whitespace between top-level
// tokens. By default the stream must be whitespace-free.
func WithWhitespace(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.whitespace = enabled
	})
}

// WithLenientDecode treats every decode failure as "more bytes needed".
//
// By default only errs.ErrTruncated is retried and any other decode error
// faults the stream. In lenient mode a malformed value is retried until the
// source completes and the stream then faults with errs.ErrUnexpectedEOF.
func WithLenientDecode() Option {
	return options.NoError(func(c *Config) {
		c.lenient = true
	})
}

// WithMaxValueSize faults the stream with errs.ErrValueTooLarge once an
// incomplete value spans more than n bytes. Zero means no limit.
func WithMaxValueSize(n int64) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: max value size %d", errs.ErrInvalidOption, n)
		}
		c.maxValueSize = n

		return nil
	})
}

// WithLogger sets the logger receiving debug records about read cycles,
// skipped delimiters and faults. A nil logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = l
	})
}

// Package format defines the wire-level identifiers shared by jsonpipe
// packages.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/jsonpipe/errs"
)

// CompressionType identifies how a byte source is compressed.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 stream compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents gzip compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler, so compression types can be
// used in configuration files.
func (c CompressionType) MarshalText() ([]byte, error) {
	if c < CompressionNone || c > CompressionGzip {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCompression, uint8(c))
	}

	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseCompression.
func (c *CompressionType) UnmarshalText(text []byte) error {
	parsed, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

// ParseCompression maps a name such as "zstd" or a file extension such as
// ".zst" to a CompressionType. Matching is case-insensitive; the empty
// string means CompressionNone.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "none", "json":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2", "sz":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
	}
}

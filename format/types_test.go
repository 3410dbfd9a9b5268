package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsonpipe/errs"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		input string
		want  CompressionType
	}{
		{input: "", want: CompressionNone},
		{input: "none", want: CompressionNone},
		{input: ".json", want: CompressionNone},
		{input: "ZSTD", want: CompressionZstd},
		{input: ".zst", want: CompressionZstd},
		{input: "s2", want: CompressionS2},
		{input: "lz4", want: CompressionLZ4},
		{input: ".gz", want: CompressionGzip},
		{input: "gzip", want: CompressionGzip},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCompression(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCompression("brotli")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestCompressionType_Text(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4, CompressionGzip} {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var back CompressionType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}

	_, err := CompressionType(0).MarshalText()
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
	assert.Equal(t, "Unknown", CompressionType(99).String())
}

package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsonpipe/errs"
	"github.com/arloliu/jsonpipe/pipe"
)

// split cuts s into spans of at most n bytes.
func split(s string, n int) pipe.Sequence {
	var spans [][]byte
	for len(s) > n {
		spans = append(spans, []byte(s[:n]))
		s = s[n:]
	}
	spans = append(spans, []byte(s))

	return pipe.NewSequence(spans...)
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "empty object", input: `{}`, want: 2},
		{name: "trailing bytes", input: `{"a":1},{"b":2}]`, want: 7},
		{name: "nested", input: `{"a":{"b":[1,{"c":2}]}}]`, want: 23},
		{name: "braces in string", input: `{"a":"}{]["}`, want: 12},
		{name: "escaped quote", input: `{"a":"x\"}"}`, want: 12},
		{name: "escaped backslash", input: `{"a":"\\"}`, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, chunk := range []int{1, 2, 3, 64} {
				n, err := Frame(split(tt.input, chunk))
				require.NoError(t, err, "chunk %d", chunk)
				assert.Equal(t, tt.want, n, "chunk %d", chunk)
			}
		})
	}
}

func TestFrame_Truncated(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a`, `{"a":"}`, `{"a":[1,2]`, `{"a":"\`} {
		_, err := Frame(split(input, 2))
		require.ErrorIs(t, err, errs.ErrTruncated, "input %q", input)
	}
}

func TestFrame_NotObject(t *testing.T) {
	for _, input := range []string{`[1]`, `1`, `"s"`, `x`} {
		_, err := Frame(pipe.NewSequence([]byte(input)))
		require.ErrorIs(t, err, errs.ErrNotObject, "input %q", input)
	}
}

func TestFrame_Mismatch(t *testing.T) {
	_, err := Frame(pipe.NewSequence([]byte(`{"a":[1}`)))

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, int64(7), se.Offset)
	assert.Contains(t, se.Error(), "offset 7")
}

func BenchmarkFrame(b *testing.B) {
	seq := split(`{"id":12345,"name":"sensor-a","tags":["x","y"],"nested":{"v":1.5}}`, 16)

	for b.Loop() {
		_, _ = Frame(seq)
	}
}

package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arloliu/jsonpipe/pipe"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Class
	}{
		{name: "empty", input: "", want: ClassEmpty},
		{name: "comma", input: ",{}", want: ClassComma},
		{name: "array open", input: "[", want: ClassArrayOpen},
		{name: "array close", input: "]", want: ClassArrayClose},
		{name: "object", input: `{"a":1}`, want: ClassValueStart},
		{name: "second bracket", input: "[[", want: ClassArrayOpen},
		{name: "scalar", input: "1", want: ClassUnrecognized},
		{name: "string", input: `"x"`, want: ClassUnrecognized},
		{name: "letter", input: "x", want: ClassUnrecognized},
		{name: "space without skipping", input: " ", want: ClassUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(pipe.NewSequence([]byte(tt.input))))
		})
	}
}

func TestClassify_FirstSpanOnly(t *testing.T) {
	seq := pipe.NewSequence([]byte("]"), []byte("garbage"))
	assert.Equal(t, ClassArrayClose, Classify(seq))
}

func TestClassifier_Whitespace(t *testing.T) {
	c := Classifier{SkipWhitespace: true}

	for _, b := range []byte{' ', '\t', '\n', '\r'} {
		assert.Equal(t, ClassWhitespace, c.ClassifyByte(b), "byte %q", b)
	}
	assert.Equal(t, ClassUnrecognized, c.ClassifyByte('\f'))
	assert.Equal(t, ClassComma, c.ClassifyByte(','))
}

func TestClass_Structural(t *testing.T) {
	assert.True(t, ClassComma.Structural())
	assert.True(t, ClassArrayOpen.Structural())
	assert.True(t, ClassArrayClose.Structural())
	assert.True(t, ClassWhitespace.Structural())
	assert.False(t, ClassValueStart.Structural())
	assert.False(t, ClassEmpty.Structural())
	assert.False(t, ClassUnrecognized.Structural())
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "Comma", ClassComma.String())
	assert.Equal(t, "Unrecognized", ClassUnrecognized.String())
	assert.Equal(t, "Class(9)", Class(9).String())
}

// Package scan classifies the first byte of a window at the top level of a
// JSON array stream.
//
// The top level of the stream is a flat sequence of delimiters and objects:
//
//	[ {...} , {...} , ... ]
//
// Classify looks at a single byte and never consumes anything itself; the
// caller decides how far to advance based on the returned Class.
package scan

import (
	"strconv"

	"github.com/arloliu/jsonpipe/pipe"
)

// Top-level delimiters.
const (
	Comma      byte = ','
	ArrayOpen  byte = '['
	ArrayClose byte = ']'
	ObjectOpen byte = '{'
)

// Class is the structural meaning of the first byte of a window.
type Class uint8

const (
	// ClassEmpty means the window holds no bytes.
	ClassEmpty Class = iota
	// ClassComma is an element separator.
	ClassComma
	// ClassArrayOpen is the opening bracket of the top-level array.
	ClassArrayOpen
	// ClassArrayClose is the closing bracket of the top-level array.
	ClassArrayClose
	// ClassWhitespace is insignificant JSON whitespace. Only reported when
	// whitespace skipping is enabled.
	ClassWhitespace
	// ClassValueStart is the first byte of an object element.
	ClassValueStart
	// ClassUnrecognized is anything else. It is fatal for the stream.
	ClassUnrecognized
)

func (c Class) String() string {
	switch c {
	case ClassEmpty:
		return "Empty"
	case ClassComma:
		return "Comma"
	case ClassArrayOpen:
		return "ArrayOpen"
	case ClassArrayClose:
		return "ArrayClose"
	case ClassWhitespace:
		return "Whitespace"
	case ClassValueStart:
		return "ValueStart"
	case ClassUnrecognized:
		return "Unrecognized"
	default:
		return "Class(" + strconv.Itoa(int(c)) + ")"
	}
}

// Structural reports whether the class is skipped as a single byte.
func (c Class) Structural() bool {
	switch c {
	case ClassComma, ClassArrayOpen, ClassArrayClose, ClassWhitespace:
		return true
	default:
		return false
	}
}

// Classifier classifies windows. The zero value rejects whitespace.
type Classifier struct {
	// SkipWhitespace makes space, tab, CR and LF classify as ClassWhitespace
	// instead of ClassUnrecognized.
	SkipWhitespace bool
}

// Classify returns the class of the first byte of seq.
func (c Classifier) Classify(seq pipe.Sequence) Class {
	if seq.IsEmpty() {
		return ClassEmpty
	}

	return c.ClassifyByte(seq.FirstSpan()[0])
}

// ClassifyByte returns the class of b.
func (c Classifier) ClassifyByte(b byte) Class {
	switch b {
	case Comma:
		return ClassComma
	case ArrayOpen:
		return ClassArrayOpen
	case ArrayClose:
		return ClassArrayClose
	case ObjectOpen:
		return ClassValueStart
	}

	if c.SkipWhitespace && IsSpace(b) {
		return ClassWhitespace
	}

	return ClassUnrecognized
}

// Classify classifies seq with whitespace skipping disabled.
func Classify(seq pipe.Sequence) Class {
	return Classifier{}.Classify(seq)
}

// IsSpace reports whether b is JSON insignificant whitespace.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

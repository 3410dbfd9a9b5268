package main

import (
	"bufio"
)

// colorizer wraps JSON scalars in ANSI escape codes.
type colorizer struct {
	keyColorCode    []byte
	stringColorCode []byte
	numberColorCode []byte
	literalCode     []byte
	resetCode       []byte
}

var defaultColorizer = colorizer{
	keyColorCode:    []byte("\033[1;34m"),
	stringColorCode: []byte("\033[32m"),
	numberColorCode: []byte("\033[36m"),
	literalCode:     []byte("\033[35m"),
	resetCode:       []byte("\033[0m"),
}

// writeLine writes compact JSON followed by a newline. A nil colorizer
// writes the bytes unchanged.
func (c *colorizer) writeLine(w *bufio.Writer, value []byte) error {
	if c == nil {
		_, _ = w.Write(value)
		return w.WriteByte('\n')
	}

	for i := 0; i < len(value); {
		b := value[i]
		switch {
		case b == '"':
			end := stringEnd(value, i)
			code := c.stringColorCode
			if end < len(value) && value[end] == ':' {
				code = c.keyColorCode
			}
			c.paint(w, code, value[i:end])
			i = end
		case b == '-' || (b >= '0' && b <= '9'):
			end := scalarEnd(value, i)
			c.paint(w, c.numberColorCode, value[i:end])
			i = end
		case b == 't' || b == 'f' || b == 'n':
			end := scalarEnd(value, i)
			c.paint(w, c.literalCode, value[i:end])
			i = end
		default:
			_ = w.WriteByte(b)
			i++
		}
	}

	return w.WriteByte('\n')
}

func (c *colorizer) paint(w *bufio.Writer, code, text []byte) {
	_, _ = w.Write(code)
	_, _ = w.Write(text)
	_, _ = w.Write(c.resetCode)
}

// stringEnd returns the index just past the string starting at value[start].
func stringEnd(value []byte, start int) int {
	for i := start + 1; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}

	return len(value)
}

func scalarEnd(value []byte, start int) int {
	i := start
	for i < len(value) {
		switch value[i] {
		case ',', '}', ']', ':':
			return i
		}
		i++
	}

	return i
}

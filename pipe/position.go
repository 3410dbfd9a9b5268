package pipe

import "strconv"

// Position marks a byte in a stream. Positions are only meaningful for the
// stream that produced them; they can be compared but arithmetic goes through
// a Sequence, which knows where its bytes are.
type Position struct {
	off int64
}

// Offset returns the absolute stream offset of p, counted from the first
// byte ever written to the source.
func (p Position) Offset() int64 {
	return p.off
}

// Compare returns -1, 0 or +1 depending on whether p is before, equal to or
// after q.
func (p Position) Compare(q Position) int {
	switch {
	case p.off < q.off:
		return -1
	case p.off > q.off:
		return 1
	default:
		return 0
	}
}

// Before reports whether p is strictly before q.
func (p Position) Before(q Position) bool {
	return p.off < q.off
}

func (p Position) String() string {
	return "@" + strconv.FormatInt(p.off, 10)
}

package stream

import "fmt"

// Stats is a snapshot of a driver's counters.
type Stats struct {
	// Items is the number of values handed to the sink.
	Items int64
	// BytesCommitted is the number of bytes released back to the source.
	BytesCommitted int64
	// Reads is the number of completed read cycles.
	Reads int64
	// StructuralBytes counts skipped delimiters and whitespace.
	StructuralBytes int64
	// DecodeRetries counts decode attempts that needed more bytes.
	DecodeRetries int64
	// Digest is the xxHash64 of all committed bytes, in stream order.
	Digest uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("items=%d bytes=%d reads=%d structural=%d retries=%d digest=%016x",
		s.Items, s.BytesCommitted, s.Reads, s.StructuralBytes, s.DecodeRetries, s.Digest)
}

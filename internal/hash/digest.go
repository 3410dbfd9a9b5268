package hash

import "github.com/cespare/xxhash/v2"

// Digest is a running xxHash64 over the bytes a stream has committed.
// It is not safe for concurrent use.
type Digest struct {
	d     *xxhash.Digest
	bytes int64
}

// NewDigest creates an empty digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Add feeds p into the digest.
func (d *Digest) Add(p []byte) {
	// xxhash.Digest.Write never fails.
	_, _ = d.d.Write(p)
	d.bytes += int64(len(p))
}

// Sum64 returns the digest of everything added so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}

// Bytes returns the number of bytes added so far.
func (d *Digest) Bytes() int64 {
	return d.bytes
}

// Sum64 computes the xxHash64 of b in one shot.
func Sum64(b []byte) uint64 {
	return xxhash.Sum64(b)
}

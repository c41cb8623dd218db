// Package hash implements the 64-bit rolling fingerprint exposed across the
// module boundary.
//
// The fingerprint is a plain multiply-add fold with multiplier 31 over the
// input bytes, using wraparound arithmetic. It is demonstration grade: cheap
// and deterministic, with no collision resistance and no seeding. Do not use
// it where an adversary chooses the input.
package hash

// Multiplier is the constant folded in per input byte. 31 is the conventional
// small-prime rolling-hash multiplier.
const Multiplier = 31

// Sum64 returns the fingerprint of data. The empty input hashes to 0.
// Overflow wraps modulo 2^64 rather than widening or failing.
func Sum64(data []byte) uint64 {
	var h uint64
	for _, b := range data {
		h = h*Multiplier + uint64(b)
	}
	return h
}

// SumString returns the fingerprint of the UTF-8 bytes of s, without
// allocating a copy of the string.
func SumString(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*Multiplier + uint64(s[i])
	}
	return h
}

// Digest is the streaming form of Sum64. The zero value is ready to use.
// Any sequence of Write calls yields the same fingerprint as a single Sum64
// over the concatenated input.
type Digest struct {
	h uint64
}

// New returns a fresh Digest.
func New() *Digest {
	return &Digest{}
}

// Write folds p into the digest. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	for _, b := range p {
		d.h = d.h*Multiplier + uint64(b)
	}
	return len(p), nil
}

// Sum64 returns the fingerprint of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.h
}

// Reset restores the digest to its initial state.
func (d *Digest) Reset() {
	d.h = 0
}

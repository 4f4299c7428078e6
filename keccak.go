// Package keccak implements the legacy Keccak-224, -256, -384 and -512
// hash functions, as specified at round three of the NIST SHA-3
// competition.
//
// Legacy Keccak differs from FIPS-202 SHA-3 only in padding: it uses
// the 0x01 domain byte where SHA-3 uses 0x06, so the digests are not
// interchangeable. Ethereum and several other systems standardized on
// the legacy form before FIPS 202 was published. Go's crypto/sha3
// exposes only the FIPS-202 form, and x/crypto's NewLegacyKeccak*
// covers only the 256 and 512 sizes; this package provides all four
// sizes with streaming writes and caller-truncated output.
package keccak

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// stateSize is the sponge width in bytes: 25 lanes of 64 bits.
	stateSize = 200

	// maxRate is the rate of Keccak-224, the largest of the four
	// presets: (1600 - 2*224) / 8 = 144 bytes.
	maxRate = 144
)

// ErrInvalidTruncatedSize is returned by TruncatedSum when the
// requested output length is negative or exceeds the hasher's digest
// size. No output is produced in that case.
var ErrInvalidTruncatedSize = errors.New("invalid truncated digest size")

// Variant selects one of the four supported digest sizes. The rate of
// the underlying sponge is derived from the digest size alone:
// rate = 200 - 2*size bytes.
type Variant int

const (
	Keccak224 Variant = iota
	Keccak256
	Keccak384
	Keccak512
)

// Size returns the digest size of the variant in bytes.
func (v Variant) Size() int {
	switch v {
	case Keccak224:
		return 28
	case Keccak256:
		return 32
	case Keccak384:
		return 48
	case Keccak512:
		return 64
	}
	panic(fmt.Sprintf("keccak: unknown variant %d", int(v)))
}

// String returns the conventional algorithm name, e.g. "Keccak-256".
func (v Variant) String() string {
	return fmt.Sprintf("Keccak-%d", 8*v.Size())
}

// Hasher is a streaming legacy Keccak hasher. The zero value is not
// usable; obtain instances from New or the per-size constructors.
//
// A Hasher must not be used from multiple goroutines concurrently.
// Distinct Hashers are independent and safe to use in parallel.
type Hasher struct {
	a        [25]uint64 // sponge state, lane x+5*y
	buf      [maxRate]byte
	absorbed int // bytes buffered in buf, always < rate
	size     int // digest size in bytes
	rate     int // block size in bytes: 200 - 2*size

	// finalized is set by TruncatedSum; the hasher then rejects
	// further use until Reset.
	finalized bool
}

// New returns a fresh Hasher for the given variant.
func New(v Variant) *Hasher {
	size := v.Size()
	return &Hasher{size: size, rate: stateSize - 2*size}
}

// New224 returns a new Keccak-224 hasher.
func New224() *Hasher { return New(Keccak224) }

// New256 returns a new Keccak-256 hasher.
func New256() *Hasher { return New(Keccak256) }

// New384 returns a new Keccak-384 hasher.
func New384() *Hasher { return New(Keccak384) }

// New512 returns a new Keccak-512 hasher.
func New512() *Hasher { return New(Keccak512) }

// Size returns the digest size in bytes.
func (h *Hasher) Size() int { return h.size }

// Rate returns the sponge rate in bytes: input is absorbed and the
// permutation applied in blocks of this size.
func (h *Hasher) Rate() int { return h.rate }

// BlockSize returns the sponge rate, satisfying the hash.Hash naming
// convention.
func (h *Hasher) BlockSize() int { return h.rate }

// AlgorithmName returns the conventional name of the hash, e.g.
// "Keccak-256".
func (h *Hasher) AlgorithmName() string {
	return fmt.Sprintf("Keccak-%d", 8*h.size)
}

// Reset restores the hasher to its initial state: all-zero lanes,
// empty buffer. The digest size is unchanged.
func (h *Hasher) Reset() {
	h.a = [25]uint64{}
	h.absorbed = 0
	h.finalized = false
}

// Write absorbs p into the hasher. It never fails and always returns
// len(p). The digest depends only on the concatenation of all bytes
// written, never on how they were split across calls.
//
// Write panics if called after TruncatedSum without an intervening
// Reset.
func (h *Hasher) Write(p []byte) (int, error) {
	if h.finalized {
		panic("keccak: write after finalize")
	}
	written := len(p)

	// Top up a partially filled buffer first.
	if h.absorbed > 0 {
		n := copy(h.buf[h.absorbed:h.rate], p)
		h.absorbed += n
		p = p[n:]
		if h.absorbed == h.rate {
			xorIn(&h.a, h.buf[:h.rate])
			keccakF1600(&h.a)
			h.absorbed = 0
		}
	}

	// Absorb full blocks straight from p.
	for len(p) >= h.rate {
		xorIn(&h.a, p[:h.rate])
		keccakF1600(&h.a)
		p = p[h.rate:]
	}

	if len(p) > 0 {
		h.absorbed = copy(h.buf[:], p)
	}
	return written, nil
}

// TruncatedSum finalizes the hash and returns the first size bytes of
// the digest. It returns ErrInvalidTruncatedSize (wrapped) if size is
// negative or exceeds Size(); no output is produced in that case and
// the hasher is left un-finalized.
//
// After a successful call the hasher is consumed: Write and
// TruncatedSum panic until Reset is called.
func (h *Hasher) TruncatedSum(size int) ([]byte, error) {
	if size < 0 || size > h.size {
		return nil, fmt.Errorf("keccak: requested %d bytes from %s (max %d): %w",
			size, h.AlgorithmName(), h.size, ErrInvalidTruncatedSize)
	}
	if h.finalized {
		panic("keccak: sum after finalize")
	}

	// Legacy pad10*1: a 0x01 domain byte after the buffered input,
	// zeros, and a 0x80 end bit in the last byte of the block. The
	// two coincide to 0x81 when the buffer held exactly rate-1 bytes.
	for i := h.absorbed; i < h.rate; i++ {
		h.buf[i] = 0
	}
	h.buf[h.absorbed] = 0x01
	h.buf[h.rate-1] ^= 0x80
	xorIn(&h.a, h.buf[:h.rate])
	keccakF1600(&h.a)
	h.finalized = true

	// Digest sizes never exceed the rate, so a single squeeze of the
	// permuted state suffices.
	out := make([]byte, size)
	copyOut(&h.a, out)
	return out, nil
}

// Sum finalizes the hash and returns the full-size digest. Like
// TruncatedSum, it consumes the hasher until Reset.
func (h *Hasher) Sum() []byte {
	sum, _ := h.TruncatedSum(h.size)
	return sum
}

// Sum224 computes the Keccak-224 hash of data in one shot.
func Sum224(data []byte) [28]byte {
	var out [28]byte
	sumOneShot(data, out[:])
	return out
}

// Sum256 computes the Keccak-256 hash of data in one shot.
func Sum256(data []byte) [32]byte {
	var out [32]byte
	sumOneShot(data, out[:])
	return out
}

// Sum384 computes the Keccak-384 hash of data in one shot.
func Sum384(data []byte) [48]byte {
	var out [48]byte
	sumOneShot(data, out[:])
	return out
}

// Sum512 computes the Keccak-512 hash of data in one shot.
func Sum512(data []byte) [64]byte {
	var out [64]byte
	sumOneShot(data, out[:])
	return out
}

// sumOneShot hashes data into out without a Hasher allocation. The
// rate is derived from len(out), which must be one of the supported
// digest sizes.
func sumOneShot(data, out []byte) {
	rate := stateSize - 2*len(out)
	var a [25]uint64

	for len(data) >= rate {
		xorIn(&a, data[:rate])
		keccakF1600(&a)
		data = data[rate:]
	}

	var block [maxRate]byte
	copy(block[:], data)
	block[len(data)] = 0x01
	block[rate-1] ^= 0x80
	xorIn(&a, block[:rate])
	keccakF1600(&a)

	copyOut(&a, out)
}

// xorIn XORs a whole number of little-endian 64-bit lanes into the low
// lanes of the state. len(block) is always a full rate, which is a
// multiple of 8 for every supported digest size.
func xorIn(a *[25]uint64, block []byte) {
	for i := 0; i < len(block)/8; i++ {
		a[i] ^= binary.LittleEndian.Uint64(block[8*i:])
	}
}

// copyOut serializes the first len(out) bytes of the state, reading
// lanes 0,1,2,... little-endian and truncating the final partial lane.
func copyOut(a *[25]uint64, out []byte) {
	var lane [8]byte
	for i := 0; 8*i < len(out); i++ {
		binary.LittleEndian.PutUint64(lane[:], a[i])
		copy(out[8*i:], lane[:])
	}
}

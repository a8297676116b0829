package uuidv7

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// randomSource fills a byte span with uniformly distributed bytes. A source
// bound to a generator slot needs no internal locking: the pool guarantees
// only one goroutine touches it at a time.
type randomSource interface {
	fill(dst []byte)
}

// chachaSource draws from a ChaCha8 CSPRNG seeded once from the OS entropy
// source, matching the pattern tailscale's fastuuid package uses to keep a
// per-slot generator cheap after the initial seed.
type chachaSource struct {
	rng *rand.ChaCha8
}

func newChachaSource() *chachaSource {
	return &chachaSource{rng: rand.NewChaCha8(seed())}
}

func seed() [32]byte {
	var s [32]byte
	if _, err := crand.Read(s[:]); err != nil {
		panic("uuidv7: failed to seed random source: " + err.Error())
	}
	return s
}

// fill draws 64-bit words and copies their little-endian bytes into dst,
// refilling every 8 bytes. The byte order of the tail is unobservable to
// callers since the tail is uniformly random; only the counter bit-packing
// performed by the generator is normative.
func (c *chachaSource) fill(dst []byte) {
	for len(dst) > 0 {
		word := c.rng.Uint64()
		n := 8
		if len(dst) < n {
			n = len(dst)
		}
		for i := 0; i < n; i++ {
			dst[i] = byte(word >> (8 * i))
		}
		dst = dst[n:]
	}
}

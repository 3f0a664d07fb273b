// Package lcg implements a seedable 48-bit linear congruential pseudo-random
// source. The generator is deliberately simple and fully specified so that a
// fixed seed always reproduces the same draw sequence, which the simulation
// tests rely on for exact assertions.
package lcg

import "math"

const (
	multiplier = 0x5DEECE66D
	increment  = 0xB
	mask       = (1 << 48) - 1
)

// Source is a 48-bit linear congruential generator. It is not safe for
// concurrent use; callers must serialize draws themselves.
type Source struct {
	state uint64
}

// New creates a Source initialized with the given seed.
func New(seed int64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed resets the generator state from the given seed value.
func (s *Source) Seed(seed int64) {
	s.state = (uint64(seed) ^ multiplier) & mask
}

// next advances the state and returns the top bits of it as a signed 32-bit
// value. bits must be in [1, 32].
func (s *Source) next(bits uint) int32 {
	s.state = (s.state*multiplier + increment) & mask
	return int32(s.state >> (48 - bits))
}

// Int31n returns a uniformly distributed value in [0, bound). It panics if
// bound is not positive.
func (s *Source) Int31n(bound int32) int32 {
	if bound <= 0 {
		panic("lcg: bound must be positive")
	}
	if bound&(-bound) == bound {
		// Power of two: take the high bits directly.
		return int32((int64(bound) * int64(s.next(31))) >> 31)
	}
	var bits, val int32
	for {
		bits = s.next(31)
		val = bits % bound
		// Reject draws from the incomplete top interval to keep the
		// distribution uniform.
		if bits-val+(bound-1) >= 0 {
			break
		}
	}
	return val
}

// Float32 returns a uniformly distributed value in [0.0, 1.0).
func (s *Source) Float32() float32 {
	return float32(s.next(24)) / (1 << 24)
}

// Int64 returns a uniformly distributed signed 64-bit value.
func (s *Source) Int64() int64 {
	return int64(s.next(32))<<32 + int64(s.next(32))
}

// Uint64n returns a uniformly-enough distributed value in [0, bound) derived
// from a single 64-bit draw. Used for wide ranges where the modulo bias is
// negligible. It panics if bound is not positive.
func (s *Source) Uint64n(bound int64) int64 {
	if bound <= 0 {
		panic("lcg: bound must be positive")
	}
	n := s.Int64()
	if n == math.MinInt64 {
		n = 0
	}
	if n < 0 {
		n = -n
	}
	return n % bound
}

package core

import "math"

const golden64 = 0x9E3779B97F4A7C15

// mix64 is the SplitMix64 finalizer
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Hash64 combines two words into a well-mixed seed
func Hash64(a, b uint64) uint64 {
	return mix64(a ^ mix64(b+golden64))
}

// PRNG is a counter-based generator: output n is a pure function of (key, n),
// so streams can be reproduced from their seed alone
type PRNG struct {
	key     uint64
	counter uint64
}

// NewPRNG creates a generator keyed on seed
func NewPRNG(seed uint64) PRNG {
	return PRNG{key: mix64(seed)}
}

// Uint64 returns the next 64 random bits
func (p *PRNG) Uint64() uint64 {
	p.counter++
	return mix64(p.key + p.counter*golden64)
}

// Uint32 returns the next 32 random bits
func (p *PRNG) Uint32() uint32 {
	return uint32(p.Uint64() >> 32)
}

// Float64 returns a value in [0,1) by injecting 52 random bits into the mantissa of a number in [1,2)
func (p *PRNG) Float64() float64 {
	return math.Float64frombits(0x3FF0000000000000|(p.Uint64()>>12)) - 1
}

// Float32 returns a value in [0,1) by injecting 23 random bits into the mantissa of a number in [1,2)
func (p *PRNG) Float32() float32 {
	return math.Float32frombits(0x3F800000|(p.Uint32()>>9)) - 1
}

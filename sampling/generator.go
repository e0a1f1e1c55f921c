package sampling

import (
	"math/rand/v2"

	"github.com/gogpu/raypack/simd"
)

// Generator produces uniform random lanes in [0, 1).
//
// The zero value is a valid generator with seed 0. A Generator is not safe
// for concurrent use; the scheduler creates one per packet.
type Generator[W simd.Width] struct {
	src rand.PCG
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator[W simd.Width](seed uint64) *Generator[W] {
	g := &Generator[W]{}
	g.Reseed(seed)
	return g
}

// Reseed restarts the stream from seed.
func (g *Generator[W]) Reseed(seed uint64) {
	g.src.Seed(seed, mix64(seed^streamSalt))
}

// Uint32 returns the next 32 random bits.
func (g *Generator[W]) Uint32() uint32 {
	return uint32(g.src.Uint64() >> 32)
}

// Float32 returns a uniform value in [0, 1) with 24 bits of precision.
func (g *Generator[W]) Float32() float32 {
	return float32(g.Uint32()>>8) * (1.0 / (1 << 24))
}

// Next returns one uniform value in [0, 1) per lane, drawn in lane order.
func (g *Generator[W]) Next() simd.Float[W] {
	var vs [simd.MaxLanes]float32
	n := simd.Lanes[W]()
	for i := range n {
		vs[i] = g.Float32()
	}
	return simd.FromLanes[W](vs[:n]...)
}

package sampling

import (
	"math"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// CosineSampleHemisphere maps two uniform lanes to directions on the unit
// hemisphere around +Z with density cos(theta)/pi.
func CosineSampleHemisphere[W simd.Width](u1, u2 simd.Float[W]) geom.Vec3[W] {
	r := u1.Sqrt()
	phi := u2.Mul(simd.Splat[W](2 * math.Pi))
	z := simd.Splat[W](1).Sub(u1).Max(simd.Splat[W](0)).Sqrt()
	return geom.V3(r.Mul(phi.Cos()), r.Mul(phi.Sin()), z)
}

// UniformSampleDisk maps two uniform lanes to points on the unit disk.
func UniformSampleDisk[W simd.Width](u1, u2 simd.Float[W]) geom.Vec2[W] {
	r := u1.Sqrt()
	phi := u2.Mul(simd.Splat[W](2 * math.Pi))
	return geom.V2(r.Mul(phi.Cos()), r.Mul(phi.Sin()))
}

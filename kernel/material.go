package kernel

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// Phong is a Phong reflectance model. Colors include their coefficients.
type Phong struct {
	Ambient  f32.Vec3
	Diffuse  f32.Vec3
	Specular f32.Vec3
	Exponent float32
}

// DefaultMaterial is a light gray plastic.
var DefaultMaterial = Phong{
	Ambient:  f32.Vec3{0.1, 0.1, 0.1},
	Diffuse:  f32.Vec3{0.8, 0.8, 0.8},
	Specular: f32.Vec3{0.2, 0.2, 0.2},
	Exponent: 32,
}

// phongShade returns the light m reflects toward view from a light in
// direction l with the given radiance. n, view and l are unit vectors.
// albedo scales the diffuse term.
func phongShade[W simd.Width](m Phong, albedo, n, view, l, radiance geom.Vec3[W]) geom.Vec3[W] {
	zero := simd.Splat[W](0)
	ndotl := n.Dot(l)
	lit := ndotl.Gt(zero)

	diffuse := geom.V3FromArray[W](m.Diffuse).Mul(albedo).Scale(ndotl.Max(zero))

	// Mirror l about n.
	r := n.Scale(simd.Splat[W](2).Mul(ndotl)).Sub(l)
	rdotv := r.Dot(view).Max(zero)
	spec := geom.V3FromArray[W](m.Specular).Scale(rdotv.Pow(simd.Splat[W](m.Exponent)))
	spec = geom.SelectV3(lit, spec, geom.Vec3[W]{})

	return diffuse.Add(spec).Mul(radiance)
}

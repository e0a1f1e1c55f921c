package geom

import (
	"github.com/gogpu/raypack/simd"
	"golang.org/x/image/math/f32"
)

// Vec4 is a 4-component vector of lanes. Colors use X, Y, Z, W as
// red, green, blue and alpha.
type Vec4[W simd.Width] struct {
	X, Y, Z, W simd.Float[W]
}

// V4 creates a Vec4 from its components.
func V4[W simd.Width](x, y, z, w simd.Float[W]) Vec4[W] {
	return Vec4[W]{X: x, Y: y, Z: z, W: w}
}

// SplatV4 broadcasts scalar components to every lane.
func SplatV4[W simd.Width](x, y, z, w float32) Vec4[W] {
	return Vec4[W]{X: simd.Splat[W](x), Y: simd.Splat[W](y), Z: simd.Splat[W](z), W: simd.Splat[W](w)}
}

// V4FromArray broadcasts an f32.Vec4 to every lane.
func V4FromArray[W simd.Width](v f32.Vec4) Vec4[W] {
	return SplatV4[W](v[0], v[1], v[2], v[3])
}

// V4FromV3 extends v with a fourth component.
func V4FromV3[W simd.Width](v Vec3[W], w simd.Float[W]) Vec4[W] {
	return Vec4[W]{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

// V4FromLanes builds a Vec4 from one f32.Vec4 per lane.
func V4FromLanes[W simd.Width](px ...f32.Vec4) Vec4[W] {
	var x, y, z, w [simd.MaxLanes]float32
	for i, p := range px {
		x[i], y[i], z[i], w[i] = p[0], p[1], p[2], p[3]
	}
	return Vec4[W]{
		X: simd.FromLanes[W](x[:len(px)]...),
		Y: simd.FromLanes[W](y[:len(px)]...),
		Z: simd.FromLanes[W](z[:len(px)]...),
		W: simd.FromLanes[W](w[:len(px)]...),
	}
}

// XYZ drops the fourth component.
func (a Vec4[W]) XYZ() Vec3[W] { return Vec3[W]{X: a.X, Y: a.Y, Z: a.Z} }

// Lane extracts lane i as an f32.Vec4.
func (a Vec4[W]) Lane(i int) f32.Vec4 {
	return f32.Vec4{a.X.Lane(i), a.Y.Lane(i), a.Z.Lane(i), a.W.Lane(i)}
}

// Add returns a + b.
func (a Vec4[W]) Add(b Vec4[W]) Vec4[W] {
	return Vec4[W]{a.X.Add(b.X), a.Y.Add(b.Y), a.Z.Add(b.Z), a.W.Add(b.W)}
}

// Sub returns a - b.
func (a Vec4[W]) Sub(b Vec4[W]) Vec4[W] {
	return Vec4[W]{a.X.Sub(b.X), a.Y.Sub(b.Y), a.Z.Sub(b.Z), a.W.Sub(b.W)}
}

// Mul returns the component-wise product.
func (a Vec4[W]) Mul(b Vec4[W]) Vec4[W] {
	return Vec4[W]{a.X.Mul(b.X), a.Y.Mul(b.Y), a.Z.Mul(b.Z), a.W.Mul(b.W)}
}

// Div returns the component-wise quotient.
func (a Vec4[W]) Div(b Vec4[W]) Vec4[W] {
	return Vec4[W]{a.X.Div(b.X), a.Y.Div(b.Y), a.Z.Div(b.Z), a.W.Div(b.W)}
}

// Scale multiplies every component by s.
func (a Vec4[W]) Scale(s simd.Float[W]) Vec4[W] {
	return Vec4[W]{a.X.Mul(s), a.Y.Mul(s), a.Z.Mul(s), a.W.Mul(s)}
}

// Neg returns -a.
func (a Vec4[W]) Neg() Vec4[W] {
	return Vec4[W]{a.X.Neg(), a.Y.Neg(), a.Z.Neg(), a.W.Neg()}
}

// Min returns the component-wise minimum.
func (a Vec4[W]) Min(b Vec4[W]) Vec4[W] {
	return Vec4[W]{a.X.Min(b.X), a.Y.Min(b.Y), a.Z.Min(b.Z), a.W.Min(b.W)}
}

// Max returns the component-wise maximum.
func (a Vec4[W]) Max(b Vec4[W]) Vec4[W] {
	return Vec4[W]{a.X.Max(b.X), a.Y.Max(b.Y), a.Z.Max(b.Z), a.W.Max(b.W)}
}

// Dot returns the 4-component dot product.
func (a Vec4[W]) Dot(b Vec4[W]) simd.Float[W] {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)).Add(a.Z.Mul(b.Z)).Add(a.W.Mul(b.W))
}

// Length returns the Euclidean length.
func (a Vec4[W]) Length() simd.Float[W] { return a.Dot(a).Sqrt() }

// Normalize returns a / |a|.
func (a Vec4[W]) Normalize() Vec4[W] { return a.Scale(a.Dot(a).Rsqrt()) }

// Lerp interpolates between a and b by t per lane.
func (a Vec4[W]) Lerp(b Vec4[W], t simd.Float[W]) Vec4[W] {
	return Vec4[W]{a.X.Lerp(b.X, t), a.Y.Lerp(b.Y, t), a.Z.Lerp(b.Z, t), a.W.Lerp(b.W, t)}
}

// SelectV4 applies simd.Select to every component with the same mask.
func SelectV4[W simd.Width](m simd.Mask[W], a, b Vec4[W]) Vec4[W] {
	return Vec4[W]{
		X: simd.Select(m, a.X, b.X),
		Y: simd.Select(m, a.Y, b.Y),
		Z: simd.Select(m, a.Z, b.Z),
		W: simd.Select(m, a.W, b.W),
	}
}

package geom

import (
	"github.com/gogpu/raypack/simd"
	"golang.org/x/image/math/f32"
)

// Vec3 is a 3-component vector of lanes.
type Vec3[W simd.Width] struct {
	X, Y, Z simd.Float[W]
}

// V3 creates a Vec3 from its components.
func V3[W simd.Width](x, y, z simd.Float[W]) Vec3[W] {
	return Vec3[W]{X: x, Y: y, Z: z}
}

// SplatV3 broadcasts scalar components to every lane.
func SplatV3[W simd.Width](x, y, z float32) Vec3[W] {
	return Vec3[W]{X: simd.Splat[W](x), Y: simd.Splat[W](y), Z: simd.Splat[W](z)}
}

// V3FromArray broadcasts an f32.Vec3 to every lane.
func V3FromArray[W simd.Width](v f32.Vec3) Vec3[W] {
	return SplatV3[W](v[0], v[1], v[2])
}

// Lane extracts lane i as an f32.Vec3.
func (a Vec3[W]) Lane(i int) f32.Vec3 {
	return f32.Vec3{a.X.Lane(i), a.Y.Lane(i), a.Z.Lane(i)}
}

// Add returns a + b.
func (a Vec3[W]) Add(b Vec3[W]) Vec3[W] {
	return Vec3[W]{a.X.Add(b.X), a.Y.Add(b.Y), a.Z.Add(b.Z)}
}

// Sub returns a - b.
func (a Vec3[W]) Sub(b Vec3[W]) Vec3[W] {
	return Vec3[W]{a.X.Sub(b.X), a.Y.Sub(b.Y), a.Z.Sub(b.Z)}
}

// Mul returns the component-wise product.
func (a Vec3[W]) Mul(b Vec3[W]) Vec3[W] {
	return Vec3[W]{a.X.Mul(b.X), a.Y.Mul(b.Y), a.Z.Mul(b.Z)}
}

// Div returns the component-wise quotient.
func (a Vec3[W]) Div(b Vec3[W]) Vec3[W] {
	return Vec3[W]{a.X.Div(b.X), a.Y.Div(b.Y), a.Z.Div(b.Z)}
}

// Scale multiplies every component by s.
func (a Vec3[W]) Scale(s simd.Float[W]) Vec3[W] {
	return Vec3[W]{a.X.Mul(s), a.Y.Mul(s), a.Z.Mul(s)}
}

// Neg returns -a.
func (a Vec3[W]) Neg() Vec3[W] {
	return Vec3[W]{a.X.Neg(), a.Y.Neg(), a.Z.Neg()}
}

// Min returns the component-wise minimum.
func (a Vec3[W]) Min(b Vec3[W]) Vec3[W] {
	return Vec3[W]{a.X.Min(b.X), a.Y.Min(b.Y), a.Z.Min(b.Z)}
}

// Max returns the component-wise maximum.
func (a Vec3[W]) Max(b Vec3[W]) Vec3[W] {
	return Vec3[W]{a.X.Max(b.X), a.Y.Max(b.Y), a.Z.Max(b.Z)}
}

// Dot returns the dot product.
func (a Vec3[W]) Dot(b Vec3[W]) simd.Float[W] {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)).Add(a.Z.Mul(b.Z))
}

// Cross returns the cross product a × b.
func (a Vec3[W]) Cross(b Vec3[W]) Vec3[W] {
	return Vec3[W]{
		X: a.Y.Mul(b.Z).Sub(a.Z.Mul(b.Y)),
		Y: a.Z.Mul(b.X).Sub(a.X.Mul(b.Z)),
		Z: a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)),
	}
}

// Length returns the Euclidean length.
func (a Vec3[W]) Length() simd.Float[W] {
	return a.Dot(a).Sqrt()
}

// Normalize returns a / |a|.
func (a Vec3[W]) Normalize() Vec3[W] {
	return a.Scale(a.Dot(a).Rsqrt())
}

// Lerp interpolates between a and b by t per lane.
func (a Vec3[W]) Lerp(b Vec3[W], t simd.Float[W]) Vec3[W] {
	return Vec3[W]{a.X.Lerp(b.X, t), a.Y.Lerp(b.Y, t), a.Z.Lerp(b.Z, t)}
}

// SelectV3 applies simd.Select to every component with the same mask.
func SelectV3[W simd.Width](m simd.Mask[W], a, b Vec3[W]) Vec3[W] {
	return Vec3[W]{
		X: simd.Select(m, a.X, b.X),
		Y: simd.Select(m, a.Y, b.Y),
		Z: simd.Select(m, a.Z, b.Z),
	}
}

// FaceForward flips n into the hemisphere around v.
// With v = -ray.Dir the result faces the viewer.
func FaceForward[W simd.Width](n, v Vec3[W]) Vec3[W] {
	return SelectV3(n.Dot(v).Lt(simd.Splat[W](0)), n.Neg(), n)
}

// OrthonormalBasis returns u and v so that (u, v, w) is a right-handed
// orthonormal basis. w must be normalized.
func OrthonormalBasis[W simd.Width](w Vec3[W]) (u, v Vec3[W]) {
	zero := simd.Splat[W](0)
	one := simd.Splat[W](1)
	// Pick the axis least aligned with w.
	useX := w.X.Abs().Lt(w.Y.Abs())
	axis := SelectV3(useX, V3(one, zero, zero), V3(zero, one, zero))
	u = axis.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v
}

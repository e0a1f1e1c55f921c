package geom

import (
	"github.com/gogpu/raypack/simd"
	"golang.org/x/image/math/f32"
)

// Vec2 is a 2-component vector of lanes.
type Vec2[W simd.Width] struct {
	X, Y simd.Float[W]
}

// V2 creates a Vec2 from its components.
func V2[W simd.Width](x, y simd.Float[W]) Vec2[W] {
	return Vec2[W]{X: x, Y: y}
}

// SplatV2 broadcasts scalar components to every lane.
func SplatV2[W simd.Width](x, y float32) Vec2[W] {
	return Vec2[W]{X: simd.Splat[W](x), Y: simd.Splat[W](y)}
}

// Lane extracts lane i as an f32.Vec2.
func (a Vec2[W]) Lane(i int) f32.Vec2 {
	return f32.Vec2{a.X.Lane(i), a.Y.Lane(i)}
}

// Add returns a + b.
func (a Vec2[W]) Add(b Vec2[W]) Vec2[W] { return Vec2[W]{a.X.Add(b.X), a.Y.Add(b.Y)} }

// Sub returns a - b.
func (a Vec2[W]) Sub(b Vec2[W]) Vec2[W] { return Vec2[W]{a.X.Sub(b.X), a.Y.Sub(b.Y)} }

// Mul returns the component-wise product.
func (a Vec2[W]) Mul(b Vec2[W]) Vec2[W] { return Vec2[W]{a.X.Mul(b.X), a.Y.Mul(b.Y)} }

// Div returns the component-wise quotient.
func (a Vec2[W]) Div(b Vec2[W]) Vec2[W] { return Vec2[W]{a.X.Div(b.X), a.Y.Div(b.Y)} }

// Scale multiplies both components by s.
func (a Vec2[W]) Scale(s simd.Float[W]) Vec2[W] { return Vec2[W]{a.X.Mul(s), a.Y.Mul(s)} }

// Neg returns -a.
func (a Vec2[W]) Neg() Vec2[W] { return Vec2[W]{a.X.Neg(), a.Y.Neg()} }

// Min returns the component-wise minimum.
func (a Vec2[W]) Min(b Vec2[W]) Vec2[W] { return Vec2[W]{a.X.Min(b.X), a.Y.Min(b.Y)} }

// Max returns the component-wise maximum.
func (a Vec2[W]) Max(b Vec2[W]) Vec2[W] { return Vec2[W]{a.X.Max(b.X), a.Y.Max(b.Y)} }

// Floor rounds both components down.
func (a Vec2[W]) Floor() Vec2[W] { return Vec2[W]{a.X.Floor(), a.Y.Floor()} }

// Dot returns the dot product.
func (a Vec2[W]) Dot(b Vec2[W]) simd.Float[W] {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y))
}

// Length returns the Euclidean length.
func (a Vec2[W]) Length() simd.Float[W] { return a.Dot(a).Sqrt() }

// Normalize returns a / |a|.
func (a Vec2[W]) Normalize() Vec2[W] { return a.Scale(a.Dot(a).Rsqrt()) }

// Lerp interpolates between a and b by t per lane.
func (a Vec2[W]) Lerp(b Vec2[W], t simd.Float[W]) Vec2[W] {
	return Vec2[W]{a.X.Lerp(b.X, t), a.Y.Lerp(b.Y, t)}
}

// SelectV2 applies simd.Select to both components with the same mask.
func SelectV2[W simd.Width](m simd.Mask[W], a, b Vec2[W]) Vec2[W] {
	return Vec2[W]{X: simd.Select(m, a.X, b.X), Y: simd.Select(m, a.Y, b.Y)}
}

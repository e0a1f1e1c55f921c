package kernel

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// Light is a light source the Simple kernel can evaluate.
type Light interface {
	params() lightParams
}

// lightParams is the common form of all lights. A point light is a spot
// light with no cone.
type lightParams struct {
	position  f32.Vec3
	radiance  f32.Vec3
	att       [3]float32
	spot      bool
	direction f32.Vec3
	cosCutoff float32
	exponent  float32
}

// PointLight emits uniformly in all directions.
type PointLight struct {
	Position  f32.Vec3
	Color     f32.Vec3
	Intensity float32

	// Attenuation is 1/(Constant + Linear*d + Quadratic*d*d).
	// All zero means no attenuation.
	Constant, Linear, Quadratic float32
}

func (l PointLight) params() lightParams {
	p := lightParams{
		position: l.Position,
		radiance: f32.Vec3{l.Color[0] * l.Intensity, l.Color[1] * l.Intensity, l.Color[2] * l.Intensity},
		att:      [3]float32{l.Constant, l.Linear, l.Quadratic},
	}
	if p.att == ([3]float32{}) {
		p.att[0] = 1
	}
	return p
}

// SpotLight is a point light restricted to a cone around Direction.
type SpotLight struct {
	PointLight

	// Direction is the cone axis, pointing away from the light.
	Direction f32.Vec3

	// CosCutoff is the cosine of the cone half-angle.
	CosCutoff float32

	// Exponent sharpens the falloff toward the cone edge.
	Exponent float32
}

// NewSpotLight returns a spot light with a half-angle cutoff in radians.
func NewSpotLight(p PointLight, direction f32.Vec3, cutoff, exponent float32) SpotLight {
	return SpotLight{
		PointLight: p,
		Direction:  direction,
		CosCutoff:  float32(math.Cos(float64(cutoff))),
		Exponent:   exponent,
	}
}

func (l SpotLight) params() lightParams {
	p := l.PointLight.params()
	p.spot = true
	d := l.Direction
	if n := float32(math.Sqrt(float64(d[0]*d[0] + d[1]*d[1] + d[2]*d[2]))); n > 0 {
		d = f32.Vec3{d[0] / n, d[1] / n, d[2] / n}
	}
	p.direction = d
	p.cosCutoff = l.CosCutoff
	p.exponent = l.Exponent
	return p
}

// illuminate returns the unit direction from pos to the light and the
// radiance arriving at pos.
func illuminate[W simd.Width](lp lightParams, pos geom.Vec3[W]) (dir, radiance geom.Vec3[W]) {
	toLight := geom.V3FromArray[W](lp.position).Sub(pos)
	dist := toLight.Length()
	dir = toLight.Scale(simd.Splat[W](1).Div(dist))

	att := simd.Splat[W](lp.att[0]).
		Add(simd.Splat[W](lp.att[1]).Mul(dist)).
		Add(simd.Splat[W](lp.att[2]).Mul(dist).Mul(dist))
	scale := simd.Splat[W](1).Div(att)

	if lp.spot {
		cos := geom.V3FromArray[W](lp.direction).Dot(dir.Neg())
		inside := cos.Gt(simd.Splat[W](lp.cosCutoff))
		spot := simd.Select(inside, cos.Max(simd.Splat[W](0)).Pow(simd.Splat[W](lp.exponent)), simd.Splat[W](0))
		scale = scale.Mul(spot)
	}
	return dir, geom.V3FromArray[W](lp.radiance).Scale(scale)
}

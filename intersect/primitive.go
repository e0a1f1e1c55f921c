package intersect

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// Triangle is stored as a vertex and two edges.
type Triangle struct {
	V0     f32.Vec3
	E1, E2 f32.Vec3
}

// NewTriangle builds a triangle from three vertices.
func NewTriangle(a, b, c f32.Vec3) Triangle {
	return Triangle{
		V0: a,
		E1: f32.Vec3{b[0] - a[0], b[1] - a[1], b[2] - a[2]},
		E2: f32.Vec3{c[0] - a[0], c[1] - a[1], c[2] - a[2]},
	}
}

// Sphere is a center and a radius.
type Sphere struct {
	Center f32.Vec3
	Radius float32
}

// IntersectTriangle tests every lane of ray against tri (Moller-Trumbore).
// u and v are the barycentric coordinates of the hit.
func IntersectTriangle[W simd.Width](ray geom.Ray[W], tri Triangle) (hit simd.Mask[W], t, u, v simd.Float[W]) {
	zero := simd.Splat[W](0)
	one := simd.Splat[W](1)
	v0 := geom.V3FromArray[W](tri.V0)
	e1 := geom.V3FromArray[W](tri.E1)
	e2 := geom.V3FromArray[W](tri.E2)

	s1 := ray.Dir.Cross(e2)
	div := s1.Dot(e1)
	hit = div.Ne(zero)
	inv := one.Div(div)

	d := ray.Ori.Sub(v0)
	u = d.Dot(s1).Mul(inv)
	hit = hit.And(u.Ge(zero)).And(u.Le(one))

	s2 := d.Cross(e1)
	v = ray.Dir.Dot(s2).Mul(inv)
	hit = hit.And(v.Ge(zero)).And(u.Add(v).Le(one))

	t = e2.Dot(s2).Mul(inv)
	hit = hit.And(t.Ge(ray.TMin)).And(t.Le(ray.TMax))
	return hit, t, u, v
}

// IntersectSphere tests every lane of ray against s and returns the
// nearest root inside [TMin, TMax].
func IntersectSphere[W simd.Width](ray geom.Ray[W], s Sphere) (hit simd.Mask[W], t simd.Float[W]) {
	zero := simd.Splat[W](0)
	oc := ray.Ori.Sub(geom.V3FromArray[W](s.Center))

	a := ray.Dir.Dot(ray.Dir)
	b := ray.Dir.Dot(oc).Mul(simd.Splat[W](2))
	c := oc.Dot(oc).Sub(simd.Splat[W](s.Radius * s.Radius))
	disc := b.Mul(b).Sub(simd.Splat[W](4).Mul(a).Mul(c))
	hit = disc.Ge(zero)

	sq := disc.Max(zero).Sqrt()
	inv2a := simd.Splat[W](0.5).Div(a)
	t1 := b.Neg().Sub(sq).Mul(inv2a)
	t2 := b.Neg().Add(sq).Mul(inv2a)

	near := t1.Ge(ray.TMin)
	t = simd.Select(near, t1, t2)
	hit = hit.And(t.Ge(ray.TMin)).And(t.Le(ray.TMax))
	return hit, t
}

package intersect

import (
	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// List is a brute-force scene over triangles and spheres.
// Primitive IDs number the triangles first, then the spheres.
type List[W simd.Width] struct {
	Triangles []Triangle
	Spheres   []Sphere
}

var _ Scene[simd.W4] = (*List[simd.W4])(nil)

// Len returns the number of primitives.
func (l *List[W]) Len() int { return len(l.Triangles) + len(l.Spheres) }

// ClosestHit implements Intersector.
func (l *List[W]) ClosestHit(ray geom.Ray[W]) HitRecord[W] {
	return l.traverse(ray, false)
}

// AnyHit implements Intersector.
func (l *List[W]) AnyHit(ray geom.Ray[W]) HitRecord[W] {
	return l.traverse(ray, true)
}

func (l *List[W]) traverse(ray geom.Ray[W], anyHit bool) HitRecord[W] {
	rec := missRecord(ray.TMax)
	// Shrinking TMax makes every later test a strict improvement.
	r := ray

	for i, tri := range l.Triangles {
		hit, t, u, v := IntersectTriangle(r, tri)
		hit = hit.And(t.Lt(rec.T))
		if hit.None() {
			continue
		}
		rec.merge(hit, HitRecord[W]{T: t, PrimID: simd.SplatInt[W](int32(i)), U: u, V: v})
		r.TMax = rec.T
		if anyHit && rec.Hit.All() {
			return l.finish(ray, rec)
		}
	}
	for j, s := range l.Spheres {
		hit, t := IntersectSphere(r, s)
		hit = hit.And(t.Lt(rec.T))
		if hit.None() {
			continue
		}
		id := int32(len(l.Triangles) + j)
		rec.merge(hit, HitRecord[W]{T: t, PrimID: simd.SplatInt[W](id)})
		r.TMax = rec.T
		if anyHit && rec.Hit.All() {
			break
		}
	}
	return l.finish(ray, rec)
}

func (l *List[W]) finish(ray geom.Ray[W], rec HitRecord[W]) HitRecord[W] {
	rec.IsectPos = ray.At(rec.T)
	return rec
}

// Normal implements Scene.
func (l *List[W]) Normal(h HitRecord[W]) geom.Vec3[W] {
	var xs, ys, zs [simd.MaxLanes]float32
	n := simd.Lanes[W]()
	for i := range n {
		if !h.Hit.Lane(i) {
			continue
		}
		id := int(h.PrimID.Lane(i))
		var nx, ny, nz float32
		if id < len(l.Triangles) {
			tri := l.Triangles[id]
			nx = tri.E1[1]*tri.E2[2] - tri.E1[2]*tri.E2[1]
			ny = tri.E1[2]*tri.E2[0] - tri.E1[0]*tri.E2[2]
			nz = tri.E1[0]*tri.E2[1] - tri.E1[1]*tri.E2[0]
		} else {
			p := h.IsectPos.Lane(i)
			c := l.Spheres[id-len(l.Triangles)].Center
			nx, ny, nz = p[0]-c[0], p[1]-c[1], p[2]-c[2]
		}
		xs[i], ys[i], zs[i] = nx, ny, nz
	}
	v := geom.V3(
		simd.FromLanes[W](xs[:n]...),
		simd.FromLanes[W](ys[:n]...),
		simd.FromLanes[W](zs[:n]...),
	)
	// Normalize hit lanes only; misses stay zero instead of NaN.
	return geom.SelectV3(h.Hit, v.Normalize(), geom.Vec3[W]{})
}

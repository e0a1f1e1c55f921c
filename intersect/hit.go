package intersect

import (
	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// HitRecord is the per-lane result of an intersection query. Lanes where
// Hit is false carry no meaningful values.
type HitRecord[W simd.Width] struct {
	Hit simd.Mask[W]

	// T is the ray parameter of the hit.
	T simd.Float[W]

	// PrimID indexes the primitive that was hit.
	PrimID simd.Int[W]

	// U and V are the surface coordinates of the hit (barycentrics for
	// triangles).
	U, V simd.Float[W]

	// IsectPos is ray.Ori + ray.Dir*T.
	IsectPos geom.Vec3[W]
}

// Intersector answers ray queries for a whole packet.
type Intersector[W simd.Width] interface {
	// ClosestHit returns the nearest hit in [TMin, TMax] for every lane.
	ClosestHit(ray geom.Ray[W]) HitRecord[W]

	// AnyHit reports whether each lane hits anything in [TMin, TMax]. It
	// may stop at the first hit, so T is not necessarily the nearest.
	AnyHit(ray geom.Ray[W]) HitRecord[W]
}

// Scene is an Intersector that can also report surface normals.
type Scene[W simd.Width] interface {
	Intersector[W]

	// Normal returns the unit geometric normal at each hit lane and zero
	// elsewhere.
	Normal(h HitRecord[W]) geom.Vec3[W]
}

// missRecord returns a record with no hits and T at tmax.
func missRecord[W simd.Width](tmax simd.Float[W]) HitRecord[W] {
	return HitRecord[W]{T: tmax, PrimID: simd.SplatInt[W](-1)}
}

// merge takes the lanes of h selected by m into r.
func (r *HitRecord[W]) merge(m simd.Mask[W], h HitRecord[W]) {
	r.Hit = r.Hit.Or(m)
	r.T = simd.Select(m, h.T, r.T)
	r.PrimID = simd.SelectInt(m, h.PrimID, r.PrimID)
	r.U = simd.Select(m, h.U, r.U)
	r.V = simd.Select(m, h.V, r.V)
}

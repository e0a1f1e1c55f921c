package geom

import (
	"math"

	"github.com/gogpu/raypack/simd"
)

// Ray is a packet of rays with per-lane parametric bounds [TMin, TMax].
type Ray[W simd.Width] struct {
	Ori  Vec3[W]
	Dir  Vec3[W]
	TMin simd.Float[W]
	TMax simd.Float[W]
}

// NewRay creates a ray packet with bounds [0, +Inf).
func NewRay[W simd.Width](ori, dir Vec3[W]) Ray[W] {
	return Ray[W]{
		Ori:  ori,
		Dir:  dir,
		TMin: simd.Splat[W](0),
		TMax: simd.Splat[W](float32(math.Inf(1))),
	}
}

// At returns Ori + Dir*t.
func (r Ray[W]) At(t simd.Float[W]) Vec3[W] {
	return r.Ori.Add(r.Dir.Scale(t))
}

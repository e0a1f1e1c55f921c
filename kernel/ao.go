package kernel

import (
	"fmt"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/intersect"
	"github.com/gogpu/raypack/sampling"
	"github.com/gogpu/raypack/sched"
	"github.com/gogpu/raypack/simd"
)

// AO shades hits by ambient occlusion: the fraction of cosine-weighted
// directions above the surface that reach Radius without hitting
// geometry. Lanes that miss get the background color.
type AO[W simd.Width] struct {
	scene intersect.Scene[W]
	opts  options
}

// NewAO returns an ambient occlusion kernel over scene. Defaults: 8
// samples, radius 0.1, offset 1e-3, opaque black background.
func NewAO[W simd.Width](scene intersect.Scene[W], opts ...Option) *AO[W] {
	return &AO[W]{scene: scene, opts: buildOptions(opts)}
}

// Samples returns the number of occlusion rays per hit.
func (k *AO[W]) Samples() int { return k.opts.samples }

// Kernel returns k as a scheduler kernel over its own scene.
func (k *AO[W]) Kernel() sched.Kernel[W] {
	return func(ray geom.Ray[W], gen *sampling.Generator[W]) sched.ResultRecord[W] {
		return k.Trace(k.scene, ray, gen)
	}
}

// IntersectKernel returns k as a kernel that traces the intersector
// passed to FrameIntersect. The intersector must implement
// intersect.Scene; anything else panics.
func (k *AO[W]) IntersectKernel() sched.IntersectKernel[W] {
	return func(isect intersect.Intersector[W], ray geom.Ray[W], gen *sampling.Generator[W]) sched.ResultRecord[W] {
		scene, ok := isect.(intersect.Scene[W])
		if !ok {
			panic(fmt.Sprintf("kernel: AO needs an intersect.Scene, got %T", isect))
		}
		return k.Trace(scene, ray, gen)
	}
}

// Trace shades one packet against scene.
func (k *AO[W]) Trace(scene intersect.Scene[W], ray geom.Ray[W], gen *sampling.Generator[W]) sched.ResultRecord[W] {
	one := simd.Splat[W](1)
	bg := geom.V4FromArray[W](k.opts.background)

	res := sched.ResultRecord[W]{Color: bg, Depth: one}
	hit := scene.ClosestHit(ray)
	res.Hit = hit.Hit
	if hit.Hit.None() {
		return res
	}
	res.Depth = simd.Select(hit.Hit, hit.T, one)
	res.IsectPos = hit.IsectPos

	n := geom.FaceForward(scene.Normal(hit), ray.Dir.Neg())
	// Keep missed lanes finite; their result is discarded.
	n = geom.SelectV3(hit.Hit, n, geom.SplatV3[W](0, 0, 1))
	u, v := geom.OrthonormalBasis(n)

	var ao simd.Float[W]
	if k.opts.samples > 0 {
		inc := simd.Splat[W](1 / float32(k.opts.samples))
		offset := simd.Splat[W](k.opts.offset)
		for range k.opts.samples {
			sp := sampling.CosineSampleHemisphere(gen.Next(), gen.Next())
			dir := u.Scale(sp.X).Add(v.Scale(sp.Y)).Add(n.Scale(sp.Z)).Normalize()

			shadow := geom.Ray[W]{
				Ori:  hit.IsectPos.Add(dir.Scale(offset)),
				Dir:  dir,
				TMax: simd.Splat[W](k.opts.radius),
			}
			occluded := scene.AnyHit(shadow).Hit.And(hit.Hit)
			ao = simd.Select(occluded, ao.Add(inc), ao)
		}
	}
	ao = one.Sub(ao)

	res.Color = geom.SelectV4(hit.Hit, geom.V4(ao, ao, ao, one), bg)
	return res
}

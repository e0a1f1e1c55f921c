package kernel

import (
	"fmt"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/intersect"
	"github.com/gogpu/raypack/sampling"
	"github.com/gogpu/raypack/sched"
	"github.com/gogpu/raypack/simd"
	"github.com/gogpu/raypack/texture"
)

// Simple shades hits with an ambient term plus unshadowed Phong lighting
// from every light.
type Simple[W simd.Width] struct {
	scene  intersect.Scene[W]
	opts   options
	lights []lightParams
}

// NewSimple returns a direct lighting kernel over scene.
func NewSimple[W simd.Width](scene intersect.Scene[W], opts ...Option) *Simple[W] {
	o := buildOptions(opts)
	lights := make([]lightParams, len(o.lights))
	for i, l := range o.lights {
		lights[i] = l.params()
	}
	return &Simple[W]{scene: scene, opts: o, lights: lights}
}

// Kernel returns k as a scheduler kernel over its own scene.
func (k *Simple[W]) Kernel() sched.Kernel[W] {
	return func(ray geom.Ray[W], _ *sampling.Generator[W]) sched.ResultRecord[W] {
		return k.Trace(k.scene, ray)
	}
}

// IntersectKernel returns k as a kernel that traces the intersector
// passed to FrameIntersect, which must implement intersect.Scene.
func (k *Simple[W]) IntersectKernel() sched.IntersectKernel[W] {
	return func(isect intersect.Intersector[W], ray geom.Ray[W], _ *sampling.Generator[W]) sched.ResultRecord[W] {
		scene, ok := isect.(intersect.Scene[W])
		if !ok {
			panic(fmt.Sprintf("kernel: Simple needs an intersect.Scene, got %T", isect))
		}
		return k.Trace(scene, ray)
	}
}

// Trace shades one packet against scene.
func (k *Simple[W]) Trace(scene intersect.Scene[W], ray geom.Ray[W]) sched.ResultRecord[W] {
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

	view := ray.Dir.Neg()
	n := geom.FaceForward(scene.Normal(hit), view)

	m := k.opts.material
	albedo := k.albedo(hit.IsectPos)
	shaded := geom.V3FromArray[W](m.Ambient).Mul(albedo).Mul(geom.V3FromArray[W](k.opts.ambient))
	for _, lp := range k.lights {
		l, radiance := illuminate(lp, hit.IsectPos)
		shaded = shaded.Add(phongShade(m, albedo, n, view, l, radiance))
	}

	res.Color = geom.SelectV4(hit.Hit, geom.V4FromV3(shaded, one), bg)
	return res
}

// albedo samples the texture at the world-space XZ position of p. Without
// a texture it is white.
func (k *Simple[W]) albedo(p geom.Vec3[W]) geom.Vec3[W] {
	if k.opts.texture == nil {
		return geom.SplatV3[W](1, 1, 1)
	}
	scale := simd.Splat[W](k.opts.texScale)
	return texture.Sample(k.opts.texture, geom.V2(p.X.Mul(scale), p.Z.Mul(scale))).XYZ()
}

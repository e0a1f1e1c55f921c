package main

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/raypack/intersect"
	"github.com/gogpu/raypack/simd"
)

// buildScene returns a floor with a cluster of spheres resting on it.
func buildScene[W simd.Width]() *intersect.List[W] {
	const s = 20
	l := &intersect.List[W]{
		Triangles: []intersect.Triangle{
			intersect.NewTriangle(f32.Vec3{-s, 0, -s}, f32.Vec3{-s, 0, s}, f32.Vec3{s, 0, -s}),
			intersect.NewTriangle(f32.Vec3{s, 0, s}, f32.Vec3{s, 0, -s}, f32.Vec3{-s, 0, s}),
		},
	}
	spheres := []struct {
		x, z, r float32
	}{
		{0, 0, 0.6},
		{-1.1, 0.3, 0.35},
		{0.9, 0.5, 0.3},
		{0.5, -0.9, 0.4},
		{-0.6, -1.0, 0.25},
	}
	for _, sp := range spheres {
		l.Spheres = append(l.Spheres, intersect.Sphere{Center: f32.Vec3{sp.x, sp.r, sp.z}, Radius: sp.r})
	}
	return l
}

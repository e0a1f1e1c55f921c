package sched

import (
	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/intersect"
	"github.com/gogpu/raypack/sampling"
	"github.com/gogpu/raypack/simd"
)

// ResultRecord is what a kernel returns for one packet.
type ResultRecord[W simd.Width] struct {
	// Hit marks lanes whose ray hit geometry. Depth is written only
	// for hit lanes; the others get the far value 1.
	Hit simd.Mask[W]

	// Color is written for every lane, hit or not.
	Color geom.Vec4[W]

	// Depth is the value stored into the depth buffer.
	Depth simd.Float[W]

	// IsectPos is the world-space hit position.
	IsectPos geom.Vec3[W]
}

// Kernel computes the result of one packet of primary rays. gen is owned
// by the calling worker for the duration of the call.
type Kernel[W simd.Width] func(ray geom.Ray[W], gen *sampling.Generator[W]) ResultRecord[W]

// IntersectKernel is a Kernel that receives the frame's intersector.
type IntersectKernel[W simd.Width] func(isect intersect.Intersector[W], ray geom.Ray[W], gen *sampling.Generator[W]) ResultRecord[W]

// Camera generates primary rays. BeginFrame and EndFrame bracket every
// frame and run on the goroutine calling Frame; PrimaryRay runs on
// workers concurrently and must not mutate the camera.
type Camera[W simd.Width] interface {
	BeginFrame()
	EndFrame()
	PrimaryRay(x, y simd.Float[W], width, height int) geom.Ray[W]
}

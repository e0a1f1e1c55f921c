// Package raypack provides a SIMD-packet ray tracing core for Go.
//
// # Overview
//
// raypack traces rays in packets of 1, 4, 8 or 16 lanes. Every value a
// kernel sees (positions, distances, colors, masks) holds one entry per
// lane, so a packet covers a small block of adjacent pixels and the
// arithmetic runs once per packet instead of once per pixel.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/raypack/camera"
//	    "github.com/gogpu/raypack/kernel"
//	    "github.com/gogpu/raypack/pixel"
//	    "github.com/gogpu/raypack/render"
//	    "github.com/gogpu/raypack/sched"
//	    "github.com/gogpu/raypack/simd"
//	)
//
//	rt, _ := render.NewCPUBuffer(pixel.RGBA8, pixel.Depth24Stencil8)
//	rt.Resize(640, 480)
//
//	cam := camera.NewPinhole[simd.W8](eye, center, up, math.Pi/4, 640.0/480)
//	k := kernel.NewAO[simd.W8](scene).Kernel()
//
//	s := sched.NewTiledScheduler[simd.W8](0)
//	defer s.Close()
//	s.Frame(k, sched.Params[simd.W8]{Camera: cam, Target: rt, Sampler: sched.Uniform()}, 1)
//
// # Architecture
//
// The library is organized into:
//   - simd: lane types Float, Int and Mask with masked select
//   - geom: packet vectors and rays
//   - pixel: pixel formats, conversion, packet load/store and blending
//   - render: CPU and GPU render targets
//   - sampling: per-lane random generators and sample warping
//   - camera: pinhole and matrix cameras producing primary rays
//   - intersect: triangles, spheres and brute-force scene lists
//   - texture: 2D textures with address modes and filtering
//   - sched: the tiled parallel scheduler and pixel samplers
//   - kernel: ambient occlusion and simple Phong kernels
//
// # Coordinate System
//
// Pixel (0,0) is the top-left corner of the render target. Packets map
// lane i to pixel (x + i%w, y + i/w) where w x h is the packet footprint.
//
// # Logging
//
// raypack is silent by default. See [SetLogger].
package raypack

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)

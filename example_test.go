package raypack_test

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/raypack/camera"
	"github.com/gogpu/raypack/intersect"
	"github.com/gogpu/raypack/kernel"
	"github.com/gogpu/raypack/pixel"
	"github.com/gogpu/raypack/render"
	"github.com/gogpu/raypack/sched"
	"github.com/gogpu/raypack/simd"
)

// Example renders a single sphere with ambient occlusion into a CPU
// render target.
func Example() {
	rt, err := render.NewCPUBuffer(pixel.RGBA8, pixel.Depth24Stencil8)
	if err != nil {
		panic(err)
	}
	if err := rt.Resize(64, 64); err != nil {
		panic(err)
	}

	scene := &intersect.List[simd.W4]{
		Spheres: []intersect.Sphere{{Center: f32.Vec3{0, 0, 0}, Radius: 0.5}},
	}
	cam := camera.NewPinhole[simd.W4](f32.Vec3{0, 0, 3}, f32.Vec3{0, 0, 0}, f32.Vec3{0, 1, 0}, math.Pi/4, 1)
	k := kernel.NewAO[simd.W4](scene, kernel.WithSamples(4)).Kernel()

	s := sched.NewTiledScheduler[simd.W4](2)
	defer s.Close()

	p := sched.Params[simd.W4]{Camera: cam, Target: rt, Sampler: sched.Uniform()}
	if err := s.Frame(k, p, 1); err != nil {
		panic(err)
	}

	color := rt.Ref().Color
	fmt.Println("center:", color.At(32, 32))
	fmt.Println("corner:", color.At(0, 0))
	// Output:
	// center: [1 1 1 1]
	// corner: [0 0 0 1]
}

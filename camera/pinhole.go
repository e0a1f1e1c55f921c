package camera

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// Pinhole is a perspective camera with an infinitely small aperture.
//
// The zero value looks down -Z from the origin with a 90 degree field of
// view and a square aspect.
type Pinhole[W simd.Width] struct {
	frameCounter

	eye, center, up f32.Vec3
	fovy, aspect    float32

	// Scaled camera basis: ray direction is u*sx + v*sy + w.
	u, v, w f32.Vec3
	valid   bool
}

// NewPinhole returns a camera at eye looking at center.
func NewPinhole[W simd.Width](eye, center, up f32.Vec3, fovy, aspect float32) *Pinhole[W] {
	c := &Pinhole[W]{}
	c.LookAt(eye, center, up)
	c.Perspective(fovy, aspect)
	return c
}

// LookAt positions the camera.
func (c *Pinhole[W]) LookAt(eye, center, up f32.Vec3) {
	c.eye, c.center, c.up = eye, center, up
	c.update()
}

// Perspective sets the vertical field of view in radians and the
// width/height aspect ratio.
func (c *Pinhole[W]) Perspective(fovy, aspect float32) {
	c.fovy, c.aspect = fovy, aspect
	c.update()
}

// Eye returns the camera position.
func (c *Pinhole[W]) Eye() f32.Vec3 { return c.eye }

// BeginFrame marks the start of a frame.
func (c *Pinhole[W]) BeginFrame() {
	c.update()
	c.frameCounter.BeginFrame()
}

func (c *Pinhole[W]) update() {
	c.u, c.v, c.w = c.basis()
	c.valid = true
}

// basis returns the scaled camera frame. Degenerate parameters fall back
// to the zero-value defaults.
func (c *Pinhole[W]) basis() (u, v, w f32.Vec3) {
	eye, center, up := c.eye, c.center, c.up
	if eye == center {
		center = f32.Vec3{eye[0], eye[1], eye[2] - 1}
	}
	if up == (f32.Vec3{}) {
		up = f32.Vec3{0, 1, 0}
	}
	fovy, aspect := c.fovy, c.aspect
	if fovy <= 0 {
		fovy = math.Pi / 2
	}
	if aspect <= 0 {
		aspect = 1
	}

	f := normalize(sub(center, eye))
	s := normalize(cross(f, up))
	t := cross(s, f)

	h := float32(math.Tan(float64(fovy) / 2))
	return scale(s, h*aspect), scale(t, h), f
}

// PrimaryRay returns the rays through pixel coordinates (x, y) of a
// width x height image. It does not modify the camera.
func (c *Pinhole[W]) PrimaryRay(x, y simd.Float[W], width, height int) geom.Ray[W] {
	cu, cv, cw := c.u, c.v, c.w
	if !c.valid {
		cu, cv, cw = c.basis()
	}
	sx, sy := toNDC(x, y, width, height)

	u := geom.V3FromArray[W](cu)
	v := geom.V3FromArray[W](cv)
	w := geom.V3FromArray[W](cw)
	dir := u.Scale(sx).Add(v.Scale(sy)).Add(w).Normalize()
	return geom.NewRay(geom.V3FromArray[W](c.eye), dir)
}

// toNDC maps pixel coordinates to [-1, 1] with +Y up.
func toNDC[W simd.Width](x, y simd.Float[W], width, height int) (sx, sy simd.Float[W]) {
	one := simd.Splat[W](1)
	two := simd.Splat[W](2)
	sx = two.Mul(x).Div(simd.Splat[W](float32(width))).Sub(one)
	sy = one.Sub(two.Mul(y).Div(simd.Splat[W](float32(height))))
	return sx, sy
}

func sub(a, b f32.Vec3) f32.Vec3 { return f32.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func scale(a f32.Vec3, s float32) f32.Vec3 { return f32.Vec3{a[0] * s, a[1] * s, a[2] * s} }

func dot(a, b f32.Vec3) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func cross(a, b f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(a f32.Vec3) f32.Vec3 {
	l := float32(math.Sqrt(float64(dot(a, a))))
	if l == 0 {
		return a
	}
	return scale(a, 1/l)
}

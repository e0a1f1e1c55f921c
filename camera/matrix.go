package camera

import (
	"errors"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// ErrSingularMatrix is returned when the view-projection matrix cannot be
// inverted.
var ErrSingularMatrix = errors.New("camera: view-projection matrix is singular")

// Matrix is a camera defined by view and projection matrices in row-major
// order (m[4*row+col]), OpenGL conventions: the camera looks down -Z in
// view space and NDC depth runs from -1 (near) to 1 (far).
type Matrix[W simd.Width] struct {
	frameCounter

	view, proj f32.Mat4
	inv        [16]float64
}

// NewMatrix returns a camera for the given matrices.
func NewMatrix[W simd.Width](view, proj f32.Mat4) (*Matrix[W], error) {
	c := &Matrix[W]{}
	if err := c.Set(view, proj); err != nil {
		return nil, err
	}
	return c, nil
}

// Set replaces the matrices. On error the camera is unchanged.
func (c *Matrix[W]) Set(view, proj f32.Mat4) error {
	inv, ok := invert(mul(proj, view))
	if !ok {
		return ErrSingularMatrix
	}
	c.view, c.proj, c.inv = view, proj, inv
	return nil
}

// View returns the view matrix.
func (c *Matrix[W]) View() f32.Mat4 { return c.view }

// Projection returns the projection matrix.
func (c *Matrix[W]) Projection() f32.Mat4 { return c.proj }

// PrimaryRay unprojects pixel coordinates (x, y) at the near and far
// planes and returns the rays from the near point toward the far point.
func (c *Matrix[W]) PrimaryRay(x, y simd.Float[W], width, height int) geom.Ray[W] {
	sx, sy := toNDC(x, y, width, height)
	near := c.unproject(sx, sy, -1)
	far := c.unproject(sx, sy, 1)
	return geom.NewRay(near, far.Sub(near).Normalize())
}

// unproject transforms (sx, sy, z, 1) by the inverse view-projection and
// divides by w.
func (c *Matrix[W]) unproject(sx, sy simd.Float[W], z float32) geom.Vec3[W] {
	row := func(r int) simd.Float[W] {
		m := c.inv[4*r : 4*r+4]
		s := simd.Splat[W](float32(m[2])*z + float32(m[3]))
		return sx.Mul(simd.Splat[W](float32(m[0]))).
			Add(sy.Mul(simd.Splat[W](float32(m[1])))).
			Add(s)
	}
	rw := simd.Splat[W](1).Div(row(3))
	return geom.V3(row(0).Mul(rw), row(1).Mul(rw), row(2).Mul(rw))
}

// LookAtMatrix returns the view matrix of a camera at eye looking at
// center.
func LookAtMatrix(eye, center, up f32.Vec3) f32.Mat4 {
	f := normalize(sub(center, eye))
	s := normalize(cross(f, up))
	u := cross(s, f)
	return f32.Mat4{
		s[0], s[1], s[2], -dot(s, eye),
		u[0], u[1], u[2], -dot(u, eye),
		-f[0], -f[1], -f[2], dot(f, eye),
		0, 0, 0, 1,
	}
}

// PerspectiveMatrix returns a projection matrix for a vertical field of
// view in radians, a width/height aspect and the clip planes.
func PerspectiveMatrix(fovy, aspect, zNear, zFar float32) f32.Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	d := zNear - zFar
	return f32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zFar + zNear) / d, 2 * zFar * zNear / d,
		0, 0, -1, 0,
	}
}

func mul(a, b f32.Mat4) [16]float64 {
	var m [16]float64
	for r := range 4 {
		for c := range 4 {
			var s float64
			for k := range 4 {
				s += float64(a[4*r+k]) * float64(b[4*k+c])
			}
			m[4*r+c] = s
		}
	}
	return m
}

// invert returns the inverse of m by Gauss-Jordan elimination with
// partial pivoting.
func invert(m [16]float64) ([16]float64, bool) {
	var inv [16]float64
	for i := range 4 {
		inv[5*i] = 1
	}
	for col := range 4 {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math.Abs(m[4*r+col]) > math.Abs(m[4*pivot+col]) {
				pivot = r
			}
		}
		p := m[4*pivot+col]
		if math.Abs(p) < 1e-12 {
			return inv, false
		}
		if pivot != col {
			for k := range 4 {
				m[4*col+k], m[4*pivot+k] = m[4*pivot+k], m[4*col+k]
				inv[4*col+k], inv[4*pivot+k] = inv[4*pivot+k], inv[4*col+k]
			}
		}
		for k := range 4 {
			m[4*col+k] /= p
			inv[4*col+k] /= p
		}
		for r := range 4 {
			if r == col {
				continue
			}
			f := m[4*r+col]
			if f == 0 {
				continue
			}
			for k := range 4 {
				m[4*r+k] -= f * m[4*col+k]
				inv[4*r+k] -= f * inv[4*col+k]
			}
		}
	}
	return inv, true
}

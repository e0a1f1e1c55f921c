package geom

import (
	"math"
	"testing"

	"github.com/gogpu/raypack/simd"
	"golang.org/x/image/math/f32"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestVec3Ops(t *testing.T) {
	a := SplatV3[simd.W4](1, 2, 3)
	b := SplatV3[simd.W4](4, 5, 6)

	if got := a.Dot(b).Lane(2); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b).Lane(1); got != (f32.Vec3{-3, 6, -3}) {
		t.Errorf("Cross = %v, want [-3 6 -3]", got)
	}
	if got := a.Add(b).Lane(0); got != (f32.Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a).Lane(3); got != (f32.Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(b).Lane(0); got != (f32.Vec3{4, 10, 18}) {
		t.Errorf("Mul = %v", got)
	}
	if got := SplatV3[simd.W4](3, 4, 0).Length().Lane(1); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := a.Lerp(b, simd.Splat[simd.W4](0.5)).Lane(0); got != (f32.Vec3{2.5, 3.5, 4.5}) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	v := V3(
		simd.FromLanes[simd.W4](3, 0, 1, 0),
		simd.FromLanes[simd.W4](4, 0, 1, 2),
		simd.FromLanes[simd.W4](0, 0, 1, 0),
	)
	n := v.Normalize()
	for _, i := range []int{0, 2, 3} {
		if l := n.Length().Lane(i); !near(l, 1, 1e-6) {
			t.Errorf("lane %d length = %v, want 1", i, l)
		}
	}
	if !n.X.IsNaN().Lane(1) {
		t.Errorf("normalize(0) lane = %v, want NaN", n.Lane(1))
	}
	if got := n.Lane(0); !near(got[0], 0.6, 1e-6) || !near(got[1], 0.8, 1e-6) {
		t.Errorf("normalize(3,4,0) = %v", got)
	}
}

func normalizeLane0[W simd.Width](x, y, z float32) f32.Vec3 {
	return SplatV3[W](x, y, z).Normalize().Lane(simd.Lanes[W]() - 1)
}

func TestNormalizeWidthIndependence(t *testing.T) {
	inputs := []f32.Vec3{{1, 2, 3}, {-0.5, 7, 0.25}, {1e-3, 0, 1e3}}
	for _, in := range inputs {
		want := normalizeLane0[simd.W1](in[0], in[1], in[2])
		for _, got := range []f32.Vec3{
			normalizeLane0[simd.W4](in[0], in[1], in[2]),
			normalizeLane0[simd.W8](in[0], in[1], in[2]),
			normalizeLane0[simd.W16](in[0], in[1], in[2]),
		} {
			if got != want {
				t.Errorf("normalize(%v) = %v, want %v", in, got, want)
			}
		}
	}
}

func TestSelectV4SharesMask(t *testing.T) {
	a := SplatV4[simd.W8](1, 2, 3, 4)
	b := SplatV4[simd.W8](5, 6, 7, 8)
	m := simd.MaskFromBits[simd.W8](0b10100101)
	got := SelectV4(m, a, b)
	for i := range 8 {
		want := b.Lane(i)
		if m.Lane(i) {
			want = a.Lane(i)
		}
		if got.Lane(i) != want {
			t.Errorf("lane %d = %v, want %v", i, got.Lane(i), want)
		}
	}
}

func TestFaceForward(t *testing.T) {
	n := SplatV3[simd.W4](0, 0, 1)
	view := V3(
		simd.Splat[simd.W4](0),
		simd.Splat[simd.W4](0),
		simd.FromLanes[simd.W4](1, -1, 0.5, -0.5),
	)
	got := FaceForward(n, view)
	want := []float32{1, -1, 1, -1}
	for i, w := range want {
		if z := got.Z.Lane(i); z != w {
			t.Errorf("lane %d z = %v, want %v", i, z, w)
		}
	}
}

func TestOrthonormalBasis(t *testing.T) {
	ws := []f32.Vec3{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}, {0.6, 0, 0.8}}
	for _, w := range ws {
		wv := V3FromArray[simd.W4](w)
		u, v := OrthonormalBasis(wv)
		checks := []struct {
			name string
			got  float32
			want float32
		}{
			{"|u|", u.Length().Lane(0), 1},
			{"|v|", v.Length().Lane(0), 1},
			{"u.v", u.Dot(v).Lane(0), 0},
			{"u.w", u.Dot(wv).Lane(0), 0},
			{"v.w", v.Dot(wv).Lane(0), 0},
			{"(u x v).w", u.Cross(v).Dot(wv).Lane(0), 1},
		}
		for _, c := range checks {
			if !near(c.got, c.want, 1e-5) {
				t.Errorf("w=%v %s = %v, want %v", w, c.name, c.got, c.want)
			}
		}
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(SplatV3[simd.W4](1, 0, 0), SplatV3[simd.W4](0, 2, 0))
	if got := r.At(simd.Splat[simd.W4](1.5)).Lane(0); got != (f32.Vec3{1, 3, 0}) {
		t.Errorf("At = %v, want [1 3 0]", got)
	}
	if !math.IsInf(float64(r.TMax.Lane(3)), 1) || r.TMin.Lane(3) != 0 {
		t.Errorf("bounds = [%v, %v], want [0, +Inf)", r.TMin.Lane(3), r.TMax.Lane(3))
	}
}

func TestV4FromLanes(t *testing.T) {
	v := V4FromLanes[simd.W4](
		f32.Vec4{1, 0, 0, 1},
		f32.Vec4{0, 1, 0, 1},
	)
	if got := v.Lane(1); got != (f32.Vec4{0, 1, 0, 1}) {
		t.Errorf("lane 1 = %v", got)
	}
	if got := v.Lane(3); got != (f32.Vec4{}) {
		t.Errorf("lane 3 = %v, want zero", got)
	}
	if got := V4FromV3(SplatV3[simd.W4](1, 2, 3), simd.Splat[simd.W4](9)).XYZ().Lane(0); got != (f32.Vec3{1, 2, 3}) {
		t.Errorf("XYZ = %v", got)
	}
}

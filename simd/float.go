package simd

import "math"

// Float holds N float32 lanes, N = Lanes[W]().
// Lanes at index N and above are always zero.
type Float[W Width] struct {
	v [MaxLanes]float32
}

// Splat creates a Float with all lanes set to x.
func Splat[W Width](x float32) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = x
	}
	return r
}

// FromLanes creates a Float from up to N values; missing lanes are zero.
func FromLanes[W Width](vs ...float32) Float[W] {
	var r Float[W]
	n := min(len(vs), Lanes[W]())
	copy(r.v[:n], vs)
	return r
}

// Load reads N values from s. It panics if len(s) < N.
func Load[W Width](s []float32) Float[W] {
	var r Float[W]
	n := Lanes[W]()
	copy(r.v[:n], s[:n])
	return r
}

// Gather reads base[idx[i]] into lane i.
func Gather[W Width](base []float32, idx Int[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = base[idx.v[i]]
	}
	return r
}

// Store writes the N lanes to dst. It panics if len(dst) < N.
func (a Float[W]) Store(dst []float32) {
	n := Lanes[W]()
	copy(dst[:n], a.v[:n])
}

// Array returns the lanes as a plain array; entries beyond N are zero.
func (a Float[W]) Array() [MaxLanes]float32 { return a.v }

// Lane returns lane i.
func (a Float[W]) Lane(i int) float32 { return a.v[i] }

// WithLane returns a copy of a with lane i set to x.
func (a Float[W]) WithLane(i int, x float32) Float[W] {
	if i < Lanes[W]() {
		a.v[i] = x
	}
	return a
}

func (a Float[W]) unary(f func(float32) float32) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = f(a.v[i])
	}
	return r
}

// Add performs element-wise addition.
func (a Float[W]) Add(b Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = a.v[i] + b.v[i]
	}
	return r
}

// Sub performs element-wise subtraction.
func (a Float[W]) Sub(b Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = a.v[i] - b.v[i]
	}
	return r
}

// Mul performs element-wise multiplication.
func (a Float[W]) Mul(b Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = a.v[i] * b.v[i]
	}
	return r
}

// Div performs element-wise division.
// Division by zero results in +Inf, -Inf, or NaN according to IEEE 754.
func (a Float[W]) Div(b Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = a.v[i] / b.v[i]
	}
	return r
}

// MulAdd returns a*b + c, rounded after each operation.
func (a Float[W]) MulAdd(b, c Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = float32(a.v[i]*b.v[i]) + c.v[i]
	}
	return r
}

// Neg negates each lane.
func (a Float[W]) Neg() Float[W] {
	return a.unary(func(x float32) float32 { return -x })
}

// Abs returns |a| per lane.
func (a Float[W]) Abs() Float[W] {
	return a.unary(func(x float32) float32 { return math.Float32frombits(math.Float32bits(x) &^ (1 << 31)) })
}

// Sqrt computes the square root of each lane.
// Negative values result in NaN according to IEEE 754.
func (a Float[W]) Sqrt() Float[W] {
	return a.unary(func(x float32) float32 { return float32(math.Sqrt(float64(x))) })
}

// Rcp returns 1/a per lane.
func (a Float[W]) Rcp() Float[W] {
	return a.unary(func(x float32) float32 { return 1 / x })
}

// Rsqrt returns 1/sqrt(a) per lane.
func (a Float[W]) Rsqrt() Float[W] {
	return a.unary(func(x float32) float32 { return float32(1 / math.Sqrt(float64(x))) })
}

// rcpExactAbove is the magnitude from which RcpApprox uses the exact
// reciprocal: 2^125. Larger inputs would wrap the initial estimate.
const rcpExactAbove = 0x7E000000

// RcpApprox returns an approximate reciprocal refined by steps
// Newton-Raphson iterations. Each step roughly doubles the number of
// correct bits; two steps are within a few ulp for normal inputs.
// Zero, denormal, very large, infinite and NaN lanes get the exact 1/a.
func (a Float[W]) RcpApprox(steps int) Float[W] {
	return a.unary(func(x float32) float32 {
		b := math.Float32bits(x)
		sign := b & (1 << 31)
		abs := b &^ (1 << 31)
		if abs < 0x00800000 || abs >= rcpExactAbove {
			return 1 / x
		}
		y := math.Float32frombits((0x7EF311C7 - abs) | sign)
		for range steps {
			y = y * (2 - x*y)
		}
		return y
	})
}

// RsqrtApprox returns an approximate reciprocal square root refined by
// steps Newton-Raphson iterations. Zero, denormal, negative, infinite and
// NaN lanes get the exact 1/sqrt(a).
func (a Float[W]) RsqrtApprox(steps int) Float[W] {
	return a.unary(func(x float32) float32 {
		b := math.Float32bits(x)
		if b < 0x00800000 || b >= 0x7F800000 {
			return float32(1 / math.Sqrt(float64(x)))
		}
		y := math.Float32frombits(0x5F375A86 - b>>1)
		for range steps {
			y = y * (1.5 - 0.5*x*y*y)
		}
		return y
	})
}

// Sin returns the sine of each lane (radians).
func (a Float[W]) Sin() Float[W] {
	return a.unary(func(x float32) float32 { return float32(math.Sin(float64(x))) })
}

// Cos returns the cosine of each lane (radians).
func (a Float[W]) Cos() Float[W] {
	return a.unary(func(x float32) float32 { return float32(math.Cos(float64(x))) })
}

// Floor rounds each lane toward negative infinity.
func (a Float[W]) Floor() Float[W] {
	return a.unary(func(x float32) float32 { return float32(math.Floor(float64(x))) })
}

// Ceil rounds each lane toward positive infinity.
func (a Float[W]) Ceil() Float[W] {
	return a.unary(func(x float32) float32 { return float32(math.Ceil(float64(x))) })
}

// Round rounds each lane to the nearest integer, ties to even.
func (a Float[W]) Round() Float[W] {
	return a.unary(func(x float32) float32 { return float32(math.RoundToEven(float64(x))) })
}

// Trunc rounds each lane toward zero.
func (a Float[W]) Trunc() Float[W] {
	return a.unary(func(x float32) float32 { return float32(math.Trunc(float64(x))) })
}

// Min returns the element-wise minimum.
func (a Float[W]) Min(b Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = min(a.v[i], b.v[i])
	}
	return r
}

// Max returns the element-wise maximum.
func (a Float[W]) Max(b Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = max(a.v[i], b.v[i])
	}
	return r
}

// Clamp limits each lane to [lo, hi].
func (a Float[W]) Clamp(lo, hi Float[W]) Float[W] {
	return a.Max(lo).Min(hi)
}

// Saturate clamps each lane to [0, 1].
func (a Float[W]) Saturate() Float[W] {
	return a.Clamp(Splat[W](0), Splat[W](1))
}

// Lerp returns a + (b-a)*t per lane.
func (a Float[W]) Lerp(b, t Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = a.v[i] + (b.v[i]-a.v[i])*t.v[i]
	}
	return r
}

// Pow raises each lane to the matching exponent lane.
func (a Float[W]) Pow(e Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = float32(math.Pow(float64(a.v[i]), float64(e.v[i])))
	}
	return r
}

func (a Float[W]) cmp(b Float[W], f func(x, y float32) bool) Mask[W] {
	var m Mask[W]
	for i := range Lanes[W]() {
		if f(a.v[i], b.v[i]) {
			m.bits |= 1 << i
		}
	}
	return m
}

// Eq reports a == b per lane.
func (a Float[W]) Eq(b Float[W]) Mask[W] { return a.cmp(b, func(x, y float32) bool { return x == y }) }

// Ne reports a != b per lane. NaN lanes compare not equal.
func (a Float[W]) Ne(b Float[W]) Mask[W] { return a.cmp(b, func(x, y float32) bool { return x != y }) }

// Lt reports a < b per lane.
func (a Float[W]) Lt(b Float[W]) Mask[W] { return a.cmp(b, func(x, y float32) bool { return x < y }) }

// Le reports a <= b per lane.
func (a Float[W]) Le(b Float[W]) Mask[W] { return a.cmp(b, func(x, y float32) bool { return x <= y }) }

// Gt reports a > b per lane.
func (a Float[W]) Gt(b Float[W]) Mask[W] { return a.cmp(b, func(x, y float32) bool { return x > y }) }

// Ge reports a >= b per lane.
func (a Float[W]) Ge(b Float[W]) Mask[W] { return a.cmp(b, func(x, y float32) bool { return x >= y }) }

func (a Float[W]) test(f func(float64) bool) Mask[W] {
	var m Mask[W]
	for i := range Lanes[W]() {
		if f(float64(a.v[i])) {
			m.bits |= 1 << i
		}
	}
	return m
}

// IsNaN reports which lanes are NaN.
func (a Float[W]) IsNaN() Mask[W] { return a.test(math.IsNaN) }

// IsInf reports which lanes are +Inf or -Inf.
func (a Float[W]) IsInf() Mask[W] {
	return a.test(func(x float64) bool { return math.IsInf(x, 0) })
}

// IsFinite reports which lanes are neither NaN nor infinite.
func (a Float[W]) IsFinite() Mask[W] {
	return a.test(func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) })
}

// ToInt converts each lane to int32, truncating toward zero.
// Out-of-range and NaN lanes follow the Go conversion rules of the host.
func (a Float[W]) ToInt() Int[W] {
	var r Int[W]
	for i := range Lanes[W]() {
		r.v[i] = int32(a.v[i])
	}
	return r
}

// Bits reinterprets the lanes as int32 without conversion.
func (a Float[W]) Bits() Int[W] {
	var r Int[W]
	for i := range Lanes[W]() {
		r.v[i] = int32(math.Float32bits(a.v[i]))
	}
	return r
}

// HSum returns the sum of all lanes, accumulated in lane order.
func (a Float[W]) HSum() float32 {
	var s float32
	for i := range Lanes[W]() {
		s += a.v[i]
	}
	return s
}

// HMin returns the minimum lane.
func (a Float[W]) HMin() float32 {
	s := a.v[0]
	for i := 1; i < Lanes[W](); i++ {
		s = min(s, a.v[i])
	}
	return s
}

// HMax returns the maximum lane.
func (a Float[W]) HMax() float32 {
	s := a.v[0]
	for i := 1; i < Lanes[W](); i++ {
		s = max(s, a.v[i])
	}
	return s
}

// Select returns a lane from a where m is set and from b elsewhere.
func Select[W Width](m Mask[W], a, b Float[W]) Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		if m.bits&(1<<i) != 0 {
			r.v[i] = a.v[i]
		} else {
			r.v[i] = b.v[i]
		}
	}
	return r
}

package simd

import "math"

// Int holds N int32 lanes, N = Lanes[W]().
// Lanes at index N and above are always zero.
type Int[W Width] struct {
	v [MaxLanes]int32
}

// SplatInt creates an Int with all lanes set to x.
func SplatInt[W Width](x int32) Int[W] {
	var r Int[W]
	for i := range Lanes[W]() {
		r.v[i] = x
	}
	return r
}

// IntFromLanes creates an Int from up to N values; missing lanes are zero.
func IntFromLanes[W Width](vs ...int32) Int[W] {
	var r Int[W]
	n := min(len(vs), Lanes[W]())
	copy(r.v[:n], vs)
	return r
}

// LoadInt reads N values from s. It panics if len(s) < N.
func LoadInt[W Width](s []int32) Int[W] {
	var r Int[W]
	n := Lanes[W]()
	copy(r.v[:n], s[:n])
	return r
}

// Store writes the N lanes to dst. It panics if len(dst) < N.
func (a Int[W]) Store(dst []int32) {
	n := Lanes[W]()
	copy(dst[:n], a.v[:n])
}

// Array returns the lanes as a plain array; entries beyond N are zero.
func (a Int[W]) Array() [MaxLanes]int32 { return a.v }

// Lane returns lane i.
func (a Int[W]) Lane(i int) int32 { return a.v[i] }

// WithLane returns a copy of a with lane i set to x.
func (a Int[W]) WithLane(i int, x int32) Int[W] {
	if i < Lanes[W]() {
		a.v[i] = x
	}
	return a
}

func (a Int[W]) binary(b Int[W], f func(x, y int32) int32) Int[W] {
	var r Int[W]
	for i := range Lanes[W]() {
		r.v[i] = f(a.v[i], b.v[i])
	}
	return r
}

// Add performs element-wise addition with two's complement wrap-around.
func (a Int[W]) Add(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 { return x + y })
}

// Sub performs element-wise subtraction.
func (a Int[W]) Sub(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 { return x - y })
}

// Mul performs element-wise multiplication.
func (a Int[W]) Mul(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 { return x * y })
}

// Div performs truncated division. Lanes dividing by zero yield 0.
func (a Int[W]) Div(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 {
		if y == 0 {
			return 0
		}
		return x / y
	})
}

// Neg negates each lane.
func (a Int[W]) Neg() Int[W] {
	return SplatInt[W](0).Sub(a)
}

// And returns a & b.
func (a Int[W]) And(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 { return x & y })
}

// Or returns a | b.
func (a Int[W]) Or(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 { return x | y })
}

// Xor returns a ^ b.
func (a Int[W]) Xor(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 { return x ^ y })
}

// AndNot returns a &^ b.
func (a Int[W]) AndNot(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 { return x &^ y })
}

// Shl shifts each lane left by n bits.
func (a Int[W]) Shl(n uint) Int[W] {
	var r Int[W]
	for i := range Lanes[W]() {
		r.v[i] = a.v[i] << n
	}
	return r
}

// Shr shifts each lane right by n bits, preserving the sign.
func (a Int[W]) Shr(n uint) Int[W] {
	var r Int[W]
	for i := range Lanes[W]() {
		r.v[i] = a.v[i] >> n
	}
	return r
}

// Min returns the element-wise minimum.
func (a Int[W]) Min(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 { return min(x, y) })
}

// Max returns the element-wise maximum.
func (a Int[W]) Max(b Int[W]) Int[W] {
	return a.binary(b, func(x, y int32) int32 { return max(x, y) })
}

func (a Int[W]) cmp(b Int[W], f func(x, y int32) bool) Mask[W] {
	var m Mask[W]
	for i := range Lanes[W]() {
		if f(a.v[i], b.v[i]) {
			m.bits |= 1 << i
		}
	}
	return m
}

// Eq reports a == b per lane.
func (a Int[W]) Eq(b Int[W]) Mask[W] { return a.cmp(b, func(x, y int32) bool { return x == y }) }

// Ne reports a != b per lane.
func (a Int[W]) Ne(b Int[W]) Mask[W] { return a.cmp(b, func(x, y int32) bool { return x != y }) }

// Lt reports a < b per lane.
func (a Int[W]) Lt(b Int[W]) Mask[W] { return a.cmp(b, func(x, y int32) bool { return x < y }) }

// Le reports a <= b per lane.
func (a Int[W]) Le(b Int[W]) Mask[W] { return a.cmp(b, func(x, y int32) bool { return x <= y }) }

// Gt reports a > b per lane.
func (a Int[W]) Gt(b Int[W]) Mask[W] { return a.cmp(b, func(x, y int32) bool { return x > y }) }

// Ge reports a >= b per lane.
func (a Int[W]) Ge(b Int[W]) Mask[W] { return a.cmp(b, func(x, y int32) bool { return x >= y }) }

// ToFloat converts each lane to float32.
func (a Int[W]) ToFloat() Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = float32(a.v[i])
	}
	return r
}

// AsFloat reinterprets the lanes as float32 without conversion.
func (a Int[W]) AsFloat() Float[W] {
	var r Float[W]
	for i := range Lanes[W]() {
		r.v[i] = math.Float32frombits(uint32(a.v[i]))
	}
	return r
}

// SelectInt returns a lane from a where m is set and from b elsewhere.
func SelectInt[W Width](m Mask[W], a, b Int[W]) Int[W] {
	var r Int[W]
	for i := range Lanes[W]() {
		if m.bits&(1<<i) != 0 {
			r.v[i] = a.v[i]
		} else {
			r.v[i] = b.v[i]
		}
	}
	return r
}

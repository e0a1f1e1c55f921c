package simd

import "math/bits"

// Mask holds one boolean per lane as a bit set. Bit i is lane i.
// Bits at index N and above are always clear.
type Mask[W Width] struct {
	bits uint16
}

func full[W Width]() uint16 {
	return uint16(uint32(1)<<Lanes[W]() - 1)
}

// MaskFromBools creates a Mask from up to N booleans.
func MaskFromBools[W Width](bs ...bool) Mask[W] {
	var m Mask[W]
	for i := range min(len(bs), Lanes[W]()) {
		if bs[i] {
			m.bits |= 1 << i
		}
	}
	return m
}

// MaskFromBits creates a Mask from a bit set; bits beyond N are dropped.
func MaskFromBits[W Width](b uint16) Mask[W] {
	return Mask[W]{bits: b & full[W]()}
}

// AllTrue returns a Mask with every lane set.
func AllTrue[W Width]() Mask[W] {
	return Mask[W]{bits: full[W]()}
}

// Bits returns the lane bit set.
func (m Mask[W]) Bits() uint16 { return m.bits }

// Lane reports whether lane i is set.
func (m Mask[W]) Lane(i int) bool { return m.bits&(1<<i) != 0 }

// WithLane returns a copy of m with lane i set to b.
func (m Mask[W]) WithLane(i int, b bool) Mask[W] {
	if i >= Lanes[W]() {
		return m
	}
	if b {
		m.bits |= 1 << i
	} else {
		m.bits &^= 1 << i
	}
	return m
}

// And returns lanes set in both m and o.
func (m Mask[W]) And(o Mask[W]) Mask[W] { return Mask[W]{bits: m.bits & o.bits} }

// Or returns lanes set in either m or o.
func (m Mask[W]) Or(o Mask[W]) Mask[W] { return Mask[W]{bits: m.bits | o.bits} }

// Xor returns lanes set in exactly one of m and o.
func (m Mask[W]) Xor(o Mask[W]) Mask[W] { return Mask[W]{bits: m.bits ^ o.bits} }

// AndNot returns lanes set in m and clear in o.
func (m Mask[W]) AndNot(o Mask[W]) Mask[W] { return Mask[W]{bits: m.bits &^ o.bits} }

// Not inverts every lane.
func (m Mask[W]) Not() Mask[W] { return Mask[W]{bits: ^m.bits & full[W]()} }

// Any reports whether at least one lane is set.
func (m Mask[W]) Any() bool { return m.bits != 0 }

// All reports whether every lane is set.
func (m Mask[W]) All() bool { return m.bits == full[W]() }

// None reports whether no lane is set.
func (m Mask[W]) None() bool { return m.bits == 0 }

// Count returns the number of set lanes.
func (m Mask[W]) Count() int { return bits.OnesCount16(m.bits) }

// SelectMask returns a lane from a where m is set and from b elsewhere.
func SelectMask[W Width](m, a, b Mask[W]) Mask[W] {
	return Mask[W]{bits: (a.bits & m.bits) | (b.bits &^ m.bits)}
}

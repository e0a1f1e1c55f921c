// Package simd provides lane-parallel numeric types for packet ray tracing.
//
// A packet processes N rays or pixels together. The lane count is a type
// parameter W constrained to the closed set [W1], [W4], [W8] and [W16], so
// every algorithm is written once and instantiated for the scalar path
// (W1) or any vector width. Mixing widths in one expression does not
// compile.
//
// # Types
//
// Float[W]: N float32 lanes (arithmetic, comparisons, rounding, rcp/rsqrt).
// Int[W]: N int32 lanes (arithmetic, bitwise ops, conversions).
// Mask[W]: one boolean per lane, produced by comparisons and consumed by
// [Select] and the horizontal reductions [Mask.Any], [Mask.All], [Mask.None].
//
// # Packet footprint
//
// Each width maps to a rectangular pixel footprint used by the scheduler and
// the pixel-access layer: 1x1, 2x2, 4x2 and 4x4. Lane i covers pixel
// (x + i%w, y + i/w).
//
// # Design
//
//   - Fixed-size arrays and simple loops so the compiler can vectorize them
//   - No unsafe and no assembly; results never depend on the host ISA
//   - Lanes beyond N are kept at zero so values compare with ==
//
// [NativeWidth] reports the widest lane count the host CPU handles natively.
// Callers use it to pick the default width; it never changes results.
//
// # Usage Example
//
//	a := simd.FromLanes[simd.W4](1, 2, 3, 4)
//	b := simd.Splat[simd.W4](2.5)
//	m := a.Lt(b)                  // lanes 0 and 1
//	c := simd.Select(m, a, b)     // 1, 2, 2.5, 2.5
//	if m.Any() {
//	    _ = c.HSum()
//	}
package simd

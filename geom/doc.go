// Package geom provides 2, 3 and 4 component vectors whose components are
// SIMD lanes.
//
// Vec3[simd.W1] is the scalar path; Vec3[simd.W8] holds eight vectors in
// struct-of-arrays form. Every formula in this package is written once
// and serves all widths.
//
// Normalize does not guard against zero-length input: the components become
// NaN and callers mask such lanes out with the Select helpers.
package geom

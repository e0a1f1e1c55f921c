// Package texture samples 2D textures with per-lane texture coordinates.
//
// Texels are float32 in array-of-structures order with one or four
// channels. Coordinates are normalized: (0, 0) is the top-left corner of
// texel (0, 0) and (1, 1) the bottom-right corner of the last texel.
// Address modes reuse the WebGPU values from gputypes.
package texture

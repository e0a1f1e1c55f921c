// Package pixel moves colors and depth between flat pixel buffers and SIMD
// packets.
//
// Buffers store one fixed format in array-of-structs layout, row-major,
// indexed y*width + x. Packets hold struct-of-arrays lanes (geom.Vec4,
// simd.Float). A Converter resolves a (destination, source) format pair
// once, at configuration time, from a lookup table; the Store, Get and
// Blend functions then use it on the hot path without further dispatch.
//
// # Packet mapping
//
// Lane i of a packet anchored at (x, y) addresses pixel
// (x + i%w, y + i/w), where w x h is the footprint of the lane width.
// Every lane is bounds-checked on its own: stores to pixels outside the
// buffer are dropped and reads from them yield zero. Partial packets at
// image edges therefore need no special handling by the caller.
//
// # Conversion
//
// 8-bit normalized channels map 0 to 0.0 and 255 to 1.0 with linear
// scaling in between. Reading a three-channel buffer into a four-channel
// packet sets alpha to 1. Depth24Stencil8 stores the depth in the upper
// 24 bits, truncated, and leaves the stencil bits clear.
package pixel

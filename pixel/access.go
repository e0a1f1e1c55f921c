package pixel

import (
	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// Packet accessors map lane i to pixel (x + i%w, y + i/w), where w x h
// is the footprint of W. Every lane is bounds-checked on its own, so a
// packet may hang over any edge of the buffer: lanes outside are
// dropped on store and read as zero.
//
// The buffer must have the converter's destination format; see
// Converter.Check.

// StoreVec4 writes a color packet.
func StoreVec4[W simd.Width](c Converter, b *Buffer, x, y int, v geom.Vec4[W]) {
	xs, ys, zs, ws := v.X.Array(), v.Y.Array(), v.Z.Array(), v.W.Array()
	if c.fast && simd.Lanes[W]()%4 == 0 {
		storeTransposed[W](b, x, y, &xs, &ys, &zs, &ws)
		return
	}
	pw, _ := simd.Footprint[W]()
	for i := range simd.Lanes[W]() {
		if idx := b.PixelOffset(x+i%pw, y+i/pw); idx >= 0 {
			c.conv.store(b, idx, [4]float32{xs[i], ys[i], zs[i], ws[i]})
		}
	}
}

// storeTransposed writes RGBA32F lanes four at a time through a 4x4
// transpose.
func storeTransposed[W simd.Width](b *Buffer, x, y int, xs, ys, zs, ws *[simd.MaxLanes]float32) {
	pw, _ := simd.Footprint[W]()
	var m [4][4]float32
	for g := 0; g < simd.Lanes[W](); g += 4 {
		copy(m[0][:], xs[g:g+4])
		copy(m[1][:], ys[g:g+4])
		copy(m[2][:], zs[g:g+4])
		copy(m[3][:], ws[g:g+4])
		Transpose4x4(&m)
		for j := range 4 {
			i := g + j
			if idx := b.PixelOffset(x+i%pw, y+i/pw); idx >= 0 {
				copy(b.f32[idx*4:idx*4+4], m[j][:])
			}
		}
	}
}

// StoreVec3 writes a color packet with an opaque alpha.
func StoreVec3[W simd.Width](c Converter, b *Buffer, x, y int, v geom.Vec3[W]) {
	StoreVec4(c, b, x, y, geom.V4FromV3(v, simd.Splat[W](1)))
}

// StoreFloat writes a single-channel packet such as depth.
func StoreFloat[W simd.Width](c Converter, b *Buffer, x, y int, v simd.Float[W]) {
	vs := v.Array()
	pw, _ := simd.Footprint[W]()
	for i := range simd.Lanes[W]() {
		if idx := b.PixelOffset(x+i%pw, y+i/pw); idx >= 0 {
			c.conv.store(b, idx, [4]float32{vs[i], 0, 0, 1})
		}
	}
}

// StoreInt writes a packet of raw packed values, such as
// Depth24Stencil8 words.
func StoreInt[W simd.Width](c Converter, b *Buffer, x, y int, v simd.Int[W]) {
	StoreFloat(c, b, x, y, v.AsFloat())
}

// GetVec4 reads a color packet. RGB buffers read with alpha 1.
func GetVec4[W simd.Width](c Converter, b *Buffer, x, y int) geom.Vec4[W] {
	var xs, ys, zs, ws [simd.MaxLanes]float32
	pw, _ := simd.Footprint[W]()
	n := simd.Lanes[W]()
	for i := range n {
		if idx := b.PixelOffset(x+i%pw, y+i/pw); idx >= 0 {
			px := c.conv.load(b, idx)
			xs[i], ys[i], zs[i], ws[i] = px[0], px[1], px[2], px[3]
		}
	}
	return geom.V4(
		simd.FromLanes[W](xs[:n]...),
		simd.FromLanes[W](ys[:n]...),
		simd.FromLanes[W](zs[:n]...),
		simd.FromLanes[W](ws[:n]...),
	)
}

// GetVec3 reads the color channels of a packet.
func GetVec3[W simd.Width](c Converter, b *Buffer, x, y int) geom.Vec3[W] {
	return GetVec4[W](c, b, x, y).XYZ()
}

// GetFloat reads a single-channel packet.
func GetFloat[W simd.Width](c Converter, b *Buffer, x, y int) simd.Float[W] {
	var vs [simd.MaxLanes]float32
	pw, _ := simd.Footprint[W]()
	n := simd.Lanes[W]()
	for i := range n {
		if idx := b.PixelOffset(x+i%pw, y+i/pw); idx >= 0 {
			vs[i] = c.conv.load(b, idx)[0]
		}
	}
	return simd.FromLanes[W](vs[:n]...)
}

// GetInt reads a packet of raw packed values.
func GetInt[W simd.Width](c Converter, b *Buffer, x, y int) simd.Int[W] {
	return GetFloat[W](c, b, x, y).Bits()
}

// BlendVec4 reads the destination packet, blends v onto it with f and
// stores the result. Out-of-bounds lanes are neither read nor written.
func BlendVec4[W simd.Width](c Converter, b *Buffer, x, y int, v geom.Vec4[W], f BlendFunc) {
	dst := GetVec4[W](c, b, x, y)
	StoreVec4(c, b, x, y, Blend(v, dst, f))
}

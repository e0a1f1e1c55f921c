package texture

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// MapCoord applies an address mode to normalized coordinates for an axis
// of n texels. The result lies in [0, 1).
func MapCoord[W simd.Width](coord simd.Float[W], n int, mode gputypes.AddressMode) simd.Float[W] {
	switch mode {
	case gputypes.AddressModeRepeat:
		return coord.Sub(coord.Floor())
	case gputypes.AddressModeMirrorRepeat:
		fl := coord.Floor()
		frac := coord.Sub(fl)
		one := simd.SplatInt[W](1)
		odd := fl.ToInt().And(one).Eq(one)
		return simd.Select(odd, simd.Splat[W](float32(n-1)/float32(n)).Sub(frac), frac)
	default:
		return coord.Clamp(simd.Splat[W](0), simd.Splat[W](1-1/float32(n)))
	}
}

// texelIndex converts mapped coordinates to texel indices in [0, n-1].
func texelIndex[W simd.Width](c simd.Float[W], n int) simd.Int[W] {
	i := c.Mul(simd.Splat[W](float32(n))).ToInt()
	return i.Max(simd.SplatInt[W](0)).Min(simd.SplatInt[W](int32(n - 1)))
}

// Sample filters tex at uv for every lane.
func Sample[W simd.Width](tex *Texture2D, uv geom.Vec2[W]) geom.Vec4[W] {
	switch tex.Filter {
	case Linear:
		return linear(tex, uv)
	case Cubic:
		return cubic(tex, uv, bspline[W])
	case CubicCatmullRom:
		return cubic(tex, uv, catmullRom[W])
	default:
		return nearest(tex, uv)
	}
}

// SampleFloat filters tex at uv and returns the first channel.
func SampleFloat[W simd.Width](tex *Texture2D, uv geom.Vec2[W]) simd.Float[W] {
	return Sample(tex, uv).X
}

// fetch gathers texels (ix, iy) per lane.
func fetch[W simd.Width](tex *Texture2D, ix, iy simd.Int[W]) geom.Vec4[W] {
	idx := iy.Mul(simd.SplatInt[W](int32(tex.width))).Add(ix)
	if tex.channels == 1 {
		return geom.V4(simd.Gather(tex.data, idx), simd.Splat[W](0), simd.Splat[W](0), simd.Splat[W](1))
	}
	base := idx.Shl(2)
	return geom.V4(
		simd.Gather(tex.data, base),
		simd.Gather(tex.data, base.Add(simd.SplatInt[W](1))),
		simd.Gather(tex.data, base.Add(simd.SplatInt[W](2))),
		simd.Gather(tex.data, base.Add(simd.SplatInt[W](3))),
	)
}

func nearest[W simd.Width](tex *Texture2D, uv geom.Vec2[W]) geom.Vec4[W] {
	u := MapCoord(uv.X, tex.width, tex.AddressU)
	v := MapCoord(uv.Y, tex.height, tex.AddressV)
	return fetch(tex, texelIndex(u, tex.width), texelIndex(v, tex.height))
}

func linear[W simd.Width](tex *Texture2D, uv geom.Vec2[W]) geom.Vec4[W] {
	nw := simd.Splat[W](float32(tex.width))
	nh := simd.Splat[W](float32(tex.height))
	half := simd.Splat[W](0.5)
	du, dv := half.Div(nw), half.Div(nh)

	u1 := MapCoord(uv.X.Sub(du), tex.width, tex.AddressU)
	u2 := MapCoord(uv.X.Add(du), tex.width, tex.AddressU)
	v1 := MapCoord(uv.Y.Sub(dv), tex.height, tex.AddressV)
	v2 := MapCoord(uv.Y.Add(dv), tex.height, tex.AddressV)

	lox, hix := texelIndex(u1, tex.width), texelIndex(u2, tex.width)
	loy, hiy := texelIndex(v1, tex.height), texelIndex(v2, tex.height)

	fx := u1.Mul(nw).Sub(lox.ToFloat())
	fy := v1.Mul(nh).Sub(loy.ToFloat())

	p1 := fetch(tex, lox, loy).Lerp(fetch(tex, hix, loy), fx)
	p2 := fetch(tex, lox, hiy).Lerp(fetch(tex, hix, hiy), fx)
	return p1.Lerp(p2, fy)
}

// weightFunc returns the four tap weights for fractional offset a.
type weightFunc[W simd.Width] func(a simd.Float[W]) [4]simd.Float[W]

func bspline[W simd.Width](a simd.Float[W]) [4]simd.Float[W] {
	one := simd.Splat[W](1)
	three := simd.Splat[W](3)
	sixth := simd.Splat[W](1.0 / 6.0)
	a2 := a.Mul(a)
	a3 := a2.Mul(a)
	return [4]simd.Float[W]{
		sixth.Mul(a3.Neg().Add(three.Mul(a2)).Sub(three.Mul(a)).Add(one)),
		sixth.Mul(three.Mul(a3).Sub(simd.Splat[W](6).Mul(a2)).Add(simd.Splat[W](4))),
		sixth.Mul(simd.Splat[W](-3).Mul(a3).Add(three.Mul(a2)).Add(three.Mul(a)).Add(one)),
		sixth.Mul(a3),
	}
}

func catmullRom[W simd.Width](a simd.Float[W]) [4]simd.Float[W] {
	half := simd.Splat[W](0.5)
	a2 := a.Mul(a)
	a3 := a2.Mul(a)
	return [4]simd.Float[W]{
		simd.Splat[W](-0.5).Mul(a3).Add(a2).Sub(half.Mul(a)),
		simd.Splat[W](1.5).Mul(a3).Sub(simd.Splat[W](2.5).Mul(a2)).Add(simd.Splat[W](1)),
		simd.Splat[W](-1.5).Mul(a3).Add(simd.Splat[W](2).Mul(a2)).Add(half.Mul(a)),
		half.Mul(a3).Sub(half.Mul(a2)),
	}
}

// cubicTaps returns the four mapped texel indices and weights around
// coord on an axis of n texels.
func cubicTaps[W simd.Width](coord simd.Float[W], n int, mode gputypes.AddressMode, w weightFunc[W]) ([4]simd.Int[W], [4]simd.Float[W]) {
	nf := simd.Splat[W](float32(n))
	half := simd.Splat[W](0.5)
	x := coord.Mul(nf).Sub(half)
	fl := x.Floor()

	var idx [4]simd.Int[W]
	for k := range 4 {
		// Texel center of tap k, back in normalized coordinates.
		t := fl.Add(simd.Splat[W](float32(k - 1))).Add(half).Div(nf)
		idx[k] = texelIndex(MapCoord(t, n, mode), n)
	}
	return idx, w(x.Sub(fl))
}

func cubic[W simd.Width](tex *Texture2D, uv geom.Vec2[W], w weightFunc[W]) geom.Vec4[W] {
	ix, wx := cubicTaps(uv.X, tex.width, tex.AddressU, w)
	iy, wy := cubicTaps(uv.Y, tex.height, tex.AddressV, w)

	var sum geom.Vec4[W]
	for j := range 4 {
		var row geom.Vec4[W]
		for i := range 4 {
			row = row.Add(fetch(tex, ix[i], iy[j]).Scale(wx[i]))
		}
		sum = sum.Add(row.Scale(wy[j]))
	}
	return sum
}

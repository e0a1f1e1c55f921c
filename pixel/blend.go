package pixel

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/simd"
)

// Factor is a blend factor. Kind selects the factor; Value is the
// constant used by BlendFactorConstant and BlendFactorOneMinusConstant.
type Factor struct {
	Kind  gputypes.BlendFactor
	Value float32
}

// Named blend factors.
var (
	Zero              = Factor{Kind: gputypes.BlendFactorZero}
	One               = Factor{Kind: gputypes.BlendFactorOne}
	SrcColor          = Factor{Kind: gputypes.BlendFactorSrc}
	OneMinusSrcColor  = Factor{Kind: gputypes.BlendFactorOneMinusSrc}
	DstColor          = Factor{Kind: gputypes.BlendFactorDst}
	OneMinusDstColor  = Factor{Kind: gputypes.BlendFactorOneMinusDst}
	SrcAlpha          = Factor{Kind: gputypes.BlendFactorSrcAlpha}
	OneMinusSrcAlpha  = Factor{Kind: gputypes.BlendFactorOneMinusSrcAlpha}
	DstAlpha          = Factor{Kind: gputypes.BlendFactorDstAlpha}
	OneMinusDstAlpha  = Factor{Kind: gputypes.BlendFactorOneMinusDstAlpha}
	SrcAlphaSaturated = Factor{Kind: gputypes.BlendFactorSrcAlphaSaturated}
)

// Scale returns the numeric factor v.
func Scale(v float32) Factor {
	return Factor{Kind: gputypes.BlendFactorConstant, Value: v}
}

// OneMinusScale returns the numeric factor 1-v.
func OneMinusScale(v float32) Factor {
	return Factor{Kind: gputypes.BlendFactorOneMinusConstant, Value: v}
}

// BlendFunc combines a source and a destination color as
// Op(src*Src, dst*Dst). Min and Max ignore the factors, as in WebGPU.
// The zero Op means BlendOperationAdd.
type BlendFunc struct {
	Src, Dst Factor
	Op       gputypes.BlendOperation
}

// Replace writes the source unchanged.
var Replace = BlendFunc{Src: One, Dst: Zero}

// AlphaOver is conventional non-premultiplied alpha blending.
var AlphaOver = BlendFunc{Src: SrcAlpha, Dst: OneMinusSrcAlpha}

// Progressive returns the running-average blend for frame n (1-based):
// the new sample weighs 1/n and the accumulated color 1-1/n. Frame 0
// is treated as frame 1.
func Progressive(frameNum uint32) BlendFunc {
	n := float32(max(frameNum, 1))
	alpha := 1 / n
	return BlendFunc{Src: Scale(alpha), Dst: Scale(1 - alpha)}
}

// FromBlendComponent converts a GPU blend component. constant supplies
// the value of constant factors.
func FromBlendComponent(bc gputypes.BlendComponent, constant float32) BlendFunc {
	f := BlendFunc{
		Src: Factor{Kind: bc.SrcFactor},
		Dst: Factor{Kind: bc.DstFactor},
		Op:  bc.Operation,
	}
	if bc.UsesConstant() {
		f.Src.Value = constant
		f.Dst.Value = constant
	}
	return f
}

// Component returns f as a GPU blend component. Constant values are
// not part of a component and must be set on the pipeline.
func (f BlendFunc) Component() gputypes.BlendComponent {
	op := f.Op
	if op == gputypes.BlendOperationUndefined {
		op = gputypes.BlendOperationAdd
	}
	return gputypes.BlendComponent{SrcFactor: f.Src.Kind, DstFactor: f.Dst.Kind, Operation: op}
}

// Blend computes f applied to src and dst for every lane.
func Blend[W simd.Width](src, dst geom.Vec4[W], f BlendFunc) geom.Vec4[W] {
	switch f.Op {
	case gputypes.BlendOperationMin:
		return src.Min(dst)
	case gputypes.BlendOperationMax:
		return src.Max(dst)
	}
	s := src.Mul(factor(f.Src, src, dst))
	d := dst.Mul(factor(f.Dst, src, dst))
	switch f.Op {
	case gputypes.BlendOperationSubtract:
		return s.Sub(d)
	case gputypes.BlendOperationReverseSubtract:
		return d.Sub(s)
	default:
		return s.Add(d)
	}
}

// factor evaluates k per lane. Unknown kinds evaluate to zero.
func factor[W simd.Width](k Factor, src, dst geom.Vec4[W]) geom.Vec4[W] {
	one := simd.Splat[W](1)
	all := func(v simd.Float[W]) geom.Vec4[W] { return geom.V4(v, v, v, v) }
	oneMinus := func(v geom.Vec4[W]) geom.Vec4[W] { return all(one).Sub(v) }

	switch k.Kind {
	case gputypes.BlendFactorZero:
		return geom.Vec4[W]{}
	case gputypes.BlendFactorOne:
		return all(one)
	case gputypes.BlendFactorSrc:
		return src
	case gputypes.BlendFactorOneMinusSrc:
		return oneMinus(src)
	case gputypes.BlendFactorDst:
		return dst
	case gputypes.BlendFactorOneMinusDst:
		return oneMinus(dst)
	case gputypes.BlendFactorSrcAlpha:
		return all(src.W)
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return all(one.Sub(src.W))
	case gputypes.BlendFactorDstAlpha:
		return all(dst.W)
	case gputypes.BlendFactorOneMinusDstAlpha:
		return all(one.Sub(dst.W))
	case gputypes.BlendFactorSrcAlphaSaturated:
		sat := src.W.Min(one.Sub(dst.W))
		return geom.V4(sat, sat, sat, one)
	case gputypes.BlendFactorConstant:
		return all(simd.Splat[W](k.Value))
	case gputypes.BlendFactorOneMinusConstant:
		return all(simd.Splat[W](1 - k.Value))
	}
	return geom.Vec4[W]{}
}

package sched

import (
	"image"

	"github.com/gogpu/raypack/geom"
	"github.com/gogpu/raypack/pixel"
	"github.com/gogpu/raypack/render"
	"github.com/gogpu/raypack/simd"
)

// frameWriter writes kernel results to the buffers of one frame. It is
// read-only during dispatch and shared by all workers.
type frameWriter struct {
	ref       render.Ref
	color     pixel.Converter
	depth     pixel.Converter
	accum     pixel.Converter
	blend     bool
	blendFunc pixel.BlendFunc
}

// newFrameWriter builds and checks the converters for ref.
func newFrameWriter(ref render.Ref, src pixel.Format, s PixelSampler, frameNum uint32) (*frameWriter, error) {
	if src == pixel.Unspecified {
		src = pixel.RGBA32F
	}
	w := &frameWriter{ref: ref, blend: s.Blends()}
	if w.blend {
		w.blendFunc = s.blendFunc(frameNum)
	}

	var err error
	if ref.Color == nil {
		return nil, render.ErrNotSized
	}
	if w.color, err = pixel.NewConverter(ref.Color.Format(), src); err != nil {
		return nil, err
	}
	if err = w.color.Check(ref.Color); err != nil {
		return nil, err
	}
	if ref.Depth != nil {
		if w.depth, err = pixel.NewConverter(ref.Depth.Format(), pixel.Depth32F); err != nil {
			return nil, err
		}
	}
	if ref.Accum != nil {
		if w.accum, err = pixel.NewConverter(pixel.RGBA32F, pixel.RGBA32F); err != nil {
			return nil, err
		}
		if err = w.accum.Check(ref.Accum); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// write stores one packet result at (x, y). Lanes outside clip are
// dropped, so a packet that overhangs its tile never touches a pixel
// owned by another tile.
func write[W simd.Width](w *frameWriter, x, y int, clip image.Rectangle, color geom.Vec4[W], depth simd.Float[W]) {
	pw, ph := simd.Footprint[W]()
	if x >= clip.Min.X && y >= clip.Min.Y && x+pw <= clip.Max.X && y+ph <= clip.Max.Y {
		put(w, x, y, color, depth)
		return
	}
	for i := range simd.Lanes[W]() {
		dx, dy := simd.LaneOffset[W](i)
		if !image.Pt(x+dx, y+dy).In(clip) {
			continue
		}
		put(w, x+dx, y+dy, geom.V4FromArray[simd.W1](color.Lane(i)), simd.Splat[simd.W1](depth.Lane(i)))
	}
}

func put[W simd.Width](w *frameWriter, x, y int, color geom.Vec4[W], depth simd.Float[W]) {
	ref := w.ref
	if w.blend {
		if ref.Accum == nil {
			pixel.BlendVec4(w.color, ref.Color, x, y, color, w.blendFunc)
			return
		}
		pixel.BlendVec4(w.accum, ref.Accum, x, y, color, w.blendFunc)
		pixel.StoreVec4(w.color, ref.Color, x, y, pixel.GetVec4[W](w.accum, ref.Accum, x, y))
		return
	}

	pixel.StoreVec4(w.color, ref.Color, x, y, color)
	if ref.Accum != nil {
		pixel.StoreVec4(w.accum, ref.Accum, x, y, color)
	}
	if ref.Depth != nil {
		pixel.StoreFloat(w.depth, ref.Depth, x, y, depth)
	}
}

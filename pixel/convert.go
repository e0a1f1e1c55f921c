package pixel

import (
	"fmt"
	"math"
)

// storeFunc writes one source-format pixel into a buffer element.
type storeFunc func(b *Buffer, idx int, px [4]float32)

// loadFunc reads one buffer element back in the source format.
type loadFunc func(b *Buffer, idx int) [4]float32

type conversion struct {
	store storeFunc
	load  loadFunc
}

// conversions is keyed by {dst, src}. Pairs without an entry are
// unsupported.
var conversions = map[[2]Format]conversion{}

func init() {
	colorSrc := []Format{RGB32F, RGBA32F}
	colorDst := []Format{RGB8, RGBA8, RGB32F, RGBA32F}
	for _, dst := range colorDst {
		for _, src := range colorSrc {
			conversions[[2]Format{dst, src}] = colorConversion(src)
		}
	}

	conversions[[2]Format{R32F, R32F}] = conversion{store: encode, load: decode}
	conversions[[2]Format{Depth32F, Depth32F}] = conversion{store: encode, load: decode}
	conversions[[2]Format{Depth24Stencil8, Depth32F}] = conversion{store: encode, load: decode}

	// Packed depth/stencil values travel as raw bits in the first lane.
	conversions[[2]Format{Depth24Stencil8, Depth24Stencil8}] = conversion{
		store: setRawBits,
		load:  rawBits,
	}
	conversions[[2]Format{Depth32F, Depth24Stencil8}] = conversion{
		store: func(b *Buffer, idx int, px [4]float32) {
			b.f32[idx] = unpackDepth24(math.Float32bits(px[0]))
		},
		load: func(b *Buffer, idx int) [4]float32 {
			return [4]float32{math.Float32frombits(packDepth24(b.f32[idx]))}
		},
	}
}

// colorConversion returns the conversion for color data whose source
// format is src. RGB sources carry an implicit opaque alpha.
func colorConversion(src Format) conversion {
	if src.HasAlpha() {
		return conversion{store: encode, load: decode}
	}
	return conversion{
		store: func(b *Buffer, idx int, px [4]float32) {
			px[3] = 1
			encode(b, idx, px)
		},
		load: decode,
	}
}

// Converter moves pixels between packets holding src-format values and
// buffers of the dst format. It is resolved once with NewConverter and
// used on the hot path without further checks.
type Converter struct {
	dst, src Format
	conv     conversion

	// fast selects the transposing RGBA32F copy.
	fast bool
}

// NewConverter looks up the conversion from src to dst.
func NewConverter(dst, src Format) (Converter, error) {
	conv, ok := conversions[[2]Format{dst, src}]
	if !ok {
		return Converter{}, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, src, dst)
	}
	return Converter{
		dst:  dst,
		src:  src,
		conv: conv,
		fast: dst == RGBA32F && src == RGBA32F,
	}, nil
}

// Dst returns the buffer format the converter writes.
func (c Converter) Dst() Format { return c.dst }

// Src returns the packet format the converter reads.
func (c Converter) Src() Format { return c.src }

// Valid reports whether c was produced by a successful NewConverter.
func (c Converter) Valid() bool { return c.conv.store != nil }

// Check reports an error if b cannot be used with c.
func (c Converter) Check(b *Buffer) error {
	if !c.Valid() {
		return ErrUnsupportedConversion
	}
	if b == nil || b.format != c.dst {
		got := Unspecified
		if b != nil {
			got = b.format
		}
		return fmt.Errorf("%w: buffer is %s, converter writes %s", ErrUnsupportedConversion, got, c.dst)
	}
	return nil
}

// StorePixel converts px and writes it to (x, y). Out-of-bounds
// writes are dropped.
func (c Converter) StorePixel(b *Buffer, x, y int, px [4]float32) {
	if idx := b.PixelOffset(x, y); idx >= 0 {
		c.conv.store(b, idx, px)
	}
}

// LoadPixel reads (x, y) and converts it to the source format.
// Out-of-bounds reads return zero.
func (c Converter) LoadPixel(b *Buffer, x, y int) [4]float32 {
	if idx := b.PixelOffset(x, y); idx >= 0 {
		return c.conv.load(b, idx)
	}
	return [4]float32{}
}

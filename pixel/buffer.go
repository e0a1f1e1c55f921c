package pixel

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// Common errors for pixel operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixel: invalid dimensions")

	// ErrUnsupportedFormat is returned when a format cannot back a buffer.
	ErrUnsupportedFormat = errors.New("pixel: unsupported format")

	// ErrUnsupportedConversion is returned when no conversion exists
	// between a destination and a source format.
	ErrUnsupportedConversion = errors.New("pixel: unsupported conversion")
)

// Buffer is a flat, row-major pixel buffer of one format.
//
// Exactly one of the typed backing slices is non-nil, chosen by the
// format's Storage. Concurrent writes to distinct pixels are safe;
// anything else requires external synchronization.
type Buffer struct {
	format Format
	width  int
	height int

	u8  []uint8
	f32 []float32
	u32 []uint32
}

// NewBuffer allocates a zeroed buffer of width x height pixels.
func NewBuffer(format Format, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrUnsupportedFormat
	}
	b := &Buffer{format: format, width: width, height: height}
	n := width * height * format.Channels()
	switch format.Info().Storage {
	case StorageUint8:
		b.u8 = make([]uint8, n)
	case StorageFloat32:
		b.f32 = make([]float32, n)
	case StorageUint32:
		b.u32 = make([]uint32, n)
	default:
		return nil, ErrUnsupportedFormat
	}
	return b, nil
}

// Format returns the pixel format.
func (b *Buffer) Format() Format { return b.format }

// Width returns the width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Buffer) Height() int { return b.height }

// Bytes returns the backing storage of 8-bit formats (nil otherwise).
func (b *Buffer) Bytes() []uint8 { return b.u8 }

// Float32s returns the backing storage of float formats (nil otherwise).
func (b *Buffer) Float32s() []float32 { return b.f32 }

// Uint32s returns the backing storage of packed formats (nil otherwise).
func (b *Buffer) Uint32s() []uint32 { return b.u32 }

// PixelOffset returns the pixel index of (x, y), or -1 if out of bounds.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.width + x
}

// At decodes pixel (x, y). Missing color channels read as zero and a
// missing alpha reads as one. Depth formats return the depth in the
// first component. Out-of-bounds pixels read as zero.
func (b *Buffer) At(x, y int) [4]float32 {
	idx := b.PixelOffset(x, y)
	if idx < 0 {
		return [4]float32{}
	}
	return decode(b, idx)
}

// Set encodes px into pixel (x, y). Out-of-bounds writes are dropped.
func (b *Buffer) Set(x, y int, px [4]float32) {
	if idx := b.PixelOffset(x, y); idx >= 0 {
		encode(b, idx, px)
	}
}

// Fill sets every pixel to px.
func (b *Buffer) Fill(px [4]float32) {
	n := b.width * b.height
	if n == 0 {
		return
	}
	encode(b, 0, px)
	// Replicate the first encoded pixel.
	switch {
	case b.u8 != nil:
		fillRepeat(b.u8, b.format.Channels())
	case b.f32 != nil:
		fillRepeat(b.f32, b.format.Channels())
	case b.u32 != nil:
		fillRepeat(b.u32, b.format.Channels())
	}
}

func fillRepeat[T any](s []T, stride int) {
	for filled := stride; filled < len(s); filled *= 2 {
		copy(s[filled:], s[:filled])
	}
}

// AppendRGBA8 appends the buffer as tightly packed RGBA8 bytes, the
// layout expected by texture uploads.
func (b *Buffer) AppendRGBA8(dst []byte) []byte {
	n := b.width * b.height
	for i := range n {
		px := decode(b, i)
		dst = append(dst, toUnorm8(px[0]), toUnorm8(px[1]), toUnorm8(px[2]), toUnorm8(px[3]))
	}
	return dst
}

// Image returns a copy of the buffer as an *image.NRGBA. Depth formats
// are rendered as opaque gray.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	depth := b.format.IsDepth()
	for y := range b.height {
		for x := range b.width {
			px := decode(b, y*b.width+x)
			if depth {
				px = [4]float32{px[0], px[0], px[0], 1}
			}
			img.SetNRGBA(x, y, color.NRGBA{
				R: toUnorm8(px[0]),
				G: toUnorm8(px[1]),
				B: toUnorm8(px[2]),
				A: toUnorm8(px[3]),
			})
		}
	}
	return img
}

// toUnorm8 maps [0, 1] to [0, 255] with rounding; NaN and negative
// values map to 0.
func toUnorm8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func fromUnorm8(v uint8) float32 {
	return float32(v) / 255
}

const depth24Max = 0xFFFFFF

// packDepth24 stores a [0, 1] depth in the upper 24 bits, truncating.
func packDepth24(d float32) uint32 {
	if !(d > 0) {
		return 0
	}
	if d >= 1 {
		return depth24Max << 8
	}
	return uint32(float64(d)*depth24Max) << 8
}

func unpackDepth24(p uint32) float32 {
	return float32(p>>8) / depth24Max
}

// encode writes px into pixel index idx using the buffer's own format.
func encode(b *Buffer, idx int, px [4]float32) {
	switch b.format {
	case RGB8:
		o := idx * 3
		b.u8[o], b.u8[o+1], b.u8[o+2] = toUnorm8(px[0]), toUnorm8(px[1]), toUnorm8(px[2])
	case RGBA8:
		o := idx * 4
		b.u8[o], b.u8[o+1], b.u8[o+2], b.u8[o+3] = toUnorm8(px[0]), toUnorm8(px[1]), toUnorm8(px[2]), toUnorm8(px[3])
	case RGB32F:
		o := idx * 3
		b.f32[o], b.f32[o+1], b.f32[o+2] = px[0], px[1], px[2]
	case RGBA32F:
		o := idx * 4
		b.f32[o], b.f32[o+1], b.f32[o+2], b.f32[o+3] = px[0], px[1], px[2], px[3]
	case R32F, Depth32F:
		b.f32[idx] = px[0]
	case Depth24Stencil8:
		b.u32[idx] = packDepth24(px[0])
	}
}

// decode reads pixel index idx using the buffer's own format.
func decode(b *Buffer, idx int) [4]float32 {
	switch b.format {
	case RGB8:
		o := idx * 3
		return [4]float32{fromUnorm8(b.u8[o]), fromUnorm8(b.u8[o+1]), fromUnorm8(b.u8[o+2]), 1}
	case RGBA8:
		o := idx * 4
		return [4]float32{fromUnorm8(b.u8[o]), fromUnorm8(b.u8[o+1]), fromUnorm8(b.u8[o+2]), fromUnorm8(b.u8[o+3])}
	case RGB32F:
		o := idx * 3
		return [4]float32{b.f32[o], b.f32[o+1], b.f32[o+2], 1}
	case RGBA32F:
		o := idx * 4
		return [4]float32{b.f32[o], b.f32[o+1], b.f32[o+2], b.f32[o+3]}
	case R32F, Depth32F:
		return [4]float32{b.f32[idx], 0, 0, 1}
	case Depth24Stencil8:
		return [4]float32{unpackDepth24(b.u32[idx]), 0, 0, 1}
	}
	return [4]float32{}
}

// rawBits and setRawBits move packed uint32 values through float lanes
// without conversion.
func rawBits(b *Buffer, idx int) [4]float32 {
	return [4]float32{math.Float32frombits(b.u32[idx])}
}

func setRawBits(b *Buffer, idx int, px [4]float32) {
	b.u32[idx] = math.Float32bits(px[0])
}

package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
)

// Errors returned by NewTexture2D.
var (
	ErrInvalidDimensions = errors.New("texture: width and height must be positive")
	ErrInvalidChannels   = errors.New("texture: channels must be 1 or 4")
	ErrDataLength        = errors.New("texture: data length does not match dimensions")
)

// Filter selects the reconstruction filter.
type Filter uint8

const (
	// Nearest returns the texel containing the coordinate.
	Nearest Filter = iota

	// Linear interpolates the four nearest texels.
	Linear

	// Cubic weights a 4x4 neighborhood with the cubic B-spline
	// (Mitchell-Netravali B=1, C=0). It smooths and does not interpolate.
	Cubic

	// CubicCatmullRom weights a 4x4 neighborhood with the Catmull-Rom
	// spline, which passes through the texel values.
	CubicCatmullRom
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case Nearest:
		return "Nearest"
	case Linear:
		return "Linear"
	case Cubic:
		return "Cubic"
	case CubicCatmullRom:
		return "CubicCatmullRom"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

// FilterFromMode maps a GPU sampler filter mode. Undefined maps to Nearest.
func FilterFromMode(m gputypes.FilterMode) Filter {
	if m == gputypes.FilterModeLinear {
		return Linear
	}
	return Nearest
}

// Texture2D is an immutable 2D texture with sampling state.
// Sampling is safe for concurrent use; the exported fields must not
// change while samples are taken.
type Texture2D struct {
	data     []float32
	width    int
	height   int
	channels int

	// AddressU and AddressV select the address mode per axis. The zero
	// value (Undefined) behaves as ClampToEdge.
	AddressU, AddressV gputypes.AddressMode

	// Filter is the reconstruction filter.
	Filter Filter
}

// NewTexture2D wraps data, which is not copied.
func NewTexture2D(width, height, channels int, data []float32) (*Texture2D, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if channels != 1 && channels != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChannels, channels)
	}
	if want := width * height * channels; len(data) != want {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDataLength, len(data), want)
	}
	return &Texture2D{
		data:     data,
		width:    width,
		height:   height,
		channels: channels,
		AddressU: gputypes.AddressModeClampToEdge,
		AddressV: gputypes.AddressModeClampToEdge,
	}, nil
}

// FromImage converts img to a 4-channel texture with values in [0, 1].
// Colors are stored non-premultiplied.
func FromImage(img image.Image) (*Texture2D, error) {
	b := img.Bounds()
	data := make([]float32, 0, b.Dx()*b.Dy()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				data = append(data, 0, 0, 0, 0)
				continue
			}
			fa := float32(a)
			data = append(data, float32(r)/fa, float32(g)/fa, float32(bl)/fa, fa/0xFFFF)
		}
	}
	return NewTexture2D(b.Dx(), b.Dy(), 4, data)
}

// SetAddressMode sets the address mode of both axes.
func (t *Texture2D) SetAddressMode(m gputypes.AddressMode) {
	t.AddressU, t.AddressV = m, m
}

// Width returns the width in texels.
func (t *Texture2D) Width() int { return t.width }

// Height returns the height in texels.
func (t *Texture2D) Height() int { return t.height }

// Channels returns 1 or 4.
func (t *Texture2D) Channels() int { return t.channels }

// Texel returns texel (x, y) as RGBA. Single-channel textures read as
// (v, 0, 0, 1).
func (t *Texture2D) Texel(x, y int) [4]float32 {
	i := y*t.width + x
	if t.channels == 1 {
		return [4]float32{t.data[i], 0, 0, 1}
	}
	i *= 4
	return [4]float32{t.data[i], t.data[i+1], t.data[i+2], t.data[i+3]}
}

package pixel

import "github.com/gogpu/gputypes"

// Format represents a pixel storage format.
type Format uint8

const (
	// Unspecified marks an absent buffer (for example no depth buffer).
	Unspecified Format = iota

	// RGB8 is 24-bit RGB, 8-bit normalized channels.
	RGB8

	// RGBA8 is 32-bit RGBA, 8-bit normalized channels.
	RGBA8

	// RGB32F is three float32 channels.
	RGB32F

	// RGBA32F is four float32 channels.
	RGBA32F

	// R32F is one float32 channel.
	R32F

	// Depth32F is a float32 depth value.
	Depth32F

	// Depth24Stencil8 packs 24-bit normalized depth and 8-bit stencil
	// into one uint32.
	Depth24Stencil8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// Storage is the element type backing a buffer of a given format.
type Storage uint8

const (
	StorageNone Storage = iota
	StorageUint8
	StorageFloat32
	StorageUint32
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of stored components per pixel.
	Channels int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsDepth indicates a depth (or depth/stencil) format.
	IsDepth bool

	// Storage is the element type of the backing slice.
	Storage Storage

	// Texture is the matching GPU texture format, or
	// gputypes.TextureFormatUndefined when there is none.
	Texture gputypes.TextureFormat
}

var formatInfoTable = [formatCount]FormatInfo{
	Unspecified: {},
	RGB8: {
		BytesPerPixel: 3,
		Channels:      3,
		Storage:       StorageUint8,
	},
	RGBA8: {
		BytesPerPixel: 4,
		Channels:      4,
		HasAlpha:      true,
		Storage:       StorageUint8,
		Texture:       gputypes.TextureFormatRGBA8Unorm,
	},
	RGB32F: {
		BytesPerPixel: 12,
		Channels:      3,
		Storage:       StorageFloat32,
	},
	RGBA32F: {
		BytesPerPixel: 16,
		Channels:      4,
		HasAlpha:      true,
		Storage:       StorageFloat32,
		Texture:       gputypes.TextureFormatRGBA32Float,
	},
	R32F: {
		BytesPerPixel: 4,
		Channels:      1,
		Storage:       StorageFloat32,
		Texture:       gputypes.TextureFormatR32Float,
	},
	Depth32F: {
		BytesPerPixel: 4,
		Channels:      1,
		IsDepth:       true,
		Storage:       StorageFloat32,
		Texture:       gputypes.TextureFormatDepth32Float,
	},
	Depth24Stencil8: {
		BytesPerPixel: 4,
		Channels:      1,
		IsDepth:       true,
		Storage:       StorageUint32,
		Texture:       gputypes.TextureFormatDepth24PlusStencil8,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int { return f.Info().BytesPerPixel }

// Channels returns the number of stored components per pixel.
func (f Format) Channels() int { return f.Info().Channels }

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool { return f.Info().HasAlpha }

// IsDepth returns true for depth and depth/stencil formats.
func (f Format) IsDepth() bool { return f.Info().IsDepth }

// TextureFormat returns the GPU texture format with the same layout.
func (f Format) TextureFormat() gputypes.TextureFormat { return f.Info().Texture }

// IsValid returns true if f is a known format other than Unspecified.
func (f Format) IsValid() bool {
	return f > Unspecified && f < formatCount
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case Unspecified:
		return "Unspecified"
	case RGB8:
		return "RGB8"
	case RGBA8:
		return "RGBA8"
	case RGB32F:
		return "RGB32F"
	case RGBA32F:
		return "RGBA32F"
	case R32F:
		return "R32F"
	case Depth32F:
		return "Depth32F"
	case Depth24Stencil8:
		return "Depth24Stencil8"
	default:
		return "Unknown"
	}
}

// FormatFromTexture maps a GPU texture format back to a pixel format.
func FormatFromTexture(tf gputypes.TextureFormat) (Format, bool) {
	if tf == gputypes.TextureFormatUndefined {
		return Unspecified, false
	}
	for f := RGB8; f < formatCount; f++ {
		if formatInfoTable[f].Texture == tf {
			return f, true
		}
	}
	return Unspecified, false
}

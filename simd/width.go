package simd

// MaxLanes is the widest supported packet.
const MaxLanes = 16

// Width is the closed set of lane-count marker types.
type Width interface {
	W1 | W4 | W8 | W16

	// Lanes returns the number of lanes N.
	Lanes() int
	// PacketW returns the width of the packet footprint in pixels.
	PacketW() int
	// PacketH returns the height of the packet footprint in pixels.
	PacketH() int
}

// W1 is the scalar width (1 lane, 1x1 footprint).
type W1 struct{}

// W4 is the 4-lane width (2x2 footprint).
type W4 struct{}

// W8 is the 8-lane width (4x2 footprint).
type W8 struct{}

// W16 is the 16-lane width (4x4 footprint).
type W16 struct{}

func (W1) Lanes() int   { return 1 }
func (W1) PacketW() int { return 1 }
func (W1) PacketH() int { return 1 }

func (W4) Lanes() int   { return 4 }
func (W4) PacketW() int { return 2 }
func (W4) PacketH() int { return 2 }

func (W8) Lanes() int   { return 8 }
func (W8) PacketW() int { return 4 }
func (W8) PacketH() int { return 2 }

func (W16) Lanes() int   { return 16 }
func (W16) PacketW() int { return 4 }
func (W16) PacketH() int { return 4 }

// Lanes returns the lane count of W.
func Lanes[W Width]() int {
	var w W
	return w.Lanes()
}

// Footprint returns the packet footprint (w, h) of W.
func Footprint[W Width]() (w, h int) {
	var x W
	return x.PacketW(), x.PacketH()
}

// LaneOffset returns the pixel offset of lane i within the packet footprint.
func LaneOffset[W Width](i int) (dx, dy int) {
	var x W
	pw := x.PacketW()
	return i % pw, i / pw
}

// Convenience aliases for the concrete widths.
type (
	Float1  = Float[W1]
	Float4  = Float[W4]
	Float8  = Float[W8]
	Float16 = Float[W16]

	Int1  = Int[W1]
	Int4  = Int[W4]
	Int8  = Int[W8]
	Int16 = Int[W16]

	Mask1  = Mask[W1]
	Mask4  = Mask[W4]
	Mask8  = Mask[W8]
	Mask16 = Mask[W16]
)

package sched

import "github.com/gogpu/raypack/internal/parallel"

// SeedMode selects how packet generators are seeded.
type SeedMode uint8

const (
	// SeedDeterministic derives seeds from the base seed, the frame number
	// and the packet position only.
	SeedDeterministic SeedMode = iota

	// SeedWallClock additionally mixes in the time at the start of each
	// frame.
	SeedWallClock
)

// String returns the mode name.
func (m SeedMode) String() string {
	switch m {
	case SeedDeterministic:
		return "Deterministic"
	case SeedWallClock:
		return "WallClock"
	default:
		return "Unknown"
	}
}

// Option configures a TiledScheduler during creation.
type Option func(*options)

type options struct {
	tileSize int
	seedMode SeedMode
	baseSeed uint64
}

func defaultOptions() options {
	return options{
		tileSize: parallel.DefaultTileSize,
		seedMode: SeedDeterministic,
	}
}

// WithTileSize sets the nominal tile edge in pixels. Tiles are rounded up
// to a multiple of the packet footprint. Non-positive values keep the
// default of 16.
func WithTileSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tileSize = n
		}
	}
}

// WithSeedMode sets the seeding mode.
func WithSeedMode(m SeedMode) Option {
	return func(o *options) {
		o.seedMode = m
	}
}

// WithBaseSeed sets the seed all packet seeds derive from.
func WithBaseSeed(seed uint64) Option {
	return func(o *options) {
		o.baseSeed = seed
	}
}

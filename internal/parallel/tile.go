// Package parallel provides the tiled dispatch infrastructure used by the
// scheduler: a fixed-size work-stealing worker pool and the partition of an
// image rectangle into packet-aligned tiles.
//
// Tiles are disjoint and cover their source rectangle exactly, so workers
// writing only inside their own tile never touch the same pixel.
package parallel

import "image"

// DefaultTileSize is the nominal tile edge in pixels before alignment to
// the packet footprint.
const DefaultTileSize = 16

// RoundUp returns the smallest multiple of m that is >= n.
// m must be positive.
func RoundUp(n, m int) int {
	return (n + m - 1) / m * m
}

// Partition splits r into tiles of at most dx x dy pixels, in row-major
// order starting at r.Min. Tiles on the right and bottom edges are
// clipped to r. An empty r yields no tiles. Non-positive steps are
// treated as 1.
func Partition(r image.Rectangle, dx, dy int) []image.Rectangle {
	if r.Empty() {
		return nil
	}
	dx, dy = max(dx, 1), max(dy, 1)

	cols := (r.Dx() + dx - 1) / dx
	rows := (r.Dy() + dy - 1) / dy
	tiles := make([]image.Rectangle, 0, cols*rows)
	for y := r.Min.Y; y < r.Max.Y; y += dy {
		for x := r.Min.X; x < r.Max.X; x += dx {
			tiles = append(tiles, image.Rect(x, y, min(x+dx, r.Max.X), min(y+dy, r.Max.Y)))
		}
	}
	return tiles
}

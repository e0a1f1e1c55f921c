// Package sched runs kernels over a render target.
//
// A TiledScheduler splits the target (or a scissor rectangle) into tiles
// aligned to the packet footprint of the lane width, hands one task per
// tile to a fixed worker pool and waits for all of them before the frame
// ends. Within a tile, packets are visited row by row.
//
// Every packet gets a random generator seeded from the base seed, the
// frame number and the packet position, so a deterministic frame is
// reproducible regardless of the number of workers.
//
// Frame order:
//
//	camera.BeginFrame
//	target.BeginFrame
//	dispatch tiles and wait
//	target.EndFrame
//	camera.EndFrame
package sched

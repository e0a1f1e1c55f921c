// Package sampling provides the per-packet random number generator handed
// to shading kernels and the sample warps they use.
//
// Streams are seeded explicitly. Seed mixes a base seed, the frame number
// and the packet origin, so a frame rendered twice with the same inputs
// produces identical pixels regardless of how tiles were distributed across
// workers.
package sampling

// Package kernel provides ready-made shading kernels for the tiled
// scheduler: ambient occlusion and a direct-lighting kernel with point
// and spot lights.
//
// Kernels hold an intersect.Scene and are safe for concurrent use once
// constructed; per-call state lives on the stack and in the worker's
// generator.
package kernel

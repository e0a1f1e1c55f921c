// Package camera generates primary ray packets.
//
// Cameras take continuous pixel coordinates (pixel centers sit at
// integer+0.5) and map them to normalized device coordinates
// (2x/width-1, 1-2y/height): row 0 is the top image row and +Y in NDC
// points up.
//
// Pinhole is parameterized by a look-at frame and a vertical field of view.
// Matrix unprojects through the inverse of a view-projection pair, as a
// rasterizer would use them.
package camera

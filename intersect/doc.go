// Package intersect defines the intersection contract the kernels rely on
// and a brute-force implementation over triangles and spheres.
//
// Acceleration structures are outside this package: anything that
// implements Intersector can be handed to the scheduler. List tests every
// primitive against every ray and exists for small scenes, examples and
// tests.
package intersect

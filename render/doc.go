// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the render targets the tiled scheduler writes
// into.
//
// A render target owns a color buffer and optionally a depth buffer (and,
// for GPU targets, an accumulation buffer). During a frame the scheduler
// obtains a non-owning Ref to those buffers and its workers write disjoint
// pixels through the pixel package, so no locking is needed.
//
// # Lifecycle
//
//	uninitialized --Resize--> sized --BeginFrame--> in-frame --EndFrame--> sized
//
// Resize and the Clear methods are rejected while a frame is in progress.
// A Ref is valid until the next Resize; holding one across a resize is a
// caller error and is not detected.
//
// # Variants
//
//   - CPUBuffer: host memory only, begin/end are bookkeeping
//   - GPUBuffer: host buffers mirrored to a device texture on EndFrame,
//     with an optional float accumulation buffer
//   - PixelUnpackBuffer: the color buffer is a staging area that is mapped
//     on BeginFrame and uploaded to a host-supplied texture on EndFrame
//
// Key principle: targets RECEIVE GPU access from the host application
// through gpucontext interfaces; they never create devices or allocate
// device memory themselves.
//
// # Thread Safety
//
// Lifecycle methods are NOT thread-safe. Pixel writes through a Ref are
// safe as long as concurrent writers touch distinct pixels.
package render

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raypack/pixel"
)

// CPUBuffer is a render target backed by host memory only.
//
// Example:
//
//	rt, _ := render.NewCPUBuffer(pixel.RGBA8, pixel.Depth32F)
//	_ = rt.Resize(800, 600)
//	// ... scheduler frames ...
//	img := rt.Ref().Color.Image()
type CPUBuffer struct {
	surface
}

var _ RenderTarget = (*CPUBuffer)(nil)

// NewCPUBuffer creates an unsized CPU target. depthFormat may be
// pixel.Unspecified for a target without depth.
func NewCPUBuffer(colorFormat, depthFormat pixel.Format) (*CPUBuffer, error) {
	s, err := newSurface(colorFormat, depthFormat, false)
	if err != nil {
		return nil, err
	}
	return &CPUBuffer{surface: s}, nil
}

// Resize reallocates the buffers.
func (t *CPUBuffer) Resize(width, height int) error {
	_, err := t.resize(width, height)
	return err
}

// BeginFrame enters the in-frame state.
func (t *CPUBuffer) BeginFrame() error { return t.begin() }

// EndFrame leaves the in-frame state.
func (t *CPUBuffer) EndFrame() error { return t.end() }

// ClearColorBuffer fills the color buffer with c.
func (t *CPUBuffer) ClearColorBuffer(c gputypes.Color) error { return t.clearColor(c) }

// ClearDepthBuffer fills the depth buffer with d.
func (t *CPUBuffer) ClearDepthBuffer(d float32) error { return t.clearDepth(d) }

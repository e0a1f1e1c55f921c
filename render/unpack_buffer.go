// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raypack/pixel"
)

// PixelUnpackBuffer is a render target whose color buffer is a staging
// (unpack) area for a texture owned by the host.
//
// The staging area is mapped on BeginFrame. On EndFrame it is unmapped and
// uploaded, as a region when the texture implements
// gpucontext.TextureRegionUpdater, otherwise as a whole texture through
// gpucontext.TextureUpdater (which requires matching sizes).
type PixelUnpackBuffer struct {
	surface

	texture gpucontext.Texture
	mapped  bool
	staging []byte
}

var _ RenderTarget = (*PixelUnpackBuffer)(nil)

// NewPixelUnpackBuffer creates an unsized target uploading into tex.
func NewPixelUnpackBuffer(tex gpucontext.Texture, colorFormat pixel.Format, opts ...Option) (*PixelUnpackBuffer, error) {
	if tex == nil {
		return nil, ErrTextureNotWritable
	}
	_, region := tex.(gpucontext.TextureRegionUpdater)
	_, whole := tex.(gpucontext.TextureUpdater)
	if !region && !whole {
		return nil, ErrTextureNotWritable
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s, err := newSurface(colorFormat, o.depthFormat, false)
	if err != nil {
		return nil, err
	}
	if o.device != nil {
		logDevice(o.device)
	}
	return &PixelUnpackBuffer{surface: s, texture: tex}, nil
}

// Resize reallocates the staging and depth buffers. The size must fit in
// the host texture.
func (t *PixelUnpackBuffer) Resize(width, height int) error {
	if width > t.texture.Width() || height > t.texture.Height() {
		return fmt.Errorf("%w: %dx%d exceeds texture %dx%d",
			ErrInvalidDimensions, width, height, t.texture.Width(), t.texture.Height())
	}
	_, err := t.resize(width, height)
	return err
}

// BeginFrame maps the staging buffer.
func (t *PixelUnpackBuffer) BeginFrame() error {
	if err := t.begin(); err != nil {
		return err
	}
	t.mapped = true
	return nil
}

// EndFrame unmaps the staging buffer and uploads it.
func (t *PixelUnpackBuffer) EndFrame() error {
	if err := t.end(); err != nil {
		return err
	}
	t.mapped = false

	t.staging = t.color.AppendRGBA8(t.staging[:0])
	if r, ok := t.texture.(gpucontext.TextureRegionUpdater); ok {
		if err := r.UpdateRegion(0, 0, t.width, t.height, t.staging); err != nil {
			return fmt.Errorf("render: upload region: %w", err)
		}
		return nil
	}
	if t.width != t.texture.Width() || t.height != t.texture.Height() {
		return fmt.Errorf("%w: %dx%d target into %dx%d texture without region updates",
			ErrInvalidDimensions, t.width, t.height, t.texture.Width(), t.texture.Height())
	}
	if err := t.texture.(gpucontext.TextureUpdater).UpdateData(t.staging); err != nil {
		return fmt.Errorf("render: upload: %w", err)
	}
	return nil
}

// Mapped reports whether the staging buffer is currently mapped.
func (t *PixelUnpackBuffer) Mapped() bool { return t.mapped }

// Texture returns the host texture.
func (t *PixelUnpackBuffer) Texture() gpucontext.Texture { return t.texture }

// ClearColorBuffer fills the staging buffer with c.
func (t *PixelUnpackBuffer) ClearColorBuffer(c gputypes.Color) error { return t.clearColor(c) }

// ClearDepthBuffer fills the depth buffer with d.
func (t *PixelUnpackBuffer) ClearDepthBuffer(d float32) error { return t.clearDepth(d) }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raypack/internal/logging"
	"github.com/gogpu/raypack/internal/shader"
	"github.com/gogpu/raypack/pixel"
)

//go:embed shaders/resolve.wgsl
var resolveShaderWGSL string

// resolveSPIRV compiles the resolve pass once per process.
var resolveSPIRV = sync.OnceValues(func() ([]uint32, error) {
	return shader.CompileWGSL(resolveShaderWGSL)
})

// GPUBuffer is a render target whose color buffer is mirrored to a device
// texture at the end of every frame.
//
// The texture is created through the host's TextureCreator on the first
// EndFrame after a Resize and updated in place afterwards when it supports
// gpucontext.TextureUpdater.
type GPUBuffer struct {
	surface

	creator gpucontext.TextureCreator
	device  DeviceHandle

	texture gpucontext.Texture
	staging []byte
}

var _ RenderTarget = (*GPUBuffer)(nil)

// NewGPUBuffer creates an unsized GPU-mirrored target.
func NewGPUBuffer(creator gpucontext.TextureCreator, colorFormat pixel.Format, opts ...Option) (*GPUBuffer, error) {
	if creator == nil {
		return nil, ErrNoTextureCreator
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s, err := newSurface(colorFormat, o.depthFormat, o.accum)
	if err != nil {
		return nil, err
	}
	if o.device != nil {
		logDevice(o.device)
	}
	return &GPUBuffer{surface: s, creator: creator, device: o.device}, nil
}

// Resize reallocates the buffers and drops the device texture.
func (t *GPUBuffer) Resize(width, height int) error {
	changed, err := t.resize(width, height)
	if err != nil || !changed {
		return err
	}
	t.releaseTexture()
	return nil
}

// BeginFrame enters the in-frame state.
func (t *GPUBuffer) BeginFrame() error { return t.begin() }

// EndFrame leaves the in-frame state and uploads the color buffer.
func (t *GPUBuffer) EndFrame() error {
	if err := t.end(); err != nil {
		return err
	}
	return t.upload()
}

// ClearColorBuffer fills the color buffer with c.
func (t *GPUBuffer) ClearColorBuffer(c gputypes.Color) error { return t.clearColor(c) }

// ClearDepthBuffer fills the depth buffer with d.
func (t *GPUBuffer) ClearDepthBuffer(d float32) error { return t.clearDepth(d) }

// ClearAccumBuffer fills the accumulation buffer with c. It is a no-op
// for targets created without WithAccumBuffer.
func (t *GPUBuffer) ClearAccumBuffer(c gputypes.Color) error { return t.clearAccum(c) }

// Texture returns the device texture of the last frame, or nil.
func (t *GPUBuffer) Texture() gpucontext.Texture { return t.texture }

// Display draws the last uploaded frame at (x, y).
func (t *GPUBuffer) Display(drawer gpucontext.TextureDrawer, x, y float32) error {
	if t.texture == nil {
		return ErrNoTexture
	}
	return drawer.DrawTexture(t.texture, x, y)
}

// ResolveShader returns the SPIR-V of the compute pass that converts the
// accumulation buffer to packed RGBA8 on the device. GPUBuffer never
// dispatches it; the host owns the device and is expected to build and
// run the pipeline.
func (t *GPUBuffer) ResolveShader() ([]uint32, error) {
	return resolveSPIRV()
}

// ResolveShaderSource returns the WGSL source of the resolve pass.
func ResolveShaderSource() string { return resolveShaderWGSL }

func (t *GPUBuffer) upload() error {
	t.staging = t.color.AppendRGBA8(t.staging[:0])

	if t.texture != nil {
		if u, ok := t.texture.(gpucontext.TextureUpdater); ok {
			if err := u.UpdateData(t.staging); err != nil {
				return fmt.Errorf("render: update texture: %w", err)
			}
			return nil
		}
		t.releaseTexture()
	}

	tex, err := t.creator.NewTextureFromRGBA(t.width, t.height, t.staging)
	if err != nil {
		return fmt.Errorf("render: create texture: %w", err)
	}
	t.texture = tex
	logging.L().Debug("render: texture created", "width", t.width, "height", t.height)
	return nil
}

// destroyer is implemented by host textures that hold releasable
// device resources.
type destroyer interface {
	Destroy()
}

func (t *GPUBuffer) releaseTexture() {
	if t.texture == nil {
		return
	}
	if d, ok := t.texture.(destroyer); ok {
		d.Destroy()
	}
	t.texture = nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/raypack/internal/logging"
	"github.com/gogpu/raypack/pixel"
)

// Common errors for render target operations.
var (
	// ErrInvalidDimensions is returned by Resize for a non-positive size.
	ErrInvalidDimensions = errors.New("render: invalid dimensions")

	// ErrInFrame is returned by Resize and the Clear methods during a frame,
	// and by BeginFrame when a frame is already in progress.
	ErrInFrame = errors.New("render: frame in progress")

	// ErrNotInFrame is returned by EndFrame without a matching BeginFrame.
	ErrNotInFrame = errors.New("render: no frame in progress")

	// ErrNotSized is returned when a target is used before Resize.
	ErrNotSized = errors.New("render: target not sized")

	// ErrNoTexture is returned by Display before the first upload.
	ErrNoTexture = errors.New("render: no texture uploaded")

	// ErrNoTextureCreator is returned when a GPU target has no way to
	// create its texture.
	ErrNoTextureCreator = errors.New("render: nil texture creator")

	// ErrTextureNotWritable is returned when a host texture accepts
	// neither region nor whole-texture updates.
	ErrTextureNotWritable = errors.New("render: texture is not writable")
)

// Default clear values applied when buffers are (re)allocated.
var (
	DefaultClearColor = gputypes.Color{}
	DefaultClearDepth = float32(1)
)

// RenderTarget is where a frame is written.
//
// Implementations: CPUBuffer, GPUBuffer, PixelUnpackBuffer.
type RenderTarget interface {
	// Width returns the target width in pixels (0 before Resize).
	Width() int

	// Height returns the target height in pixels (0 before Resize).
	Height() int

	// Resize reallocates the buffers. Contents are reset to the default
	// clear values. Resizing to the current size is a no-op.
	Resize(width, height int) error

	// BeginFrame enters the in-frame state.
	BeginFrame() error

	// EndFrame leaves the in-frame state and publishes the frame.
	EndFrame() error

	// ClearColorBuffer fills the color buffer.
	ClearColorBuffer(c gputypes.Color) error

	// ClearDepthBuffer fills the depth buffer, if any.
	ClearDepthBuffer(d float32) error

	// Ref returns a view of the buffers, valid until the next Resize.
	Ref() Ref
}

// Ref is a non-owning view of a target's buffers.
type Ref struct {
	// Color is the color buffer.
	Color *pixel.Buffer

	// Depth is the depth buffer, or nil.
	Depth *pixel.Buffer

	// Accum is the float accumulation buffer, or nil.
	Accum *pixel.Buffer

	Width, Height int
}

// IsZero reports whether r refers to no buffers (unsized target).
func (r Ref) IsZero() bool { return r.Color == nil }

type state uint8

const (
	stateUninitialized state = iota
	stateSized
	stateInFrame
)

func (s state) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateSized:
		return "sized"
	case stateInFrame:
		return "in-frame"
	default:
		return "unknown"
	}
}

// surface holds the buffers and lifecycle state shared by all variants.
type surface struct {
	colorFormat pixel.Format
	depthFormat pixel.Format
	withAccum   bool

	state         state
	width, height int

	color *pixel.Buffer
	depth *pixel.Buffer
	accum *pixel.Buffer
}

// newSurface validates the formats. depthFormat may be
// pixel.Unspecified for a target without depth.
func newSurface(colorFormat, depthFormat pixel.Format, withAccum bool) (surface, error) {
	if !colorFormat.IsValid() || colorFormat.IsDepth() {
		return surface{}, fmt.Errorf("render: color format %s: %w", colorFormat, pixel.ErrUnsupportedFormat)
	}
	if depthFormat != pixel.Unspecified && !depthFormat.IsDepth() {
		return surface{}, fmt.Errorf("render: depth format %s: %w", depthFormat, pixel.ErrUnsupportedFormat)
	}
	return surface{
		colorFormat: colorFormat,
		depthFormat: depthFormat,
		withAccum:   withAccum,
	}, nil
}

// Width returns the target width in pixels.
func (s *surface) Width() int { return s.width }

// Height returns the target height in pixels.
func (s *surface) Height() int { return s.height }

// ColorFormat returns the color buffer format.
func (s *surface) ColorFormat() pixel.Format { return s.colorFormat }

// DepthFormat returns the depth buffer format, or pixel.Unspecified.
func (s *surface) DepthFormat() pixel.Format { return s.depthFormat }

// InFrame reports whether a frame is in progress.
func (s *surface) InFrame() bool { return s.state == stateInFrame }

// Ref returns a view of the buffers.
func (s *surface) Ref() Ref {
	return Ref{
		Color:  s.color,
		Depth:  s.depth,
		Accum:  s.accum,
		Width:  s.width,
		Height: s.height,
	}
}

func (s *surface) resize(width, height int) (changed bool, err error) {
	if s.state == stateInFrame {
		return false, ErrInFrame
	}
	if width <= 0 || height <= 0 {
		return false, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if s.state == stateSized && width == s.width && height == s.height {
		return false, nil
	}

	color, err := pixel.NewBuffer(s.colorFormat, width, height)
	if err != nil {
		return false, err
	}
	var depth, accum *pixel.Buffer
	if s.depthFormat != pixel.Unspecified {
		if depth, err = pixel.NewBuffer(s.depthFormat, width, height); err != nil {
			return false, err
		}
		depth.Fill([4]float32{DefaultClearDepth})
	}
	if s.withAccum {
		if accum, err = pixel.NewBuffer(pixel.RGBA32F, width, height); err != nil {
			return false, err
		}
	}
	color.Fill(colorArray(DefaultClearColor))

	s.color, s.depth, s.accum = color, depth, accum
	s.width, s.height = width, height
	s.state = stateSized

	logging.L().Info("render: target resized", "width", width, "height", height,
		"color", s.colorFormat, "depth", s.depthFormat, "accum", s.withAccum)
	return true, nil
}

func (s *surface) begin() error {
	switch s.state {
	case stateUninitialized:
		return ErrNotSized
	case stateInFrame:
		return ErrInFrame
	}
	s.state = stateInFrame
	return nil
}

func (s *surface) end() error {
	if s.state != stateInFrame {
		return ErrNotInFrame
	}
	s.state = stateSized
	return nil
}

func (s *surface) checkClear() error {
	switch s.state {
	case stateUninitialized:
		return ErrNotSized
	case stateInFrame:
		return ErrInFrame
	}
	return nil
}

func (s *surface) clearColor(c gputypes.Color) error {
	if err := s.checkClear(); err != nil {
		return err
	}
	s.color.Fill(colorArray(c))
	return nil
}

func (s *surface) clearDepth(d float32) error {
	if err := s.checkClear(); err != nil {
		return err
	}
	if s.depth != nil {
		s.depth.Fill([4]float32{d})
	}
	return nil
}

func (s *surface) clearAccum(c gputypes.Color) error {
	if err := s.checkClear(); err != nil {
		return err
	}
	if s.accum != nil {
		s.accum.Fill(colorArray(c))
	}
	return nil
}

func colorArray(c gputypes.Color) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/raypack/pixel"
)

func newCPU(t *testing.T, color, depth pixel.Format) *CPUBuffer {
	t.Helper()
	rt, err := NewCPUBuffer(color, depth)
	if err != nil {
		t.Fatalf("NewCPUBuffer(%s, %s): %v", color, depth, err)
	}
	return rt
}

func TestNewCPUBufferFormats(t *testing.T) {
	tests := []struct {
		name         string
		color, depth pixel.Format
		wantErr      bool
	}{
		{"rgba8 no depth", pixel.RGBA8, pixel.Unspecified, false},
		{"rgba32f depth32", pixel.RGBA32F, pixel.Depth32F, false},
		{"rgb8 d24s8", pixel.RGB8, pixel.Depth24Stencil8, false},
		{"depth as color", pixel.Depth32F, pixel.Unspecified, true},
		{"unspecified color", pixel.Unspecified, pixel.Unspecified, true},
		{"color as depth", pixel.RGBA8, pixel.RGBA8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCPUBuffer(tt.color, tt.depth)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, pixel.ErrUnsupportedFormat) {
				t.Errorf("err = %v, want pixel.ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestLifecycle(t *testing.T) {
	rt := newCPU(t, pixel.RGBA32F, pixel.Depth32F)

	if !rt.Ref().IsZero() {
		t.Error("unsized target returned buffers")
	}
	if err := rt.BeginFrame(); !errors.Is(err, ErrNotSized) {
		t.Errorf("BeginFrame before Resize = %v, want ErrNotSized", err)
	}
	if err := rt.ClearColorBuffer(gputypes.Color{}); !errors.Is(err, ErrNotSized) {
		t.Errorf("Clear before Resize = %v, want ErrNotSized", err)
	}
	if err := rt.EndFrame(); !errors.Is(err, ErrNotInFrame) {
		t.Errorf("EndFrame without BeginFrame = %v, want ErrNotInFrame", err)
	}

	for _, size := range [][2]int{{0, 4}, {4, 0}, {-1, -1}} {
		if err := rt.Resize(size[0], size[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Resize(%v) = %v, want ErrInvalidDimensions", size, err)
		}
	}

	if err := rt.Resize(8, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if rt.Width() != 8 || rt.Height() != 4 {
		t.Errorf("size = %dx%d, want 8x4", rt.Width(), rt.Height())
	}

	if err := rt.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if !rt.InFrame() {
		t.Error("InFrame() = false after BeginFrame")
	}
	if err := rt.BeginFrame(); !errors.Is(err, ErrInFrame) {
		t.Errorf("nested BeginFrame = %v, want ErrInFrame", err)
	}
	if err := rt.Resize(16, 16); !errors.Is(err, ErrInFrame) {
		t.Errorf("Resize in frame = %v, want ErrInFrame", err)
	}
	if err := rt.ClearColorBuffer(gputypes.Color{R: 1}); !errors.Is(err, ErrInFrame) {
		t.Errorf("ClearColorBuffer in frame = %v, want ErrInFrame", err)
	}
	if err := rt.ClearDepthBuffer(0.5); !errors.Is(err, ErrInFrame) {
		t.Errorf("ClearDepthBuffer in frame = %v, want ErrInFrame", err)
	}
	if err := rt.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	if rt.InFrame() {
		t.Error("InFrame() = true after EndFrame")
	}
}

func TestResizeDefaultsAndClears(t *testing.T) {
	rt := newCPU(t, pixel.RGBA32F, pixel.Depth32F)
	if err := rt.Resize(3, 2); err != nil {
		t.Fatal(err)
	}

	ref := rt.Ref()
	if ref.Width != 3 || ref.Height != 2 || ref.Accum != nil {
		t.Fatalf("Ref = %+v", ref)
	}
	if got := ref.Color.At(2, 1); got != [4]float32{} {
		t.Errorf("default color = %v, want zero", got)
	}
	if got := ref.Depth.At(2, 1)[0]; got != 1 {
		t.Errorf("default depth = %v, want 1", got)
	}

	if err := rt.ClearColorBuffer(gputypes.Color{R: 0.5, G: 0.25, B: 1, A: 1}); err != nil {
		t.Fatal(err)
	}
	if err := rt.ClearDepthBuffer(0.75); err != nil {
		t.Fatal(err)
	}
	if got := ref.Color.At(0, 1); got != [4]float32{0.5, 0.25, 1, 1} {
		t.Errorf("cleared color = %v", got)
	}
	if got := ref.Depth.At(1, 0)[0]; got != 0.75 {
		t.Errorf("cleared depth = %v, want 0.75", got)
	}

	// Same size keeps the buffers; a new size replaces them.
	if err := rt.Resize(3, 2); err != nil {
		t.Fatal(err)
	}
	if rt.Ref().Color != ref.Color {
		t.Error("Resize to the same size reallocated")
	}
	if err := rt.Resize(4, 4); err != nil {
		t.Fatal(err)
	}
	if rt.Ref().Color == ref.Color || rt.Ref().Color.At(0, 0) != [4]float32{} {
		t.Error("Resize did not reset the color buffer")
	}
}

func TestClearDepthWithoutDepthBuffer(t *testing.T) {
	rt := newCPU(t, pixel.RGBA8, pixel.Unspecified)
	if err := rt.Resize(2, 2); err != nil {
		t.Fatal(err)
	}
	if err := rt.ClearDepthBuffer(0); err != nil {
		t.Errorf("ClearDepthBuffer = %v, want nil", err)
	}
	if rt.Ref().Depth != nil {
		t.Error("target without depth has a depth buffer")
	}
}

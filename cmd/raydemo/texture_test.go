package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/raypack/pixel"
	"github.com/gogpu/raypack/simd"
	"github.com/gogpu/raypack/texture"
)

func TestCheckerboard(t *testing.T) {
	a := [4]float32{1, 1, 1, 1}
	b := [4]float32{0, 0, 0, 1}
	tex, err := checkerboard(4, a, b)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y int
		want [4]float32
	}{
		{0, 0, a},
		{1, 0, b},
		{0, 1, b},
		{3, 3, a},
	}
	for _, tt := range tests {
		if got := tex.Texel(tt.x, tt.y); got != tt.want {
			t.Errorf("Texel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	tex, err := loadTexture(path, "nearest")
	if err != nil {
		t.Fatalf("loadTexture: %v", err)
	}
	if tex.Width() != 2 || tex.Height() != 1 {
		t.Errorf("size = %dx%d, want 2x1", tex.Width(), tex.Height())
	}
	if tex.Filter != texture.Nearest {
		t.Errorf("Filter = %v, want nearest", tex.Filter)
	}
	if tex.AddressU != gputypes.AddressModeRepeat || tex.AddressV != gputypes.AddressModeRepeat {
		t.Error("texture should repeat")
	}
	if got := tex.Texel(1, 0); got != [4]float32{0, 0, 1, 1} {
		t.Errorf("Texel(1, 0) = %v", got)
	}
}

func TestLoadTextureErrors(t *testing.T) {
	if _, err := loadTexture("", "bicubic"); err == nil {
		t.Error("expected error for unknown filter")
	}
	if _, err := loadTexture(filepath.Join(t.TempDir(), "missing.png"), "linear"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveFormats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	dir := t.TempDir()
	for _, name := range []string{"out.bmp", "out.tiff", "out.png"} {
		path := filepath.Join(dir, name)
		if err := save(path, img); err != nil {
			t.Errorf("save %s: %v", name, err)
			continue
		}
		if _, err := decodeTexture(path); err != nil {
			t.Errorf("decode %s: %v", name, err)
		}
	}
	gif := filepath.Join(dir, "out.gif")
	if err := save(gif, img); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := os.Stat(gif); !os.IsNotExist(err) {
		t.Errorf("unsupported format left a file behind: %v", err)
	}
}

func TestNewTargetKeepsFloatPrecision(t *testing.T) {
	rt, err := newTarget(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := rt.ColorFormat(); got != pixel.RGBA32F {
		t.Errorf("color format = %v, want RGBA32F", got)
	}
	if rt.Width() != 8 || rt.Height() != 4 {
		t.Errorf("size = %dx%d, want 8x4", rt.Width(), rt.Height())
	}
}

func TestRun(t *testing.T) {
	for _, shading := range []string{"ao", "simple"} {
		t.Run(shading, func(t *testing.T) {
			cfg := config{width: 16, height: 12, threads: 2, frames: 3, samples: 2, radius: 0.5,
				shading: shading, filter: "nearest", seed: 1}
			img, err := run[simd.W4](cfg)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
				t.Errorf("bounds = %v, want 16x12", b)
			}
			// Every pixel is written opaque, by a hit or by the background.
			for y := range 12 {
				for x := range 16 {
					if a := img.NRGBAAt(x, y).A; a != 255 {
						t.Fatalf("pixel (%d, %d) alpha = %d, want 255", x, y, a)
					}
				}
			}
		})
	}
	if _, err := run[simd.W4](config{width: 4, height: 4, frames: 1, shading: "toon"}); err == nil {
		t.Error("expected error for unknown shading")
	}
}

package sched

import (
	"fmt"

	"github.com/gogpu/raypack/pixel"
)

type samplerKind uint8

const (
	samplerUniform samplerKind = iota
	samplerJittered
	samplerJitteredBlend
	samplerProgressive
	samplerSSAA
)

// PixelSampler selects where primary rays pass through a pixel and how
// the result reaches the target. The zero value is Uniform.
type PixelSampler struct {
	kind     samplerKind
	src, dst float32
	samples  int
}

// Uniform shoots one ray through each pixel center and stores the result.
func Uniform() PixelSampler { return PixelSampler{kind: samplerUniform} }

// Jittered shoots one ray through a random point of each pixel and stores
// the result.
func Jittered() PixelSampler { return PixelSampler{kind: samplerJittered} }

// JitteredBlend shoots jittered rays and blends the result onto the
// target as src*result + dst*target.
func JitteredBlend(src, dst float32) PixelSampler {
	return PixelSampler{kind: samplerJitteredBlend, src: src, dst: dst}
}

// Progressive shoots jittered rays and keeps the running average over
// frames: frame n weighs 1/n. Frame numbers start at 1.
func Progressive() PixelSampler { return PixelSampler{kind: samplerProgressive} }

// SSAA averages n jittered rays per pixel and stores the result. n is at
// least 1.
func SSAA(n int) PixelSampler {
	return PixelSampler{kind: samplerSSAA, samples: max(n, 1)}
}

// String returns the sampler name.
func (s PixelSampler) String() string {
	switch s.kind {
	case samplerUniform:
		return "Uniform"
	case samplerJittered:
		return "Jittered"
	case samplerJitteredBlend:
		return fmt.Sprintf("JitteredBlend(%g, %g)", s.src, s.dst)
	case samplerProgressive:
		return "Progressive"
	case samplerSSAA:
		return fmt.Sprintf("SSAA(%d)", s.samples)
	default:
		return "Unknown"
	}
}

// Blends reports whether the sampler blends onto the target instead of
// storing.
func (s PixelSampler) Blends() bool {
	return s.kind == samplerJitteredBlend || s.kind == samplerProgressive
}

// jittered reports whether rays are offset randomly inside the pixel.
func (s PixelSampler) jittered() bool { return s.kind != samplerUniform }

// raysPerPixel returns the number of rays per pixel.
func (s PixelSampler) raysPerPixel() int {
	if s.kind == samplerSSAA {
		return max(s.samples, 1)
	}
	return 1
}

// blendFunc returns the blend applied in frame frameNum.
func (s PixelSampler) blendFunc(frameNum uint32) pixel.BlendFunc {
	if s.kind == samplerProgressive {
		return pixel.Progressive(frameNum)
	}
	return pixel.BlendFunc{Src: pixel.Scale(s.src), Dst: pixel.Scale(s.dst)}
}

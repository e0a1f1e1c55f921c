package simd

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// ISA names the widest vector instruction set detected on the host.
type ISA string

const (
	ISAScalar ISA = "scalar"
	ISASSE2   ISA = "sse2"
	ISAAVX    ISA = "avx"
	ISAAVX512 ISA = "avx512"
	ISANEON   ISA = "neon"
)

var (
	detectOnce  sync.Once
	detectedISA ISA
	nativeWidth int
)

func detect() {
	switch {
	case cpu.X86.HasAVX512F:
		detectedISA, nativeWidth = ISAAVX512, 16
	case cpu.X86.HasAVX:
		detectedISA, nativeWidth = ISAAVX, 8
	case cpu.X86.HasSSE2:
		detectedISA, nativeWidth = ISASSE2, 4
	case cpu.ARM64.HasASIMD:
		detectedISA, nativeWidth = ISANEON, 4
	default:
		detectedISA, nativeWidth = ISAScalar, 1
	}
}

// NativeWidth returns the lane count that matches the host's widest
// float32 vector registers: 16, 8, 4 or 1.
func NativeWidth() int {
	detectOnce.Do(detect)
	return nativeWidth
}

// DetectedISA returns the instruction set NativeWidth was derived from.
func DetectedISA() ISA {
	detectOnce.Do(detect)
	return detectedISA
}

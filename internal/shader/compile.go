// Package shader compiles the WGSL passes used by GPU render targets.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic = 0x07230203

// ErrInvalidSPIRV is returned when the compiler output is not a SPIR-V
// module.
var ErrInvalidSPIRV = errors.New("shader: invalid SPIR-V output")

// CompileWGSL compiles WGSL source to SPIR-V words.
func CompileWGSL(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to compile: %w", err)
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	if spirvCode[0] != SPIRVMagic {
		return nil, fmt.Errorf("%w: magic 0x%08X", ErrInvalidSPIRV, spirvCode[0])
	}

	return spirvCode, nil
}

// IsUnsupported reports whether err comes from a WGSL feature the
// compiler does not implement yet, as opposed to a malformed shader.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, s := range []string{"not yet implemented", "not supported", "lowering error", "atomic"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

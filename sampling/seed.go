package sampling

import "time"

const (
	golden     = 0x9E3779B97F4A7C15
	streamSalt = 0xD1B54A32D192ED03
)

// mix64 is the splitmix64 finalizer.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Seed derives the stream seed of the packet at (x, y) in frame frameNum.
// Distinct inputs give statistically independent streams.
func Seed(base uint64, frameNum uint32, x, y int) uint64 {
	h := mix64(base + golden)
	h = mix64(h ^ uint64(frameNum) + golden)
	h = mix64(h ^ uint64(uint32(x)) + golden)
	h = mix64(h ^ uint64(uint32(y)) + golden)
	return h
}

// WallClockSeed returns a base seed taken from the current time.
func WallClockSeed() uint64 {
	return mix64(uint64(time.Now().UnixNano()))
}

package cbor

import (
	"math"

	"github.com/x448/float16"
)

// encodeFloat16 converts f to its IEEE 754 half-precision bit pattern.
// Zero is handled by testing the sign bit directly, so +0 and -0 produce
// distinct bit patterns.
func encodeFloat16(f float64) uint16 {
	switch {
	case math.IsNaN(f):
		return 0x7E00
	case math.IsInf(f, 1):
		return 0x7C00
	case math.IsInf(f, -1):
		return 0xFC00
	case f == 0:
		if math.Signbit(f) {
			return 0x8000
		}
		return 0x0000
	default:
		return uint16(float16.Fromfloat32(float32(f)))
	}
}

func decodeFloat16(bits uint16) float64 {
	return float64(float16.Frombits(bits).Float32())
}

func decodeFloat32(bits uint32) float64 {
	return float64(math.Float32frombits(bits))
}

func decodeFloat64(bits uint64) float64 {
	return math.Float64frombits(bits)
}

// shortestFloatWidth picks the narrowest IEEE width (2, 4, or 8 bytes) that
// round-trips f exactly: half-precision is tried first, then single, then
// double. NaN and +/-Inf always take the half-precision encoding.
func shortestFloatWidth(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 2
	}
	h := float16.Fromfloat32(float32(f))
	if float64(h.Float32()) == f {
		return 2
	}
	f32 := float32(f)
	if float64(f32) == f {
		return 4
	}
	return 8
}

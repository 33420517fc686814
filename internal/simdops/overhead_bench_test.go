package simdops

import (
	"testing"

	"github.com/tphakala/simd/f32"
)

// benchTaps is the longest Lagrange halfband kernel (m=16).
const benchTaps = 63

func benchVectors() (a, c []float32) {
	a = make([]float32, benchTaps)
	c = make([]float32, benchTaps)
	for i := range a {
		a[i] = float32(i) * 0.01
		c[i] = float32(i) * 0.02
	}
	return a, c
}

// BenchmarkDirectF32DotProduct measures direct SIMD call overhead.
func BenchmarkDirectF32DotProduct(b *testing.B) {
	a, c := benchVectors()

	b.ReportAllocs()
	for b.Loop() {
		_ = f32.DotProductUnsafe(a, c)
	}
}

// BenchmarkIndirectF32DotProduct measures indirect call through Ops struct.
func BenchmarkIndirectF32DotProduct(b *testing.B) {
	ops := For[float32]()
	a, c := benchVectors()

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.DotProductUnsafe(a, c)
	}
}

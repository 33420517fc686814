package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{-1, 0},
		{0, 1},
		{1, 1},
		{2, 2},
		{5, 120},
		{10, 3628800},
		{20, 2432902008176640000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Factorial(tt.n), "n=%d", tt.n)
	}

	// 31! is the largest factorial used by the m=16 halfband.
	assert.InEpsilon(t, 8.22283865417792281e33, Factorial(31), 1e-15)
	assert.True(t, math.IsInf(Factorial(171), 1))
}

func TestLagrangeProduct(t *testing.T) {
	tests := []struct {
		m    int
		want float64
	}{
		{0, 1},
		{1, -0.25},
		{2, 0.5625},
		{3, -3.515625},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, LagrangeProduct(tt.m), 1e-12, "m=%d", tt.m)
	}
}

// TestLagrangeProduct_GammaIdentity checks |P| = (Γ(m+1/2)/Γ(1/2))² and sign (-1)^m.
func TestLagrangeProduct_GammaIdentity(t *testing.T) {
	for m := 1; m <= 16; m++ {
		ratio := math.Gamma(float64(m)+0.5) / math.Gamma(0.5)
		want := AlternatingSign(m) * ratio * ratio
		assert.InEpsilon(t, want, LagrangeProduct(m), 1e-12, "m=%d", m)
	}
}

func TestAlternatingSign(t *testing.T) {
	assert.Equal(t, 1.0, AlternatingSign(0))
	assert.Equal(t, -1.0, AlternatingSign(1))
	assert.Equal(t, 1.0, AlternatingSign(4))
	assert.Equal(t, -1.0, AlternatingSign(7))
	assert.Equal(t, -1.0, AlternatingSign(-3))
}

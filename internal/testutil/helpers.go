// Package testutil provides reusable test helper functions for the wavelet
// packages. Helpers accept float32 or float64 slices.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	Float32Tolerance = 1e-6
	CoeffTolerance   = 1e-5
	DBTolerance      = 0.01
)

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// Float is the element constraint of the helpers.
type Float interface {
	float32 | float64
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric[F Float](t *testing.T, s []F, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/halfDivisor; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, float64(s[i]), float64(s[j]), tolerance,
			"slice not symmetric at i=%d: s[%d]=%g != s[%d]=%g", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F Float](t *testing.T, s []F) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertDCGain verifies that the sum of coefficients equals the expected
// DC gain. The sum is accumulated in float64.
func AssertDCGain[F Float](t *testing.T, coeffs []F, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += float64(c)
	}
	return assert.InDelta(t, expectedGain, sum, tolerance,
		"DC gain = %g, want %g", sum, expectedGain)
}

// AssertCenterIsMax verifies that the center element is the maximum value.
func AssertCenterIsMax[F Float](t *testing.T, s []F) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	centerIdx := len(s) / halfDivisor
	centerValue := s[centerIdx]
	for i, v := range s {
		if v > centerValue {
			return assert.Fail(t, "center is not max",
				"s[%d]=%g > center s[%d]=%g", i, v, centerIdx, centerValue)
		}
	}
	return true
}

// AssertOddLength verifies that a slice has an odd length.
func AssertOddLength[F Float](t *testing.T, s []F) bool {
	t.Helper()
	return assert.Equal(t, 1, len(s)%halfDivisor, "slice length %d is not odd", len(s))
}

// AssertSlicesInDelta compares two slices element by element.
func AssertSlicesInDelta[F Float](t *testing.T, expected, actual []F, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, float64(expected[i]), float64(actual[i]), tolerance, "index %d", i) {
			return false
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// Impulse returns a unit impulse of length n.
func Impulse(n int) []float32 {
	x := make([]float32, n)
	if n > 0 {
		x[0] = 1
	}
	return x
}

// Sine returns n samples of amplitude·sin(2π·freq·i), freq in cycles per sample.
func Sine(n int, freq, amplitude float64) []float32 {
	x := make([]float32, n)
	for i := range x {
		x[i] = float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)))
	}
	return x
}

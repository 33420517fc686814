// Package mathutil provides the closed-form arithmetic behind filter design.
package mathutil

import "math"

// Factorial returns n! as a float64.
//
// The product is accumulated in float64, which keeps every factorial needed
// by the Lagrange formula (at most 31! for m=16) within one rounding of the
// true value. Negative n yields 0 and n > 170 yields +Inf.
func Factorial(n int) float64 {
	if n < 0 {
		return 0
	}
	if n > maxExactFactorial {
		return math.Inf(1)
	}
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

// LagrangeProduct returns Π_{k=1}^{2m} (m - k + 1/2).
//
// The factors run symmetrically from m-1/2 down to -(m-1/2), so the result
// is ±(Γ(m+1/2)/Γ(1/2))² with sign (-1)^m. Non-positive m yields the empty
// product 1.
func LagrangeProduct(m int) float64 {
	product := 1.0
	for k := 1; k <= lagrangeProductSpan*m; k++ {
		product *= float64(m-k) + lagrangeHalfStep
	}
	return product
}

// AlternatingSign returns (-1)^n.
func AlternatingSign(n int) float64 {
	if n%2 == 0 {
		return 1
	}
	return -1
}

package mathutil

// Lagrange halfband formula constants
const (
	// lagrangeHalfStep is the half-sample offset in Π(m-k+1/2).
	lagrangeHalfStep = 0.5

	// lagrangeProductSpan is the product length factor: k runs 1..2m.
	lagrangeProductSpan = 2
)

// maxExactFactorial is the largest n whose factorial is representable
// exactly enough in float64 for coefficient synthesis (170! overflows).
const maxExactFactorial = 170

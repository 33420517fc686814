package filter

// Coefficient storage limits
const (
	// MaxTaps is the per-filter coefficient capacity. The longest generated
	// kernel is the m=16 Lagrange halfband with 63 taps.
	MaxTaps = 64

	// MinLagrangeOrder is the smallest valid Lagrange halfband order m.
	MinLagrangeOrder = 1

	// MaxLagrangeOrder is the largest Lagrange order that fits in MaxTaps.
	MaxLagrangeOrder = 16
)

// Lagrange halfband layout constants
const (
	// lagrangeTapsPerOrder and lagrangeTapsOffset give the length 4m-1.
	lagrangeTapsPerOrder = 4
	lagrangeTapsOffset   = 1

	// lagrangeCenterTap is the value of the center coefficient.
	lagrangeCenterTap = 0.5

	// oddOffsetStep maps l to the odd offset 2l-1 from the center.
	oddOffsetStep = 2
)

// Daubechies table lengths
const (
	daubechies4Taps = 4
	daubechies8Taps = 8
)

// Frequency response constants
const (
	defaultResponsePoints = 512
	nyquistDivisor        = 2
	minMagnitude          = 1e-10 // Avoid log(0)
	dbMultiplier          = 20.0  // 20*log10 for magnitude
)

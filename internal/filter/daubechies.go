package filter

// Daubechies scaling (lowpass) filters, orthonormal: Σh = √2, Σh² = 1.
var (
	// Daubechies4H0 holds the D4 scaling filter, (1±√3)/(4√2), (3±√3)/(4√2).
	Daubechies4H0 = [daubechies4Taps]float32{
		0.48296291314469025,
		0.83651630373746899,
		0.22414386804185735,
		-0.12940952255092145,
	}

	// Daubechies8H0 holds the D8 scaling filter.
	Daubechies8H0 = [daubechies8Taps]float32{
		0.23037781330885523,
		0.71484657055254153,
		0.63088076792959036,
		-0.02798376941698385,
		-0.18703481171888114,
		0.03084138183598697,
		0.03288301166698295,
		-0.01059740178500278,
	}
)

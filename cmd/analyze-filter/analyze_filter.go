package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/tphakala/go-wavelet/internal/filter"
)

const (
	// Response grid
	defaultPoints = 256

	// Display limits
	maxTapsToShow  = 16
	responseSteps  = 8   // Rows between DC and Nyquist
	powerTolerance = 1e-3 // Allowed deviation of |H0|²+|H1|² from its mean
)

func main() {
	kindName := flag.String("filter", "lagrange", "Filter: lagrange, db4, db8")
	order := flag.Int("order", 3, "Lagrange order m (1-16)")
	points := flag.Int("points", defaultPoints, "Frequency response points")
	flag.Parse()

	kind, err := parseKind(*kindName)
	if err != nil {
		log.Fatal(err)
	}

	var c filter.Coefficients
	if err := filter.Generate(kind, *order, &c); err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Analyzing Analysis Filter Pair ===")
	fmt.Printf("Filter: %s", c.Kind)
	if c.Kind == filter.KindLagrange {
		fmt.Printf(" (m=%d)", c.Order)
	}
	fmt.Printf("\nTaps: %d\n\n", c.N)

	h0 := c.Lowpass()
	h1 := c.Highpass()

	fmt.Println("Coefficients:")
	fmt.Println("    n           H0            H1")
	for n := range min(c.N, maxTapsToShow) {
		fmt.Printf("  %3d  %+.10f  %+.10f\n", n, h0[n], h1[n])
	}
	if c.N > maxTapsToShow {
		fmt.Printf("  ... (%d more taps)\n", c.N-maxTapsToShow)
	}

	fmt.Printf("\nLowpass DC gain:  %+.10f\n", filter.DCGain(h0))
	fmt.Printf("Highpass DC gain: %+.10f\n", filter.DCGain(h1))
	fmt.Printf("Lowpass energy:   %.10f\n", filter.Energy(h0))
	fmt.Printf("Highpass energy:  %.10f\n", filter.Energy(h1))

	r0 := filter.FrequencyResponse(h0, *points)
	r1 := filter.FrequencyResponse(h1, *points)

	fmt.Println("\nMagnitude response:")
	fmt.Println("  freq      H0 (dB)    H1 (dB)   |H0|²+|H1|²")
	last := len(r0.Magnitude) - 1
	step := max(1, last/responseSteps)
	for k := 0; k <= last; k += step {
		fmt.Printf("  %.4f  %9.3f  %9.3f  %.6f\n",
			r0.Frequencies[k],
			filter.MagnitudeDB(r0.Magnitude[k]),
			filter.MagnitudeDB(r1.Magnitude[k]),
			power(r0, r1, k))
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for k := range r0.Magnitude {
		p := power(r0, r1, k)
		lo = min(lo, p)
		hi = max(hi, p)
	}
	fmt.Printf("\nMean power: |H0|² %.6f, |H1|² %.6f\n", filter.MeanPower(r0), filter.MeanPower(r1))
	fmt.Printf("Power complementarity: min %.6f, max %.6f", lo, hi)
	if hi-lo <= powerTolerance*hi {
		fmt.Println(" (power complementary)")
	} else {
		fmt.Println()
	}
}

func power(r0, r1 filter.Response, k int) float64 {
	return r0.Magnitude[k]*r0.Magnitude[k] + r1.Magnitude[k]*r1.Magnitude[k]
}

func parseKind(s string) (filter.Kind, error) {
	for _, k := range []filter.Kind{filter.KindLagrange, filter.KindDaubechies4, filter.KindDaubechies8} {
		if s == k.String() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown filter %q (lagrange, db4, db8)", s)
}

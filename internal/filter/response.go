package filter

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-wavelet/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Response holds a filter's frequency response on [0, Nyquist].
type Response struct {
	Frequencies []float64 // Normalized frequencies (0 to 0.5)
	Magnitude   []float64 // Linear magnitude
	Phase       []float64 // Phase in radians
}

// FrequencyResponse evaluates the response of a FIR filter at numPoints+1
// evenly spaced frequencies from DC to Nyquist inclusive.
//
// The taps are zero-padded to an FFT of 2·numPoints points, doubled until
// it holds every tap. numPoints <= 0 selects 512.
func FrequencyResponse(coeffs []float32, numPoints int) Response {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}
	size := nyquistDivisor * numPoints
	for size < len(coeffs) {
		size *= nyquistDivisor
	}

	seq := make([]float64, size)
	for i, h := range coeffs {
		seq[i] = float64(h)
	}

	fft := fourier.NewFFT(size)
	bins := fft.Coefficients(nil, seq)

	response := Response{
		Frequencies: make([]float64, len(bins)),
		Magnitude:   make([]float64, len(bins)),
		Phase:       make([]float64, len(bins)),
	}
	for k, c := range bins {
		response.Frequencies[k] = float64(k) / float64(size)
		response.Magnitude[k] = cmplx.Abs(c)
		response.Phase[k] = cmplx.Phase(c)
	}
	return response
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}

// DCGain returns Σh, the filter's gain at zero frequency.
func DCGain(coeffs []float32) float32 {
	if len(coeffs) == 0 {
		return 0
	}
	return simdops.Float32Ops().Sum(coeffs)
}

// Energy returns Σh². Orthonormal filters have unit energy.
func Energy(coeffs []float32) float32 {
	if len(coeffs) == 0 {
		return 0
	}
	return simdops.Float32Ops().DotProductUnsafe(coeffs, coeffs)
}

// MeanPower returns the average of |H|² over the response grid.
func MeanPower(r Response) float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}
	return simdops.Float64Ops().DotProductUnsafe(r.Magnitude, r.Magnitude) / float64(len(r.Magnitude))
}

package fir

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-wavelet/internal/simdops"
)

var (
	// ErrMissingCoefficients indicates an empty or nil coefficient set.
	ErrMissingCoefficients = errors.New("fir: missing coefficients")

	// ErrTooManyTaps indicates a coefficient set longer than MaxTaps.
	ErrTooManyTaps = errors.New("fir: tap count exceeds maximum")
)

// Filter is a stateful FIR filter over a circular delay line.
// The zero value is the neutral filter.
type Filter struct {
	// kernel holds the coefficients reversed so that kernel[N-1-k] = h[k]
	// lines up with a DelayLine window ordered oldest to newest.
	kernel [MaxTaps]float32
	taps   int
	delay  DelayLine
	valid  bool
	ops    *simdops.Ops32
}

// New builds a filter from coeffs. On error the returned filter is the
// neutral filter, which outputs 0 for every sample.
func New(coeffs []float32) (Filter, error) {
	var f Filter
	err := f.Init(coeffs)
	return f, err
}

// Init (re)configures f in place: the coefficients are copied, the delay line
// is zero-filled and the cursor rewound. Init does not allocate.
func (f *Filter) Init(coeffs []float32) error {
	f.valid = false
	f.taps = 0
	f.delay.Init(0)

	switch {
	case len(coeffs) == 0:
		return ErrMissingCoefficients
	case len(coeffs) > MaxTaps:
		return fmt.Errorf("%w: %d taps (maximum %d)", ErrTooManyTaps, len(coeffs), MaxTaps)
	}

	n := len(coeffs)
	for k, c := range coeffs {
		f.kernel[n-1-k] = c
	}
	clear(f.kernel[n:])
	f.taps = n
	f.delay.Init(n)
	f.ops = simdops.Float32Ops()
	f.valid = true
	return nil
}

// Process writes x into the delay line and returns the filtered sample.
// A neutral filter returns 0 without touching any buffer.
func (f *Filter) Process(x float32) float32 {
	if !f.valid {
		return 0
	}
	f.delay.Push(x)
	return f.ops.DotProductUnsafe(f.delay.Window(), f.kernel[:f.taps])
}

// Reset zero-fills the delay line, keeping the coefficients.
func (f *Filter) Reset() {
	f.delay.Reset()
}

// Valid reports whether the filter was built from a usable coefficient set.
func (f *Filter) Valid() bool {
	return f.valid
}

// Taps returns the filter length, 0 for the neutral filter.
func (f *Filter) Taps() int {
	return f.taps
}

// Coefficients copies the taps in natural order (h[0] first) into dst and
// returns the number of values written.
func (f *Filter) Coefficients(dst []float32) int {
	n := min(len(dst), f.taps)
	for k := range n {
		dst[k] = f.kernel[f.taps-1-k]
	}
	return n
}

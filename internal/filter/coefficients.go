// Package filter generates the analysis filter pairs used by the wavelet
// decomposition: Lagrange halfband lowpass filters synthesized from their
// closed form, fixed Daubechies-4/8 tables, and the quadrature-mirror
// highpass derived from either.
package filter

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-wavelet/internal/mathutil"
)

// Kind identifies a lowpass prototype family.
type Kind int

const (
	// KindLagrange is the Lagrange halfband family, parameterized by order m.
	KindLagrange Kind = iota

	// KindDaubechies4 is the 4-tap Daubechies scaling filter.
	KindDaubechies4

	// KindDaubechies8 is the 8-tap Daubechies scaling filter.
	KindDaubechies8
)

// String returns the conventional short name of the filter family.
func (k Kind) String() string {
	switch k {
	case KindLagrange:
		return "lagrange"
	case KindDaubechies4:
		return "db4"
	case KindDaubechies8:
		return "db8"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrInvalidOrder indicates a Lagrange order outside the supported range.
	ErrInvalidOrder = errors.New("filter: invalid lagrange order")

	// ErrUnknownKind indicates an unrecognized filter family.
	ErrUnknownKind = errors.New("filter: unknown filter kind")

	// ErrBufferTooSmall indicates a missing or undersized output buffer.
	ErrBufferTooSmall = errors.New("filter: output buffer too small")
)

// Coefficients is a QMF analysis pair stored in fixed arrays.
//
// H0 is the lowpass (scaling) filter and H1 the highpass (wavelet) filter,
// related by H1[n] = (-1)^n · H0[N-1-n].
type Coefficients struct {
	// Kind is the lowpass prototype family.
	Kind Kind

	// Order is the Lagrange order m, or 0 for fixed tables.
	Order int

	// N is the number of taps in both filters.
	N int

	H0 [MaxTaps]float32
	H1 [MaxTaps]float32
}

// Lowpass returns the N lowpass taps. The slice aliases c.
func (c *Coefficients) Lowpass() []float32 {
	return c.H0[:c.N]
}

// Highpass returns the N highpass taps. The slice aliases c.
func (c *Coefficients) Highpass() []float32 {
	return c.H1[:c.N]
}

// Reset zeroes every field.
func (c *Coefficients) Reset() {
	*c = Coefficients{}
}

// LagrangeTaps returns the length 4m-1 of the order-m Lagrange halfband.
func LagrangeTaps(m int) int {
	return lagrangeTapsPerOrder*m - lagrangeTapsOffset
}

// Taps returns the filter length for kind at the given order.
func Taps(kind Kind, order int) (int, error) {
	switch kind {
	case KindLagrange:
		if order < MinLagrangeOrder || order > MaxLagrangeOrder {
			return 0, fmt.Errorf("%w: m=%d (must be %d-%d)",
				ErrInvalidOrder, order, MinLagrangeOrder, MaxLagrangeOrder)
		}
		return LagrangeTaps(order), nil
	case KindDaubechies4:
		return daubechies4Taps, nil
	case KindDaubechies8:
		return daubechies8Taps, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// Lagrange writes the 4m-1 taps of the order-m Lagrange halfband lowpass
// filter into h0:
//
//	H0(z) = 1/2 + Σ_{l=1}^{m} h(2l-1) · (z^{-(2l-1)} + z^{2l-1})
//	h(2l-1) = (-1)^{l+m-1} · Π_{k=1}^{2m}(m-k+1/2) / ((m-l)! (m-1+l)! (2l-1))
//
// The center tap is 0.5 and every tap at an even, non-zero offset from the
// center is exactly zero. Coefficients are computed in float64 and rounded
// once to float32.
func Lagrange(m int, h0 []float32) error {
	if m < MinLagrangeOrder {
		return fmt.Errorf("%w: m=%d (must be >= %d)", ErrInvalidOrder, m, MinLagrangeOrder)
	}
	taps := LagrangeTaps(m)
	if len(h0) < taps {
		return fmt.Errorf("%w: need %d taps, have %d", ErrBufferTooSmall, taps, len(h0))
	}

	clear(h0[:taps])
	center := taps / 2
	h0[center] = lagrangeCenterTap

	product := mathutil.LagrangeProduct(m)
	for l := 1; l <= m; l++ {
		offset := oddOffsetStep*l - 1
		denom := mathutil.Factorial(m-l) * mathutil.Factorial(m-1+l) * float64(offset)
		h := float32(mathutil.AlternatingSign(l+m-1) * product / denom)

		h0[center-offset] = h
		h0[center+offset] = h
	}

	return nil
}

// QMF derives the quadrature-mirror highpass of h0 into h1:
// h1[n] = (-1)^n · h0[N-1-n], N = len(h0).
func QMF(h0, h1 []float32) error {
	n := len(h0)
	if n == 0 {
		return fmt.Errorf("%w: empty lowpass filter", ErrBufferTooSmall)
	}
	if len(h1) < n {
		return fmt.Errorf("%w: need %d taps, have %d", ErrBufferTooSmall, n, len(h1))
	}

	for i := range n {
		v := h0[n-1-i]
		if i%2 != 0 {
			v = -v
		}
		h1[i] = v
	}
	return nil
}

// Generate fills c with the analysis pair of the given family. order is the
// Lagrange m and is ignored for the Daubechies tables. On error c is left
// zeroed.
func Generate(kind Kind, order int, c *Coefficients) error {
	if c == nil {
		return fmt.Errorf("%w: nil coefficient set", ErrBufferTooSmall)
	}
	c.Reset()

	n, err := Taps(kind, order)
	if err != nil {
		return err
	}

	switch kind {
	case KindLagrange:
		err = Lagrange(order, c.H0[:n])
	case KindDaubechies4:
		copy(c.H0[:n], Daubechies4H0[:])
	case KindDaubechies8:
		copy(c.H0[:n], Daubechies8H0[:])
	}
	if err == nil {
		err = QMF(c.H0[:n], c.H1[:n])
	}
	if err != nil {
		c.Reset()
		return err
	}

	c.Kind = kind
	c.N = n
	if kind == KindLagrange {
		c.Order = order
	}
	return nil
}

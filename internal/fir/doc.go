// Package fir implements the direct-form FIR convolution core used by every
// analysis level.
//
// A [Filter] owns a fixed-capacity circular [DelayLine] and a private copy of
// its coefficients, so filtering a sample never allocates and never touches
// memory owned by another filter. The output for input x[n] is
//
//	y[n] = Σ_{k=0}^{N-1} h[k] · x[n-k]
//
// with h[0] paired with the most recently written sample.
//
// A filter built from missing or oversized coefficients degrades to the
// neutral filter: it reports Valid() == false and always returns 0.
package fir

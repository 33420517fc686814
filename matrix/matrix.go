// Package matrix implements the two dense matrix operations the network
// and statistics code is built on, over gonum's mat.Dense. Result matrices
// are preallocated by the caller and never resized; on any error the
// result is zero-filled.
package matrix

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrMissingOperand indicates a nil or empty operand or result.
	ErrMissingOperand = errors.New("matrix: missing operand")

	// ErrDimensionMismatch indicates operand shapes that do not conform.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)

// Product computes c = a·b for a (r×k), b (k×m) and c (r×m).
// c must not alias a or b.
func Product(a, b, c *mat.Dense) error {
	if err := present(a, b, c); err != nil {
		return err
	}

	ar, ac := a.Dims()
	br, bc := b.Dims()
	cr, cc := c.Dims()
	if ac != br || cr != ar || cc != bc {
		c.Zero()
		return fmt.Errorf("%w: (%d×%d)·(%d×%d) into %d×%d", ErrDimensionMismatch, ar, ac, br, bc, cr, cc)
	}

	c.Mul(a, b)
	return nil
}

// AddSub computes c = a + b when sign >= 0 and c = a - b when sign < 0.
// All three matrices must share one shape.
func AddSub(a, b, c *mat.Dense, sign int) error {
	if err := present(a, b, c); err != nil {
		return err
	}

	ar, ac := a.Dims()
	br, bc := b.Dims()
	cr, cc := c.Dims()
	if ar != br || ac != bc || ar != cr || ac != cc {
		c.Zero()
		return fmt.Errorf("%w: %d×%d and %d×%d into %d×%d", ErrDimensionMismatch, ar, ac, br, bc, cr, cc)
	}

	if sign >= 0 {
		c.Add(a, b)
	} else {
		c.Sub(a, b)
	}
	return nil
}

// present checks every operand; a usable c is zero-filled on failure.
func present(a, b, c *mat.Dense) error {
	if c == nil || c.IsEmpty() {
		return fmt.Errorf("%w: result", ErrMissingOperand)
	}
	if a == nil || a.IsEmpty() {
		c.Zero()
		return fmt.Errorf("%w: left operand", ErrMissingOperand)
	}
	if b == nil || b.IsEmpty() {
		c.Zero()
		return fmt.Errorf("%w: right operand", ErrMissingOperand)
	}
	return nil
}

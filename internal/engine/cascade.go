package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidLevels indicates a level count outside [MinLevels, MaxLevels].
var ErrInvalidLevels = errors.New("engine: invalid level count")

// Frame is the result of pushing one input sample through a Cascade.
//
// Detail[i] is meaningful only when DetailReady[i] is set. Approximation is
// meaningful only when Ready is set, which happens when the deepest level
// emits. Entries at or beyond Levels are always zero.
type Frame struct {
	Detail        [MaxLevels]float32
	DetailReady   [MaxLevels]bool
	Approximation float32
	Ready         bool
	Levels        int
}

// Clear zeroes the frame and records the active level count.
func (f *Frame) Clear(levels int) {
	*f = Frame{Levels: levels}
}

// Cascade chains Levels on the lowpass branch: level 0 sees the input
// rate Fs, level i sees Fs/2^i and emits at Fs/2^(i+1).
type Cascade struct {
	levels [MaxLevels]Level
	n      int
}

// Init builds a cascade of the given depth, every level sharing the
// analysis pair (h0, h1). On error the cascade is left empty.
func (c *Cascade) Init(levels int, h0, h1 []float32) error {
	*c = Cascade{}
	if levels < MinLevels || levels > MaxLevels {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidLevels, levels, MinLevels, MaxLevels)
	}

	for i := range levels {
		if err := c.levels[i].Init(h0, h1); err != nil {
			*c = Cascade{}
			return fmt.Errorf("level %d: %w", i, err)
		}
	}
	c.n = levels
	return nil
}

// Push feeds one input sample and fills out. Level i > 0 consumes a sample
// only when level i-1 emitted on this call, and that sample is level i-1's
// approximation.
func (c *Cascade) Push(x float32, out *Frame) {
	out.Clear(c.n)

	in := x
	for i := 0; i < c.n; i++ {
		approx, detail, emitted := c.levels[i].Step(in)
		if !emitted {
			return
		}
		out.Detail[i] = detail
		out.DetailReady[i] = true
		in = approx
	}

	if c.n > 0 {
		out.Approximation = in
		out.Ready = true
	}
}

// Reset returns every level to its initial state, keeping coefficients and
// depth.
func (c *Cascade) Reset() {
	for i := 0; i < c.n; i++ {
		c.levels[i].Reset()
	}
}

// Levels returns the cascade depth, 0 for an uninitialized cascade.
func (c *Cascade) Levels() int {
	return c.n
}

// Level returns level i, or nil when i is out of range.
func (c *Cascade) Level(i int) *Level {
	if i < 0 || i >= c.n {
		return nil
	}
	return &c.levels[i]
}

// Period returns the number of input samples between two approximation
// outputs, 2^Levels.
func (c *Cascade) Period() int {
	if c.n == 0 {
		return 0
	}
	return detailPeriod(c.n - 1)
}

// detailPeriod returns the number of input samples between two detail
// outputs of level i, 2^(i+1).
func detailPeriod(level int) int {
	if level < 0 {
		return 0
	}
	return 1 << (level + 1)
}

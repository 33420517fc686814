package fir

// DelayLine is a fixed-capacity circular buffer holding the N most recent
// samples of a stream.
//
// Each sample is written at cursor and cursor+N, so after a Push the window
// buf[cursor : cursor+N] holds the retained samples from oldest to newest.
// That keeps convolution a single contiguous dot product with plain index
// arithmetic.
type DelayLine struct {
	buf    [MaxTaps * mirrorFactor]float32
	n      int
	cursor int
}

// Init sizes the line to n samples, zero-fills it and rewinds the cursor.
// n is clamped to [0, MaxTaps].
func (d *DelayLine) Init(n int) {
	switch {
	case n < 0:
		n = 0
	case n > MaxTaps:
		n = MaxTaps
	}
	d.n = n
	d.Reset()
}

// Push overwrites the oldest sample with x.
func (d *DelayLine) Push(x float32) {
	if d.n == 0 {
		return
	}
	d.buf[d.cursor] = x
	d.buf[d.cursor+d.n] = x
	d.cursor++
	if d.cursor == d.n {
		d.cursor = 0
	}
}

// Window returns the retained samples ordered oldest to newest.
// The slice aliases internal storage and is only valid until the next Push.
func (d *DelayLine) Window() []float32 {
	return d.buf[d.cursor : d.cursor+d.n]
}

// Len returns the number of retained samples.
func (d *DelayLine) Len() int {
	return d.n
}

// Reset zero-fills the line and rewinds the cursor. The length is kept.
func (d *DelayLine) Reset() {
	clear(d.buf[:d.n*mirrorFactor])
	d.cursor = 0
}

// Package engine implements the streaming two-channel analysis filter bank:
// a single decimate-by-two level and the cascade that chains levels on the
// lowpass branch.
package engine

import (
	"fmt"

	"github.com/tphakala/go-wavelet/internal/fir"
)

// Phase is the decimation state of a Level.
type Phase uint8

const (
	// PhaseAwaitingSample means the next input completes nothing; the level
	// only filters it.
	PhaseAwaitingSample Phase = iota

	// PhaseEmitting means the next input completes a pair and the level
	// will emit one approximation and one detail value.
	PhaseEmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSample:
		return "awaiting"
	case PhaseEmitting:
		return "emitting"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Level is one decimate-by-two analysis stage: a lowpass and a highpass FIR
// fed the same input, with outputs kept on every second sample.
type Level struct {
	lowpass  fir.Filter
	highpass fir.Filter
	phase    Phase

	// Last emitted values.
	approx float32
	detail float32
}

// Init configures the level with the analysis pair h0 (lowpass) and h1
// (highpass) and puts it in PhaseAwaitingSample with empty delay lines.
func (l *Level) Init(h0, h1 []float32) error {
	*l = Level{}
	if err := l.lowpass.Init(h0); err != nil {
		return fmt.Errorf("lowpass: %w", err)
	}
	if err := l.highpass.Init(h1); err != nil {
		l.lowpass = fir.Filter{}
		return fmt.Errorf("highpass: %w", err)
	}
	return nil
}

// Step filters x through both branches. On every second call it latches the
// lowpass output as the approximation and the highpass output as the
// detail, and reports emitted = true.
func (l *Level) Step(x float32) (approx, detail float32, emitted bool) {
	lp := l.lowpass.Process(x)
	hp := l.highpass.Process(x)

	if l.phase == PhaseAwaitingSample {
		l.phase = PhaseEmitting
		return 0, 0, false
	}

	l.approx = lp
	l.detail = hp
	l.phase = PhaseAwaitingSample
	return lp, hp, true
}

// Reset clears both delay lines and the latched outputs and returns the
// level to PhaseAwaitingSample. Coefficients are kept.
func (l *Level) Reset() {
	l.lowpass.Reset()
	l.highpass.Reset()
	l.phase = PhaseAwaitingSample
	l.approx = 0
	l.detail = 0
}

// Phase returns the current decimation state.
func (l *Level) Phase() Phase {
	return l.phase
}

// Last returns the most recently emitted approximation and detail.
func (l *Level) Last() (approx, detail float32) {
	return l.approx, l.detail
}

// Taps returns the lowpass filter length.
func (l *Level) Taps() int {
	return l.lowpass.Taps()
}

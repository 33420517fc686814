// Package moments computes streaming statistical moments over a sliding
// window: mean, variance, skewness and kurtosis, each as a moving average
// of the appropriate power of the deviation from the running mean.
//
// A Service owns a fixed pool of MaxServices sessions. Sessions are
// handed out next-fit: the search for a free slot starts after the slot
// handed out last.
package moments

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-wavelet/internal/simdops"
	"github.com/tphakala/go-wavelet/internal/slots"
)

const (
	// MaxServices is the number of sessions a Service can hold.
	MaxServices = 4

	// WindowSize is the moving-average length in samples.
	WindowSize = 64

	invWindowSize = float32(1) / WindowSize

	// minNormalVariance is the smallest normal float32. Below it the
	// variance is denormal and its higher powers underflow.
	minNormalVariance = 0x1p-126
)

// Handle identifies a session within a Service.
type Handle int

// InvalidHandle is returned by Subscribe on failure.
const InvalidHandle Handle = slots.InvalidHandle

var (
	// ErrPoolExhausted indicates that every session slot is in use.
	ErrPoolExhausted = errors.New("moments: session pool exhausted")

	// ErrInvalidHandle indicates an out-of-range or unsubscribed handle.
	ErrInvalidHandle = errors.New("moments: invalid handle")

	// ErrZeroVariance indicates that the windowed variance is zero or
	// denormal, so skewness and kurtosis are undefined and reported as 0.
	ErrZeroVariance = errors.New("moments: zero variance")
)

// Moments is one set of windowed statistics.
type Moments struct {
	Mean     float32
	Variance float32
	Skewness float32
	Kurtosis float32
}

// window is a WindowSize-sample moving average. Unwritten entries count
// as zero, so the average ramps up over the first WindowSize samples.
type window struct {
	buf [WindowSize]float32
	pos int
}

func (w *window) push(ops *simdops.Ops32, x float32) float32 {
	w.buf[w.pos] = x
	w.pos = (w.pos + 1) % WindowSize
	return ops.Sum(w.buf[:]) * invWindowSize
}

type session struct {
	mean     window
	variance window
	skewness window
	kurtosis window
	last     Moments
}

// Service manages a fixed pool of moment sessions.
type Service struct {
	pool *slots.Arena[session]
	ops  *simdops.Ops32
}

// NewService creates a service with every session free.
func NewService() *Service {
	return &Service{
		pool: slots.New[session](MaxServices),
		ops:  simdops.Float32Ops(),
	}
}

// Subscribe claims a session with empty windows.
func (s *Service) Subscribe() (Handle, error) {
	h, _, err := s.pool.AcquireNext()
	if err != nil {
		return InvalidHandle, fmt.Errorf("%w: %w", ErrPoolExhausted, err)
	}
	return Handle(h), nil
}

// Unsubscribe clears the session and returns it to the pool.
func (s *Service) Unsubscribe(h Handle) error {
	if err := s.pool.Release(int(h)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHandle, err)
	}
	return nil
}

// Compute pushes x and returns the updated moments.
//
// When the windowed variance is zero, or too small for σ³ and σ⁴ to be
// represented, Compute returns the mean and variance with zero skewness
// and kurtosis, together with ErrZeroVariance. The skewness and kurtosis
// windows are not advanced in that case.
func (s *Service) Compute(h Handle, x float32) (Moments, error) {
	sess, err := s.session(h)
	if err != nil {
		return Moments{}, err
	}

	var m Moments
	m.Mean = sess.mean.push(s.ops, x)
	d := x - m.Mean
	d2 := d * d
	m.Variance = sess.variance.push(s.ops, d2)

	if m.Variance < minNormalVariance {
		sess.last = m
		return m, ErrZeroVariance
	}

	sigma := float32(math.Sqrt(float64(m.Variance)))
	sigma3 := sigma * sigma * sigma
	v2 := m.Variance * m.Variance
	if sigma3 <= 0 || v2 <= 0 {
		sess.last = m
		return m, ErrZeroVariance
	}

	m.Skewness = sess.skewness.push(s.ops, d2*d) / sigma3
	m.Kurtosis = sess.kurtosis.push(s.ops, d2*d2) / v2
	sess.last = m
	return m, nil
}

// Snapshot returns the moments produced by the last Compute call.
func (s *Service) Snapshot(h Handle) (Moments, error) {
	sess, err := s.session(h)
	if err != nil {
		return Moments{}, err
	}
	return sess.last, nil
}

// Reset empties every window of the session.
func (s *Service) Reset(h Handle) error {
	sess, err := s.session(h)
	if err != nil {
		return err
	}
	*sess = session{}
	return nil
}

// Active returns the number of subscribed sessions.
func (s *Service) Active() int {
	return s.pool.Active()
}

// Capacity returns the pool size.
func (s *Service) Capacity() int {
	return s.pool.Capacity()
}

func (s *Service) session(h Handle) (*session, error) {
	sess, err := s.pool.Get(int(h))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHandle, err)
	}
	return sess, nil
}

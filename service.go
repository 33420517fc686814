package wavelet

import (
	"fmt"

	"github.com/tphakala/go-wavelet/internal/engine"
	"github.com/tphakala/go-wavelet/internal/filter"
	"github.com/tphakala/go-wavelet/internal/simdops"
	"github.com/tphakala/go-wavelet/internal/slots"
)

// session is one slot of the service pool.
type session struct {
	config  Config
	coeffs  filter.Coefficients
	cascade engine.Cascade
}

// Service manages a fixed pool of MaxServices decomposition sessions.
type Service struct {
	pool *slots.Arena[session]
}

// NewService creates a service with every session free. All session
// storage is allocated here.
func NewService() *Service {
	return &Service{pool: slots.New[session](MaxServices)}
}

// Subscribe validates cfg, claims the lowest free session, generates the
// analysis filter pair once and clears every level. On failure it returns
// InvalidHandle.
func (s *Service) Subscribe(cfg Config) (Handle, error) {
	if err := cfg.Validate(); err != nil {
		return InvalidHandle, err
	}
	kind, _ := cfg.Filter.kind()

	h, sess, err := s.pool.Acquire()
	if err != nil {
		return InvalidHandle, fmt.Errorf("%w: %w", ErrPoolExhausted, err)
	}

	if err := sess.init(cfg, kind); err != nil {
		_ = s.pool.Release(h)
		return InvalidHandle, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return Handle(h), nil
}

func (sess *session) init(cfg Config, kind filter.Kind) error {
	if err := filter.Generate(kind, cfg.Order, &sess.coeffs); err != nil {
		return err
	}
	if err := sess.cascade.Init(cfg.Levels, sess.coeffs.Lowpass(), sess.coeffs.Highpass()); err != nil {
		return err
	}
	sess.config = cfg
	if cfg.Filter != FilterLagrange {
		sess.config.Order = 0
	}
	return nil
}

func (s *Service) session(h Handle) (*session, error) {
	sess, err := s.pool.Get(int(h))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHandle, err)
	}
	return sess, nil
}

// Process pushes one sample through the session's cascade. On error the
// returned Output is the zero value.
func (s *Service) Process(h Handle, x float32) (Output, error) {
	sess, err := s.session(h)
	if err != nil {
		return Output{}, err
	}

	var out Output
	sess.cascade.Push(x, &out)
	return out, nil
}

// ProcessBlock pushes every sample of in through the session, writing one
// Output per sample into out. It does not allocate.
func (s *Service) ProcessBlock(h Handle, in []float32, out []Output) error {
	sess, err := s.session(h)
	if err != nil {
		return err
	}
	if len(out) < len(in) {
		return fmt.Errorf("%w: need %d outputs, have %d", ErrBufferTooSmall, len(in), len(out))
	}

	for i, x := range in {
		sess.cascade.Push(x, &out[i])
	}
	return nil
}

// Info returns the configuration of a subscribed session.
func (s *Service) Info(h Handle) (Info, error) {
	sess, err := s.session(h)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Filter:   sess.config.Filter,
		Order:    sess.config.Order,
		Levels:   sess.cascade.Levels(),
		Taps:     sess.coeffs.N,
		SIMDType: simdops.Info(),
	}, nil
}

// Coefficients copies the session's lowpass taps into h0 and highpass taps
// into h1 and returns the tap count. Both buffers must hold Info.Taps values.
func (s *Service) Coefficients(h Handle, h0, h1 []float32) (int, error) {
	sess, err := s.session(h)
	if err != nil {
		return 0, err
	}

	n := sess.coeffs.N
	if len(h0) < n || len(h1) < n {
		return 0, fmt.Errorf("%w: need %d taps, have %d and %d", ErrBufferTooSmall, n, len(h0), len(h1))
	}
	copy(h0, sess.coeffs.Lowpass())
	copy(h1, sess.coeffs.Highpass())
	return n, nil
}

// Reset clears every level's delay lines and phase. The session stays
// subscribed with the same configuration.
func (s *Service) Reset(h Handle) error {
	sess, err := s.session(h)
	if err != nil {
		return err
	}
	sess.cascade.Reset()
	return nil
}

// Unsubscribe clears the session and returns it to the pool.
func (s *Service) Unsubscribe(h Handle) error {
	if err := s.pool.Release(int(h)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHandle, err)
	}
	return nil
}

// Active returns the number of subscribed sessions.
func (s *Service) Active() int {
	return s.pool.Active()
}

// Capacity returns the pool size, MaxServices.
func (s *Service) Capacity() int {
	return s.pool.Capacity()
}

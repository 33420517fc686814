package moments

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func subscribe(t *testing.T, s *Service) Handle {
	t.Helper()
	h, err := s.Subscribe()
	require.NoError(t, err)
	return h
}

func TestCompute_AlternatingSign(t *testing.T) {
	s := NewService()
	h := subscribe(t, s)

	var m Moments
	var err error
	for n := range 200 {
		x := float32(1)
		if n%2 == 1 {
			x = -1
		}
		m, err = s.Compute(h, x)
		require.NoError(t, err, "sample %d", n)
	}

	assert.InDelta(t, 0, m.Mean, 1e-6)
	assert.InDelta(t, 1, m.Variance, 1e-6)
	assert.InDelta(t, 0, m.Skewness, 1e-6)
	assert.InDelta(t, 1, m.Kurtosis, 1e-6)
}

func TestCompute_TinyVarianceStaysFinite(t *testing.T) {
	s := NewService()
	h := subscribe(t, s)

	for n := range 4 * WindowSize {
		x := float32(1e-20)
		if n%2 == 1 {
			x = 3e-20
		}
		m, err := s.Compute(h, x)
		if err != nil {
			require.ErrorIs(t, err, ErrZeroVariance, "sample %d", n)
			assert.Zero(t, m.Skewness, "sample %d", n)
			assert.Zero(t, m.Kurtosis, "sample %d", n)
		}
		assert.False(t, math.IsNaN(float64(m.Skewness)) || math.IsInf(float64(m.Skewness), 0), "skewness at sample %d", n)
		assert.False(t, math.IsNaN(float64(m.Kurtosis)) || math.IsInf(float64(m.Kurtosis), 0), "kurtosis at sample %d", n)
	}
}

func TestCompute_TinyVarianceDoesNotAdvanceHigherWindows(t *testing.T) {
	s := NewService()
	h := subscribe(t, s)

	for n := range WindowSize {
		x := float32(1e-20)
		if n%2 == 1 {
			x = -1e-20
		}
		_, err := s.Compute(h, x)
		require.ErrorIs(t, err, ErrZeroVariance)
	}

	sess, err := s.session(h)
	require.NoError(t, err)
	assert.Equal(t, [WindowSize]float32{}, sess.skewness.buf)
	assert.Equal(t, [WindowSize]float32{}, sess.kurtosis.buf)
}

func TestCompute_MeanMatchesWindowAverage(t *testing.T) {
	s := NewService()
	h := subscribe(t, s)

	rng := rand.New(rand.NewPCG(3, 5))
	history := make([]float64, 0, 300)
	for n := range 300 {
		x := float32(rng.NormFloat64())
		history = append(history, float64(x))

		m, err := s.Compute(h, x)
		require.NoError(t, err)
		if n >= WindowSize-1 {
			want := stat.Mean(history[len(history)-WindowSize:], nil)
			assert.InDelta(t, want, m.Mean, 1e-5, "sample %d", n)
		}
		assert.Positive(t, m.Variance)
	}
}

func TestCompute_RightSkewed(t *testing.T) {
	s := NewService()
	h := subscribe(t, s)

	var m Moments
	for n := range 512 {
		x := float32(0)
		if n%8 == 0 {
			x = 8
		}
		var err error
		m, err = s.Compute(h, x)
		require.NoError(t, err)
	}

	assert.InDelta(t, 1, m.Mean, 1e-5)
	assert.Greater(t, m.Skewness, float32(1))
	assert.Greater(t, m.Kurtosis, float32(3))
}

func TestCompute_ZeroVariance(t *testing.T) {
	s := NewService()
	h := subscribe(t, s)

	m, err := s.Compute(h, 0)
	require.ErrorIs(t, err, ErrZeroVariance)
	assert.Equal(t, Moments{}, m)

	// A constant signal loses its variance once the window has flushed.
	for range 200 {
		m, err = s.Compute(h, 3)
	}
	require.ErrorIs(t, err, ErrZeroVariance)
	assert.InDelta(t, 3, m.Mean, 1e-6)
	assert.Zero(t, m.Variance)
	assert.Zero(t, m.Skewness)
	assert.Zero(t, m.Kurtosis)

	snap, err := s.Snapshot(h)
	require.NoError(t, err)
	assert.Equal(t, m, snap)
}

func TestService_NextFit(t *testing.T) {
	s := NewService()
	assert.Equal(t, MaxServices, s.Capacity())

	h0 := subscribe(t, s)
	h1 := subscribe(t, s)
	assert.Equal(t, Handle(0), h0)
	assert.Equal(t, Handle(1), h1)

	require.NoError(t, s.Unsubscribe(h0))
	assert.Equal(t, Handle(2), subscribe(t, s), "search resumes after the last slot handed out")
	assert.Equal(t, Handle(3), subscribe(t, s))
	assert.Equal(t, Handle(0), subscribe(t, s))
	assert.Equal(t, MaxServices, s.Active())

	h, err := s.Subscribe()
	require.ErrorIs(t, err, ErrPoolExhausted)
	assert.Equal(t, InvalidHandle, h)
}

func TestService_InvalidHandle(t *testing.T) {
	s := NewService()
	h := subscribe(t, s)
	require.NoError(t, s.Unsubscribe(h))

	for _, bad := range []Handle{InvalidHandle, h, MaxServices} {
		m, err := s.Compute(bad, 1)
		require.ErrorIs(t, err, ErrInvalidHandle)
		assert.Equal(t, Moments{}, m)

		_, err = s.Snapshot(bad)
		require.ErrorIs(t, err, ErrInvalidHandle)
		require.ErrorIs(t, s.Reset(bad), ErrInvalidHandle)
		require.ErrorIs(t, s.Unsubscribe(bad), ErrInvalidHandle)
	}
}

func TestService_ResetMatchesFresh(t *testing.T) {
	s := NewService()
	used := subscribe(t, s)
	for n := range 90 {
		_, _ = s.Compute(used, float32(n%7))
	}
	require.NoError(t, s.Reset(used))

	snap, err := s.Snapshot(used)
	require.NoError(t, err)
	assert.Equal(t, Moments{}, snap)

	fresh := subscribe(t, s)
	for n := range 100 {
		x := float32(n%5) - 1.5
		a, errA := s.Compute(used, x)
		b, errB := s.Compute(fresh, x)
		require.Equal(t, errB, errA)
		require.Equal(t, b, a, "sample %d", n)
	}
}

func BenchmarkCompute(b *testing.B) {
	s := NewService()
	h, err := s.Subscribe()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		_, _ = s.Compute(h, float32(i%17))
	}
}

package wavelet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-wavelet/internal/engine"
	"github.com/tphakala/go-wavelet/internal/filter"
	"github.com/tphakala/go-wavelet/internal/slots"
)

// Handle identifies a session within a Service.
type Handle int

// InvalidHandle is returned by Subscribe on failure.
const InvalidHandle Handle = slots.InvalidHandle

// Output is the result of processing one input sample.
//
// Detail[i] is valid only when DetailReady[i] is set; Approximation only
// when Ready is set. Levels is the session's decomposition depth.
type Output = engine.Frame

// FilterType selects the lowpass prototype of a session.
type FilterType int

const (
	// FilterLagrange is the Lagrange halfband family. Config.Order selects
	// the order m; the filter has 4m-1 taps.
	FilterLagrange FilterType = iota

	// FilterDaubechies4 is the 4-tap Daubechies scaling filter.
	FilterDaubechies4

	// FilterDaubechies8 is the 8-tap Daubechies scaling filter.
	FilterDaubechies8
)

// String returns the short name accepted by ParseFilterType.
func (f FilterType) String() string {
	switch f {
	case FilterLagrange:
		return "lagrange"
	case FilterDaubechies4:
		return "db4"
	case FilterDaubechies8:
		return "db8"
	default:
		return fmt.Sprintf("FilterType(%d)", int(f))
	}
}

func (f FilterType) kind() (filter.Kind, bool) {
	switch f {
	case FilterLagrange:
		return filter.KindLagrange, true
	case FilterDaubechies4:
		return filter.KindDaubechies4, true
	case FilterDaubechies8:
		return filter.KindDaubechies8, true
	default:
		return 0, false
	}
}

// ParseFilterType parses a filter name: "lagrange", "db4" or "db8".
// The long forms "daubechies4" and "daubechies8" are also accepted.
func ParseFilterType(s string) (FilterType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lagrange", "halfband":
		return FilterLagrange, nil
	case "db4", "daubechies4":
		return FilterDaubechies4, nil
	case "db8", "daubechies8":
		return FilterDaubechies8, nil
	default:
		return 0, fmt.Errorf("%w: unknown filter %q", ErrInvalidConfig, s)
	}
}

// Config holds the parameters of one decomposition session.
type Config struct {
	// Filter is the lowpass prototype.
	Filter FilterType

	// Order is the Lagrange order m (1-16). It is ignored for the
	// Daubechies filters.
	Order int

	// Levels is the decomposition depth (1-MaxLevels).
	Levels int
}

// DefaultConfig returns a two-level decomposition with the order-3 Lagrange
// halfband (11 taps).
func DefaultConfig() Config {
	return Config{
		Filter: FilterLagrange,
		Order:  defaultOrder,
		Levels: defaultLevels,
	}
}

// Common errors returned by the service.
var (
	// ErrInvalidConfig indicates invalid session parameters.
	ErrInvalidConfig = errors.New("invalid wavelet configuration")

	// ErrPoolExhausted indicates that every session slot is in use.
	ErrPoolExhausted = errors.New("wavelet session pool exhausted")

	// ErrInvalidHandle indicates an out-of-range or unsubscribed handle.
	ErrInvalidHandle = errors.New("invalid wavelet handle")

	// ErrBufferTooSmall indicates a missing or undersized buffer.
	ErrBufferTooSmall = errors.New("buffer too small")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := c.Filter.kind(); !ok {
		return fmt.Errorf("%w: unknown filter type %d", ErrInvalidConfig, int(c.Filter))
	}

	if c.Filter == FilterLagrange && (c.Order < MinLagrangeOrder || c.Order > MaxLagrangeOrder) {
		return fmt.Errorf("%w: lagrange order must be %d-%d, got %d",
			ErrInvalidConfig, MinLagrangeOrder, MaxLagrangeOrder, c.Order)
	}

	if c.Levels < 1 || c.Levels > MaxLevels {
		return fmt.Errorf("%w: levels must be 1-%d, got %d", ErrInvalidConfig, MaxLevels, c.Levels)
	}

	return nil
}

// Taps returns the analysis filter length implied by the configuration.
func (c *Config) Taps() (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	kind, _ := c.Filter.kind()
	n, err := filter.Taps(kind, c.Order)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return n, nil
}

// Info describes a subscribed session.
type Info struct {
	// Filter is the lowpass prototype.
	Filter FilterType

	// Order is the Lagrange order, 0 for the Daubechies filters.
	Order int

	// Levels is the decomposition depth.
	Levels int

	// Taps is the length of both analysis filters.
	Taps int

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

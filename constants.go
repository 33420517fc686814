package wavelet

import (
	"github.com/tphakala/go-wavelet/internal/engine"
	"github.com/tphakala/go-wavelet/internal/filter"
)

// Capacity limits
const (
	// MaxServices is the number of sessions a Service can hold.
	MaxServices = 4

	// MaxLevels is the deepest supported decomposition.
	MaxLevels = engine.MaxLevels

	// MinLagrangeOrder and MaxLagrangeOrder bound Config.Order for
	// FilterLagrange.
	MinLagrangeOrder = filter.MinLagrangeOrder
	MaxLagrangeOrder = filter.MaxLagrangeOrder

	// MaxFilterTaps is the longest analysis filter, produced by the
	// order-16 Lagrange halfband.
	MaxFilterTaps = filter.MaxTaps
)

// Default configuration
const (
	defaultOrder  = 3
	defaultLevels = 2
)

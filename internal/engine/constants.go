package engine

// Cascade limits
const (
	// MaxLevels is the deepest supported decomposition.
	MaxLevels = 8

	// MinLevels is the shallowest supported decomposition.
	MinLevels = 1
)

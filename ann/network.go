// Package ann evaluates small fully connected feed-forward networks.
//
// Layer i computes a_{i+1} = T(W_i·a_i + b_i) on column vectors, where W_i is
// (out×in) and b_i is (out×1). The matrix arithmetic goes through package
// matrix; every intermediate buffer is allocated once, in New.
package ann

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-wavelet/matrix"
	"gonum.org/v1/gonum/mat"
)

// Network size limits
const (
	// MaxLayers is the deepest supported network.
	MaxLayers = 4

	// MaxNeurons is the widest supported layer, input included.
	MaxNeurons = 100
)

var (
	// ErrInvalidTopology indicates a bad layer count or inconsistent shapes.
	ErrInvalidTopology = errors.New("ann: invalid network topology")

	// ErrUnknownActivation indicates an unsupported activation function.
	ErrUnknownActivation = errors.New("ann: unknown activation")

	// ErrShape indicates an input or output vector of the wrong size.
	ErrShape = errors.New("ann: vector shape mismatch")
)

// Network is an immutable feed-forward network plus its scratch buffers.
// Forward is not safe for concurrent use.
type Network struct {
	weights []*mat.Dense
	biases  []*mat.Dense
	act     Activation

	// Per-layer scratch: z = W·a, then z+b, then T(z).
	product []*mat.Dense
	output  []*mat.Dense
}

// New validates the layer shapes and allocates the per-layer buffers.
// The weight and bias matrices are referenced, not copied.
func New(weights, biases []*mat.Dense, act Activation) (*Network, error) {
	if !act.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownActivation, int(act))
	}
	layers := len(weights)
	if layers < 1 || layers > MaxLayers {
		return nil, fmt.Errorf("%w: %d layers (must be 1-%d)", ErrInvalidTopology, layers, MaxLayers)
	}
	if len(biases) != layers {
		return nil, fmt.Errorf("%w: %d weight matrices, %d bias vectors", ErrInvalidTopology, layers, len(biases))
	}

	n := &Network{
		weights: weights,
		biases:  biases,
		act:     act,
		product: make([]*mat.Dense, layers),
		output:  make([]*mat.Dense, layers),
	}

	prevOut := 0
	for i := range layers {
		w, b := weights[i], biases[i]
		if w == nil || w.IsEmpty() || b == nil || b.IsEmpty() {
			return nil, fmt.Errorf("%w: layer %d is missing a matrix", ErrInvalidTopology, i)
		}

		out, in := w.Dims()
		if in > MaxNeurons || out > MaxNeurons {
			return nil, fmt.Errorf("%w: layer %d is %d×%d (max %d neurons)", ErrInvalidTopology, i, out, in, MaxNeurons)
		}
		if i > 0 && in != prevOut {
			return nil, fmt.Errorf("%w: layer %d expects %d inputs, previous layer has %d outputs",
				ErrInvalidTopology, i, in, prevOut)
		}
		if br, bc := b.Dims(); br != out || bc != 1 {
			return nil, fmt.Errorf("%w: layer %d bias is %d×%d, want %d×1", ErrInvalidTopology, i, br, bc, out)
		}

		n.product[i] = mat.NewDense(out, 1, nil)
		n.output[i] = mat.NewDense(out, 1, nil)
		prevOut = out
	}
	return n, nil
}

// Inputs returns the input vector length.
func (n *Network) Inputs() int {
	_, in := n.weights[0].Dims()
	return in
}

// Outputs returns the output vector length.
func (n *Network) Outputs() int {
	out, _ := n.weights[len(n.weights)-1].Dims()
	return out
}

// Layers returns the number of layers.
func (n *Network) Layers() int {
	return len(n.weights)
}

// Activation returns the transfer function.
func (n *Network) Activation() Activation {
	return n.act
}

// Forward evaluates the network on the column vector x (Inputs×1) and
// writes the result into y (Outputs×1).
func (n *Network) Forward(x, y *mat.Dense) error {
	if x == nil || y == nil {
		return fmt.Errorf("%w: nil vector", ErrShape)
	}
	if r, c := x.Dims(); r != n.Inputs() || c != 1 {
		return fmt.Errorf("%w: input is %d×%d, want %d×1", ErrShape, r, c, n.Inputs())
	}
	if r, c := y.Dims(); r != n.Outputs() || c != 1 {
		return fmt.Errorf("%w: output is %d×%d, want %d×1", ErrShape, r, c, n.Outputs())
	}

	a := x
	for i := range n.weights {
		if err := matrix.Product(n.weights[i], a, n.product[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		if err := matrix.AddSub(n.product[i], n.biases[i], n.output[i], 1); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		if err := n.act.Apply(n.output[i], n.output[i]); err != nil {
			return err
		}
		a = n.output[i]
	}

	y.Copy(a)
	return nil
}

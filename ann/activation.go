package ann

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Activation is the transfer function applied element-wise after every
// layer.
type Activation int

const (
	// Sigmoid is 1/(1+e^-x).
	Sigmoid Activation = iota

	// Tanh is the hyperbolic tangent.
	Tanh

	// ReLU is max(0, x).
	ReLU

	// LeakyReLU is max(x, 0.01·x).
	LeakyReLU

	// Softplus is log(1+e^x), evaluated without overflow.
	Softplus

	// Step is 1 for x >= 0, else 0.
	Step
)

// LeakySlope is the negative-side slope of LeakyReLU.
const LeakySlope = 0.01

func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case LeakyReLU:
		return "leaky-relu"
	case Softplus:
		return "softplus"
	case Step:
		return "step"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

func (a Activation) valid() bool {
	return a >= Sigmoid && a <= Step
}

// Eval applies the activation to a single value.
func (a Activation) Eval(x float64) float64 {
	switch a {
	case Sigmoid:
		return 1 / (1 + math.Exp(-x))
	case Tanh:
		return math.Tanh(x)
	case ReLU:
		return math.Max(0, x)
	case LeakyReLU:
		return math.Max(x, LeakySlope*x)
	case Softplus:
		// x + log(1+e^-x) for x >= 0 keeps e^x from overflowing.
		if x < 0 {
			return math.Log1p(math.Exp(x))
		}
		return x + math.Log1p(math.Exp(-x))
	case Step:
		if x >= 0 {
			return 1
		}
		return 0
	default:
		return x
	}
}

// Apply writes a(in) into out element-wise. in and out may be the same
// matrix.
func (a Activation) Apply(in, out *mat.Dense) error {
	if !a.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownActivation, int(a))
	}
	out.Apply(func(_, _ int, v float64) float64 { return a.Eval(v) }, in)
	return nil
}

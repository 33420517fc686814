package ann

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func col(v ...float64) *mat.Dense {
	return mat.NewDense(len(v), 1, v)
}

func TestNetwork_XORWithStep(t *testing.T) {
	weights := []*mat.Dense{
		mat.NewDense(2, 2, []float64{1, 1, 1, 1}),
		mat.NewDense(1, 2, []float64{1, -2}),
	}
	biases := []*mat.Dense{col(-0.5, -1.5), col(-0.5)}

	net, err := New(weights, biases, Step)
	require.NoError(t, err)
	assert.Equal(t, 2, net.Inputs())
	assert.Equal(t, 1, net.Outputs())
	assert.Equal(t, 2, net.Layers())

	tests := []struct {
		a, b float64
		want float64
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
	}
	y := col(0)
	for _, tt := range tests {
		require.NoError(t, net.Forward(col(tt.a, tt.b), y))
		assert.Equal(t, tt.want, y.At(0, 0), "xor(%v, %v)", tt.a, tt.b)
	}
}

func TestNetwork_MatchesDirectComputation(t *testing.T) {
	w1 := mat.NewDense(3, 2, []float64{0.2, -0.4, 0.7, 0.1, -0.3, 0.9})
	b1 := col(0.05, -0.1, 0.2)
	w2 := mat.NewDense(2, 3, []float64{0.5, -0.6, 0.3, -0.2, 0.8, 0.4})
	b2 := col(0.01, -0.02)

	net, err := New([]*mat.Dense{w1, w2}, []*mat.Dense{b1, b2}, Tanh)
	require.NoError(t, err)

	x := col(0.6, -1.2)
	y := col(0, 0)
	require.NoError(t, net.Forward(x, y))

	var h, o mat.Dense
	h.Mul(w1, x)
	h.Add(&h, b1)
	h.Apply(func(_, _ int, v float64) float64 { return math.Tanh(v) }, &h)
	o.Mul(w2, &h)
	o.Add(&o, b2)
	o.Apply(func(_, _ int, v float64) float64 { return math.Tanh(v) }, &o)

	assert.True(t, mat.EqualApprox(&o, y, 1e-12), "got %v want %v", mat.Formatted(y), mat.Formatted(&o))
}

func TestNetwork_ReLUSingleLayer(t *testing.T) {
	net, err := New(
		[]*mat.Dense{mat.NewDense(2, 2, []float64{1, 0, 0, 1})},
		[]*mat.Dense{col(0, 0)},
		ReLU,
	)
	require.NoError(t, err)

	y := col(0, 0)
	require.NoError(t, net.Forward(col(1, -2), y))
	assert.Equal(t, []float64{1, 0}, mat.Col(nil, 0, y))
}

func TestNew_Errors(t *testing.T) {
	w := mat.NewDense(2, 2, nil)
	b := col(0, 0)

	tests := []struct {
		name    string
		weights []*mat.Dense
		biases  []*mat.Dense
		act     Activation
		want    error
	}{
		{"no layers", nil, nil, Sigmoid, ErrInvalidTopology},
		{"too many layers", []*mat.Dense{w, w, w, w, w}, []*mat.Dense{b, b, b, b, b}, Sigmoid, ErrInvalidTopology},
		{"bias count", []*mat.Dense{w, w}, []*mat.Dense{b}, Sigmoid, ErrInvalidTopology},
		{"nil weight", []*mat.Dense{nil}, []*mat.Dense{b}, Sigmoid, ErrInvalidTopology},
		{"chain mismatch", []*mat.Dense{w, mat.NewDense(1, 3, nil)}, []*mat.Dense{b, col(0)}, Sigmoid, ErrInvalidTopology},
		{"bias shape", []*mat.Dense{w}, []*mat.Dense{col(0, 0, 0)}, Sigmoid, ErrInvalidTopology},
		{"too wide", []*mat.Dense{mat.NewDense(1, MaxNeurons+1, nil)}, []*mat.Dense{col(0)}, Sigmoid, ErrInvalidTopology},
		{"unknown activation", []*mat.Dense{w}, []*mat.Dense{b}, Activation(42), ErrUnknownActivation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := New(tt.weights, tt.biases, tt.act)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, net)
		})
	}
}

func TestForward_ShapeErrors(t *testing.T) {
	net, err := New([]*mat.Dense{mat.NewDense(1, 2, []float64{1, 1})}, []*mat.Dense{col(0)}, Sigmoid)
	require.NoError(t, err)

	require.ErrorIs(t, net.Forward(col(1, 2, 3), col(0)), ErrShape)
	require.ErrorIs(t, net.Forward(col(1, 2), col(0, 0)), ErrShape)
	require.ErrorIs(t, net.Forward(nil, col(0)), ErrShape)
	require.ErrorIs(t, net.Forward(mat.NewDense(2, 2, nil), col(0)), ErrShape)
}

func TestActivation_Eval(t *testing.T) {
	tests := []struct {
		act  Activation
		x    float64
		want float64
	}{
		{Sigmoid, 0, 0.5},
		{Sigmoid, 40, 1},
		{Tanh, 0, 0},
		{Tanh, 1, math.Tanh(1)},
		{ReLU, -3, 0},
		{ReLU, 2.5, 2.5},
		{LeakyReLU, -2, -0.02},
		{LeakyReLU, 2, 2},
		{Softplus, 0, math.Ln2},
		{Softplus, 1000, 1000},
		{Softplus, -1000, 0},
		{Step, 0, 1},
		{Step, -1e-9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.act.String(), func(t *testing.T) {
			got := tt.act.Eval(tt.x)
			assert.False(t, math.IsInf(got, 0) || math.IsNaN(got))
			assert.InDelta(t, tt.want, got, 1e-12, "%s(%v)", tt.act, tt.x)
		})
	}
}

func TestActivation_Apply(t *testing.T) {
	m := col(-1, 0, 1)
	require.NoError(t, ReLU.Apply(m, m))
	assert.Equal(t, []float64{0, 0, 1}, mat.Col(nil, 0, m))

	require.ErrorIs(t, Activation(-1).Apply(m, m), ErrUnknownActivation)
	assert.Equal(t, "Activation(-1)", Activation(-1).String())
}

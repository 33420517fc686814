package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func filled(r, c int) *mat.Dense {
	m := mat.NewDense(r, c, nil)
	for i := range r {
		for j := range c {
			m.Set(i, j, 7)
		}
	}
	return m
}

func assertAllZero(t *testing.T, m *mat.Dense) {
	t.Helper()
	r, c := m.Dims()
	for i := range r {
		for j := range c {
			assert.Zero(t, m.At(i, j), "c[%d][%d]", i, j)
		}
	}
}

func TestProduct(t *testing.T) {
	a := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := mat.NewDense(3, 2, []float64{7, 8, 9, 10, 11, 12})
	c := mat.NewDense(2, 2, nil)

	require.NoError(t, Product(a, b, c))
	want := mat.NewDense(2, 2, []float64{58, 64, 139, 154})
	assert.True(t, mat.Equal(want, c), "got %v", mat.Formatted(c))
}

func TestProduct_ColumnVector(t *testing.T) {
	w := mat.NewDense(2, 2, []float64{1, -1, 0.5, 2})
	x := mat.NewDense(2, 1, []float64{3, 4})
	y := mat.NewDense(2, 1, nil)

	require.NoError(t, Product(w, x, y))
	assert.Equal(t, []float64{-1, 9.5}, mat.Col(nil, 0, y))
}

func TestProduct_Errors(t *testing.T) {
	a := mat.NewDense(2, 3, nil)
	b := mat.NewDense(2, 2, nil)

	c := filled(2, 2)
	require.ErrorIs(t, Product(a, b, c), ErrDimensionMismatch)
	assertAllZero(t, c)

	c = filled(3, 3)
	require.ErrorIs(t, Product(a, mat.NewDense(3, 2, nil), c), ErrDimensionMismatch, "wrong result shape")
	assertAllZero(t, c)

	c = filled(2, 2)
	require.ErrorIs(t, Product(nil, b, c), ErrMissingOperand)
	assertAllZero(t, c)

	c = filled(2, 2)
	require.ErrorIs(t, Product(b, &mat.Dense{}, c), ErrMissingOperand)
	assertAllZero(t, c)

	require.ErrorIs(t, Product(b, b, nil), ErrMissingOperand)
}

func TestAddSub(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{10, 20, 30, 40})
	c := mat.NewDense(2, 2, nil)

	require.NoError(t, AddSub(a, b, c, 1))
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{11, 22, 33, 44}), c))

	require.NoError(t, AddSub(a, b, c, 0), "zero sign adds")
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{11, 22, 33, 44}), c))

	require.NoError(t, AddSub(a, b, c, -1))
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{-9, -18, -27, -36}), c))
}

func TestAddSub_Errors(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	c := filled(2, 2)
	require.ErrorIs(t, AddSub(a, mat.NewDense(2, 1, nil), c, 1), ErrDimensionMismatch)
	assertAllZero(t, c)

	c = filled(1, 2)
	require.ErrorIs(t, AddSub(a, a, c, 1), ErrDimensionMismatch)
	assertAllZero(t, c)

	c = filled(2, 2)
	require.ErrorIs(t, AddSub(a, nil, c, -1), ErrMissingOperand)
	assertAllZero(t, c)

	require.ErrorIs(t, AddSub(a, a, &mat.Dense{}, 1), ErrMissingOperand)
}

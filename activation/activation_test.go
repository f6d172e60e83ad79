package activation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetra-ml/tetra/internal/tensor"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "sigmoid", Sigmoid.String())
	assert.Equal(t, "relu", ReLU.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestNewUnsupported(t *testing.T) {
	_, err := New(Kind(42))
	assert.ErrorIs(t, err, ErrUnsupported)

	// Custom requires NewCustom with function values.
	_, err = New(Custom)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSigmoidForward(t *testing.T) {
	a, err := New(Sigmoid)
	require.NoError(t, err)

	x, err := tensor.From1D([]float32{0, 2, -2})
	require.NoError(t, err)

	y, err := a.Forward(x)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, y.At(0, 0, 0, 0), 1e-6)
	assert.InDelta(t, 1/(1+math.Exp(-2)), y.At(0, 0, 0, 1), 1e-6)
	assert.InDelta(t, 1/(1+math.Exp(2)), y.At(0, 0, 0, 2), 1e-6)
}

func TestSigmoidDerivative(t *testing.T) {
	a, err := New(Sigmoid)
	require.NoError(t, err)

	// Primes take the activated value y, so sigmoid' is y*(1-y).
	y, err := tensor.From1D([]float32{0.5, 0.25})
	require.NoError(t, err)

	d, err := a.Derivative(y, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, d.At(0, 0, 0, 0), 1e-6)
	assert.InDelta(t, 0.1875, d.At(0, 0, 0, 1), 1e-6)

	up, err := tensor.From1D([]float32{2, 4})
	require.NoError(t, err)
	d, err = a.Derivative(y, up)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d.At(0, 0, 0, 0), 1e-6)
	assert.InDelta(t, 0.75, d.At(0, 0, 0, 1), 1e-6)
}

func TestTanhDerivative(t *testing.T) {
	a, err := New(Tanh)
	require.NoError(t, err)

	y, err := tensor.From1D([]float32{0, 0.5})
	require.NoError(t, err)

	d, err := a.Derivative(y, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d.At(0, 0, 0, 0), 1e-6)
	assert.InDelta(t, 0.75, d.At(0, 0, 0, 1), 1e-6)
}

func TestReLU(t *testing.T) {
	a, err := New(ReLU)
	require.NoError(t, err)

	x, err := tensor.From1D([]float32{-1, 0, 3})
	require.NoError(t, err)

	y, err := a.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 3}, y.Data())

	d, err := a.Derivative(y, nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 1}, d.Data())
}

func TestIdentity(t *testing.T) {
	a, err := New(Identity)
	require.NoError(t, err)

	x, err := tensor.From1D([]float32{-1, 2, 3})
	require.NoError(t, err)

	y, err := a.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, x.Data(), y.Data())

	d, err := a.Derivative(y, nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1}, d.Data())
}

func TestSoftmaxForwardRowsSumToOne(t *testing.T) {
	a, err := New(Softmax)
	require.NoError(t, err)

	// A softmax row is one batch's flattened feature slice, so the two
	// logit sets must live in separate batches.
	x, err := tensor.FromData(tensor.NewDim(2, 1, 1, 3), []float32{
		1, 2, 3,
		10, 10, 10,
	})
	require.NoError(t, err)

	y, err := a.Forward(x)
	require.NoError(t, err)
	for b := 0; b < 2; b++ {
		var sum float32
		for w := 0; w < 3; w++ {
			sum += y.At(b, 0, 0, w)
		}
		assert.InDelta(t, 1.0, sum, 1e-5)
	}
	// Uniform logits give a uniform distribution.
	assert.InDelta(t, 1.0/3, y.At(1, 0, 0, 0), 1e-6)
}

func TestSoftmaxSpansFullFeatureSlice(t *testing.T) {
	a, err := New(Softmax)
	require.NoError(t, err)

	// Within one batch the height rows are normalized together, not
	// independently: the six elements sum to 1 and each three-element
	// height row does not.
	x, err := tensor.From2D([][]float32{
		{1, 2, 3},
		{10, 10, 10},
	})
	require.NoError(t, err)

	y, err := a.Forward(x)
	require.NoError(t, err)
	var total, firstRow float32
	for h := 0; h < 2; h++ {
		for w := 0; w < 3; w++ {
			v := y.At(0, 0, h, w)
			total += v
			if h == 0 {
				firstRow += v
			}
		}
	}
	assert.InDelta(t, 1.0, total, 1e-5)
	assert.Less(t, firstRow, float32(0.01))
}

func TestSoftmaxPrimeMatchesJacobian(t *testing.T) {
	a, err := New(Softmax)
	require.NoError(t, err)

	// Already-softmaxed row.
	y, err := tensor.From1D([]float32{0.2, 0.3, 0.5})
	require.NoError(t, err)

	// Without upstream each output j sums the Jacobian column
	// sum_l J[l][j] with J[l][j] = y_l*(delta - y_j).
	d, err := a.Derivative(y, nil)
	require.NoError(t, err)
	for j := 0; j < 3; j++ {
		yj := y.At(0, 0, 0, j)
		var want float32
		for l := 0; l < 3; l++ {
			yl := y.At(0, 0, 0, l)
			if j == l {
				want += yl * (1 - yj)
			} else {
				want += -yl * yj
			}
		}
		assert.InDelta(t, want, d.At(0, 0, 0, j), 1e-6)
	}

	up, err := tensor.From1D([]float32{1, 0, 0})
	require.NoError(t, err)
	d, err = a.Derivative(y, up)
	require.NoError(t, err)
	// With a one-hot upstream only the l=0 terms survive.
	assert.InDelta(t, 0.2*(1-0.2), d.At(0, 0, 0, 0), 1e-6)
	assert.InDelta(t, -0.2*0.3, d.At(0, 0, 0, 1), 1e-6)
	assert.InDelta(t, -0.2*0.5, d.At(0, 0, 0, 2), 1e-6)
}

func TestSoftmaxPrimeShapeMismatch(t *testing.T) {
	a, err := New(Softmax)
	require.NoError(t, err)

	y, err := tensor.From1D([]float32{0.5, 0.5})
	require.NoError(t, err)
	up, err := tensor.From1D([]float32{1, 2, 3})
	require.NoError(t, err)

	_, err = a.Derivative(y, up)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestCustom(t *testing.T) {
	square := func(x float32) float32 { return x * x }
	deriv := func(y float32) float32 { return 2 * float32(math.Sqrt(float64(y))) }

	a, err := NewCustom(square, deriv)
	require.NoError(t, err)
	assert.Equal(t, Custom, a.Kind())

	x, err := tensor.From1D([]float32{2, 3})
	require.NoError(t, err)
	y, err := a.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 9}, y.Data())

	d, err := a.Derivative(y, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, d.At(0, 0, 0, 0), 1e-5)
	assert.InDelta(t, 6.0, d.At(0, 0, 0, 1), 1e-5)

	_, err = NewCustom(nil, nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

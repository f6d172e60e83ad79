package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivScalarConcrete(t *testing.T) {
	x, err := From2D([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)

	half, err := x.DivScalar(2)
	require.NoError(t, err)

	assert.Equal(t, []float32{0.5, 1.0, 1.5, 2.0}, half.Data())
	// The allocating form leaves the receiver untouched.
	assert.Equal(t, []float32{1, 2, 3, 4}, x.Data())
}

func TestScalarOpsAllocatingAndInPlace(t *testing.T) {
	mk := func() *Tensor {
		x, err := From1D([]float32{1, 2, 3, 4})
		require.NoError(t, err)
		return x
	}

	add, err := mk().AddScalar(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3, 4, 5}, add.Data())

	sub, err := mk().SubScalar(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 2, 3}, sub.Data())

	mul, err := mk().MulScalar(3)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 6, 9, 12}, mul.Data())

	x := mk()
	require.NoError(t, x.AddScalarI(10))
	require.NoError(t, x.MulScalarI(2))
	require.NoError(t, x.SubScalarI(2))
	require.NoError(t, x.DivScalarI(2))
	assert.Equal(t, []float32{10, 11, 12, 13}, x.Data())
}

func TestDivScalarByZero(t *testing.T) {
	x, err := From1D([]float32{1})
	require.NoError(t, err)

	_, err = x.DivScalar(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, x.DivScalarI(0), ErrInvalidArgument)
}

func TestPow(t *testing.T) {
	x, err := From1D([]float32{1, 2, 3})
	require.NoError(t, err)

	sq, err := x.Pow(2)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 4, 9}, sq.Data())

	require.NoError(t, x.PowI(3))
	assert.Equal(t, []float32{1, 8, 27}, x.Data())
}

func TestAddScaled(t *testing.T) {
	x, err := From1D([]float32{1, 2, 3, 4})
	require.NoError(t, err)
	g, err := From1D([]float32{10, 10, 10, 10})
	require.NoError(t, err)

	// The optimizer-style update: w += -lr * grad.
	require.NoError(t, x.AddScaledI(g, -0.1))
	assert.InDeltaSlice(t, []float32{0, 1, 2, 3}, x.Data(), 1e-6)

	y, err := x.AddScaled(g, 0.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{5, 6, 7, 8}, y.Data(), 1e-6)
}

func TestAddScaledIBroadcast(t *testing.T) {
	x, err := FromData(NewDim(2, 1, 1, 2), []float32{1, 2, 3, 4})
	require.NoError(t, err)
	m, err := From1D([]float32{10, 20})
	require.NoError(t, err)

	require.NoError(t, x.AddScaledI(m, 2))
	assert.Equal(t, []float32{21, 42, 23, 44}, x.Data())
}

func TestInPlaceTensorOps(t *testing.T) {
	x, err := From1D([]float32{2, 4, 6, 8})
	require.NoError(t, err)
	m, err := From1D([]float32{1, 2, 3, 4})
	require.NoError(t, err)

	require.NoError(t, x.MulI(m))
	assert.Equal(t, []float32{2, 8, 18, 32}, x.Data())
	require.NoError(t, x.DivI(m))
	assert.Equal(t, []float32{2, 4, 6, 8}, x.Data())
	require.NoError(t, x.SubI(m))
	assert.Equal(t, []float32{1, 2, 3, 4}, x.Data())
	require.NoError(t, x.AddI(m))
	assert.Equal(t, []float32{2, 4, 6, 8}, x.Data())
}

func TestApply(t *testing.T) {
	x, err := From1D([]float32{-1, 0, 2})
	require.NoError(t, err)

	relu, err := x.Apply(func(v float32) float32 {
		if v < 0 {
			return 0
		}
		return v
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 2}, relu.Data())
	assert.Equal(t, []float32{-1, 0, 2}, x.Data())
}

func TestApplyToReceiverAsScratch(t *testing.T) {
	x, err := From1D([]float32{1, 2, 3})
	require.NoError(t, err)

	// Callers may stage through the receiver itself.
	require.NoError(t, x.ApplyTo(func(v float32) float32 { return v * v }, x))
	assert.Equal(t, []float32{1, 4, 9}, x.Data())

	out, err := New(NewDim(1, 1, 1, 2))
	require.NoError(t, err)
	assert.ErrorIs(t, x.ApplyTo(func(v float32) float32 { return v }, out), ErrShapeMismatch)
}

func TestApplyI(t *testing.T) {
	x, err := From1D([]float32{1, 4, 9})
	require.NoError(t, err)

	require.NoError(t, x.ApplyI(func(v float32) float32 {
		return float32(math.Sqrt(float64(v)))
	}))
	assert.InDeltaSlice(t, []float32{1, 2, 3}, x.Data(), 1e-6)
}

func TestApplyTensor(t *testing.T) {
	x, err := From1D([]float32{1, 2, 3, 4})
	require.NoError(t, err)

	out, err := x.ApplyTensor(func(in *Tensor) (*Tensor, error) {
		shifted, err := in.SubScalar(1)
		if err != nil {
			return nil, err
		}
		return shifted.MulScalar(2)
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 2, 4, 6}, out.Data())
}

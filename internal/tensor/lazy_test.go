package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyChainMatchesEager(t *testing.T) {
	x, err := From1D([]float32{0, 5, 10, 15})
	require.NoError(t, err)

	lazy, err := x.Chain().Normalize().MulScalar(3).AddScalar(1).Run()
	require.NoError(t, err)

	n, err := x.Normalize()
	require.NoError(t, err)
	m, err := n.MulScalar(3)
	require.NoError(t, err)
	eager, err := m.AddScalar(1)
	require.NoError(t, err)

	assert.InDeltaSlice(t, eager.Data(), lazy.Data(), 1e-6)
}

func TestLazyChainLeavesOriginUnmodified(t *testing.T) {
	x, err := From1D([]float32{1, 2, 3, 4})
	require.NoError(t, err)
	m, err := From1D([]float32{10, 10, 10, 10})
	require.NoError(t, err)

	out, err := x.Chain().Add(m).Pow(2).SumByBatch().Run()
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 2, 3, 4}, x.Data())
	assert.Equal(t, []float32{10, 10, 10, 10}, m.Data())
	assert.InDeltaSlice(t, []float32{11*11 + 12*12 + 13*13 + 14*14}, out.Data(), 1e-4)
}

func TestLazyEmptyChainSnapshots(t *testing.T) {
	x, err := From1D([]float32{1, 2})
	require.NoError(t, err)

	out, err := x.Chain().Run()
	require.NoError(t, err)
	assert.True(t, out.Equal(x))

	out.Set(0, 0, 0, 0, 99)
	assert.Equal(t, float32(1), x.At(0, 0, 0, 0))
}

func TestLazyErrorSurfacesFromRun(t *testing.T) {
	x, err := From1D([]float32{1, 2})
	require.NoError(t, err)
	bad, err := From1D([]float32{1, 2, 3})
	require.NoError(t, err)

	// Recording never fails; Run surfaces the shape error.
	l := x.Chain().MulScalar(2).Add(bad)
	_, err = l.Run()
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Equal(t, []float32{1, 2}, x.Data())
}

func TestLazyDotAndTranspose(t *testing.T) {
	x, err := From2D([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	eye, err := From2D([][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	out, err := x.Chain().Dot(eye, false, false).Transpose("0:2:1").Run()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{1, 3, 2, 4}, out.Data(), 1e-6)
}

func TestLazySoftmaxAndReductions(t *testing.T) {
	x, err := FromData(NewDim(2, 1, 1, 3), []float32{
		1, 2, 3,
		3, 2, 1,
	})
	require.NoError(t, err)

	out, err := x.Chain().Softmax().SumByBatch().Run()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{1, 1}, out.Data(), 1e-5)

	avg, err := x.Chain().Average(AxisWidth).Run()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{2, 2}, avg.Data(), 1e-6)
}

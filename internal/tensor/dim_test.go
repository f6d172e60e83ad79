package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimStrides(t *testing.T) {
	d := NewDim(2, 3, 4, 5)

	assert.Equal(t, [MaxDim]int{60, 20, 5, 1}, d.ComputeStrides())
	assert.Equal(t, 120, d.DataLen())
	assert.Equal(t, 60, d.FeatureLen())
}

func TestDimAccessors(t *testing.T) {
	d := NewDim(1, 2, 3, 4)

	assert.Equal(t, 1, d.Batch())
	assert.Equal(t, 2, d.Channel())
	assert.Equal(t, 3, d.Height())
	assert.Equal(t, 4, d.Width())
	assert.Equal(t, 3, d.Axis(AxisHeight))
	assert.Equal(t, "(1, 2, 3, 4)", d.String())
}

func TestDimEqual(t *testing.T) {
	assert.True(t, NewDim(2, 3, 4, 5).Equal(NewDim(2, 3, 4, 5)))
	assert.False(t, NewDim(2, 3, 4, 5).Equal(NewDim(2, 3, 5, 4)))
}

func TestDimEmptySentinel(t *testing.T) {
	var d Dim
	assert.True(t, d.IsEmpty())
	assert.False(t, NewDim(1, 1, 1, 1).IsEmpty())
	// A single zero axis still means zero elements.
	assert.True(t, NewDim(2, 0, 3, 4).IsEmpty())
}

func TestDimValidate(t *testing.T) {
	require.NoError(t, NewDim(1, 2, 3, 4).Validate())

	err := NewDim(1, -2, 3, 4).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDimAxisPanics(t *testing.T) {
	assert.Panics(t, func() { NewDim(1, 1, 1, 1).Axis(4) })
	assert.Panics(t, func() { NewDim(1, 1, 1, 1).Axis(-1) })
}

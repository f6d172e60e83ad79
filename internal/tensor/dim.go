package tensor

import "fmt"

// Axis indices in logical order, outer to inner.
const (
	AxisBatch = iota
	AxisChannel
	AxisHeight
	AxisWidth

	// MaxDim is the number of logical axes every tensor carries.
	MaxDim = 4
)

// Dim describes the extent of a tensor along the four logical axes
// (batch, channel, height, width). It is a value type: copy freely,
// compare with Equal. The all-zero Dim marks an uninitialized tensor.
type Dim struct {
	dims [MaxDim]int
}

// NewDim builds a Dim from the four axis sizes.
func NewDim(batch, channel, height, width int) Dim {
	return Dim{dims: [MaxDim]int{batch, channel, height, width}}
}

// Batch returns the batch size.
func (d Dim) Batch() int { return d.dims[AxisBatch] }

// Channel returns the channel size.
func (d Dim) Channel() int { return d.dims[AxisChannel] }

// Height returns the height size.
func (d Dim) Height() int { return d.dims[AxisHeight] }

// Width returns the width size.
func (d Dim) Width() int { return d.dims[AxisWidth] }

// Axis returns the size along the given axis.
// Panics if axis is not in [0, MaxDim).
func (d Dim) Axis(axis int) int {
	if axis < 0 || axis >= MaxDim {
		panic(fmt.Sprintf("tensor: axis %d out of range [0, %d)", axis, MaxDim))
	}
	return d.dims[axis]
}

// DataLen returns the total number of elements: batch*channel*height*width.
func (d Dim) DataLen() int {
	return d.dims[0] * d.dims[1] * d.dims[2] * d.dims[3]
}

// FeatureLen returns the number of elements in one batch slice:
// channel*height*width.
func (d Dim) FeatureLen() int {
	return d.dims[1] * d.dims[2] * d.dims[3]
}

// IsEmpty reports whether this is the uninitialized sentinel (zero elements).
func (d Dim) IsEmpty() bool { return d.DataLen() == 0 }

// Validate checks that no axis size is negative.
func (d Dim) Validate() error {
	for i, n := range d.dims {
		if n < 0 {
			return fmt.Errorf("%w: axis %d has negative size %d", ErrInvalidArgument, i, n)
		}
	}
	return nil
}

// Equal reports structural equality of all four sizes.
func (d Dim) Equal(other Dim) bool { return d.dims == other.dims }

// ComputeStrides derives row-major strides: the width axis is unit-stride
// and each outer axis strides over the product of the inner axis sizes.
func (d Dim) ComputeStrides() [MaxDim]int {
	var strides [MaxDim]int
	strides[MaxDim-1] = 1
	for i := MaxDim - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * d.dims[i+1]
	}
	return strides
}

// String formats the Dim as "(b, c, h, w)".
func (d Dim) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", d.dims[0], d.dims[1], d.dims[2], d.dims[3])
}

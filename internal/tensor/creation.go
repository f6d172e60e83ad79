package tensor

import (
	"fmt"
	"math/rand"
)

// newContiguous allocates a fresh zero-filled contiguous tensor for a Dim
// that is already known to be valid.
func newContiguous(d Dim) *Tensor {
	return &Tensor{
		dim:        d,
		strides:    d.ComputeStrides(),
		contiguous: true,
		buf:        newBuffer(d.DataLen()),
	}
}

// New allocates a zero-filled tensor of the given dimension.
func New(d Dim) (*Tensor, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return newContiguous(d), nil
}

// Full allocates a tensor of the given dimension with every element set
// to value.
func Full(d Dim, value float32) (*Tensor, error) {
	t, err := New(d)
	if err != nil {
		return nil, err
	}
	t.Fill(value)
	return t, nil
}

// FromData allocates a tensor of the given dimension and copies data into
// it. The data length must equal d.DataLen().
func FromData(d Dim, data []float32) (*Tensor, error) {
	t, err := New(d)
	if err != nil {
		return nil, err
	}
	if len(data) != d.DataLen() {
		return nil, fmt.Errorf("%w: dim %s requires %d elements, got %d",
			ErrShapeMismatch, d, d.DataLen(), len(data))
	}
	copy(t.Data(), data)
	return t, nil
}

// From4D infers a Dim from a nested batch/channel/height/width literal and
// copies the values. Ragged nesting fails with ErrShapeMismatch.
func From4D(data [][][][]float32) (*Tensor, error) {
	if len(data) == 0 || len(data[0]) == 0 || len(data[0][0]) == 0 || len(data[0][0][0]) == 0 {
		return nil, fmt.Errorf("%w: empty literal", ErrInvalidArgument)
	}
	d := NewDim(len(data), len(data[0]), len(data[0][0]), len(data[0][0][0]))
	t := newContiguous(d)
	dst := t.Data()
	i := 0
	for b, channels := range data {
		if len(channels) != d.Channel() {
			return nil, raggedErr("batch", b)
		}
		for c, rows := range channels {
			if len(rows) != d.Height() {
				return nil, raggedErr("channel", c)
			}
			for h, row := range rows {
				if len(row) != d.Width() {
					return nil, raggedErr("row", h)
				}
				copy(dst[i:], row)
				i += d.Width()
			}
		}
	}
	return t, nil
}

// From3D builds a (1, channel, height, width) tensor from a nested literal.
func From3D(data [][][]float32) (*Tensor, error) {
	return From4D([][][][]float32{data})
}

// From2D builds a (1, 1, height, width) tensor from a nested literal.
func From2D(data [][]float32) (*Tensor, error) {
	return From4D([][][][]float32{{data}})
}

// From1D builds a (1, 1, 1, width) tensor from a flat literal.
func From1D(data []float32) (*Tensor, error) {
	return From4D([][][][]float32{{{data}}})
}

func raggedErr(level string, index int) error {
	return fmt.Errorf("%w: ragged literal at %s %d", ErrShapeMismatch, level, index)
}

// Map wraps caller-supplied memory as a tensor view without copying.
// The view starts at offset elements into data and shares the slice:
// writes through the tensor are writes through data and vice versa.
// Fails with ErrInvalidArgument when data is nil or too short for
// offset + d.DataLen().
func Map(data []float32, d Dim, offset int) (*Tensor, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if offset < 0 || offset+d.DataLen() > len(data) {
		return nil, fmt.Errorf("%w: offset %d + len %d exceeds buffer %d",
			ErrInvalidArgument, offset, d.DataLen(), len(data))
	}
	return &Tensor{
		dim:        d,
		strides:    d.ComputeStrides(),
		contiguous: true,
		offset:     offset,
		buf:        wrapBuffer(data),
	}, nil
}

// RandNormal fills the tensor with samples from N(mean, std).
func (t *Tensor) RandNormal(mean, std float32) {
	t.forEach(func(pos int) {
		t.buf.data[pos] = mean + std*float32(rand.NormFloat64())
	})
}

// RandUniform fills the tensor with samples from U[min, max).
func (t *Tensor) RandUniform(min, max float32) {
	t.forEach(func(pos int) {
		t.buf.data[pos] = min + (max-min)*rand.Float32()
	})
}

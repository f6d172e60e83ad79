package tensor

import (
	"fmt"
	"math"
)

// Sum reduces the tensor over one axis, scaling the result by alpha. The
// result keeps all four axes with the reduced one collapsed to size 1.
func (t *Tensor) Sum(axis int, alpha float32) (*Tensor, error) {
	if axis < 0 || axis >= MaxDim {
		return nil, fmt.Errorf("%w: axis %d", ErrInvalidArgument, axis)
	}
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	rd := t.dim
	rd.dims[axis] = 1
	out := newContiguous(rd)
	if err := t.SumTo(out, axis, alpha); err != nil {
		return nil, err
	}
	return out, nil
}

// SumTo reduces over one axis into out, which must carry the reduced Dim.
func (t *Tensor) SumTo(out *Tensor, axis int, alpha float32) error {
	if axis < 0 || axis >= MaxDim {
		return fmt.Errorf("%w: axis %d", ErrInvalidArgument, axis)
	}
	if t.Uninitialized() {
		return ErrUninitialized
	}
	rd := t.dim
	rd.dims[axis] = 1
	if !out.dim.Equal(rd) {
		return fmt.Errorf("%w: output dim %s, want %s", ErrShapeMismatch, out.dim, rd)
	}
	out.SetZero()
	var coords [MaxDim]int
	for coords[0] = 0; coords[0] < t.dim.Batch(); coords[0]++ {
		for coords[1] = 0; coords[1] < t.dim.Channel(); coords[1]++ {
			for coords[2] = 0; coords[2] < t.dim.Height(); coords[2]++ {
				for coords[3] = 0; coords[3] < t.dim.Width(); coords[3]++ {
					oc := coords
					oc[axis] = 0
					pos := out.index(oc[0], oc[1], oc[2], oc[3])
					out.buf.data[pos] += t.buf.data[t.index(coords[0], coords[1], coords[2], coords[3])]
				}
			}
		}
	}
	if alpha != 1 {
		return out.MulScalarI(alpha)
	}
	return nil
}

// SumAxes reduces over several axes in order, scaling the final result
// by alpha.
func (t *Tensor) SumAxes(axes []int, alpha float32) (*Tensor, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: no axes given", ErrInvalidArgument)
	}
	cur := t
	for _, axis := range axes {
		next, err := cur.Sum(axis, 1)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if alpha != 1 {
		if err := cur.MulScalarI(alpha); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// SumByBatch reduces channel, height and width, producing a
// (batch, 1, 1, 1) tensor of per-batch sums.
func (t *Tensor) SumByBatch() (*Tensor, error) {
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	out := newContiguous(NewDim(t.Batch(), 1, 1, 1))
	dst := out.Data()
	feat := t.dim.FeatureLen()
	i := 0
	t.forEach(func(pos int) {
		dst[i/feat] += t.buf.data[pos]
		i++
	})
	return out, nil
}

// Average reduces one axis to its mean.
func (t *Tensor) Average(axis int) (*Tensor, error) {
	if axis < 0 || axis >= MaxDim {
		return nil, fmt.Errorf("%w: axis %d", ErrInvalidArgument, axis)
	}
	n := t.dim.Axis(axis)
	if n == 0 {
		return nil, ErrUninitialized
	}
	return t.Sum(axis, 1/float32(n))
}

// AverageAxes reduces several axes to their joint mean.
func (t *Tensor) AverageAxes(axes []int) (*Tensor, error) {
	count := 1
	for _, axis := range axes {
		if axis < 0 || axis >= MaxDim {
			return nil, fmt.Errorf("%w: axis %d", ErrInvalidArgument, axis)
		}
		count *= t.dim.Axis(axis)
	}
	if count == 0 {
		return nil, ErrUninitialized
	}
	return t.SumAxes(axes, 1/float32(count))
}

// AverageAll reduces every axis, producing a (1, 1, 1, 1) tensor holding
// the mean of all elements.
func (t *Tensor) AverageAll() (*Tensor, error) {
	return t.AverageAxes([]int{AxisBatch, AxisChannel, AxisHeight, AxisWidth})
}

// L2Norm returns the Euclidean norm over all elements.
func (t *Tensor) L2Norm() float32 {
	if t.Uninitialized() {
		return 0
	}
	src := t
	if !t.contiguous {
		src = t.Clone()
	}
	return backend().Nrm2(src.Len(), src.Data(), 1)
}

// minMax scans all elements.
func (t *Tensor) minMax() (min, max float32) {
	min, max = float32(math.Inf(1)), float32(math.Inf(-1))
	t.forEach(func(pos int) {
		v := t.buf.data[pos]
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	})
	return min, max
}

// Normalize rescales all values into [0, 1] over the full tensor (not per
// batch). A constant tensor normalizes to all zeros.
func (t *Tensor) Normalize() (*Tensor, error) {
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	out := newContiguous(t.dim)
	if err := t.NormalizeTo(out); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeTo stages the normalization into out without mutating t.
func (t *Tensor) NormalizeTo(out *Tensor) error {
	if t.Uninitialized() {
		return ErrUninitialized
	}
	min, max := t.minMax()
	if max == min {
		return t.ApplyTo(func(float32) float32 { return 0 }, out)
	}
	scale := 1 / (max - min)
	return t.ApplyTo(func(x float32) float32 { return (x - min) * scale }, out)
}

// NormalizeI rescales in place.
func (t *Tensor) NormalizeI() error {
	return t.NormalizeTo(t)
}

// Standardize rescales all values to zero mean and unit variance over the
// full tensor. The standard deviation is floored at Epsilon.
func (t *Tensor) Standardize() (*Tensor, error) {
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	out := newContiguous(t.dim)
	if err := t.StandardizeTo(out); err != nil {
		return nil, err
	}
	return out, nil
}

// StandardizeTo stages the standardization into out without mutating t.
func (t *Tensor) StandardizeTo(out *Tensor) error {
	if t.Uninitialized() {
		return ErrUninitialized
	}
	n := float64(t.Len())
	var sum float64
	t.forEach(func(pos int) { sum += float64(t.buf.data[pos]) })
	mean := sum / n
	var variance float64
	t.forEach(func(pos int) {
		d := float64(t.buf.data[pos]) - mean
		variance += d * d
	})
	std := math.Sqrt(variance / n)
	if std < Epsilon {
		std = Epsilon
	}
	fm, fs := float32(mean), float32(std)
	return t.ApplyTo(func(x float32) float32 { return (x - fm) / fs }, out)
}

// StandardizeI rescales in place.
func (t *Tensor) StandardizeI() error {
	return t.StandardizeTo(t)
}

// Softmax computes the stabilized softmax per row, where a row is one
// flattened (channel, height, width) batch slice. The per-row maximum is
// subtracted before exponentiation; skipping that shift overflows for
// large logits, so the order is fixed.
func (t *Tensor) Softmax() (*Tensor, error) {
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	out := t.Clone()
	dst := out.Data()
	feat := t.dim.FeatureLen()
	for b := 0; b < t.Batch(); b++ {
		row := dst[b*feat : (b+1)*feat]

		max := row[0]
		for _, v := range row[1:] {
			if v > max {
				max = v
			}
		}

		var sum float32
		for i, v := range row {
			e := float32(math.Exp(float64(v - max)))
			row[i] = e
			sum += e
		}
		for i := range row {
			row[i] /= sum
		}
	}
	return out, nil
}

// Argmax returns, for each batch row, the flat feature index of the
// maximum element. Ties break toward the lowest index, so duplicated
// maxima deterministically favor the first occurrence.
func (t *Tensor) Argmax() []int {
	if t.Uninitialized() {
		return nil
	}
	feat := t.dim.FeatureLen()
	result := make([]int, t.Batch())
	best := make([]float32, t.Batch())
	i := 0
	t.forEach(func(pos int) {
		b, f := i/feat, i%feat
		v := t.buf.data[pos]
		if f == 0 || v > best[b] {
			best[b] = v
			result[b] = f
		}
		i++
	})
	return result
}

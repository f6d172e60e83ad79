package tensor

import (
	"fmt"
	"math"
	"strings"
)

// Epsilon is the tolerance used by value comparisons.
const Epsilon = 1e-5

// Tensor is a dense 4-axis (batch, channel, height, width) array of
// float32 values over a reference-counted shared buffer.
//
// A Tensor value couples a Dim, a stride array, a contiguity flag, and a
// buffer reference plus element offset. Views produced by GetBatchSlice,
// SharedView or Map share the buffer: mutation through one view is visible
// through every alias of the overlapping region.
//
// The zero value (and any tensor with DataLen() == 0) is the uninitialized
// sentinel; operations other than Copy/assignment reject it.
//
// Tensors are not safe for concurrent mutation. The engine takes no locks;
// callers that share buffers across goroutines must synchronize externally.
type Tensor struct {
	dim        Dim
	strides    [MaxDim]int
	contiguous bool
	offset     int
	buf        *buffer
}

// Dim returns a copy of the tensor's dimension descriptor.
func (t *Tensor) Dim() Dim { return t.dim }

// Batch returns the batch axis size.
func (t *Tensor) Batch() int { return t.dim.Batch() }

// Channel returns the channel axis size.
func (t *Tensor) Channel() int { return t.dim.Channel() }

// Height returns the height axis size.
func (t *Tensor) Height() int { return t.dim.Height() }

// Width returns the width axis size.
func (t *Tensor) Width() int { return t.dim.Width() }

// Len returns the number of elements, dim.DataLen().
func (t *Tensor) Len() int { return t.dim.DataLen() }

// Size returns the storage footprint in bytes.
func (t *Tensor) Size() int { return t.Len() * 4 }

// Strides returns the element strides for the four axes.
func (t *Tensor) Strides() [MaxDim]int { return t.strides }

// Contiguous reports whether the strides equal those derived from the Dim.
func (t *Tensor) Contiguous() bool { return t.contiguous }

// Uninitialized reports whether the tensor is the zero-element sentinel.
func (t *Tensor) Uninitialized() bool { return t.Len() == 0 }

// Data returns the tensor's element window into the shared buffer.
// Writes through the slice are writes through the tensor.
// Panics on a non-contiguous view; strided tensors must be addressed
// through At/Set.
func (t *Tensor) Data() []float32 {
	if t.buf == nil {
		return nil
	}
	if !t.contiguous {
		panic("tensor: Data called on non-contiguous view")
	}
	return t.buf.data[t.offset : t.offset+t.Len()]
}

// Release drops this tensor's reference to the shared buffer. The buffer
// is freed once the last referencing tensor releases it. Using the tensor
// afterwards is invalid. Optional: the garbage collector reclaims buffers
// of unreleased tensors anyway.
func (t *Tensor) Release() {
	if t.buf != nil {
		t.buf.release()
		t.buf = nil
	}
}

// index maps logical coordinates to a buffer position via the strides.
func (t *Tensor) index(b, c, h, w int) int {
	return t.offset + b*t.strides[0] + c*t.strides[1] + h*t.strides[2] + w*t.strides[3]
}

// checkBounds panics when a coordinate falls outside the logical extents.
func (t *Tensor) checkBounds(b, c, h, w int) {
	if b < 0 || b >= t.dim.Batch() ||
		c < 0 || c >= t.dim.Channel() ||
		h < 0 || h >= t.dim.Height() ||
		w < 0 || w >= t.dim.Width() {
		panic(fmt.Sprintf("tensor: index (%d, %d, %d, %d) out of range for %s",
			b, c, h, w, t.dim))
	}
}

// At returns the value at (b, c, h, w). Coordinates are bounds-checked;
// out-of-range access panics. Use AtUnchecked in verified hot loops.
func (t *Tensor) At(b, c, h, w int) float32 {
	t.checkBounds(b, c, h, w)
	return t.buf.data[t.index(b, c, h, w)]
}

// AtUnchecked returns the value at (b, c, h, w) without bounds checking.
// The caller must guarantee the coordinates are in range.
func (t *Tensor) AtUnchecked(b, c, h, w int) float32 {
	return t.buf.data[t.index(b, c, h, w)]
}

// Set stores value at (b, c, h, w). Coordinates are bounds-checked;
// out-of-range access panics.
func (t *Tensor) Set(b, c, h, w int, value float32) {
	t.checkBounds(b, c, h, w)
	t.buf.data[t.index(b, c, h, w)] = value
}

// SetUnchecked stores value at (b, c, h, w) without bounds checking.
func (t *Tensor) SetUnchecked(b, c, h, w int, value float32) {
	t.buf.data[t.index(b, c, h, w)] = value
}

// AtPadded reads the tensor as if it were padded by ph rows and pw columns
// of padValue on the height and width axes, without materializing the
// padding. Coordinates address the padded extents; reads that land in the
// pad region return padValue.
//
// For a 3x3 tensor 1..9 with ph = pw = 1, AtPadded(0, 0, 2, 2, 1, 1, 0)
// returns 5.
func (t *Tensor) AtPadded(b, c, h, w, ph, pw int, padValue float32) float32 {
	if h >= ph && h < ph+t.Height() && w >= pw && w < pw+t.Width() {
		return t.At(b, c, h-ph, w-pw)
	}
	return padValue
}

// SetZero fills the tensor with zeros.
func (t *Tensor) SetZero() { t.Fill(0) }

// Fill sets every element to value.
func (t *Tensor) Fill(value float32) {
	t.forEach(func(pos int) { t.buf.data[pos] = value })
}

// forEach visits the buffer position of every logical element in row-major
// order, honoring strides and offset.
func (t *Tensor) forEach(fn func(pos int)) {
	if t.Uninitialized() {
		return
	}
	for b := 0; b < t.dim.Batch(); b++ {
		for c := 0; c < t.dim.Channel(); c++ {
			for h := 0; h < t.dim.Height(); h++ {
				base := t.index(b, c, h, 0)
				for w := 0; w < t.dim.Width(); w++ {
					fn(base + w*t.strides[3])
				}
			}
		}
	}
}

// Copy copies the values of from into this tensor. An uninitialized
// receiver adopts from's shape with a fresh buffer. An initialized
// receiver must hold the same number of elements and adopts from's Dim;
// a non-contiguous view cannot be re-strided, so copying a differently
// shaped tensor into one fails.
func (t *Tensor) Copy(from *Tensor) error {
	if from.Uninitialized() {
		return fmt.Errorf("%w: copy from uninitialized tensor", ErrInvalidArgument)
	}
	if t.Uninitialized() {
		*t = *newContiguous(from.dim)
	} else if t.Len() != from.Len() {
		return fmt.Errorf("%w: copy length %d into %d", ErrShapeMismatch, from.Len(), t.Len())
	} else if !t.dim.Equal(from.dim) {
		if !t.contiguous {
			return fmt.Errorf("%w: copy reshapes a non-contiguous view", ErrInvalidArgument)
		}
		t.dim = from.dim
		t.strides = from.dim.ComputeStrides()
	}
	dst := t.writeIndexer()
	i := 0
	from.forEach(func(pos int) {
		t.buf.data[dst(i)] = from.buf.data[pos]
		i++
	})
	return nil
}

// writeIndexer returns a function mapping the i-th logical element of t to
// its buffer position.
func (t *Tensor) writeIndexer() func(i int) int {
	if t.contiguous {
		return func(i int) int { return t.offset + i }
	}
	fl, hw, w := t.dim.FeatureLen(), t.dim.Height()*t.dim.Width(), t.dim.Width()
	return func(i int) int {
		return t.index(i/fl, i%fl/hw, i%hw/w, i%w)
	}
}

// Clone deep-copies the tensor into a fresh contiguous buffer. This is the
// one operation guaranteed to break aliasing.
func (t *Tensor) Clone() *Tensor {
	if t.Uninitialized() {
		return &Tensor{dim: t.dim, strides: t.dim.ComputeStrides(), contiguous: true}
	}
	out := newContiguous(t.dim)
	dst := out.Data()
	i := 0
	t.forEach(func(pos int) {
		dst[i] = t.buf.data[pos]
		i++
	})
	return out
}

// Equal reports whether m has the same Dim and every element within
// Epsilon of this tensor's.
func (t *Tensor) Equal(m *Tensor) bool {
	if !t.dim.Equal(m.dim) {
		return false
	}
	eq := true
	i := 0
	src := m.writeIndexer()
	t.forEach(func(pos int) {
		if math.Abs(float64(t.buf.data[pos]-m.buf.data[src(i)])) > Epsilon {
			eq = false
		}
		i++
	})
	return eq
}

// String renders the tensor batch by batch in row-major layout.
func (t *Tensor) String() string {
	if t.Uninitialized() {
		return "Tensor<empty>"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor%s\n", t.dim)
	for b := 0; b < t.Batch(); b++ {
		for c := 0; c < t.Channel(); c++ {
			for h := 0; h < t.Height(); h++ {
				for w := 0; w < t.Width(); w++ {
					fmt.Fprintf(&sb, "%g ", t.At(b, c, h, w))
				}
				sb.WriteByte('\n')
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

package tensor

import (
	"fmt"
	"strings"
)

// GetBatchSlice returns a view over size batches of this tensor starting
// at offset. The view shares the underlying buffer: writes through the
// slice are writes through the source.
func (t *Tensor) GetBatchSlice(offset, size int) (*Tensor, error) {
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	if offset < 0 || size <= 0 || offset+size > t.Batch() {
		return nil, fmt.Errorf("%w: batch slice [%d, %d) of %d batches",
			ErrInvalidArgument, offset, offset+size, t.Batch())
	}
	d := t.dim
	d.dims[AxisBatch] = size
	t.buf.addRef()
	return &Tensor{
		dim:        d,
		strides:    t.strides,
		contiguous: t.contiguous,
		offset:     t.index(offset, 0, 0, 0),
		buf:        t.buf,
	}, nil
}

// SharedView returns a tensor of dimension d sharing this tensor's buffer,
// starting offset elements into it. Fails when offset + d.DataLen()
// exceeds the source capacity.
func (t *Tensor) SharedView(d Dim, offset int) (*Tensor, error) {
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if offset < 0 || offset+d.DataLen() > t.Len() {
		return nil, fmt.Errorf("%w: shared view offset %d + len %d exceeds capacity %d",
			ErrInvalidArgument, offset, d.DataLen(), t.Len())
	}
	t.buf.addRef()
	return &Tensor{
		dim:        d,
		strides:    d.ComputeStrides(),
		contiguous: true,
		offset:     t.offset + offset,
		buf:        t.buf,
	}, nil
}

// Reshape reinterprets the tensor with a new dimension of the same total
// length. Only contiguous tensors can be reshaped in place.
func (t *Tensor) Reshape(d Dim) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.DataLen() != t.Len() {
		return fmt.Errorf("%w: reshape %s (%d elements) to %s (%d elements)",
			ErrShapeMismatch, t.dim, t.Len(), d, d.DataLen())
	}
	if !t.contiguous {
		return fmt.Errorf("%w: reshape of non-contiguous view", ErrInvalidArgument)
	}
	t.dim = d
	t.strides = d.ComputeStrides()
	return nil
}

// Transpose permutes the channel, height and width axes according to a
// direction string such as "0:2:1" (axes named 0 = channel, 1 = height,
// 2 = width; "0:2:1" swaps height and width). The batch axis is fixed.
// The source need not be contiguous; the result always is.
func (t *Tensor) Transpose(direction string) (*Tensor, error) {
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	perm, err := parseDirection(direction)
	if err != nil {
		return nil, err
	}

	src := [3]int{t.Channel(), t.Height(), t.Width()}
	d := t.dim
	for i, p := range perm {
		d.dims[AxisChannel+i] = src[p]
	}
	out := newContiguous(d)

	var oc [3]int // output (channel, height, width)
	for b := 0; b < t.Batch(); b++ {
		for oc[0] = 0; oc[0] < d.Channel(); oc[0]++ {
			for oc[1] = 0; oc[1] < d.Height(); oc[1]++ {
				for oc[2] = 0; oc[2] < d.Width(); oc[2]++ {
					var sc [3]int
					for i, p := range perm {
						sc[p] = oc[i]
					}
					out.SetUnchecked(b, oc[0], oc[1], oc[2], t.AtUnchecked(b, sc[0], sc[1], sc[2]))
				}
			}
		}
	}
	return out, nil
}

// parseDirection parses "a:b:c" into a permutation of {0, 1, 2}.
func parseDirection(direction string) ([3]int, error) {
	var perm [3]int
	parts := strings.Split(direction, ":")
	if len(parts) != 3 {
		return perm, fmt.Errorf("%w: transpose direction %q", ErrInvalidArgument, direction)
	}
	var seen [3]bool
	for i, p := range parts {
		switch p {
		case "0", "1", "2":
			perm[i] = int(p[0] - '0')
		default:
			return perm, fmt.Errorf("%w: transpose direction %q", ErrInvalidArgument, direction)
		}
		if seen[perm[i]] {
			return perm, fmt.Errorf("%w: transpose direction %q repeats axis %d",
				ErrInvalidArgument, direction, perm[i])
		}
		seen[perm[i]] = true
	}
	return perm, nil
}

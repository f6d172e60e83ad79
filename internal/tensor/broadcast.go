package tensor

import "fmt"

// broadcastInfo is the iteration plan for pairing t with an operand m of a
// possibly smaller shape: per axis, m's native stride when the sizes match,
// a zero stride when m's size is 1 (the operand is held fixed along that
// axis), anything else is a shape error. The plan is consumed by the single
// generic apply routine below, so every binary kernel shares one broadcast
// semantics and one error behavior.
type broadcastInfo struct {
	strides [MaxDim]int
}

// broadcastInfoFor validates m against t and computes the iteration plan.
// The primary supported case is batch broadcast: m.Batch() == 1 with exact
// channel/height/width match.
func (t *Tensor) broadcastInfoFor(m *Tensor) (broadcastInfo, error) {
	var info broadcastInfo
	for axis := 0; axis < MaxDim; axis++ {
		switch {
		case t.dim.Axis(axis) == m.dim.Axis(axis):
			info.strides[axis] = m.strides[axis]
		case m.dim.Axis(axis) == 1:
			info.strides[axis] = 0
		default:
			return info, fmt.Errorf("%w: cannot broadcast %s onto %s (axis %d)",
				ErrShapeMismatch, m.dim, t.dim, axis)
		}
	}
	return info, nil
}

// applyBinaryTo computes out = fn(t, broadcast(m)) elementwise. out must
// have t's Dim and may be t itself (the in-place form). All validation
// happens before the first write, so a failing call leaves out untouched.
func (t *Tensor) applyBinaryTo(m, out *Tensor, fn func(x, y float32) float32) error {
	if t.Uninitialized() || m.Uninitialized() {
		return ErrUninitialized
	}
	if !out.dim.Equal(t.dim) {
		return fmt.Errorf("%w: output dim %s, want %s", ErrShapeMismatch, out.dim, t.dim)
	}
	info, err := t.broadcastInfoFor(m)
	if err != nil {
		return err
	}

	td, md, od := t.buf.data, m.buf.data, out.buf.data
	for b := 0; b < t.dim.Batch(); b++ {
		for c := 0; c < t.dim.Channel(); c++ {
			for h := 0; h < t.dim.Height(); h++ {
				tBase := t.index(b, c, h, 0)
				oBase := out.index(b, c, h, 0)
				mBase := m.offset + b*info.strides[0] + c*info.strides[1] + h*info.strides[2]
				for w := 0; w < t.dim.Width(); w++ {
					od[oBase+w*out.strides[3]] = fn(td[tBase+w*t.strides[3]], md[mBase+w*info.strides[3]])
				}
			}
		}
	}
	return nil
}

// binary is the allocating form shared by Add/Sub/Mul/Div and friends.
func (t *Tensor) binary(m *Tensor, fn func(x, y float32) float32) (*Tensor, error) {
	if t.Uninitialized() || m.Uninitialized() {
		return nil, ErrUninitialized
	}
	out := newContiguous(t.dim)
	if err := t.applyBinaryTo(m, out, fn); err != nil {
		return nil, err
	}
	return out, nil
}

// binaryI is the in-place form: it mutates t and reports shape errors
// without touching it.
func (t *Tensor) binaryI(m *Tensor, fn func(x, y float32) float32) error {
	return t.applyBinaryTo(m, t, fn)
}

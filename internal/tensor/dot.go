package tensor

import "fmt"

// Dot computes the batched matrix product of t and m, treating the height
// and width axes as the matrix dimensions. Channels are multiplied
// pairwise and must match. When m.Batch() == 1 the same right operand is
// reused across all batches of t; otherwise the batch sizes must match
// exactly. trans and transM transpose the respective operand before the
// multiply.
func (t *Tensor) Dot(m *Tensor, trans, transM bool) (*Tensor, error) {
	rows, cols, _, err := t.dotDims(m, trans, transM)
	if err != nil {
		return nil, err
	}
	out := newContiguous(NewDim(t.Batch(), t.Channel(), rows, cols))
	if err := t.DotTo(m, out, trans, transM, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// DotTo computes the batched matrix product into out, which the caller
// supplies with the result Dim. beta scales out's pre-existing content
// before the product accumulates into it: beta = 0 overwrites, beta = 1
// adds.
func (t *Tensor) DotTo(m, out *Tensor, trans, transM bool, beta float32) error {
	rows, cols, inner, err := t.dotDims(m, trans, transM)
	if err != nil {
		return err
	}
	want := NewDim(t.Batch(), t.Channel(), rows, cols)
	if !out.dim.Equal(want) {
		return fmt.Errorf("%w: output dim %s, want %s", ErrShapeMismatch, out.dim, want)
	}

	if !out.contiguous || out.strides[3] != 1 {
		return fmt.Errorf("%w: non-contiguous dot output", ErrInvalidArgument)
	}
	a, lda := t.gemmOperand()
	bm, ldb := m.gemmOperand()
	c, ldc := out.Data(), out.strides[2]

	aMat := t.Height() * lda
	bMat := m.Height() * ldb
	cMat := rows * ldc
	broadcastM := m.Batch() == 1

	for b := 0; b < t.Batch(); b++ {
		for ch := 0; ch < t.Channel(); ch++ {
			aOff := (b*t.Channel() + ch) * aMat
			cOff := (b*t.Channel() + ch) * cMat
			bOff := ch * bMat
			if !broadcastM {
				bOff += b * m.Channel() * bMat
			}
			backend().Gemm(trans, transM, rows, cols, inner, 1,
				a[aOff:], lda, bm[bOff:], ldb, beta, c[cOff:], ldc)
		}
	}
	return nil
}

// dotDims validates the operand shapes against the transpose flags and
// returns the result rows/cols and the shared inner dimension.
func (t *Tensor) dotDims(m *Tensor, trans, transM bool) (rows, cols, inner int, err error) {
	if t.Uninitialized() || m.Uninitialized() {
		return 0, 0, 0, ErrUninitialized
	}
	if t.Channel() != m.Channel() {
		return 0, 0, 0, fmt.Errorf("%w: dot channels %d vs %d",
			ErrShapeMismatch, t.Channel(), m.Channel())
	}
	if m.Batch() != 1 && m.Batch() != t.Batch() {
		return 0, 0, 0, fmt.Errorf("%w: dot batches %d vs %d",
			ErrShapeMismatch, t.Batch(), m.Batch())
	}
	rows, inner = t.Height(), t.Width()
	if trans {
		rows, inner = inner, rows
	}
	mInner, mCols := m.Height(), m.Width()
	if transM {
		mInner, mCols = mCols, mInner
	}
	if inner != mInner {
		return 0, 0, 0, fmt.Errorf("%w: dot inner dimensions %d vs %d",
			ErrShapeMismatch, inner, mInner)
	}
	return rows, mCols, inner, nil
}

// gemmOperand exposes the tensor as a dense row-major block for the BLAS
// call: the flat data window and the leading dimension of each stored
// matrix. Strided views are compacted first.
func (t *Tensor) gemmOperand() ([]float32, int) {
	if t.contiguous && t.strides[3] == 1 {
		return t.Data(), t.strides[2]
	}
	c := t.Clone()
	return c.Data(), c.strides[2]
}

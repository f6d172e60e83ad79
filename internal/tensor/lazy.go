package tensor

import "fmt"

// lazyOpKind is the closed set of deferrable transforms.
type lazyOpKind int

const (
	lazyAdd lazyOpKind = iota
	lazyAddScalar
	lazySub
	lazySubScalar
	lazyMul
	lazyMulScalar
	lazyDiv
	lazyDivScalar
	lazyPow
	lazyDot
	lazyTranspose
	lazySum
	lazySumByBatch
	lazyAverage
	lazySoftmax
	lazyNormalize
	lazyStandardize
	lazyApply
)

// lazyOp is one recorded transform: a kind plus whichever parameters that
// kind consumes. Keeping the chain as descriptor values (rather than
// captured closures) keeps the execution order auditable.
type lazyOp struct {
	kind      lazyOpKind
	operand   *Tensor
	scalar    float32
	axis      int
	direction string
	trans     bool
	transM    bool
	fn        func(float32) float32
}

// LazyTensor records a sequence of tensor transforms and realizes them,
// in order, against a snapshot of the origin when Run is called. The
// origin tensor is never mutated by the chain.
type LazyTensor struct {
	src *Tensor
	ops []lazyOp
}

// Chain anchors a LazyTensor at this tensor without copying it.
func (t *Tensor) Chain() *LazyTensor {
	return &LazyTensor{src: t}
}

func (l *LazyTensor) append(op lazyOp) *LazyTensor {
	l.ops = append(l.ops, op)
	return l
}

// Add defers t + m.
func (l *LazyTensor) Add(m *Tensor) *LazyTensor {
	return l.append(lazyOp{kind: lazyAdd, operand: m})
}

// AddScalar defers t + value.
func (l *LazyTensor) AddScalar(value float32) *LazyTensor {
	return l.append(lazyOp{kind: lazyAddScalar, scalar: value})
}

// Sub defers t - m.
func (l *LazyTensor) Sub(m *Tensor) *LazyTensor {
	return l.append(lazyOp{kind: lazySub, operand: m})
}

// SubScalar defers t - value.
func (l *LazyTensor) SubScalar(value float32) *LazyTensor {
	return l.append(lazyOp{kind: lazySubScalar, scalar: value})
}

// Mul defers the elementwise product with m.
func (l *LazyTensor) Mul(m *Tensor) *LazyTensor {
	return l.append(lazyOp{kind: lazyMul, operand: m})
}

// MulScalar defers t * value.
func (l *LazyTensor) MulScalar(value float32) *LazyTensor {
	return l.append(lazyOp{kind: lazyMulScalar, scalar: value})
}

// Div defers the elementwise quotient by m.
func (l *LazyTensor) Div(m *Tensor) *LazyTensor {
	return l.append(lazyOp{kind: lazyDiv, operand: m})
}

// DivScalar defers t / value.
func (l *LazyTensor) DivScalar(value float32) *LazyTensor {
	return l.append(lazyOp{kind: lazyDivScalar, scalar: value})
}

// Pow defers raising every element to exponent.
func (l *LazyTensor) Pow(exponent float32) *LazyTensor {
	return l.append(lazyOp{kind: lazyPow, scalar: exponent})
}

// Dot defers the batched matrix product with m.
func (l *LazyTensor) Dot(m *Tensor, trans, transM bool) *LazyTensor {
	return l.append(lazyOp{kind: lazyDot, operand: m, trans: trans, transM: transM})
}

// Transpose defers an axis permutation, e.g. "0:2:1".
func (l *LazyTensor) Transpose(direction string) *LazyTensor {
	return l.append(lazyOp{kind: lazyTranspose, direction: direction})
}

// Sum defers a single-axis reduction scaled by alpha.
func (l *LazyTensor) Sum(axis int, alpha float32) *LazyTensor {
	return l.append(lazyOp{kind: lazySum, axis: axis, scalar: alpha})
}

// SumByBatch defers the per-batch reduction to (batch, 1, 1, 1).
func (l *LazyTensor) SumByBatch() *LazyTensor {
	return l.append(lazyOp{kind: lazySumByBatch})
}

// Average defers a single-axis mean.
func (l *LazyTensor) Average(axis int) *LazyTensor {
	return l.append(lazyOp{kind: lazyAverage, axis: axis})
}

// Softmax defers the per-row stabilized softmax.
func (l *LazyTensor) Softmax() *LazyTensor {
	return l.append(lazyOp{kind: lazySoftmax})
}

// Normalize defers rescaling into [0, 1].
func (l *LazyTensor) Normalize() *LazyTensor {
	return l.append(lazyOp{kind: lazyNormalize})
}

// Standardize defers rescaling to zero mean and unit variance.
func (l *LazyTensor) Standardize() *LazyTensor {
	return l.append(lazyOp{kind: lazyStandardize})
}

// Apply defers an elementwise map.
func (l *LazyTensor) Apply(fn func(float32) float32) *LazyTensor {
	return l.append(lazyOp{kind: lazyApply, fn: fn})
}

// Run executes the recorded ops in order against a working value derived
// from the origin and returns the final result. Every step allocates
// through the eager kernels, so the origin and the operands are left
// unmodified.
func (l *LazyTensor) Run() (*Tensor, error) {
	cur := l.src
	for i, op := range l.ops {
		next, err := op.apply(cur)
		if err != nil {
			return nil, fmt.Errorf("lazy op %d: %w", i, err)
		}
		cur = next
	}
	if cur == l.src {
		// Empty chain: still hand back a snapshot, never the origin.
		return l.src.Clone(), nil
	}
	return cur, nil
}

func (op lazyOp) apply(cur *Tensor) (*Tensor, error) {
	switch op.kind {
	case lazyAdd:
		return cur.Add(op.operand)
	case lazyAddScalar:
		return cur.AddScalar(op.scalar)
	case lazySub:
		return cur.Sub(op.operand)
	case lazySubScalar:
		return cur.SubScalar(op.scalar)
	case lazyMul:
		return cur.Mul(op.operand)
	case lazyMulScalar:
		return cur.MulScalar(op.scalar)
	case lazyDiv:
		return cur.Div(op.operand)
	case lazyDivScalar:
		return cur.DivScalar(op.scalar)
	case lazyPow:
		return cur.Pow(op.scalar)
	case lazyDot:
		return cur.Dot(op.operand, op.trans, op.transM)
	case lazyTranspose:
		return cur.Transpose(op.direction)
	case lazySum:
		return cur.Sum(op.axis, op.scalar)
	case lazySumByBatch:
		return cur.SumByBatch()
	case lazyAverage:
		return cur.Average(op.axis)
	case lazySoftmax:
		return cur.Softmax()
	case lazyNormalize:
		return cur.Normalize()
	case lazyStandardize:
		return cur.Standardize()
	case lazyApply:
		return cur.Apply(op.fn)
	default:
		return nil, fmt.Errorf("%w: unknown lazy op kind %d", ErrInvalidArgument, op.kind)
	}
}

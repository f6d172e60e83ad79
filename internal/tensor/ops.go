package tensor

import (
	"fmt"
	"math"
)

// Every binary and scalar operator exists in two forms: an allocating one
// that returns a fresh tensor and leaves the receiver untouched, and an
// in-place one (suffix I) that mutates the receiver and returns an error
// instead of a value, so hot training loops can check cheaply. Both route
// through the broadcast engine and share its shape semantics.

// Add returns t + m with batch broadcasting.
func (t *Tensor) Add(m *Tensor) (*Tensor, error) {
	return t.binary(m, func(x, y float32) float32 { return x + y })
}

// AddI adds m into t in place.
func (t *Tensor) AddI(m *Tensor) error {
	return t.binaryI(m, func(x, y float32) float32 { return x + y })
}

// AddScaled returns t + alpha*m with batch broadcasting.
func (t *Tensor) AddScaled(m *Tensor, alpha float32) (*Tensor, error) {
	return t.binary(m, func(x, y float32) float32 { return x + alpha*y })
}

// AddScaledI adds alpha*m into t in place. Contiguous same-shaped operands
// take the BLAS axpy fast path.
func (t *Tensor) AddScaledI(m *Tensor, alpha float32) error {
	if t.contiguous && m.contiguous && t.dim.Equal(m.dim) && !t.Uninitialized() {
		backend().Axpy(t.Len(), alpha, m.Data(), 1, t.Data(), 1)
		return nil
	}
	return t.binaryI(m, func(x, y float32) float32 { return x + alpha*y })
}

// Sub returns t - m with batch broadcasting.
func (t *Tensor) Sub(m *Tensor) (*Tensor, error) {
	return t.binary(m, func(x, y float32) float32 { return x - y })
}

// SubI subtracts m from t in place.
func (t *Tensor) SubI(m *Tensor) error {
	return t.binaryI(m, func(x, y float32) float32 { return x - y })
}

// Mul returns the elementwise product t * m (not the matrix product).
func (t *Tensor) Mul(m *Tensor) (*Tensor, error) {
	return t.binary(m, func(x, y float32) float32 { return x * y })
}

// MulTo computes the elementwise product into out.
func (t *Tensor) MulTo(m, out *Tensor) error {
	return t.applyBinaryTo(m, out, func(x, y float32) float32 { return x * y })
}

// MulI multiplies t by m in place.
func (t *Tensor) MulI(m *Tensor) error {
	return t.binaryI(m, func(x, y float32) float32 { return x * y })
}

// Div returns the elementwise quotient t / m.
func (t *Tensor) Div(m *Tensor) (*Tensor, error) {
	return t.binary(m, func(x, y float32) float32 { return x / y })
}

// DivTo computes the elementwise quotient into out.
func (t *Tensor) DivTo(m, out *Tensor) error {
	return t.applyBinaryTo(m, out, func(x, y float32) float32 { return x / y })
}

// DivI divides t by m in place.
func (t *Tensor) DivI(m *Tensor) error {
	return t.binaryI(m, func(x, y float32) float32 { return x / y })
}

// scalar is the allocating form shared by the scalar operators.
func (t *Tensor) scalar(fn func(x float32) float32) (*Tensor, error) {
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	out := newContiguous(t.dim)
	dst := out.Data()
	i := 0
	t.forEach(func(pos int) {
		dst[i] = fn(t.buf.data[pos])
		i++
	})
	return out, nil
}

func (t *Tensor) scalarI(fn func(x float32) float32) error {
	if t.Uninitialized() {
		return ErrUninitialized
	}
	t.forEach(func(pos int) {
		t.buf.data[pos] = fn(t.buf.data[pos])
	})
	return nil
}

// AddScalar returns t + value.
func (t *Tensor) AddScalar(value float32) (*Tensor, error) {
	return t.scalar(func(x float32) float32 { return x + value })
}

// AddScalarI adds value to every element in place.
func (t *Tensor) AddScalarI(value float32) error {
	return t.scalarI(func(x float32) float32 { return x + value })
}

// SubScalar returns t - value.
func (t *Tensor) SubScalar(value float32) (*Tensor, error) {
	return t.scalar(func(x float32) float32 { return x - value })
}

// SubScalarI subtracts value from every element in place.
func (t *Tensor) SubScalarI(value float32) error {
	return t.scalarI(func(x float32) float32 { return x - value })
}

// MulScalar returns t * value.
func (t *Tensor) MulScalar(value float32) (*Tensor, error) {
	return t.scalar(func(x float32) float32 { return x * value })
}

// MulScalarI multiplies every element by value in place.
func (t *Tensor) MulScalarI(value float32) error {
	return t.scalarI(func(x float32) float32 { return x * value })
}

// DivScalar returns t / value. Division by zero fails.
func (t *Tensor) DivScalar(value float32) (*Tensor, error) {
	if value == 0 {
		return nil, fmt.Errorf("%w: division by zero", ErrInvalidArgument)
	}
	return t.scalar(func(x float32) float32 { return x / value })
}

// DivScalarI divides every element by value in place.
func (t *Tensor) DivScalarI(value float32) error {
	if value == 0 {
		return fmt.Errorf("%w: division by zero", ErrInvalidArgument)
	}
	return t.scalarI(func(x float32) float32 { return x / value })
}

// Pow returns t with every element raised to exponent.
func (t *Tensor) Pow(exponent float32) (*Tensor, error) {
	return t.scalar(func(x float32) float32 {
		return float32(math.Pow(float64(x), float64(exponent)))
	})
}

// PowI raises every element to exponent in place.
func (t *Tensor) PowI(exponent float32) error {
	return t.scalarI(func(x float32) float32 {
		return float32(math.Pow(float64(x), float64(exponent)))
	})
}

// Apply maps fn over every element into a fresh tensor. fn may read the
// receiver through other aliases; the source value is loaded before fn runs.
func (t *Tensor) Apply(fn func(float32) float32) (*Tensor, error) {
	return t.scalar(fn)
}

// ApplyTo maps fn over every element into out, which must share t's Dim.
// out may alias t (callers reuse the receiver as scratch).
func (t *Tensor) ApplyTo(fn func(float32) float32, out *Tensor) error {
	if t.Uninitialized() {
		return ErrUninitialized
	}
	if !out.dim.Equal(t.dim) {
		return fmt.Errorf("%w: output dim %s, want %s", ErrShapeMismatch, out.dim, t.dim)
	}
	dst := out.writeIndexer()
	i := 0
	t.forEach(func(pos int) {
		out.buf.data[dst(i)] = fn(t.buf.data[pos])
		i++
	})
	return nil
}

// ApplyI maps fn over every element in place.
func (t *Tensor) ApplyI(fn func(float32) float32) error {
	return t.scalarI(fn)
}

// ApplyTensor applies a tensor-to-tensor transform to t. The receiver is
// passed through as-is; whether it is mutated is up to fn.
func (t *Tensor) ApplyTensor(fn func(*Tensor) (*Tensor, error)) (*Tensor, error) {
	if t.Uninitialized() {
		return nil, ErrUninitialized
	}
	return fn(t)
}

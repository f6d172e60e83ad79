package tensor

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Backend is the external linear-algebra routine set that Dot and the
// scaled-accumulation fast paths delegate to as opaque, blocking calls.
// Implementations operate on raw row-major float32 slices.
type Backend interface {
	// Gemm computes c = alpha * op(a) @ op(b) + beta * c where op honors
	// the transpose flags, c is m x n and the inner dimension is k.
	Gemm(transA, transB bool, m, n, k int, alpha float32, a []float32, lda int,
		b []float32, ldb int, beta float32, c []float32, ldc int)

	// Axpy computes y = alpha*x + y over n strided elements.
	Axpy(n int, alpha float32, x []float32, incX int, y []float32, incY int)

	// Nrm2 returns the Euclidean norm of n strided elements.
	Nrm2(n int, x []float32, incX int) float32
}

// BLASBackend delegates to gonum's float32 BLAS implementation.
type BLASBackend struct{}

var _ Backend = BLASBackend{}

// Gemm implements Backend.
func (BLASBackend) Gemm(transA, transB bool, m, n, k int, alpha float32, a []float32, lda int,
	b []float32, ldb int, beta float32, c []float32, ldc int) {
	blas32.Implementation().Sgemm(trans(transA), trans(transB), m, n, k, alpha, a, lda, b, ldb, beta, c, ldc)
}

// Axpy implements Backend.
func (BLASBackend) Axpy(n int, alpha float32, x []float32, incX int, y []float32, incY int) {
	blas32.Implementation().Saxpy(n, alpha, x, incX, y, incY)
}

// Nrm2 implements Backend.
func (BLASBackend) Nrm2(n int, x []float32, incX int) float32 {
	return blas32.Implementation().Snrm2(n, x, incX)
}

func trans(t bool) blas.Transpose {
	if t {
		return blas.Trans
	}
	return blas.NoTrans
}

var activeBackend Backend = BLASBackend{}

// SetBackend swaps the linear-algebra backend. Not safe to call while
// operations are running on other goroutines.
func SetBackend(b Backend) {
	if b == nil {
		b = BLASBackend{}
	}
	activeBackend = b
}

func backend() Backend { return activeBackend }

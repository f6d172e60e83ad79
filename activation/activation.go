// Copyright 2025 The Tetra Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package activation selects and applies elementwise activation
// functions and their derivatives over the tensor engine. The set of
// kinds is closed (a tagged enum with a dispatch table) except for the
// Custom variant, which carries caller-supplied function values.
package activation

import (
	"errors"
	"fmt"
	"math"

	"github.com/tetra-ml/tetra/internal/tensor"
)

// ErrUnsupported is returned when an activation or derivative is
// requested for an unrecognized kind.
var ErrUnsupported = errors.New("activation: unsupported kind")

// Kind identifies an activation function.
type Kind int

// Supported activation kinds.
const (
	Identity Kind = iota
	Sigmoid
	Tanh
	ReLU
	Softmax
	Custom
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Identity:
		return "identity"
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case Softmax:
		return "softmax"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// scalarPair is one dispatch-table entry: the forward map and its prime.
// Primes take the already-activated value, matching how backpropagation
// feeds them.
type scalarPair struct {
	fn    func(float32) float32
	prime func(float32) float32
}

var dispatch = map[Kind]scalarPair{
	Identity: {
		fn:    func(x float32) float32 { return x },
		prime: func(float32) float32 { return 1 },
	},
	Sigmoid: {
		fn:    sigmoidFloat,
		prime: func(y float32) float32 { return y * (1 - y) },
	},
	Tanh: {
		fn:    func(x float32) float32 { return float32(math.Tanh(float64(x))) },
		prime: func(y float32) float32 { return 1 - y*y },
	},
	ReLU: {
		fn: func(x float32) float32 {
			if x <= 0 {
				return 0
			}
			return x
		},
		prime: func(y float32) float32 {
			if y <= 0 {
				return 0
			}
			return 1
		},
	},
}

func sigmoidFloat(x float32) float32 {
	return 1 / (1 + float32(math.Exp(float64(-x))))
}

// Activation applies one activation kind and its derivative.
type Activation struct {
	kind  Kind
	fn    func(float32) float32
	prime func(float32) float32
}

// New returns the activation for a kind. Unrecognized kinds (including
// Custom, which needs its function values) fail with ErrUnsupported.
func New(kind Kind) (*Activation, error) {
	if kind == Softmax {
		return &Activation{kind: Softmax}, nil
	}
	pair, ok := dispatch[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
	return &Activation{kind: kind, fn: pair.fn, prime: pair.prime}, nil
}

// NewCustom builds an activation from caller-supplied scalar function
// values. prime receives the already-activated value.
func NewCustom(fn, prime func(float32) float32) (*Activation, error) {
	if fn == nil || prime == nil {
		return nil, fmt.Errorf("%w: custom activation needs both fn and prime", ErrUnsupported)
	}
	return &Activation{kind: Custom, fn: fn, prime: prime}, nil
}

// Kind returns the activation's kind tag.
func (a *Activation) Kind() Kind { return a.kind }

// Forward applies the activation elementwise; Softmax applies the
// stabilized per-row softmax.
func (a *Activation) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	if a.kind == Softmax {
		return x.Softmax()
	}
	return x.Apply(a.fn)
}

// Derivative computes the activation derivative at the activated values x.
// upstream, when non-nil, is the incoming derivative the result is chained
// with; scalar kinds multiply it elementwise, Softmax right-multiplies its
// Jacobian by it.
func (a *Activation) Derivative(x, upstream *tensor.Tensor) (*tensor.Tensor, error) {
	if a.kind == Softmax {
		return softmaxPrime(x, upstream)
	}
	out, err := x.Apply(a.prime)
	if err != nil {
		return nil, err
	}
	if upstream != nil {
		if err := out.MulI(upstream); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// softmaxPrime computes the action of the full per-row softmax Jacobian,
// J[i][j] = x_i*(1 - x_i) when i == j and -x_i*x_j otherwise, where a row
// spans the width axis of the already-softmaxed values x. When upstream is
// non-nil each term is scaled by its entry (chain rule); otherwise the raw
// Jacobian rows are summed unscaled.
func softmaxPrime(x, upstream *tensor.Tensor) (*tensor.Tensor, error) {
	if x.Uninitialized() {
		return nil, tensor.ErrUninitialized
	}
	if upstream != nil && !upstream.Dim().Equal(x.Dim()) {
		return nil, fmt.Errorf("%w: derivative dim %s, want %s",
			tensor.ErrShapeMismatch, upstream.Dim(), x.Dim())
	}
	out, err := tensor.New(x.Dim())
	if err != nil {
		return nil, err
	}
	width := x.Width()
	for b := 0; b < x.Batch(); b++ {
		for c := 0; c < x.Channel(); c++ {
			for h := 0; h < x.Height(); h++ {
				for j := 0; j < width; j++ {
					var sum float32
					xj := x.AtUnchecked(b, c, h, j)
					for l := 0; l < width; l++ {
						xl := x.AtUnchecked(b, c, h, l)
						var val float32
						if j == l {
							val = xl * (1 - xj)
						} else {
							val = -xl * xj
						}
						if upstream != nil {
							val *= upstream.AtUnchecked(b, c, h, l)
						}
						sum += val
					}
					out.SetUnchecked(b, c, h, j, sum)
				}
			}
		}
	}
	return out, nil
}

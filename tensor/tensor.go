// Copyright 2025 The Tetra Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/tetra-ml/tetra/internal/tensor"
)

// Tensor is a dense 4-axis float32 array over a reference-counted shared
// buffer. See the internal/tensor package for method documentation.
type Tensor = tensor.Tensor

// Dim describes the four axis extents (batch, channel, height, width).
type Dim = tensor.Dim

// LazyTensor records a deferred chain of tensor transforms.
type LazyTensor = tensor.LazyTensor

// Backend is the pluggable external linear-algebra routine set.
type Backend = tensor.Backend

// BLASBackend is the default Backend, delegating to gonum's float32 BLAS.
type BLASBackend = tensor.BLASBackend

// Axis indices in logical order, outer to inner.
const (
	AxisBatch   = tensor.AxisBatch
	AxisChannel = tensor.AxisChannel
	AxisHeight  = tensor.AxisHeight
	AxisWidth   = tensor.AxisWidth

	// MaxDim is the number of logical axes every tensor carries.
	MaxDim = tensor.MaxDim
)

// Epsilon is the tolerance used by value comparisons.
const Epsilon = tensor.Epsilon

// Common errors.
var (
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrInvalidArgument = tensor.ErrInvalidArgument
	ErrUninitialized   = tensor.ErrUninitialized
	ErrOutOfRange      = tensor.ErrOutOfRange
)

// NewDim builds a Dim from the four axis sizes.
func NewDim(batch, channel, height, width int) Dim {
	return tensor.NewDim(batch, channel, height, width)
}

// New allocates a zero-filled tensor of the given dimension.
func New(d Dim) (*Tensor, error) { return tensor.New(d) }

// Full allocates a tensor with every element set to value.
func Full(d Dim, value float32) (*Tensor, error) { return tensor.Full(d, value) }

// FromData allocates a tensor of the given dimension and copies data into it.
func FromData(d Dim, data []float32) (*Tensor, error) { return tensor.FromData(d, data) }

// From4D infers the Dim from a nested batch/channel/height/width literal.
func From4D(data [][][][]float32) (*Tensor, error) { return tensor.From4D(data) }

// From3D builds a (1, channel, height, width) tensor from a nested literal.
func From3D(data [][][]float32) (*Tensor, error) { return tensor.From3D(data) }

// From2D builds a (1, 1, height, width) tensor from a nested literal.
func From2D(data [][]float32) (*Tensor, error) { return tensor.From2D(data) }

// From1D builds a (1, 1, 1, width) tensor from a flat literal.
func From1D(data []float32) (*Tensor, error) { return tensor.From1D(data) }

// Map wraps caller-supplied memory as a tensor view without copying.
func Map(data []float32, d Dim, offset int) (*Tensor, error) {
	return tensor.Map(data, d, offset)
}

// SetBackend swaps the linear-algebra backend; nil restores the default.
func SetBackend(b Backend) { tensor.SetBackend(b) }

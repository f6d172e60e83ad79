// Copyright 2025 The Tetra Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public API of the tetra tensor engine: dense
// 4-axis (batch, channel, height, width) float32 arrays with strided
// views, batch broadcasting, dual allocating/in-place kernels, BLAS-backed
// matrix multiply, deferred op chains, and raw stream serialization.
//
// # Basic usage
//
//	x, _ := tensor.From2D([][]float32{{1, 2}, {3, 4}}) // (1, 1, 2, 2)
//	y, _ := x.DivScalar(2)
//	_ = x.AddI(y) // in-place form for hot loops
//
// # Views and aliasing
//
// GetBatchSlice, SharedView and Map produce tensors that share the source
// buffer: a write through one alias is visible through all of them. Clone
// is the operation that breaks aliasing. Tensors that share a buffer must
// not be mutated concurrently; the engine takes no locks.
//
// # Deferred chains
//
//	out, err := x.Chain().Normalize().Average(tensor.AxisBatch).Run()
//
// records the transforms and realizes them in order against a working
// value, leaving x unmodified.
package tensor

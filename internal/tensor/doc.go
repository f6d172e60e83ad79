// Package tensor implements the dense 4-axis (batch, channel, height,
// width) float32 array engine: strided storage over reference-counted
// shared buffers, batch broadcasting, elementwise and reduction kernels,
// BLAS-backed batched matrix multiply, deferred op chains, and raw stream
// serialization.
//
// The engine is single-threaded and synchronous. All state lives in
// Tensor values; kernels retain nothing between calls.
package tensor

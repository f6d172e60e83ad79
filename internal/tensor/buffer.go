package tensor

import "sync/atomic"

// buffer is a reference-counted block of float32 cells shared by every
// tensor that aliases it (views, slices, Map-constructed tensors).
// There is no copy-on-write: a write through one alias is visible through
// all others over the overlapping region. In-place parameter updates
// depend on that, so aliasing must never be broken silently; Clone is the
// one operation that does.
type buffer struct {
	data     []float32
	refCount atomic.Int32
}

// newBuffer allocates a zero-filled buffer with refCount = 1.
func newBuffer(n int) *buffer {
	b := &buffer{data: make([]float32, n)}
	b.refCount.Store(1)
	return b
}

// wrapBuffer shares caller-owned memory without copying, refCount = 1.
func wrapBuffer(data []float32) *buffer {
	b := &buffer{data: data}
	b.refCount.Store(1)
	return b
}

// addRef increments the reference count (views, slices).
func (b *buffer) addRef() {
	b.refCount.Add(1)
}

// release decrements the reference count and drops the data when the last
// reference goes away.
func (b *buffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.data = nil
	}
}

// isUnique reports whether this buffer has a single owner.
func (b *buffer) isUnique() bool {
	return b.refCount.Load() == 1
}

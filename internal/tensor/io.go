package tensor

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Save writes the tensor's values to w as little-endian IEEE-754 float32,
// in strict logical row-major order (batch, channel, height, width),
// regardless of how the view is strided. The stream carries no shape
// header: a reader must know the exact Dim used at write time. This is
// the legacy checkpoint format; prefer the self-describing container in
// internal/serialization for new files.
func (t *Tensor) Save(w io.Writer) error {
	if t.Uninitialized() {
		return ErrUninitialized
	}
	vals := make([]float32, 0, t.Len())
	t.forEach(func(pos int) { vals = append(vals, t.buf.data[pos]) })
	if err := binary.Write(w, binary.LittleEndian, vals); err != nil {
		return fmt.Errorf("tensor: save: %w", err)
	}
	return nil
}

// Read fills an already-shaped tensor with Len() float32 values from r,
// the inverse of Save. Reading against the wrong Dim silently produces
// garbage; the caller owns recording the shape out of band.
func (t *Tensor) Read(r io.Reader) error {
	if t.Uninitialized() {
		return ErrUninitialized
	}
	vals := make([]float32, t.Len())
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return fmt.Errorf("tensor: read: %w", err)
	}
	dst := t.writeIndexer()
	for i, v := range vals {
		t.buf.data[dst(i)] = v
	}
	return nil
}

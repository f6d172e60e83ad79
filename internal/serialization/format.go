package serialization

import (
	"fmt"
	"math"
	"time"

	"github.com/tetra-ml/tetra/internal/tensor"
)

// Format constants.
const (
	MagicBytes    = "TTSR"
	FormatVersion = 1

	// MaxHeaderSize bounds the JSON header so a corrupt length field
	// cannot trigger an unbounded allocation.
	MaxHeaderSize = 16 << 20

	elemSize = 4 // float32
)

// Header is the JSON header of a .ttsr file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	CreatedAt     time.Time         `json:"created_at"`
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	Dims   [4]int `json:"dims"`   // batch, channel, height, width
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`   // bytes
}

// Dim reconstructs the tensor dimension descriptor.
func (m TensorMeta) Dim() tensor.Dim {
	return tensor.NewDim(m.Dims[0], m.Dims[1], m.Dims[2], m.Dims[3])
}

// elements returns the element count of the described tensor, rejecting
// header dims whose product would overflow before it can be cross-checked
// against Size.
func (m TensorMeta) elements() (int, error) {
	n := 1
	for axis, d := range m.Dims {
		if d <= 0 {
			return 0, fmt.Errorf("axis %d has size %d", axis, d)
		}
		if d > math.MaxInt/n {
			return 0, fmt.Errorf("dims %v overflow", m.Dims)
		}
		n *= d
	}
	if int64(n) > int64(math.MaxInt64)/elemSize {
		return 0, fmt.Errorf("dims %v overflow", m.Dims)
	}
	return n, nil
}

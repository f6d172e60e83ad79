package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tetra-ml/tetra/internal/tensor"
)

// Write serializes a named tensor set to w in .ttsr format. Tensors are
// laid out in lexical name order so output is deterministic. metadata is
// optional free-form key/value context carried in the header.
func Write(w io.Writer, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Metadata:      metadata,
		Tensors:       make([]TensorMeta, 0, len(names)),
	}
	var offset int64
	for _, name := range names {
		t := tensors[name]
		if t.Uninitialized() {
			return fmt.Errorf("serialization: tensor %q is uninitialized", name)
		}
		size := int64(t.Len()) * elemSize
		d := t.Dim()
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			Dims:   [4]int{d.Batch(), d.Channel(), d.Height(), d.Width()},
			Offset: offset,
			Size:   size,
		})
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("serialization: marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	if _, err := io.WriteString(w, MagicBytes); err != nil {
		return fmt.Errorf("serialization: write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return fmt.Errorf("serialization: write version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(headerJSON))); err != nil {
		return fmt.Errorf("serialization: write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("serialization: write header: %w", err)
	}

	for _, name := range names {
		if err := tensors[name].Save(w); err != nil {
			return fmt.Errorf("serialization: write tensor %q: %w", name, err)
		}
	}
	return nil
}

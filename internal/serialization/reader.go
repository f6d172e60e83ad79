package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tetra-ml/tetra/internal/tensor"
)

// Read deserializes a .ttsr stream written by Write, returning the named
// tensors and the decoded header. Tensors come back as fresh contiguous
// allocations.
func Read(r io.Reader) (map[string]*tensor.Tensor, *Header, error) {
	header, err := readHeader(r)
	if err != nil {
		return nil, nil, err
	}

	tensors := make(map[string]*tensor.Tensor, len(header.Tensors))
	var expected int64
	for _, meta := range header.Tensors {
		elems, err := meta.elements()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: tensor %q: %v", ErrInvalidHeader, meta.Name, err)
		}
		if meta.Offset != expected || meta.Size != int64(elems)*elemSize {
			return nil, nil, fmt.Errorf("%w: tensor %q", ErrDimMismatch, meta.Name)
		}
		expected += meta.Size
		d := meta.Dim()

		t, err := tensor.New(d)
		if err != nil {
			return nil, nil, fmt.Errorf("serialization: tensor %q: %w", meta.Name, err)
		}
		if err := t.Read(r); err != nil {
			return nil, nil, fmt.Errorf("serialization: read tensor %q: %w", meta.Name, err)
		}
		tensors[meta.Name] = t
	}
	return tensors, header, nil
}

func readHeader(r io.Reader) (*Header, error) {
	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("serialization: read magic: %w", err)
	}
	if string(magic) != MagicBytes {
		return nil, ErrInvalidMagic
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("serialization: read version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var headerSize uint32
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("serialization: read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, fmt.Errorf("serialization: read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	return &header, nil
}

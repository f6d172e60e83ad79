package serialization

import "errors"

// Common errors.
var (
	ErrInvalidMagic       = errors.New("serialization: invalid magic bytes")
	ErrUnsupportedVersion = errors.New("serialization: unsupported format version")
	ErrHeaderTooLarge     = errors.New("serialization: header exceeds maximum size")
	ErrInvalidHeader      = errors.New("serialization: invalid header")
	ErrDimMismatch        = errors.New("serialization: tensor extent does not match its dims")
)

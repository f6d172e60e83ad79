package tensor

import "errors"

// Common errors.
var (
	ErrShapeMismatch   = errors.New("tensor: incompatible shapes")
	ErrInvalidArgument = errors.New("tensor: invalid argument")
	ErrUninitialized   = errors.New("tensor: uninitialized tensor")
	ErrOutOfRange      = errors.New("tensor: out of range")
)

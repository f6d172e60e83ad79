// Package serialization implements the self-describing container format
// for tensor checkpoints: magic bytes, a format version, a JSON header
// naming every tensor with its dimensions and byte extents, then the raw
// little-endian float32 data.
//
// The legacy headerless stream (raw sequential floats, shape known out of
// band) lives on the tensor type itself as Save/Read; it is kept for
// compatibility only, since a read against the wrong shape silently
// produces garbage.
package serialization

// Package vector implements the binary wire codec for pgvector's dense
// ("vector") and sparse ("sparsevec") float32 vector types.
//
// Dense layout, big-endian:
//
//	offset  size   field
//	0       2      dim, uint16
//	2       2      reserved, must be 0
//	4       4×dim  elements, IEEE-754 float32
//
// Sparse layout, big-endian:
//
//	offset      size   field
//	0           4      dim, int32
//	4           4      nnz, int32
//	8           4      reserved, must be 0
//	12          4×nnz  indices, int32, ascending, 0-based
//	12+4×nnz    4×nnz  values, IEEE-754 float32
//
// The codec is stateless; encode and decode calls may run concurrently.
// Driver bindings (see packages vecsql and vecmsgpack) go through the Codec
// interface or the Encode*/Decode* functions.
package vector

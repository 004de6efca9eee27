package vector

import (
	"fmt"
	"math"
	"slices"
)

// Wire type identifiers as declared by the database extension.
const (
	TypeVector       = "vector"
	TypeSparseVector = "sparsevec"
)

// EncodeVector encodes v in the dense wire layout:
//
//	dim (uint16) | reserved (uint16, 0) | dim × float32
//
// all big-endian. It fails with an *EncodingError when v has more than
// 65535 elements.
func EncodeVector(v Vector) ([]byte, error) {
	return AppendVector(nil, v)
}

// AppendVector appends the dense encoding of v to dst. On error dst is
// returned unchanged.
func AppendVector(dst []byte, v Vector) ([]byte, error) {
	n := len(v.vec)
	if n > math.MaxUint16 {
		return dst, &EncodingError{Field: fieldDim, Value: n, Limit: math.MaxUint16}
	}
	dst = slices.Grow(dst, denseHeaderSize+4*n)
	dst = appendUint16(dst, uint16(n))
	dst = appendUint16(dst, 0)
	for _, f := range v.vec {
		dst = appendFloat32(dst, f)
	}
	return dst, nil
}

// DecodeVector decodes a dense vector. Trailing bytes after the declared
// elements are ignored. Float bit patterns, including NaN and Inf, are
// preserved.
func DecodeVector(b []byte) (Vector, error) {
	r := &reader{buf: b}
	if err := r.need(denseHeaderSize); err != nil {
		return Vector{}, err
	}
	dim := int(r.uint16())
	if reserved := r.uint16(); reserved != 0 {
		return Vector{}, &FormatError{Field: fieldReserved, Offset: 2, Value: int64(reserved)}
	}
	if err := r.need(4 * dim); err != nil {
		return Vector{}, err
	}
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = r.float32()
	}
	return Vector{vec: vec}, nil
}

// EncodeSparseVector encodes v in the sparse wire layout:
//
//	dim (int32) | nnz (int32) | reserved (int32, 0) | nnz × int32 | nnz × float32
//
// all big-endian. Indices are written in stored order; they are not sorted.
func EncodeSparseVector(v SparseVector) ([]byte, error) {
	return AppendSparseVector(nil, v)
}

// AppendSparseVector appends the sparse encoding of v to dst. On error dst
// is returned unchanged.
func AppendSparseVector(dst []byte, v SparseVector) ([]byte, error) {
	if v.dim > math.MaxInt32 || v.dim < 0 {
		return dst, &EncodingError{Field: fieldDim, Value: v.dim, Limit: math.MaxInt32}
	}
	nnz := len(v.indices)
	if nnz > math.MaxInt32 {
		return dst, &EncodingError{Field: fieldNNZ, Value: nnz, Limit: math.MaxInt32}
	}
	if len(v.values) != nnz {
		return dst, &InvalidVectorError{Reason: fmt.Sprintf("%d indices but %d values", nnz, len(v.values))}
	}
	dst = slices.Grow(dst, sparseHeaderSize+8*nnz)
	dst = appendInt32(dst, int32(v.dim))
	dst = appendInt32(dst, int32(nnz))
	dst = appendInt32(dst, 0)
	for _, idx := range v.indices {
		dst = appendInt32(dst, idx)
	}
	for _, f := range v.values {
		dst = appendFloat32(dst, f)
	}
	return dst, nil
}

// DecodeSparseVector decodes a sparse vector. Index ordering and uniqueness
// are not re-validated; the database is the only expected producer.
func DecodeSparseVector(b []byte) (SparseVector, error) {
	r := &reader{buf: b}
	if err := r.need(sparseHeaderSize); err != nil {
		return SparseVector{}, err
	}
	dim := r.int32()
	nnz := r.int32()
	if reserved := r.int32(); reserved != 0 {
		return SparseVector{}, &FormatError{Field: fieldReserved, Offset: 8, Value: int64(reserved)}
	}
	if dim < 0 {
		return SparseVector{}, &FormatError{Field: fieldDim, Offset: 0, Value: int64(dim)}
	}
	if nnz < 0 {
		return SparseVector{}, &FormatError{Field: fieldNNZ, Offset: 4, Value: int64(nnz)}
	}
	if err := r.need(8 * int(nnz)); err != nil {
		return SparseVector{}, err
	}
	out := SparseVector{
		dim:     int(dim),
		indices: make([]int32, nnz),
		values:  make([]float32, nnz),
	}
	for i := range out.indices {
		out.indices[i] = r.int32()
	}
	for i := range out.values {
		out.values[i] = r.float32()
	}
	return out, nil
}

// Codec is the narrow contract driver adapters bind to: raw bytes in, a
// vector value out, and back.
// Implementations are stateless and safe for concurrent use.
type Codec interface {
	// Name returns the wire type identifier the codec handles.
	Name() string
	Encode(v any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// DenseCodec handles the "vector" type. Encode accepts Vector, *Vector and
// []float32; Decode returns Vector.
type DenseCodec struct{}

// Name returns "vector".
func (DenseCodec) Name() string { return TypeVector }

func (DenseCodec) Encode(v any) ([]byte, error) {
	switch actual := v.(type) {
	case Vector:
		return EncodeVector(actual)
	case *Vector:
		if actual == nil {
			return nil, nil
		}
		return EncodeVector(*actual)
	case []float32:
		return EncodeVector(Vector{vec: actual})
	default:
		return nil, fmt.Errorf("%w: %s codec got %T", ErrUnsupportedType, TypeVector, v)
	}
}

func (DenseCodec) Decode(data []byte) (any, error) {
	return DecodeVector(data)
}

// SparseCodec handles the "sparsevec" type. Encode accepts SparseVector and
// *SparseVector; Decode returns SparseVector.
type SparseCodec struct{}

// Name returns "sparsevec".
func (SparseCodec) Name() string { return TypeSparseVector }

func (SparseCodec) Encode(v any) ([]byte, error) {
	switch actual := v.(type) {
	case SparseVector:
		return EncodeSparseVector(actual)
	case *SparseVector:
		if actual == nil {
			return nil, nil
		}
		return EncodeSparseVector(*actual)
	default:
		return nil, fmt.Errorf("%w: %s codec got %T", ErrUnsupportedType, TypeSparseVector, v)
	}
}

func (SparseCodec) Decode(data []byte) (any, error) {
	return DecodeSparseVector(data)
}

var (
	_ Codec = DenseCodec{}
	_ Codec = SparseCodec{}
)

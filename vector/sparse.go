package vector

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// SparseVector is the Go counterpart of the pgvector "sparsevec" type: a
// logical dimension plus the non-zero entries as parallel, ascending
// 0-based indices and values.
type SparseVector struct {
	dim     int
	indices []int32
	values  []float32
}

// NewSparseVector creates a SparseVector from explicit components. Indices
// must be strictly ascending and within [0, dim); indices and values must
// have the same length.
func NewSparseVector(dim int, indices []int32, values []float32) (SparseVector, error) {
	if dim < 0 || dim > math.MaxInt32 {
		return SparseVector{}, &InvalidVectorError{Reason: fmt.Sprintf("dim %d out of range", dim)}
	}
	if len(indices) != len(values) {
		return SparseVector{}, &InvalidVectorError{Reason: fmt.Sprintf("%d indices but %d values", len(indices), len(values))}
	}
	for i, idx := range indices {
		if idx < 0 || int(idx) >= dim {
			return SparseVector{}, &InvalidVectorError{Reason: fmt.Sprintf("index %d out of range [0, %d)", idx, dim)}
		}
		if i > 0 && idx <= indices[i-1] {
			return SparseVector{}, &InvalidVectorError{Reason: fmt.Sprintf("index %d not ascending after %d", idx, indices[i-1])}
		}
	}
	return SparseVector{
		dim:     dim,
		indices: append([]int32(nil), indices...),
		values:  append([]float32(nil), values...),
	}, nil
}

// SparseVectorFromDense keeps the non-zero elements of vals, in order.
func SparseVectorFromDense(vals []float32) SparseVector {
	out := SparseVector{dim: len(vals)}
	for i, v := range vals {
		if v != 0 {
			out.indices = append(out.indices, int32(i))
			out.values = append(out.values, v)
		}
	}
	return out
}

// SparseVectorFromMap creates a SparseVector from an index→value map.
// Zero values are dropped and indices are sorted.
func SparseVectorFromMap(dim int, m map[int32]float32) (SparseVector, error) {
	indices := make([]int32, 0, len(m))
	for idx, v := range m {
		if v != 0 {
			indices = append(indices, idx)
		}
	}
	slices.Sort(indices)
	values := make([]float32, len(indices))
	for i, idx := range indices {
		values[i] = m[idx]
	}
	return NewSparseVector(dim, indices, values)
}

// Dims returns the logical dimension.
func (v SparseVector) Dims() int { return v.dim }

// NNZ returns the number of stored entries.
func (v SparseVector) NNZ() int { return len(v.indices) }

// Indices returns a copy of the 0-based indices.
func (v SparseVector) Indices() []int32 { return append([]int32(nil), v.indices...) }

// Values returns a copy of the stored values.
func (v SparseVector) Values() []float32 { return append([]float32(nil), v.values...) }

// ToDense expands the vector to dim elements. Out-of-range indices, which
// can only come from untrusted wire input, are skipped.
//
// The result always allocates Dims() floats. A decoded header may declare
// up to math.MaxInt32 dimensions, so callers expanding wire input should
// use ToDenseLimit.
func (v SparseVector) ToDense() []float32 {
	out := make([]float32, v.dim)
	for i, idx := range v.indices {
		if idx >= 0 && int(idx) < v.dim {
			out[idx] = v.values[i]
		}
	}
	return out
}

// ToDenseLimit is ToDense for vectors of at most limit dimensions. Larger
// vectors fail with an *InvalidVectorError before anything is allocated.
func (v SparseVector) ToDenseLimit(limit int) ([]float32, error) {
	if v.dim > limit {
		return nil, &InvalidVectorError{Reason: fmt.Sprintf("dimension %d exceeds limit %d", v.dim, limit)}
	}
	return v.ToDense(), nil
}

// Equal reports structural equality of dim, indices and values.
func (v SparseVector) Equal(o SparseVector) bool {
	if v.dim != o.dim || !slices.Equal(v.indices, o.indices) || len(v.values) != len(o.values) {
		return false
	}
	for i := range v.values {
		if !sameFloat(v.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

// String returns the text form with 1-based indices, e.g. "{1:1,3:2}/4".
func (v SparseVector) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, idx := range v.indices {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(int64(idx)+1, 10))
		sb.WriteByte(':')
		sb.WriteString(formatFloat(v.values[i]))
	}
	sb.WriteString("}/")
	sb.WriteString(strconv.Itoa(v.dim))
	return sb.String()
}

// MarshalBinary encodes the vector in the sparse wire layout.
func (v SparseVector) MarshalBinary() ([]byte, error) { return EncodeSparseVector(v) }

// UnmarshalBinary replaces v with the vector decoded from data.
func (v *SparseVector) UnmarshalBinary(data []byte) error {
	out, err := DecodeSparseVector(data)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

package vector

import (
	"math"
	"strconv"
	"strings"
)

// Vector is a dense float32 vector, the Go counterpart of the pgvector
// "vector" type. A Vector is immutable once constructed.
type Vector struct {
	vec []float32
}

// NewVector creates a Vector from a copy of vals.
func NewVector(vals []float32) Vector {
	return Vector{vec: append([]float32(nil), vals...)}
}

// Slice returns a copy of the vector elements.
func (v Vector) Slice() []float32 {
	return append([]float32(nil), v.vec...)
}

// Dims returns the number of elements.
func (v Vector) Dims() int { return len(v.vec) }

// Equal reports whether v and o hold the same elements. Elements are equal
// when they compare equal as numbers (0 and -0 match) or share a bit
// pattern (a NaN matches itself).
func (v Vector) Equal(o Vector) bool {
	if len(v.vec) != len(o.vec) {
		return false
	}
	for i := range v.vec {
		if !sameFloat(v.vec[i], o.vec[i]) {
			return false
		}
	}
	return true
}

func sameFloat(x, y float32) bool {
	return x == y || math.Float32bits(x) == math.Float32bits(y)
}

// String returns the text form, e.g. "[1,2,3]".
func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range v.vec {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(formatFloat(f))
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalBinary encodes the vector in the dense wire layout.
func (v Vector) MarshalBinary() ([]byte, error) { return EncodeVector(v) }

// UnmarshalBinary replaces v with the vector decoded from data.
func (v *Vector) UnmarshalBinary(data []byte) error {
	out, err := DecodeVector(data)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

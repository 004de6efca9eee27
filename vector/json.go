package vector

import (
	gojson "github.com/goccy/go-json"
)

type sparseJSON struct {
	Dim     int       `json:"dim"`
	Indices []int32   `json:"indices"`
	Values  []float32 `json:"values"`
}

// MarshalJSON encodes the vector as a JSON array of numbers.
func (v Vector) MarshalJSON() ([]byte, error) {
	if v.vec == nil {
		return []byte("[]"), nil
	}
	return gojson.Marshal(v.vec)
}

// UnmarshalJSON decodes a JSON array of numbers.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var vec []float32
	if err := gojson.Unmarshal(data, &vec); err != nil {
		return err
	}
	v.vec = vec
	return nil
}

// MarshalJSON encodes the vector as {"dim":..,"indices":[..],"values":[..]}
// with 0-based indices.
func (v SparseVector) MarshalJSON() ([]byte, error) {
	out := sparseJSON{Dim: v.dim, Indices: v.indices, Values: v.values}
	if out.Indices == nil {
		out.Indices = []int32{}
		out.Values = []float32{}
	}
	return gojson.Marshal(out)
}

// UnmarshalJSON decodes the object form produced by MarshalJSON and applies
// the same validation as NewSparseVector.
func (v *SparseVector) UnmarshalJSON(data []byte) error {
	var in sparseJSON
	if err := gojson.Unmarshal(data, &in); err != nil {
		return err
	}
	out, err := NewSparseVector(in.Dim, in.Indices, in.Values)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

package vecsql

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/viant/pgvec/vector"
)

// NullVector is a nullable dense vector column value.
type NullVector struct {
	Vector vector.Vector
	Valid  bool
}

// Scan implements sql.Scanner. It accepts NULL and the binary encoding.
func (n *NullVector) Scan(src any) error {
	raw, ok, err := scanBytes(vector.TypeVector, src)
	if err != nil || !ok {
		n.Vector, n.Valid = vector.Vector{}, false
		return err
	}
	v, err := vector.DecodeVector(raw)
	if err != nil {
		n.Vector, n.Valid = vector.Vector{}, false
		return &ConversionError{TypeName: vector.TypeVector, Op: "scan", Err: err}
	}
	n.Vector, n.Valid = v, true
	return nil
}

// Value implements driver.Valuer.
func (n NullVector) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	b, err := vector.EncodeVector(n.Vector)
	if err != nil {
		return nil, &ConversionError{TypeName: vector.TypeVector, Op: "value", Err: err}
	}
	return b, nil
}

// NullSparseVector is a nullable sparse vector column value.
type NullSparseVector struct {
	SparseVector vector.SparseVector
	Valid        bool
}

// Scan implements sql.Scanner. It accepts NULL and the binary encoding.
func (n *NullSparseVector) Scan(src any) error {
	raw, ok, err := scanBytes(vector.TypeSparseVector, src)
	if err != nil || !ok {
		n.SparseVector, n.Valid = vector.SparseVector{}, false
		return err
	}
	v, err := vector.DecodeSparseVector(raw)
	if err != nil {
		n.SparseVector, n.Valid = vector.SparseVector{}, false
		return &ConversionError{TypeName: vector.TypeSparseVector, Op: "scan", Err: err}
	}
	n.SparseVector, n.Valid = v, true
	return nil
}

// Value implements driver.Valuer.
func (n NullSparseVector) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	b, err := vector.EncodeSparseVector(n.SparseVector)
	if err != nil {
		return nil, &ConversionError{TypeName: vector.TypeSparseVector, Op: "value", Err: err}
	}
	return b, nil
}

func scanBytes(typeName string, src any) ([]byte, bool, error) {
	switch v := src.(type) {
	case nil:
		return nil, false, nil
	case []byte:
		return v, true, nil
	default:
		return nil, false, &ConversionError{TypeName: typeName, Op: "scan", Err: fmt.Errorf("unsupported source type %T", src)}
	}
}

var (
	_ sql.Scanner   = (*NullVector)(nil)
	_ driver.Valuer = NullVector{}
	_ sql.Scanner   = (*NullSparseVector)(nil)
	_ driver.Valuer = NullSparseVector{}
)

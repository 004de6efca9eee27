package vecsql

import (
	"database/sql"
	"strings"

	"github.com/viant/pgvec/vector"
)

var codecs = map[string]vector.Codec{
	vector.TypeVector:       vector.DenseCodec{},
	vector.TypeSparseVector: vector.SparseCodec{},
}

// Accepts returns the codec for a declared database type name. Matching is
// case-insensitive and ignores a schema qualifier, so "public.sparsevec"
// and "SPARSEVEC" both select the sparse codec.
func Accepts(typeName string) (vector.Codec, bool) {
	name := strings.ToLower(strings.TrimSpace(typeName))
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Trim(name, `"`)
	c, ok := codecs[name]
	return c, ok
}

// DecodeColumn decodes raw column bytes using the codec selected by the
// column's database type name. A nil raw value decodes to nil.
func DecodeColumn(ct *sql.ColumnType, raw []byte) (any, error) {
	return Decode(ct.DatabaseTypeName(), raw)
}

// Decode decodes raw bytes with the codec registered for typeName.
func Decode(typeName string, raw []byte) (any, error) {
	c, ok := Accepts(typeName)
	if !ok {
		return nil, &ConversionError{TypeName: typeName, Op: "scan", Err: ErrUnknownType}
	}
	if raw == nil {
		return nil, nil
	}
	v, err := c.Decode(raw)
	if err != nil {
		return nil, &ConversionError{TypeName: c.Name(), Op: "scan", Err: err}
	}
	return v, nil
}

// Encode encodes v with the codec registered for typeName.
func Encode(typeName string, v any) ([]byte, error) {
	c, ok := Accepts(typeName)
	if !ok {
		return nil, &ConversionError{TypeName: typeName, Op: "value", Err: ErrUnknownType}
	}
	b, err := c.Encode(v)
	if err != nil {
		return nil, &ConversionError{TypeName: c.Name(), Op: "value", Err: err}
	}
	return b, nil
}

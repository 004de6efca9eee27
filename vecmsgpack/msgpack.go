// Package vecmsgpack binds the vector codec to github.com/vmihailenco/msgpack/v5
// as msgpack extension types. The extension payload is the same binary wire
// encoding the database uses, so a value can be relayed without re-encoding.
//
// Importing the package registers the extensions.
package vecmsgpack

import (
	"fmt"
	"reflect"

	"github.com/viant/pgvec/vector"
	"github.com/vmihailenco/msgpack/v5"
)

// Extension type ids.
const (
	ExtVector       int8 = 17
	ExtSparseVector int8 = 18
)

// Encoders are keyed on the value types so unaddressable values (map
// values, by-value arguments) encode; msgpack routes pointers through them.
// Decoders are keyed on the pointer types, which also covers decoding into
// addressable values and into interface{}.
func init() {
	msgpack.RegisterExtEncoder(ExtVector, Vector{}, func(_ *msgpack.Encoder, v reflect.Value) ([]byte, error) {
		return v.Interface().(Vector).MarshalMsgpack()
	})
	msgpack.RegisterExtDecoder(ExtVector, (*Vector)(nil), func(d *msgpack.Decoder, v reflect.Value, extLen int) error {
		b, err := readExt(d, extLen)
		if err != nil {
			return err
		}
		return v.Interface().(*Vector).UnmarshalMsgpack(b)
	})
	msgpack.RegisterExtEncoder(ExtSparseVector, SparseVector{}, func(_ *msgpack.Encoder, v reflect.Value) ([]byte, error) {
		return v.Interface().(SparseVector).MarshalMsgpack()
	})
	msgpack.RegisterExtDecoder(ExtSparseVector, (*SparseVector)(nil), func(d *msgpack.Decoder, v reflect.Value, extLen int) error {
		b, err := readExt(d, extLen)
		if err != nil {
			return err
		}
		return v.Interface().(*SparseVector).UnmarshalMsgpack(b)
	})
}

func readExt(d *msgpack.Decoder, extLen int) ([]byte, error) {
	b := make([]byte, extLen)
	if err := d.ReadFull(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Vector wraps vector.Vector as a msgpack extension value.
type Vector struct {
	vector.Vector
}

// SparseVector wraps vector.SparseVector as a msgpack extension value.
type SparseVector struct {
	vector.SparseVector
}

// MarshalMsgpack implements msgpack.Marshaler.
func (v Vector) MarshalMsgpack() ([]byte, error) {
	b, err := vector.EncodeVector(v.Vector)
	if err != nil {
		return nil, fmt.Errorf("vecmsgpack: encode %s: %w", vector.TypeVector, err)
	}
	return b, nil
}

// UnmarshalMsgpack implements msgpack.Unmarshaler.
func (v *Vector) UnmarshalMsgpack(b []byte) error {
	out, err := vector.DecodeVector(b)
	if err != nil {
		return fmt.Errorf("vecmsgpack: decode %s: %w", vector.TypeVector, err)
	}
	v.Vector = out
	return nil
}

// MarshalMsgpack implements msgpack.Marshaler.
func (v SparseVector) MarshalMsgpack() ([]byte, error) {
	b, err := vector.EncodeSparseVector(v.SparseVector)
	if err != nil {
		return nil, fmt.Errorf("vecmsgpack: encode %s: %w", vector.TypeSparseVector, err)
	}
	return b, nil
}

// UnmarshalMsgpack implements msgpack.Unmarshaler.
func (v *SparseVector) UnmarshalMsgpack(b []byte) error {
	out, err := vector.DecodeSparseVector(b)
	if err != nil {
		return fmt.Errorf("vecmsgpack: decode %s: %w", vector.TypeSparseVector, err)
	}
	v.SparseVector = out
	return nil
}

package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow is wrapped by EncodingError when a length does not fit the wire width.
	ErrOverflow = errors.New("vector: value overflows wire field")

	// ErrReservedField is wrapped by FormatError when a reserved slot is non-zero.
	ErrReservedField = errors.New("vector: unexpected reserved value")

	// ErrTruncated is wrapped by TruncatedInputError.
	ErrTruncated = errors.New("vector: truncated input")

	// ErrUnsupportedType is returned by a Codec given a Go value it does not handle.
	ErrUnsupportedType = errors.New("vector: unsupported value type")
)

// EncodingError reports a dimension or count that exceeds the integer width
// of its wire field.
type EncodingError struct {
	Field string
	Value int
	Limit int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("vector: %s %d exceeds wire limit %d", e.Field, e.Value, e.Limit)
}

func (e *EncodingError) Unwrap() error { return ErrOverflow }

// FormatError reports a header field holding a value the layout does not allow.
// Offset is the byte position of the field within the input.
type FormatError struct {
	Field  string
	Offset int
	Value  int64
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("vector: invalid %s %d at offset %d", e.Field, e.Value, e.Offset)
}

// Unwrap returns ErrReservedField for reserved slots and nil otherwise.
func (e *FormatError) Unwrap() error {
	if e.Field == fieldReserved {
		return ErrReservedField
	}
	return nil
}

// TruncatedInputError reports input shorter than its header declares.
type TruncatedInputError struct {
	Need int
	Have int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("vector: truncated input: need %d bytes, have %d", e.Need, e.Have)
}

func (e *TruncatedInputError) Unwrap() error { return ErrTruncated }

// InvalidVectorError is returned when explicit sparse components violate
// the ordering, length or range rules.
type InvalidVectorError struct {
	Reason string
}

func (e *InvalidVectorError) Error() string {
	return "vector: invalid sparse vector: " + e.Reason
}

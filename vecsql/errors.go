package vecsql

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a database type name has no vector codec.
var ErrUnknownType = errors.New("vecsql: unknown vector type")

// ConversionError reports a failed value conversion between the driver and
// the vector codec. Err holds the codec error.
type ConversionError struct {
	TypeName string
	Op       string // "scan" or "value"
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("vecsql: %s %s: %v", e.Op, e.TypeName, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

package engine

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/viant/pgvec/vector"
	sqlite "modernc.org/sqlite"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterVectorFunctions registers the vector scalar functions with the
// driver so they are available on new connections opened after this call:
//
//	vec_dims(blob)          number of elements of an encoded vector
//	vec_text(blob)          text form, e.g. [1,2,3]
//	sparsevec_dims(blob)    logical dimension of an encoded sparsevec
//	sparsevec_nnz(blob)     stored entry count of an encoded sparsevec
//	sparsevec_text(blob)    text form with 1-based indices, e.g. {1:1,3:2}/3
//	vec_to_sparsevec(blob)  sparsevec encoding of an encoded vector
//
// NULL arguments yield NULL. Malformed BLOBs surface the codec error.
// Note: existing open connections will not see new functions.
func RegisterVectorFunctions(_ *sql.DB) error {
	registerOnce.Do(func() {
		fns := []struct {
			name string
			fn   func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error)
		}{
			{"vec_dims", vecDimsImpl},
			{"vec_text", vecTextImpl},
			{"sparsevec_dims", sparseDimsImpl},
			{"sparsevec_nnz", sparseNNZImpl},
			{"sparsevec_text", sparseTextImpl},
			{"vec_to_sparsevec", vecToSparseImpl},
		}
		for _, f := range fns {
			if err := sqlite.RegisterDeterministicScalarFunction(f.name, 1, f.fn); err != nil {
				registerErr = fmt.Errorf("engine: register %s: %w", f.name, err)
				return
			}
		}
	})
	return registerErr
}

func blobArg(name string, args []driver.Value) ([]byte, bool, error) {
	if len(args) != 1 {
		return nil, false, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}
	switch v := args[0].(type) {
	case nil:
		return nil, false, nil
	case []byte:
		return v, true, nil
	default:
		return nil, false, fmt.Errorf("%s: unsupported argument type %T; want BLOB", name, args[0])
	}
}

func denseArg(name string, args []driver.Value) (vector.Vector, bool, error) {
	b, ok, err := blobArg(name, args)
	if err != nil || !ok {
		return vector.Vector{}, ok, err
	}
	v, err := vector.DecodeVector(b)
	if err != nil {
		return vector.Vector{}, false, fmt.Errorf("%s: %w", name, err)
	}
	return v, true, nil
}

func sparseArg(name string, args []driver.Value) (vector.SparseVector, bool, error) {
	b, ok, err := blobArg(name, args)
	if err != nil || !ok {
		return vector.SparseVector{}, ok, err
	}
	v, err := vector.DecodeSparseVector(b)
	if err != nil {
		return vector.SparseVector{}, false, fmt.Errorf("%s: %w", name, err)
	}
	return v, true, nil
}

func vecDimsImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	v, ok, err := denseArg("vec_dims", args)
	if err != nil || !ok {
		return nil, err
	}
	return int64(v.Dims()), nil
}

func vecTextImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	v, ok, err := denseArg("vec_text", args)
	if err != nil || !ok {
		return nil, err
	}
	return v.String(), nil
}

func sparseDimsImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	v, ok, err := sparseArg("sparsevec_dims", args)
	if err != nil || !ok {
		return nil, err
	}
	return int64(v.Dims()), nil
}

func sparseNNZImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	v, ok, err := sparseArg("sparsevec_nnz", args)
	if err != nil || !ok {
		return nil, err
	}
	return int64(v.NNZ()), nil
}

func sparseTextImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	v, ok, err := sparseArg("sparsevec_text", args)
	if err != nil || !ok {
		return nil, err
	}
	return v.String(), nil
}

func vecToSparseImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	v, ok, err := denseArg("vec_to_sparsevec", args)
	if err != nil || !ok {
		return nil, err
	}
	return vector.EncodeSparseVector(vector.SparseVectorFromDense(v.Slice()))
}

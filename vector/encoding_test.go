package vector

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncodeVector_Layout(t *testing.T) {
	b, err := EncodeVector(NewVector([]float32{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "00030000"+"3f800000"+"40000000"+"40400000"), b)
}

func TestEncodeDecodeVector_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		vals []float32
	}{
		{name: "empty", vals: nil},
		{name: "single", vals: []float32{-1.5}},
		{name: "with zeros", vals: []float32{0.0, 1.5, 0, -2.25, 3.75}},
		{name: "special values", vals: []float32{float32(math.Inf(1)), float32(math.Inf(-1)), math.MaxFloat32, math.SmallestNonzeroFloat32}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orig := NewVector(tc.vals)
			b, err := EncodeVector(orig)
			require.NoError(t, err)
			assert.Len(t, b, 4+4*len(tc.vals))

			decoded, err := DecodeVector(b)
			require.NoError(t, err)
			assert.True(t, orig.Equal(decoded), "decoded %v, want %v", decoded, orig)
		})
	}
}

func TestDecodeVector_NaNPassesThrough(t *testing.T) {
	nan := math.Float32frombits(0x7fc00001)
	b, err := EncodeVector(NewVector([]float32{nan}))
	require.NoError(t, err)

	decoded, err := DecodeVector(b)
	require.NoError(t, err)
	require.Equal(t, 1, decoded.Dims())
	assert.Equal(t, uint32(0x7fc00001), math.Float32bits(decoded.Slice()[0]))
}

func TestEncodeVector_MaxDimension(t *testing.T) {
	b, err := EncodeVector(NewVector(make([]float32, math.MaxUint16)))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0, 0}, b[:4])

	_, err = EncodeVector(NewVector(make([]float32, math.MaxUint16+1)))
	require.ErrorIs(t, err, ErrOverflow)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, math.MaxUint16+1, encErr.Value)
	assert.Equal(t, math.MaxUint16, encErr.Limit)
}

func TestDecodeVector_ReservedField(t *testing.T) {
	for _, reserved := range []string{"0001", "0100", "ffff"} {
		_, err := DecodeVector(mustHex(t, "0001"+reserved+"3f800000"))
		require.ErrorIs(t, err, ErrReservedField, reserved)
		var fmtErr *FormatError
		require.ErrorAs(t, err, &fmtErr)
		assert.Equal(t, 2, fmtErr.Offset)
	}
}

func TestDecodeVector_Truncated(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		need  int
	}{
		{name: "nil", input: "", need: 4},
		{name: "partial header", input: "000300", need: 4},
		{name: "missing elements", input: "00030000" + "3f800000", need: 16},
		{name: "partial element", input: "00010000" + "3f80", need: 8},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustHex(t, tc.input)
			_, err := DecodeVector(b)
			require.ErrorIs(t, err, ErrTruncated)
			var truncErr *TruncatedInputError
			require.ErrorAs(t, err, &truncErr)
			assert.Equal(t, tc.need, truncErr.Need)
			assert.Equal(t, len(b), truncErr.Have)
		})
	}
}

func TestDecodeVector_IgnoresTrailingBytes(t *testing.T) {
	v, err := DecodeVector(mustHex(t, "00010000"+"3f800000"+"dead"))
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, v.Slice())
}

func TestEncodeSparseVector_Layout(t *testing.T) {
	b, err := EncodeSparseVector(SparseVectorFromDense([]float32{1, 2, 3}))
	require.NoError(t, err)
	want := "00000003" + "00000003" + "00000000" +
		"00000000" + "00000001" + "00000002" +
		"3f800000" + "40000000" + "40400000"
	assert.Equal(t, mustHex(t, want), b)

	b, err = EncodeSparseVector(SparseVectorFromDense([]float32{0, 5, 0, 7}))
	require.NoError(t, err)
	want = "00000004" + "00000002" + "00000000" +
		"00000001" + "00000003" +
		"40a00000" + "40e00000"
	assert.Equal(t, mustHex(t, want), b)
}

func TestEncodeDecodeSparseVector_RoundTrip(t *testing.T) {
	fromMap, err := SparseVectorFromMap(100000, map[int32]float32{99999: -1, 0: 0.5, 42: 3})
	require.NoError(t, err)
	explicit, err := NewSparseVector(10, []int32{0, 9}, []float32{float32(math.Inf(1)), -0.25})
	require.NoError(t, err)

	for _, orig := range []SparseVector{
		SparseVectorFromDense(nil),
		SparseVectorFromDense([]float32{0, 0, 0}),
		SparseVectorFromDense([]float32{1, 2, 3}),
		fromMap,
		explicit,
	} {
		b, err := EncodeSparseVector(orig)
		require.NoError(t, err)
		assert.Len(t, b, 12+8*orig.NNZ())

		decoded, err := DecodeSparseVector(b)
		require.NoError(t, err)
		assert.True(t, orig.Equal(decoded), "decoded %v, want %v", decoded, orig)
	}
}

func TestEncodeSparseVector_Overflow(t *testing.T) {
	big := int64(math.MaxInt32)
	_, err := EncodeSparseVector(SparseVector{dim: int(big + 1)})
	require.ErrorIs(t, err, ErrOverflow)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "dim", encErr.Field)
}

func TestEncodeSparseVector_KeepsStoredOrder(t *testing.T) {
	v := SparseVector{dim: 5, indices: []int32{3, 1}, values: []float32{1, 2}}
	b, err := EncodeSparseVector(v)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "00000003"+"00000001"), b[12:20])
}

func TestDecodeSparseVector_ReservedField(t *testing.T) {
	_, err := DecodeSparseVector(mustHex(t, "00000003"+"00000000"+"00000001"))
	require.ErrorIs(t, err, ErrReservedField)
	var fmtErr *FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, 8, fmtErr.Offset)
	assert.EqualValues(t, 1, fmtErr.Value)
}

func TestDecodeSparseVector_NegativeHeader(t *testing.T) {
	_, err := DecodeSparseVector(mustHex(t, "ffffffff"+"00000000"+"00000000"))
	var fmtErr *FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, "dim", fmtErr.Field)
	assert.NotErrorIs(t, err, ErrReservedField)

	_, err = DecodeSparseVector(mustHex(t, "00000003"+"80000000"+"00000000"))
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, "nnz", fmtErr.Field)
	assert.Equal(t, 4, fmtErr.Offset)
}

func TestDecodeSparseVector_Truncated(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		need  int
	}{
		{name: "nil", input: "", need: 12},
		{name: "partial header", input: "00000003" + "0000", need: 12},
		{name: "missing values", input: "00000003" + "00000002" + "00000000" + "00000000" + "00000001", need: 28},
		{name: "huge nnz", input: "7fffffff" + "7fffffff" + "00000000", need: 12 + 8*math.MaxInt32},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustHex(t, tc.input)
			_, err := DecodeSparseVector(b)
			require.ErrorIs(t, err, ErrTruncated)
			var truncErr *TruncatedInputError
			require.ErrorAs(t, err, &truncErr)
			assert.Equal(t, tc.need, truncErr.Need)
		})
	}
}

func TestDecodeSparseVector_TrustsProducerOrder(t *testing.T) {
	b := mustHex(t, "00000005"+"00000002"+"00000000"+"00000003"+"00000003"+"3f800000"+"40000000")
	v, err := DecodeSparseVector(b)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 3}, v.Indices())
}

func TestAppend_PreservesPrefix(t *testing.T) {
	prefix := []byte{0xaa, 0xbb}
	b, err := AppendVector(prefix, NewVector([]float32{1}))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "aabb"+"00010000"+"3f800000"), b)

	b, err = AppendSparseVector(prefix, SparseVectorFromDense([]float32{0, 1}))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "aabb"+"00000002"+"00000001"+"00000000"+"00000001"+"3f800000"), b)
}

func TestAppend_ErrorReturnsDst(t *testing.T) {
	prefix := []byte{0xaa, 0xbb}

	b, err := AppendVector(prefix, NewVector(make([]float32, math.MaxUint16+1)))
	require.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, []byte{0xaa, 0xbb}, b)

	big := int64(math.MaxInt32)
	b, err = AppendSparseVector(prefix, SparseVector{dim: int(big + 1)})
	require.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, []byte{0xaa, 0xbb}, b)

	b, err = AppendSparseVector(prefix, SparseVector{dim: 2, indices: []int32{0}})
	var invalid *InvalidVectorError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []byte{0xaa, 0xbb}, b)
}

func TestCodec_Contract(t *testing.T) {
	dense := DenseCodec{}
	assert.Equal(t, "vector", dense.Name())
	b, err := dense.Encode([]float32{1, 2})
	require.NoError(t, err)
	out, err := dense.Decode(b)
	require.NoError(t, err)
	assert.True(t, NewVector([]float32{1, 2}).Equal(out.(Vector)))

	_, err = dense.Encode("nope")
	require.ErrorIs(t, err, ErrUnsupportedType)

	sparse := SparseCodec{}
	assert.Equal(t, "sparsevec", sparse.Name())
	sv := SparseVectorFromDense([]float32{0, 4})
	b, err = sparse.Encode(&sv)
	require.NoError(t, err)
	out, err = sparse.Decode(b)
	require.NoError(t, err)
	assert.True(t, sv.Equal(out.(SparseVector)))

	_, err = sparse.Encode(NewVector(nil))
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestBinaryMarshaler(t *testing.T) {
	v := NewVector([]float32{4, 5})
	b, err := v.MarshalBinary()
	require.NoError(t, err)
	var out Vector
	require.NoError(t, out.UnmarshalBinary(b))
	assert.True(t, v.Equal(out))

	sv := SparseVectorFromDense([]float32{0, 5, 0, 7})
	b, err = sv.MarshalBinary()
	require.NoError(t, err)
	var sout SparseVector
	require.NoError(t, sout.UnmarshalBinary(b))
	assert.True(t, sv.Equal(sout))

	require.Error(t, sout.UnmarshalBinary(b[:5]))
	assert.True(t, sv.Equal(sout), "failed decode must not modify the receiver")
}

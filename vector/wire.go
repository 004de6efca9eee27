package vector

import (
	"encoding/binary"
	"math"
)

const (
	fieldDim      = "dim"
	fieldNNZ      = "nnz"
	fieldReserved = "reserved"

	denseHeaderSize  = 4
	sparseHeaderSize = 12
)

// reader walks a caller-owned buffer in big-endian order. Every read is
// bounds-checked up front by need so a short buffer never panics.
type reader struct {
	buf []byte
	off int
}

func (r *reader) need(n int) error {
	if n < 0 || len(r.buf)-r.off < n {
		return &TruncatedInputError{Need: r.off + n, Have: len(r.buf)}
	}
	return nil
}

func (r *reader) uint16() uint16 {
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *reader) int32() int32 {
	v := int32(binary.BigEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v
}

func (r *reader) float32() float32 {
	v := math.Float32frombits(binary.BigEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v
}

func appendFloat32(dst []byte, v float32) []byte {
	return binary.BigEndian.AppendUint32(dst, math.Float32bits(v))
}

func appendInt32(dst []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(v))
}

func appendUint16(dst []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, v)
}

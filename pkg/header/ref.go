package header

import (
	"bytes"
	"encoding/binary"
)

// Ref is a read-only view of record T over the first Size bytes of a caller supplied buffer. It aliases the
// buffer rather than copying it, so the buffer must outlive the Ref and must not be modified while the Ref
// is in use.
type Ref[T any] struct {
	b []byte
}

// NewRef checks that buf can hold a T and returns a view of its prefix together with the bytes that
// follow it. Records have no internal padding and an alignment of 1, so length is the only requirement.
func NewRef[T any, PT Layout[T]](buf []byte) (Ref[T], []byte, error) {
	var p PT
	n := p.Size()
	if len(buf) < n {
		return Ref[T]{}, nil, ErrBufferTooSmall
	}
	return Ref[T]{b: buf[:n:n]}, buf[n:], nil
}

// Bytes returns the aliased record bytes.
func (r Ref[T]) Bytes() []byte {
	return r.b
}

// Decode copies the record out of the buffer into a T.
func (r Ref[T]) Decode() T {
	var v T
	// The length was validated when r was built, so decoding fixed-size data cannot fail.
	_, _ = binary.Decode(r.b, binary.LittleEndian, &v)
	return v
}

// Equal reports whether both views hold the same record bytes.
func (r Ref[T]) Equal(o Ref[T]) bool {
	return bytes.Equal(r.b, o.b)
}

func (r Ref[T]) u32(off int) uint32 {
	return binary.LittleEndian.Uint32(r.b[off : off+4])
}

func (r Ref[T]) u64(off int) uint64 {
	return binary.LittleEndian.Uint64(r.b[off : off+8])
}

func (r Ref[T]) field(off, size int) []byte {
	return r.b[off : off+size : off+size]
}

func (r Ref[T]) words(dst []uint32, off int) {
	for i := range dst {
		dst[i] = r.u32(off + 4*i)
	}
}

// prefix reinterprets the leading bytes of r as the record U that T extends.
func prefix[U any, PU Layout[U], T any](r Ref[T]) Ref[U] {
	var p PU
	return Ref[U]{b: r.b[:p.Size():p.Size()]}
}

// Package protocol holds the wire-level primitives packet types are built
// from: a symmetric reader/writer pair implementing the same IO interface,
// separating how a field is shaped on the wire from what a packet contains.
package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
)

// IO is implemented by both Reader and Writer. Packet Marshal methods are
// written once against this interface and run in both directions: a Reader
// fills the pointed-to value from the wire, a Writer serializes it.
type IO interface {
	Uint8(x *uint8)
	Bool(x *bool)
	Int16(x *int16)
	Uint16(x *uint16)
	Int32(x *int32)
	Uint32(x *uint32)
	Int64(x *int64)
	Uint64(x *uint64)
	Float32(x *float32)
	Varint32(x *int32)
	Varint64(x *int64)
	Varuint32(x *uint32)
	Varuint64(x *uint64)
	String(x *string)
	ByteSlice(x *[]byte)
	// Rest consumes (Reader) or appends (Writer) the remaining bytes with
	// no length prefix, for payloads the codec carries opaquely rather than
	// fully decoding.
	Rest(x *[]byte)
	UUID(x *uuid.UUID)
	Vec3(x *[3]float32)
	Error() error
}

// Writer serializes packet fields into an internal buffer in Bedrock's
// little-endian, varint-heavy wire format.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the serialized payload accumulated so far.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

func (w *Writer) Error() error { return nil }

func (w *Writer) Uint8(x *uint8)   { w.buf.WriteByte(*x) }
func (w *Writer) Bool(x *bool) {
	if *x {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}
func (w *Writer) Int16(x *int16)   { var b [2]byte; binary.LittleEndian.PutUint16(b[:], uint16(*x)); w.buf.Write(b[:]) }
func (w *Writer) Uint16(x *uint16) { var b [2]byte; binary.LittleEndian.PutUint16(b[:], *x); w.buf.Write(b[:]) }
func (w *Writer) Int32(x *int32)   { var b [4]byte; binary.LittleEndian.PutUint32(b[:], uint32(*x)); w.buf.Write(b[:]) }
func (w *Writer) Uint32(x *uint32) { var b [4]byte; binary.LittleEndian.PutUint32(b[:], *x); w.buf.Write(b[:]) }
func (w *Writer) Int64(x *int64)   { var b [8]byte; binary.LittleEndian.PutUint64(b[:], uint64(*x)); w.buf.Write(b[:]) }
func (w *Writer) Uint64(x *uint64) { var b [8]byte; binary.LittleEndian.PutUint64(b[:], *x); w.buf.Write(b[:]) }
func (w *Writer) Float32(x *float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(*x))
	w.buf.Write(b[:])
}

func (w *Writer) Varint32(x *int32)   { w.Varint64(ptrInt64(int64(*x))) }
func (w *Writer) Varint64(x *int64) {
	u := uint64(*x)<<1 ^ uint64(*x>>63)
	w.Varuint64(&u)
}
func (w *Writer) Varuint32(x *uint32) {
	var b [binary.MaxVarintLen32]byte
	n := binary.PutUvarint(b[:], uint64(*x))
	w.buf.Write(b[:n])
}
func (w *Writer) Varuint64(x *uint64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], *x)
	w.buf.Write(b[:n])
}

func (w *Writer) String(x *string) {
	l := uint32(len(*x))
	w.Varuint32(&l)
	w.buf.WriteString(*x)
}

func (w *Writer) ByteSlice(x *[]byte) {
	l := uint32(len(*x))
	w.Varuint32(&l)
	w.buf.Write(*x)
}

func (w *Writer) Rest(x *[]byte) { w.buf.Write(*x) }

func (w *Writer) UUID(x *uuid.UUID) { b := (*x)[:]; w.buf.Write(b) }

func (w *Writer) Vec3(x *[3]float32) {
	for i := range x {
		w.Float32(&x[i])
	}
}

func ptrInt64(v int64) *int64 { return &v }

// Reader deserializes packet fields out of a byte slice, failing closed:
// once Error() returns non-nil, every subsequent field read consumes no
// input and leaves its target unchanged or zeroed, so a Marshal call can run
// to completion and the caller checks the error once.
type Reader struct {
	r   *bytes.Reader
	err error
}

// NewReader wraps buf for sequential field reads.
func NewReader(buf []byte) *Reader { return &Reader{r: bytes.NewReader(buf)} }

func (r *Reader) Error() error { return r.err }

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) Uint8(x *uint8) {
	if r.err != nil {
		return
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.fail(fmt.Errorf("read uint8: %w", err))
		return
	}
	*x = b
}

func (r *Reader) Bool(x *bool) {
	var b uint8
	r.Uint8(&b)
	*x = b != 0
}

func (r *Reader) read(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		r.fail(fmt.Errorf("read %d bytes: %w", n, err))
	}
	return b
}

func (r *Reader) Int16(x *int16)   { *x = int16(binary.LittleEndian.Uint16(r.read(2))) }
func (r *Reader) Uint16(x *uint16) { *x = binary.LittleEndian.Uint16(r.read(2)) }
func (r *Reader) Int32(x *int32)   { *x = int32(binary.LittleEndian.Uint32(r.read(4))) }
func (r *Reader) Uint32(x *uint32) { *x = binary.LittleEndian.Uint32(r.read(4)) }
func (r *Reader) Int64(x *int64)   { *x = int64(binary.LittleEndian.Uint64(r.read(8))) }
func (r *Reader) Uint64(x *uint64) { *x = binary.LittleEndian.Uint64(r.read(8)) }
func (r *Reader) Float32(x *float32) {
	*x = math.Float32frombits(binary.LittleEndian.Uint32(r.read(4)))
}

func (r *Reader) Varuint64(x *uint64) {
	if r.err != nil {
		return
	}
	v, err := binary.ReadUvarint(r.r)
	if err != nil {
		r.fail(fmt.Errorf("read varuint64: %w", err))
		return
	}
	*x = v
}

func (r *Reader) Varuint32(x *uint32) {
	var v uint64
	r.Varuint64(&v)
	*x = uint32(v)
}

func (r *Reader) Varint64(x *int64) {
	var u uint64
	r.Varuint64(&u)
	*x = int64(u>>1) ^ -int64(u&1)
}

func (r *Reader) Varint32(x *int32) {
	var v int64
	r.Varint64(&v)
	*x = int32(v)
}

func (r *Reader) String(x *string) {
	var l uint32
	r.Varuint32(&l)
	*x = string(r.read(int(l)))
}

func (r *Reader) ByteSlice(x *[]byte) {
	var l uint32
	r.Varuint32(&l)
	*x = r.read(int(l))
}

func (r *Reader) Rest(x *[]byte) {
	if r.err != nil {
		return
	}
	rest := make([]byte, r.r.Len())
	_, _ = io.ReadFull(r.r, rest)
	*x = rest
}

func (r *Reader) UUID(x *uuid.UUID) {
	b := r.read(16)
	if r.err == nil {
		copy((*x)[:], b)
	}
}

func (r *Reader) Vec3(x *[3]float32) {
	for i := range x {
		r.Float32(&x[i])
	}
}

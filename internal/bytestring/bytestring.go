// Package bytestring provides a cryptobyte-inspired API specialized to the
// needs of parsing chainrecon's block format: little-endian fixed-width
// reads, raw hash reads, and the Bitcoin-style "compact size" variable
// length encoding.
package bytestring

import (
	"errors"
	"io"

	"github.com/zenonrecon/chainrecon/hash20"
	"github.com/zenonrecon/chainrecon/hash32"
)

// MaxCompactSize is the hard cap on any compact-size-decoded length: no
// script or vector in the block format may declare more bytes than this.
const MaxCompactSize uint64 = 0x02000000

// ErrOversizedLength is returned when the first byte of a compact-size
// field is 0xFF, a form this wire format never produces.
var ErrOversizedLength = errors.New("bytestring: oversized compact-size prefix (0xFF)")

// ErrInvalidLength is returned when a compact-size value exceeds
// MaxCompactSize, or when a multi-byte encoding is used for a value small
// enough to fit in a shorter canonical form (a "flagged minsize" failure).
var ErrInvalidLength = errors.New("bytestring: invalid or non-canonical compact-size length")

// String is a slice of bytes that shrinks from the front as it is parsed.
type String []byte

// read advances the string by n bytes and returns them, or nil if fewer
// than n bytes remain.
func (s *String) read(n int) []byte {
	if len(*s) < n {
		return nil
	}
	out := (*s)[:n]
	*s = (*s)[n:]
	return out
}

// Read satisfies io.Reader.
func (s *String) Read(p []byte) (n int, err error) {
	if s.Empty() {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n = copy(p, *s)
	if !s.Skip(n) {
		return 0, errors.New("bytestring: unexpected end of read")
	}
	return n, nil
}

func (s *String) Empty() bool {
	return len(*s) == 0
}

func (s *String) Len() int {
	return len(*s)
}

// Skip advances the string by n bytes and reports whether it succeeded.
func (s *String) Skip(n int) bool {
	return s.read(n) != nil
}

func (s *String) ReadByte(out *byte) bool {
	v := s.read(1)
	if v == nil {
		return false
	}
	*out = v[0]
	return true
}

func (s *String) ReadBytes(out *[]byte, n int) bool {
	v := s.read(n)
	if v == nil {
		return false
	}
	*out = v
	return true
}

// ReadHash256 reads a 32-byte hash, preserving its raw (wire) byte order.
func (s *String) ReadHash256(out *hash32.T) bool {
	v := s.read(32)
	if v == nil {
		return false
	}
	*out = hash32.FromSlice(v)
	return true
}

// ReadHash160 reads a 20-byte hash, preserving its raw byte order.
func (s *String) ReadHash160(out *hash20.T) bool {
	v := s.read(20)
	if v == nil {
		return false
	}
	*out = hash20.FromSlice(v)
	return true
}

// ReadUint8 reads a single unsigned byte.
func (s *String) ReadUint8(out *uint8) bool {
	v := s.read(1)
	if v == nil {
		return false
	}
	*out = v[0]
	return true
}

func (s *String) ReadInt8(out *int8) bool {
	var tmp uint8
	if !s.ReadUint8(&tmp) {
		return false
	}
	*out = int8(tmp)
	return true
}

func (s *String) ReadUint16(out *uint16) bool {
	v := s.read(2)
	if v == nil {
		return false
	}
	*out = uint16(v[0]) | uint16(v[1])<<8
	return true
}

func (s *String) ReadInt16(out *int16) bool {
	var tmp uint16
	if !s.ReadUint16(&tmp) {
		return false
	}
	*out = int16(tmp)
	return true
}

func (s *String) ReadUint32(out *uint32) bool {
	v := s.read(4)
	if v == nil {
		return false
	}
	*out = uint32(v[0]) | uint32(v[1])<<8 | uint32(v[2])<<16 | uint32(v[3])<<24
	return true
}

func (s *String) ReadInt32(out *int32) bool {
	var tmp uint32
	if !s.ReadUint32(&tmp) {
		return false
	}
	*out = int32(tmp)
	return true
}

func (s *String) ReadUint64(out *uint64) bool {
	v := s.read(8)
	if v == nil {
		return false
	}
	*out = uint64(v[0]) | uint64(v[1])<<8 | uint64(v[2])<<16 | uint64(v[3])<<24 |
		uint64(v[4])<<32 | uint64(v[5])<<40 | uint64(v[6])<<48 | uint64(v[7])<<56
	return true
}

func (s *String) ReadInt64(out *int64) bool {
	var tmp uint64
	if !s.ReadUint64(&tmp) {
		return false
	}
	*out = int64(tmp)
	return true
}

// ReadCompactSize reads and interprets the compact-size length encoding.
// It returns ErrOversizedLength for the disallowed 0xFF prefix,
// ErrInvalidLength for a value above MaxCompactSize or a non-canonical
// (flagged-minsize) encoding, or a plain "unexpected end" error if the
// string is exhausted mid-field.
func (s *String) ReadCompactSize(out *uint64) error {
	lenBytes := s.read(1)
	if lenBytes == nil {
		return errors.New("bytestring: unexpected end reading compact-size prefix")
	}
	lenByte := lenBytes[0]

	if lenByte < 0xFD {
		*out = uint64(lenByte)
		return nil
	}
	if lenByte == 0xFF {
		return ErrOversizedLength
	}

	var lenLen int
	var minSize uint64
	switch lenByte {
	case 0xFD:
		lenLen, minSize = 2, 253
	case 0xFE:
		lenLen, minSize = 4, 0x10000
	}

	raw := s.read(lenLen)
	if raw == nil {
		return errors.New("bytestring: unexpected end reading compact-size value")
	}
	var length uint64
	for i := lenLen - 1; i >= 0; i-- {
		length = length<<8 | uint64(raw[i])
	}

	if length > MaxCompactSize || length < minSize {
		return ErrInvalidLength
	}
	*out = length
	return nil
}

// ReadCompactLengthPrefixed reads a compact-size-prefixed byte string.
func (s *String) ReadCompactLengthPrefixed(out *String) error {
	var length uint64
	if err := s.ReadCompactSize(&length); err != nil {
		return err
	}
	v := s.read(int(length))
	if v == nil {
		return errors.New("bytestring: unexpected end reading length-prefixed data")
	}
	*out = v
	return nil
}

// Reader wraps a String with absolute-offset bookkeeping and seek support,
// the shape of ByteReader's "seekable byte source" contract.
type Reader struct {
	orig []byte
	rest String
}

func NewReader(data []byte) *Reader {
	return &Reader{orig: data, rest: String(data)}
}

// Offset reports the current absolute read position.
func (r *Reader) Offset() int {
	return len(r.orig) - len(r.rest)
}

// Len reports the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.rest)
}

// Rest returns the unread suffix of the wrapped buffer.
func (r *Reader) Rest() []byte {
	return []byte(r.rest)
}

// Slice returns the raw bytes of the wrapped buffer in [start, end). Used
// to re-read an already-parsed byte range for hashing (header hashes,
// transaction hashes) without a second parse pass.
func (r *Reader) Slice(start, end int) []byte {
	return r.orig[start:end]
}

// Seek repositions the reader to an absolute offset.
func (r *Reader) Seek(abs int) error {
	if abs < 0 || abs > len(r.orig) {
		return errors.New("bytestring: seek out of range")
	}
	r.rest = String(r.orig[abs:])
	return nil
}

// Advance skips n bytes forward from the current position.
func (r *Reader) Advance(n int) bool {
	return r.rest.Skip(n)
}

func (r *Reader) ReadByte(out *byte) bool          { return r.rest.ReadByte(out) }
func (r *Reader) ReadBytes(out *[]byte, n int) bool { return r.rest.ReadBytes(out, n) }
func (r *Reader) ReadHash256(out *hash32.T) bool    { return r.rest.ReadHash256(out) }
func (r *Reader) ReadHash160(out *hash20.T) bool    { return r.rest.ReadHash160(out) }
func (r *Reader) ReadUint8(out *uint8) bool         { return r.rest.ReadUint8(out) }
func (r *Reader) ReadInt8(out *int8) bool           { return r.rest.ReadInt8(out) }
func (r *Reader) ReadUint16(out *uint16) bool       { return r.rest.ReadUint16(out) }
func (r *Reader) ReadInt16(out *int16) bool         { return r.rest.ReadInt16(out) }
func (r *Reader) ReadUint32(out *uint32) bool       { return r.rest.ReadUint32(out) }
func (r *Reader) ReadInt32(out *int32) bool         { return r.rest.ReadInt32(out) }
func (r *Reader) ReadUint64(out *uint64) bool       { return r.rest.ReadUint64(out) }
func (r *Reader) ReadInt64(out *int64) bool         { return r.rest.ReadInt64(out) }

func (r *Reader) ReadCompactSize(out *uint64) error {
	return r.rest.ReadCompactSize(out)
}

func (r *Reader) ReadCompactLengthPrefixed(out *String) error {
	return r.rest.ReadCompactLengthPrefixed(out)
}

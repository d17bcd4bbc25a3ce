// Package hash32 implements Hash256, the 32-byte opaque hash type used for
// block hashes, transaction hashes, and merkle roots throughout chainrecon.
package hash32

import (
	"encoding/hex"
	"errors"
)

// T is any kind of 32-byte hash: a block hash, a txid, a merkle root, the
// genesis constant. Values are passed around and compared by value.
type T [32]byte

// Nil is the distinguished all-zero hash, used as the "no value" sentinel
// (e.g. a coinbase input's prev_tx, or an unset next_hash).
var Nil = T{}

// FromSlice converts a slice to a Hash256. If the slice is longer than 32
// bytes only the first 32 are used; if shorter, the remainder is zero.
func FromSlice(arg []byte) T {
	var t T
	copy(t[:], arg)
	return t
}

// ToSlice returns the hash's bytes as a slice.
func ToSlice(arg T) []byte {
	out := arg
	return out[:]
}

// Reverse returns the byte-reversed hash, used to convert between the wire
// (little-endian) byte order and the conventional display (big-endian) order.
func Reverse(arg T) T {
	var r T
	for i := range r {
		r[i] = arg[len(arg)-1-i]
	}
	return r
}

func ReverseSlice(arg []byte) []byte {
	return ToSlice(Reverse(FromSlice(arg)))
}

// Decode parses a hex string into a Hash256, failing unless it is exactly
// 32 bytes long.
func Decode(s string) (T, error) {
	var r T
	hash, err := hex.DecodeString(s)
	if err != nil {
		return r, err
	}
	if len(hash) != 32 {
		return r, errors.New("hash32: decoded length is not 32 bytes")
	}
	return FromSlice(hash), nil
}

func Encode(arg T) string {
	return hex.EncodeToString(ToSlice(arg))
}

func (t T) String() string {
	return Encode(t)
}

func (t T) IsNil() bool {
	return t == Nil
}

// Package parser implements the block/transaction/header binary
// deserializer described in spec.md §§4.1–4.6: ByteReader's typed reads
// live in internal/bytestring; this file is HeaderCodec.
package parser

import (
	"github.com/zenonrecon/chainrecon/hash32"
	"github.com/zenonrecon/chainrecon/internal/bytestring"
	"github.com/zenonrecon/chainrecon/internal/hashes"
)

const (
	headerSizePreCheckpoint  = 80  // version, prev_hash, merkle_root, time, bits, nonce
	headerSizeWithCheckpoint = 112 // the above plus accumulator_checkpoint
)

// Header is the block header as defined in spec.md §3. AccumulatorCheckpoint
// is the zero hash for version <= 3, matching "implicitly null".
type Header struct {
	Version               int32
	PrevHash              hash32.T
	MerkleRoot            hash32.T
	Time                  uint32
	Bits                  uint32
	Nonce                 uint32
	AccumulatorCheckpoint hash32.T

	start int // absolute offset of Version within the enclosing buffer
	end   int // absolute offset just past the last header byte read
}

// ParseHeader reads a header from r at its current position, advancing
// past it. The caller's declared_size bookkeeping (BlockCodec step 5)
// happens one layer up.
func ParseHeader(r *bytestring.Reader) (*Header, error) {
	h := &Header{start: r.Offset()}

	if !r.ReadInt32(&h.Version) {
		return nil, newParseError(Truncated, "header.version", nil)
	}
	if !r.ReadHash256(&h.PrevHash) {
		return nil, newParseError(Truncated, "header.prev_hash", nil)
	}
	if !r.ReadHash256(&h.MerkleRoot) {
		return nil, newParseError(Truncated, "header.merkle_root", nil)
	}
	if !r.ReadUint32(&h.Time) {
		return nil, newParseError(Truncated, "header.time", nil)
	}
	if !r.ReadUint32(&h.Bits) {
		return nil, newParseError(Truncated, "header.bits", nil)
	}
	if !r.ReadUint32(&h.Nonce) {
		return nil, newParseError(Truncated, "header.nonce", nil)
	}

	if h.Version > 3 {
		if !r.ReadHash256(&h.AccumulatorCheckpoint) {
			return nil, newParseError(Truncated, "header.accumulator_checkpoint", nil)
		}
	}

	h.end = r.Offset()
	return h, nil
}

// Hash computes the header hash per spec.md §4.3: Quark over the first 80
// bytes for version < 4, double-SHA256 over the first 112 bytes for
// version >= 4. r must be the same Reader (or one over the same backing
// buffer) the header was parsed from.
func (h *Header) Hash(r *bytestring.Reader) hash32.T {
	if h.Version < 4 {
		return hashes.Quark(r.Slice(h.start, h.start+headerSizePreCheckpoint))
	}
	return hashes.Sha256d(r.Slice(h.start, h.start+headerSizeWithCheckpoint))
}

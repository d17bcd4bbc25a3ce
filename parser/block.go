package parser

import (
	"github.com/zenonrecon/chainrecon/hash32"
	"github.com/zenonrecon/chainrecon/internal/bytestring"
)

// Block is spec.md §3's Block. Height and NextHash start unset (filled in
// by chain.Link); FileOffset and DeclaredSize come from the record
// boundary the FileScanner located. Hash is computed once, at parse time,
// from the header's serialized byte range, so the underlying file buffer
// does not need to outlive the parsing pass (spec.md §5's resource
// lifetimes: "each raw file is scoped to its parsing pass").
type Block struct {
	FileOffset   uint64
	Height       int64 // -1 until ChainLinker assigns it
	DeclaredSize uint32
	Header       *Header
	Txns         []*Transaction
	Signee       []byte // retained for round-trip fidelity; never consumed (spec.md §9)
	Hash         hash32.T
	NextHash     hash32.T
}

// ParseBlock reads a block (header + transactions + optional signee blob)
// from r, per spec.md §4.6. offset and declaredSize come from the
// FileScanner's record boundary; r must be positioned at the record start.
func ParseBlock(r *bytestring.Reader, offset uint64, declaredSize uint32) (*Block, error) {
	start := r.Offset()

	hdr, err := ParseHeader(r)
	if err != nil {
		return nil, err
	}

	var txCount uint64
	if err := r.ReadCompactSize(&txCount); err != nil {
		return nil, wrapCompactSizeErr("block.tx_count", err)
	}

	txns := make([]*Transaction, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx, err := ParseTransaction(r)
		if err != nil {
			return nil, err
		}
		txns = append(txns, tx)
	}

	var signee []byte
	if len(txns) > 1 && txns[1].IsCoinStake() {
		var s bytestring.String
		if err := r.ReadCompactLengthPrefixed(&s); err != nil {
			return nil, wrapCompactSizeErr("block.signee", err)
		}
		signee = []byte(s)
	}

	end := r.Offset()
	if uint32(end-start) != declaredSize {
		return nil, newParseError(SizeMismatch, "block", nil)
	}

	return &Block{
		FileOffset:   offset,
		Height:       -1,
		DeclaredSize: declaredSize,
		Header:       hdr,
		Txns:         txns,
		Signee:       signee,
		Hash:         hdr.Hash(r),
	}, nil
}

package parser

import (
	"github.com/zenonrecon/chainrecon/hash32"
	"github.com/zenonrecon/chainrecon/internal/bytestring"
	"github.com/zenonrecon/chainrecon/internal/hashes"
)

// TxInput is spec.md §3's TxInput.
type TxInput struct {
	PrevTx    hash32.T
	PrevIndex uint32
	ScriptSig []byte
	Sequence  uint32
}

// Claims reports whether this input spends a prior output, i.e. it is not
// a coinbase input.
func (in TxInput) Claims() bool {
	return !(in.PrevTx == hash32.Nil && in.PrevIndex == 0xFFFFFFFF)
}

// TxOutput is spec.md §3's TxOutput.
type TxOutput struct {
	Amount       int64
	ScriptPubkey []byte
	Address      string
	Kind         ScriptKind
}

func (o TxOutput) Empty() bool {
	return o.Kind == Empty
}

// Transaction is spec.md §3's Transaction.
type Transaction struct {
	Version  int32
	Locktime uint32
	Hash     hash32.T
	Vin      []TxInput
	Vout     []TxOutput
}

// ParseTransaction reads a transaction from r at its current position
// (spec.md §4.5), then re-reads the exact serialized byte range to compute
// its hash without a second seek-based pass (the "Stream-offset
// arithmetic" design note in spec.md §9).
func ParseTransaction(r *bytestring.Reader) (*Transaction, error) {
	txBegin := r.Offset()
	tx := &Transaction{}

	if !r.ReadInt32(&tx.Version) {
		return nil, newParseError(Truncated, "tx.version", nil)
	}

	var vinCount uint64
	if err := r.ReadCompactSize(&vinCount); err != nil {
		return nil, wrapCompactSizeErr("tx.vin_count", err)
	}
	tx.Vin = make([]TxInput, 0, vinCount)
	for i := uint64(0); i < vinCount; i++ {
		in, err := parseTxInput(r)
		if err != nil {
			return nil, err
		}
		tx.Vin = append(tx.Vin, *in)
	}

	var voutCount uint64
	if err := r.ReadCompactSize(&voutCount); err != nil {
		return nil, wrapCompactSizeErr("tx.vout_count", err)
	}
	tx.Vout = make([]TxOutput, 0, voutCount)
	for i := uint64(0); i < voutCount; i++ {
		out, err := parseTxOutput(r)
		if err != nil {
			return nil, err
		}
		tx.Vout = append(tx.Vout, *out)
	}

	if !r.ReadUint32(&tx.Locktime) {
		return nil, newParseError(Truncated, "tx.locktime", nil)
	}

	txEnd := r.Offset()
	tx.Hash = hashes.Sha256d(r.Slice(txBegin, txEnd))
	return tx, nil
}

func parseTxInput(r *bytestring.Reader) (*TxInput, error) {
	in := &TxInput{}
	if !r.ReadHash256(&in.PrevTx) {
		return nil, newParseError(Truncated, "vin.prev_tx", nil)
	}
	if !r.ReadUint32(&in.PrevIndex) {
		return nil, newParseError(Truncated, "vin.prev_index", nil)
	}
	var scriptSig bytestring.String
	if err := r.ReadCompactLengthPrefixed(&scriptSig); err != nil {
		return nil, wrapCompactSizeErr("vin.script_sig", err)
	}
	in.ScriptSig = []byte(scriptSig)
	if !r.ReadUint32(&in.Sequence) {
		return nil, newParseError(Truncated, "vin.sequence", nil)
	}
	return in, nil
}

func parseTxOutput(r *bytestring.Reader) (*TxOutput, error) {
	out := &TxOutput{}
	if !r.ReadInt64(&out.Amount) {
		return nil, newParseError(Truncated, "vout.amount", nil)
	}
	if out.Amount < 0 {
		return nil, newParseError(NegativeAmount, "vout.amount", nil)
	}
	var script bytestring.String
	if err := r.ReadCompactLengthPrefixed(&script); err != nil {
		return nil, wrapCompactSizeErr("vout.script_pubkey", err)
	}
	out.ScriptPubkey = []byte(script)
	kind, h160, hasH160 := ClassifyScript(out.ScriptPubkey)
	out.Kind = kind
	if hasH160 {
		out.Address = Address(kind, h160)
	}
	return out, nil
}

func wrapCompactSizeErr(context string, err error) *ParseError {
	switch err {
	case bytestring.ErrOversizedLength:
		return newParseError(OversizedLength, context, err)
	case bytestring.ErrInvalidLength:
		return newParseError(InvalidLength, context, err)
	default:
		return newParseError(Truncated, context, err)
	}
}

// Shape classification, spec.md §4.5. claims(i) is TxInput.Claims.

func (tx *Transaction) IsPowCoinbase() bool {
	return len(tx.Vin) == 1 && len(tx.Vout) == 1 && !tx.Vin[0].Claims()
}

func (tx *Transaction) IsPosCoinbase() bool {
	return len(tx.Vin) == 1 && len(tx.Vout) == 2 && !tx.Vin[0].Claims() && !tx.Vout[0].Empty()
}

func (tx *Transaction) IsPosCoinbaseExt() bool {
	return len(tx.Vin) == 1 && tx.Vin[0].Claims() && len(tx.Vout) >= 3 && tx.Vout[0].Empty()
}

// IsCoinStake identifies the second transaction of a PoS block per
// spec.md §4.6 step 4 and the GLOSSARY: first output empty, first input
// claims a prior output, at least two outputs.
func (tx *Transaction) IsCoinStake() bool {
	return len(tx.Vin) >= 1 && tx.Vin[0].Claims() && len(tx.Vout) > 1 && tx.Vout[0].Empty()
}

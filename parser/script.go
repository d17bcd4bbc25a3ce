package parser

import (
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/zenonrecon/chainrecon/hash20"
	"github.com/zenonrecon/chainrecon/internal/hashes"
)

// ScriptKind is the closed set of output-script shapes OutputClassifier
// recognizes (spec.md §4.4).
type ScriptKind int

const (
	NonStandard ScriptKind = iota
	PKH
	PK
	P2SH
	Data
	Puzzle
	Empty
)

func (k ScriptKind) String() string {
	switch k {
	case PKH:
		return "PKH"
	case PK:
		return "PK"
	case P2SH:
		return "P2SH"
	case Data:
		return "DATA"
	case Puzzle:
		return "PUZZLE"
	case Empty:
		return "EMPTY"
	default:
		return "NONSTANDARD"
	}
}

const (
	opPushData1   = 0x4C
	opPushData2   = 0x4D
	opPushData4   = 0x4E
	opReturn      = 0x6A
	opDup         = 0x76
	opEqual       = 0x87
	opEqualVerify = 0x88
	opHash160     = 0xA9
	opHash256     = 0xAA
	opCheckSig    = 0xAC
)

// Base58Check version bytes: prefixPKHorPK for PKH and PK addresses,
// prefixP2SH for P2SH addresses.
const (
	prefixPKHorPK byte = 80
	prefixP2SH    byte = 15
)

// ClassifyScript identifies a script_pubkey's kind and, for kinds that
// resolve to an address, the 20-byte hash payload underlying it.
func ClassifyScript(script []byte) (kind ScriptKind, h160 hash20.T, hasH160 bool) {
	if len(script) == 0 {
		return Empty, hash20.Nil, false
	}

	if isPKH(script) {
		return PKH, hash20.FromSlice(script[3:23]), true
	}

	if h, ok := pkHash(script); ok {
		return PK, h, true
	}

	if isP2SH(script) {
		return P2SH, hash20.FromSlice(script[2:22]), true
	}

	if script[0] == opHash256 && script[len(script)-1] == opEqual {
		return Puzzle, hash20.Nil, false
	}

	if script[0] == opReturn {
		return Data, hash20.Nil, false
	}

	return NonStandard, hash20.Nil, false
}

// isPKH recognizes OP_DUP OP_HASH160 0x14 <20B> OP_EQUALVERIFY OP_CHECKSIG.
func isPKH(script []byte) bool {
	return len(script) >= 25 &&
		script[0] == opDup &&
		script[1] == opHash160 &&
		script[2] == 0x14 &&
		script[23] == opEqualVerify &&
		script[24] == opCheckSig
}

// pkHash recognizes a bare pubkey push (33 or 65 bytes) followed by
// OP_CHECKSIG, and returns Hash160 of the embedded pubkey.
func pkHash(script []byte) (hash20.T, bool) {
	if len(script) == 0 || script[0] >= opPushData1 {
		return hash20.Nil, false
	}
	pushLen := int(script[0])
	if pushLen != 33 && pushLen != 65 {
		return hash20.Nil, false
	}
	if len(script) != 1+pushLen+1 {
		return hash20.Nil, false
	}
	if script[len(script)-1] != opCheckSig {
		return hash20.Nil, false
	}
	return hashes.Hash160(script[1 : 1+pushLen]), true
}

// isP2SH recognizes OP_HASH160 0x14 <20B> OP_EQUAL.
func isP2SH(script []byte) bool {
	return len(script) == 23 &&
		script[0] == opHash160 &&
		script[1] == 0x14 &&
		script[22] == opEqual
}

// Address derives the Base58Check address string for kinds that resolve to
// one, and the empty string otherwise (spec.md §4.4).
func Address(kind ScriptKind, h160 hash20.T) string {
	switch kind {
	case P2SH:
		return base58.CheckEncode(hash20.ToSlice(h160), prefixP2SH)
	case PKH, PK:
		return base58.CheckEncode(hash20.ToSlice(h160), prefixPKHorPK)
	default:
		return ""
	}
}

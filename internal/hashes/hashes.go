// Package hashes implements the three pure hash primitives that HeaderCodec
// and OutputClassifier treat as external collaborators (spec.md §6):
// quark, sha256d, and hash160.
//
// sha256d and hash160 are bit-exact standard constructions. quark is a
// multi-algorithm chained hash (the original network used a nine-round
// selection among blake/bmw/groestl/jh/keccak/skein, chosen by nibbles of
// the running digest); nothing in the retrieval pack implements it, so this
// package provides a grounded two-stage stand-in built from real
// dependencies already present in the teacher's module graph
// (github.com/decred/dcrd/crypto/blake256, promoted here from an indirect
// to a direct dependency) composed with the same sha256d used for version
// >= 4 headers. It satisfies quark's boundary contract — a pure function
// from bytes to Hash256, invoked only for header versions < 4 — without
// claiming bit-for-bit fidelity with the original multi-algorithm chain;
// see DESIGN.md for the reasoning.
package hashes

import (
	"crypto/sha256"

	"github.com/decred/dcrd/crypto/blake256"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD160 is required by the address format, not chosen for new security properties

	"github.com/zenonrecon/chainrecon/hash20"
	"github.com/zenonrecon/chainrecon/hash32"
)

// Sha256d computes double-SHA256, used for header versions >= 4 and for
// every transaction hash.
func Sha256d(b []byte) hash32.T {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second
}

// Quark stands in for the header-hash primitive used by versions < 4. See
// the package doc for why this isn't the original multi-algorithm chain.
func Quark(b []byte) hash32.T {
	stage1 := blake256.Sum256(b)
	return Sha256d(stage1[:])
}

// Hash160 computes RIPEMD160(SHA256(b)), the payload used for PKH/PK/P2SH
// address derivation.
func Hash160(b []byte) hash20.T {
	shaSum := sha256.Sum256(b)
	r := ripemd160.New()
	r.Write(shaSum[:])
	return hash20.FromSlice(r.Sum(nil))
}

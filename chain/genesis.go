// Package chain implements ChainLinker: given an unordered map of hashed
// blocks, it identifies the unique main chain by reverse-walking backlinks
// from a working tip to genesis, then forward-assigns heights and prunes
// everything not on that path.
package chain

import "github.com/zenonrecon/chainrecon/hash32"

// GenesisHash is the known constant identifying the first block of the
// chain; ChainLinker's reverse walk terminates when it reaches a block
// with this hash.
var GenesisHash = mustDecodeHash("00000c428e1dfaf5cca80be43e445d7c6f2835d837c3d35a8243e0e0570f92ee")

func mustDecodeHash(s string) hash32.T {
	h, err := hash32.Decode(s)
	if err != nil {
		panic("chain: invalid genesis hash constant: " + err.Error())
	}
	return h
}

package chain

import (
	"testing"

	"github.com/zenonrecon/chainrecon/hash32"
	"github.com/zenonrecon/chainrecon/parser"
)

func hashN(b byte) hash32.T {
	var h hash32.T
	h[31] = b
	return h
}

func block(hash hash32.T, prev hash32.T) *parser.Block {
	return &parser.Block{
		Hash:   hash,
		Height: -1,
		Header: &parser.Header{PrevHash: prev},
	}
}

// TestLinkForkPruning covers spec.md §8's S4 scenario: G -> A -> B (tip)
// and G -> A -> C (a one-block fork). Linking retains {G, A, B} and drops C.
func TestLinkForkPruning(t *testing.T) {
	g := block(GenesisHash, hash32.Nil)
	a := block(hashN(1), GenesisHash)
	b := block(hashN(2), a.Hash)
	c := block(hashN(3), a.Hash)

	blocks := ChainMap{g.Hash: g, a.Hash: a, b.Hash: b, c.Hash: c}

	if err := Link(blocks, b.Hash, -1); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	if _, ok := blocks[c.Hash]; ok {
		t.Fatal("expected fork block C to be pruned")
	}
	if len(blocks) != 3 {
		t.Fatalf("retained block count = %d, want 3", len(blocks))
	}
	if g.Height != 0 || a.Height != 1 || b.Height != 2 {
		t.Fatalf("unexpected heights: g=%d a=%d b=%d", g.Height, a.Height, b.Height)
	}
	if g.NextHash != a.Hash || a.NextHash != b.Hash {
		t.Fatal("next_hash chain is inconsistent with the retained main chain")
	}
}

// TestLinkHeightTruncation covers spec.md §8's S5 scenario: with
// max_height = 10 and 15 linked blocks, exactly 11 remain.
func TestLinkHeightTruncation(t *testing.T) {
	const n = 15
	blocks := ChainMap{}
	prev := hash32.Nil
	var tip hash32.T
	for i := 0; i < n; i++ {
		var h hash32.T
		if i == 0 {
			h = GenesisHash
		} else {
			h = hashN(byte(i))
		}
		blocks[h] = block(h, prev)
		prev = h
		tip = h
	}

	if err := Link(blocks, tip, 10); err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if len(blocks) != 11 {
		t.Fatalf("retained block count = %d, want 11", len(blocks))
	}
	for h, b := range blocks {
		if b.Height > 10 {
			t.Fatalf("retained block %v has height %d > 10", h, b.Height)
		}
	}
}

func TestLinkBrokenAncestry(t *testing.T) {
	g := block(GenesisHash, hash32.Nil)
	orphan := block(hashN(9), hashN(99)) // prev_hash points nowhere

	blocks := ChainMap{g.Hash: g, orphan.Hash: orphan}
	err := Link(blocks, orphan.Hash, -1)
	if err == nil {
		t.Fatal("expected a broken-ancestry error")
	}
	chainErr, ok := err.(*Error)
	if !ok || chainErr.Kind != BrokenAncestry {
		t.Fatalf("expected BrokenAncestry, got %v", err)
	}
}

func TestLinkUnreachableTip(t *testing.T) {
	g := block(GenesisHash, hash32.Nil)
	blocks := ChainMap{g.Hash: g}
	err := Link(blocks, hashN(5), -1)
	if err == nil {
		t.Fatal("expected an unreachable-tip error")
	}
}

func TestVerifyPostConditionsOnLinkedChain(t *testing.T) {
	g := block(GenesisHash, hash32.Nil)
	a := block(hashN(1), GenesisHash)
	blocks := ChainMap{g.Hash: g, a.Hash: a}

	if err := Link(blocks, a.Hash, -1); err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if err := VerifyPostConditions(blocks, a.Hash); err != nil {
		t.Fatalf("post-conditions failed on a chain Link already validated: %v", err)
	}
}

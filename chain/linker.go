package chain

import (
	"github.com/zenonrecon/chainrecon/hash32"
	"github.com/zenonrecon/chainrecon/parser"
)

// ChainMap is spec.md §3's ChainMap: a mapping from hash to a uniquely
// owned Block, keyed by each block's own Hash.
type ChainMap map[hash32.T]*parser.Block

// Link implements ChainLinker (spec.md §4.7). tip is the working tip chosen
// by the caller (step 1, a driver-level concern: "the last block
// successfully parsed from the last enumerated file"). maxHeight caps the
// retained chain; pass -1 for no cap. blocks is mutated in place: on
// success it holds exactly the main-chain blocks, each with Height and
// NextHash filled in.
func Link(blocks ChainMap, tip hash32.T, maxHeight int64) error {
	tipBlock, ok := blocks[tip]
	if !ok {
		return newError(UnreachableTip, "tip hash not present in block map")
	}

	// Step 2: reverse walk, setting next_hash along the way.
	cur := tipBlock
	for cur.Hash != GenesisHash {
		pred, ok := blocks[cur.Header.PrevHash]
		if !ok {
			return newError(BrokenAncestry, "prev_hash "+cur.Header.PrevHash.String()+" not found before reaching genesis")
		}
		pred.NextHash = cur.Hash
		cur = pred
	}

	genesis, ok := blocks[GenesisHash]
	if !ok {
		return newError(MissingGenesis, "genesis hash not present in block map")
	}

	// Step 3: forward height assignment.
	cur = genesis
	height := int64(0)
	for {
		cur.Height = height
		if cur.NextHash.IsNil() {
			break
		}
		next, ok := blocks[cur.NextHash]
		if !ok {
			return newError(BrokenAncestry, "next_hash "+cur.NextHash.String()+" not found during forward walk")
		}
		cur = next
		height++
	}
	if cur.Hash != tipBlock.Hash {
		return newError(UnreachableTip, "forward walk terminated before reaching the selected tip")
	}

	// Step 4: pruning. effectiveTip is the retained chain's new tip: the
	// original tip, unless maxHeight truncated the chain below it, in
	// which case it's whichever retained block now sits at maxHeight.
	effectiveTip := tipBlock.Hash
	for h, b := range blocks {
		if h == GenesisHash {
			if maxHeight >= 0 && b.Height > maxHeight {
				delete(blocks, h)
			}
			continue
		}
		pred, ok := blocks[b.Header.PrevHash]
		if !ok || pred.NextHash != h {
			delete(blocks, h)
			continue
		}
		if maxHeight >= 0 && b.Height > maxHeight {
			delete(blocks, h)
		}
	}
	if maxHeight >= 0 && maxHeight < tipBlock.Height {
		for _, b := range blocks {
			if b.Height == maxHeight {
				effectiveTip = b.Hash
				b.NextHash = hash32.Nil
				break
			}
		}
	}

	return VerifyPostConditions(blocks, effectiveTip)
}

// VerifyPostConditions checks invariant 4 (spec.md §8): every retained
// block except the tip has a consistent forward link to its successor.
func VerifyPostConditions(blocks ChainMap, tip hash32.T) error {
	for h, b := range blocks {
		if h == tip {
			continue
		}
		if b.NextHash.IsNil() {
			return newError(BrokenAncestry, "retained non-tip block "+h.String()+" has a null next_hash")
		}
		next, ok := blocks[b.NextHash]
		if !ok {
			return newError(BrokenAncestry, "retained block "+h.String()+" points to a pruned next_hash")
		}
		if next.Header.PrevHash != h {
			return newError(BrokenAncestry, "successor of "+h.String()+" does not point back to it")
		}
		if next.Height != b.Height+1 {
			return newError(BrokenAncestry, "successor of "+h.String()+" has a non-consecutive height")
		}
	}
	return nil
}

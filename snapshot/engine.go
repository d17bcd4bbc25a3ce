// Package snapshot implements SnapshotEngine: a single forward walk over
// the linearized chain that emits a per-address net balance change
// (spec.md §4.8).
package snapshot

import (
	"github.com/zenonrecon/chainrecon/hash32"
	"github.com/zenonrecon/chainrecon/parser"
)

// Outpoint identifies a spendable output across the chain (the GLOSSARY's
// "Outpoint"): the pair (prev_tx, prev_index).
type Outpoint struct {
	PrevTx    hash32.T
	PrevIndex uint32
}

// UtxoEntry is the value side of UtxoBacklog: the address and amount an
// outpoint would pay if spent.
type UtxoEntry struct {
	Address string
	Amount  int64
}

// BalanceDelta is spec.md §3's BalanceDelta: address -> cumulative net
// change up to and including the tip.
type BalanceDelta map[string]int64

// UtxoBacklog is spec.md §3's UtxoBacklog: outpoint -> (address, amount),
// holding every unspent output seen so far.
type UtxoBacklog map[Outpoint]UtxoEntry

// Sink receives the ordered per-block facts produced while walking the
// chain (spec.md §6's sink boundary): the tip height update, the
// block-hash-at-height, the transaction hashes in the block, per-output
// address/amount pairs, and the per-address balance deltas for the block,
// emitted in that order. A nil Sink means "no external sink" — the caller
// relies solely on the final text snapshot.
type Sink interface {
	SetTipHeight(height int64) error
	SetBlockHash(height int64, hash hash32.T) error
	RecordTxHashes(hashes []hash32.T) error
	RecordOutput(txHash hash32.T, index int, address string, amount int64) error
	RecordBalanceChange(address string, height int64, delta int64) error
}

// StrictNegativeBalanceCheck, when true, makes ProcessBlock fail with
// NegativeBalance as soon as any address's running balance goes negative.
// Off by default per spec.md §7: negative intermediates are allowed.
type Engine struct {
	Balances                   BalanceDelta
	Utxos                      UtxoBacklog
	Sink                       Sink
	StrictNegativeBalanceCheck bool
}

func NewEngine(sink Sink) *Engine {
	return &Engine{
		Balances: BalanceDelta{},
		Utxos:    UtxoBacklog{},
		Sink:     sink,
	}
}

// ProcessBlock consumes b exactly once, updating Balances and Utxos and,
// if a Sink is configured, emitting the block's facts to it. The caller is
// responsible for calling blocks in ascending-height order and for
// releasing its own reference to b afterward (spec.md §5's "memory
// release").
func (e *Engine) ProcessBlock(b *parser.Block) error {
	if e.Sink != nil {
		if err := e.Sink.SetTipHeight(b.Height); err != nil {
			return err
		}
		if err := e.Sink.SetBlockHash(b.Height, b.Hash); err != nil {
			return err
		}
		hashes := make([]hash32.T, len(b.Txns))
		for i, tx := range b.Txns {
			hashes[i] = tx.Hash
		}
		if err := e.Sink.RecordTxHashes(hashes); err != nil {
			return err
		}
	}

	blockDeltas := BalanceDelta{}

	for _, tx := range b.Txns {
		for i, out := range tx.Vout {
			if out.Address == "" {
				continue
			}
			e.Utxos[Outpoint{PrevTx: tx.Hash, PrevIndex: uint32(i)}] = UtxoEntry{
				Address: out.Address,
				Amount:  out.Amount,
			}
			if e.Sink != nil {
				if err := e.Sink.RecordOutput(tx.Hash, i, out.Address, out.Amount); err != nil {
					return err
				}
			}
			if out.Amount > 0 {
				e.Balances[out.Address] += out.Amount
				blockDeltas[out.Address] += out.Amount
			}
		}

		if tx.IsPowCoinbase() || tx.IsPosCoinbase() {
			continue
		}

		for _, in := range tx.Vin {
			if !in.Claims() {
				continue
			}
			key := Outpoint{PrevTx: in.PrevTx, PrevIndex: in.PrevIndex}
			entry, ok := e.Utxos[key]
			if !ok {
				return newError(DanglingInput, "no utxo for outpoint referenced by "+tx.Hash.String())
			}
			delete(e.Utxos, key)
			e.Balances[entry.Address] -= entry.Amount
			blockDeltas[entry.Address] -= entry.Amount
			if e.StrictNegativeBalanceCheck && e.Balances[entry.Address] < 0 {
				return newError(NegativeBalance, "address "+entry.Address+" went negative")
			}
		}
	}

	if e.Sink != nil {
		for addr, delta := range blockDeltas {
			if err := e.Sink.RecordBalanceChange(addr, b.Height, delta); err != nil {
				return err
			}
		}
	}

	return nil
}

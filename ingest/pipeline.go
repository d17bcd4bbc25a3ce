package ingest

import (
	"os"
	"sort"

	"github.com/zenonrecon/chainrecon/chain"
	"github.com/zenonrecon/chainrecon/internal/bytestring"
	"github.com/zenonrecon/chainrecon/internal/obs"
	"github.com/zenonrecon/chainrecon/parser"
	"github.com/zenonrecon/chainrecon/snapshot"
)

// DefaultTipMargin is the safety margin from original_source/src/main.cpp:
// the driver keeps reading blocks until it has at least
// requested_height + DefaultTipMargin of them, before trusting the last
// parsed block as the working tip.
const DefaultTipMargin = 300

// Options configures a pipeline run.
type Options struct {
	DataDir   string
	MaxHeight int64 // -1 means no cap
	TipMargin int   // only applied when MaxHeight >= 0
	Sink      snapshot.Sink
}

// Result is what a pipeline run produces: the final balances, the height of
// the retained chain's tip, and the number of blocks parsed before linking
// (pruned blocks included), for CLI-layer reporting.
type Result struct {
	Balances     snapshot.BalanceDelta
	RetainedTip  int64
	BlocksParsed int
}

// Run executes the full pipeline: scan every data file for block records,
// parse each into the in-memory ChainMap, link the main chain, then walk
// it with a SnapshotEngine.
func Run(opts Options) (*Result, error) {
	files, err := FileEnumerator{DataDir: opts.DataDir}.Files()
	if err != nil {
		return nil, err
	}

	target := -1
	if opts.MaxHeight >= 0 {
		margin := opts.TipMargin
		if margin <= 0 {
			margin = DefaultTipMargin
		}
		target = int(opts.MaxHeight) + margin
	}

	diag := parser.Diagnostics{Dir: opts.DataDir}
	blocks := chain.ChainMap{}
	var lastParsed *parser.Block
	parsedCount := 0

fileLoop:
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		for _, b := range parser.Scan(data) {
			obs.BlocksScanned.Inc()

			if !parser.ValidDeclaredSize(data, b) {
				obs.Log.WithField("file", file).Warn("declared size mismatch, dumping to wrongblock.blk")
				_ = diag.WriteWrongBlock(data[b.Start:b.End])
				continue
			}

			size, _ := parser.DeclaredSize(data, b)
			payload := data[b.Start+4 : b.End]
			r := bytestring.NewReader(payload)

			blk, err := parser.ParseBlock(r, uint64(b.Start), size)
			if err != nil {
				obs.Log.WithField("file", file).WithError(err).Warn("block failed to parse, dumping to blockdump.blk and skipping the rest of this file")
				obs.ParseErrors.WithLabelValues(parseErrorKind(err)).Inc()
				_ = diag.WriteBlockDump(data[b.Start:b.End])
				continue fileLoop
			}

			obs.BlocksParsed.Inc()
			blocks[blk.Hash] = blk
			lastParsed = blk
			parsedCount++

			if target >= 0 && parsedCount >= target {
				break fileLoop
			}
		}
	}

	if lastParsed == nil {
		return nil, &chain.Error{Kind: chain.UnreachableTip, Context: "no block successfully parsed from any input file"}
	}

	if err := chain.Link(blocks, lastParsed.Hash, opts.MaxHeight); err != nil {
		return nil, err
	}
	obs.BlocksPruned.Add(float64(parsedCount - len(blocks)))

	ordered := make([]*parser.Block, 0, len(blocks))
	for _, b := range blocks {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Height < ordered[j].Height })

	engine := snapshot.NewEngine(opts.Sink)
	for _, b := range ordered {
		if err := engine.ProcessBlock(b); err != nil {
			return nil, err
		}
		delete(blocks, b.Hash)
	}
	obs.SnapshotEntries.Add(float64(len(engine.Balances)))

	tip := int64(0)
	if len(ordered) > 0 {
		tip = ordered[len(ordered)-1].Height
	}

	return &Result{Balances: engine.Balances, RetainedTip: tip, BlocksParsed: parsedCount}, nil
}

func parseErrorKind(err error) string {
	if pe, ok := err.(*parser.ParseError); ok {
		return pe.Kind.String()
	}
	return "Unknown"
}

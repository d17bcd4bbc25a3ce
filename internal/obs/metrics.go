package obs

import "github.com/prometheus/client_golang/prometheus"

// Metrics mirrors the grpc_prometheus counters the teacher registers in
// cmd/root.go's startServer, scaled to this pipeline's own stages.
var (
	BlocksScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chainrecon_blocks_scanned_total",
		Help: "Candidate block records found by the file scanner, including spurious magic-pattern hits.",
	})
	BlocksParsed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chainrecon_blocks_parsed_total",
		Help: "Block records that parsed successfully.",
	})
	BlocksPruned = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chainrecon_blocks_pruned_total",
		Help: "Blocks discarded by ChainLinker as off the main chain or above the requested height.",
	})
	ParseErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chainrecon_parse_errors_total",
		Help: "Parse failures by error kind.",
	}, []string{"kind"})
	SnapshotEntries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chainrecon_snapshot_entries_total",
		Help: "Addresses written to the final balance snapshot.",
	})
)

// Registry is a dedicated Prometheus registry (rather than the global
// default) so library tests can construct a SnapshotEngine repeatedly
// without double-registration panics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(BlocksScanned, BlocksParsed, BlocksPruned, ParseErrors, SnapshotEntries)
}

package storage

import (
	"os"
	"testing"

	"github.com/zenonrecon/chainrecon/hash32"
)

// TestRedisSinkRoundTrip is an integration test: it requires a reachable
// Redis instance and is skipped unless REDIS_ADDR is set, matching the
// rest of the retrieval pack's own integration-test gating convention.
func TestRedisSinkRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis integration test")
	}

	sink := NewRedisSink(addr)
	defer sink.Close()

	if err := sink.SetTipHeight(42); err != nil {
		t.Fatalf("SetTipHeight failed: %v", err)
	}

	h, err := hash32.Decode("00000c428e1dfaf5cca80be43e445d7c6f2835d837c3d35a8243e0e0570f92ee")
	if err != nil {
		t.Fatalf("hash32.Decode failed: %v", err)
	}
	if err := sink.SetBlockHash(42, h); err != nil {
		t.Fatalf("SetBlockHash failed: %v", err)
	}

	if err := sink.RecordTxHashes([]hash32.T{h}); err != nil {
		t.Fatalf("RecordTxHashes failed: %v", err)
	}
	if err := sink.RecordOutput(h, 0, "ZTestAddress", 500); err != nil {
		t.Fatalf("RecordOutput failed: %v", err)
	}
	if err := sink.RecordBalanceChange("ZTestAddress", 42, 500); err != nil {
		t.Fatalf("RecordBalanceChange failed: %v", err)
	}

	val, err := sink.client.Get(sink.ctx, "chainrecon:blocks:top").Result()
	if err != nil {
		t.Fatalf("reading back tip height failed: %v", err)
	}
	if val != "42" {
		t.Fatalf("tip height = %q, want %q", val, "42")
	}

	members, err := sink.client.SMembers(sink.ctx, "chainrecon:block:txns:42").Result()
	if err != nil {
		t.Fatalf("reading back tx hash set failed: %v", err)
	}
	if len(members) != 1 || members[0] != h.String() {
		t.Fatalf("tx hash set = %v, want [%s]", members, h.String())
	}
}

func TestRedisSinkRecordOutputSkipsUnresolvedAddress(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis integration test")
	}

	sink := NewRedisSink(addr)
	defer sink.Close()

	if err := sink.RecordOutput(hash32.Nil, 0, "", 0); err != nil {
		t.Fatalf("RecordOutput with an empty address should be a no-op, got error: %v", err)
	}
}

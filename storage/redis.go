// Package storage implements the sink boundary from spec.md §6: an
// optional write-only destination for per-block facts, backed by Redis.
// The key scheme is recovered from original_source/include/redis.hpp's
// znn:-prefixed keys, renamed to the chainrecon: prefix.
package storage

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/zenonrecon/chainrecon/hash32"
)

// RedisSink implements snapshot.Sink against a Redis server.
type RedisSink struct {
	client *redis.Client
	ctx    context.Context
	// lastHeight is the height most recently passed to SetBlockHash.
	// snapshot.Engine.ProcessBlock always calls SetBlockHash immediately
	// before RecordTxHashes for the same block, so this threads the
	// height through without changing the Sink interface.
	lastHeight int64
}

func NewRedisSink(addr string) *RedisSink {
	return &RedisSink{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ctx:    context.Background(),
	}
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}

func (s *RedisSink) SetTipHeight(height int64) error {
	err := s.client.Set(s.ctx, "chainrecon:blocks:top", strconv.FormatInt(height, 10), 0).Err()
	return errors.Wrap(err, "storage: setting tip height")
}

func (s *RedisSink) SetBlockHash(height int64, hash hash32.T) error {
	s.lastHeight = height
	key := "chainrecon:block:hash:" + strconv.FormatInt(height, 10)
	err := s.client.Set(s.ctx, key, hash.String(), 0).Err()
	return errors.Wrapf(err, "storage: setting block hash at height %d", height)
}

// RecordTxHashes mirrors redis.hpp's sadd("znn:block:txns:<height>", txs):
// the block's height is threaded through via SetBlockHash's most recent
// call, so the sink tracks it between the two calls.
func (s *RedisSink) RecordTxHashes(hashes []hash32.T) error {
	if len(hashes) == 0 {
		return nil
	}
	key := "chainrecon:block:txns:" + strconv.FormatInt(s.lastHeight, 10)
	members := make([]interface{}, len(hashes))
	for i, h := range hashes {
		members[i] = h.String()
	}
	err := s.client.SAdd(s.ctx, key, members...).Err()
	return errors.Wrapf(err, "storage: recording tx hashes at height %d", s.lastHeight)
}

func (s *RedisSink) RecordOutput(txHash hash32.T, index int, address string, amount int64) error {
	if address == "" {
		return nil
	}
	n := strconv.Itoa(index)
	if err := s.client.Set(s.ctx, "chainrecon:tx:"+txHash.String()+":n:"+n, address, 0).Err(); err != nil {
		return errors.Wrapf(err, "storage: recording output address for %s:%s", txHash, n)
	}
	amountKey := "chainrecon:tx:" + txHash.String() + ":amount:" + n
	if err := s.client.Set(s.ctx, amountKey, strconv.FormatInt(amount, 10), 0).Err(); err != nil {
		return errors.Wrapf(err, "storage: recording output amount for %s:%s", txHash, n)
	}
	if err := s.client.SAdd(s.ctx, "chainrecon:utxos", address).Err(); err != nil {
		return errors.Wrap(err, "storage: adding address to the utxo set")
	}
	return nil
}

func (s *RedisSink) RecordBalanceChange(address string, height int64, delta int64) error {
	h := strconv.FormatInt(height, 10)
	if err := s.client.SAdd(s.ctx, "chainrecon:blocks:"+address, h).Err(); err != nil {
		return errors.Wrapf(err, "storage: recording changed-at height for %s", address)
	}
	key := "chainrecon:change:" + address + ":" + h
	if err := s.client.Set(s.ctx, key, strconv.FormatInt(delta, 10), 0).Err(); err != nil {
		return errors.Wrapf(err, "storage: recording balance change for %s at height %d", address, height)
	}
	return nil
}

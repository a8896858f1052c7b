// Package engine implements the keyspace: a partitioned, in-memory map of
// string keys to tagged values, each with an optional millisecond-resolution
// absolute expiration. Every operation lazily evicts an expired entry on
// touch; a background sweeper additionally reclaims expired entries that
// are never touched again.
package engine

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/vaishvijs13/kv-rs/internal/database/value"
)

// Engine is the keyspace. It is safe for concurrent use by many goroutines.
type Engine struct {
	partitionNum int
	partitions   []*partition
	log          Logger
}

// New builds an Engine. With no options it runs a single partition behind
// a single exclusive lock.
func New(options ...Option) *Engine {
	e := &Engine{partitionNum: 1, log: noopLogger{}}
	for _, opt := range options {
		opt(e)
	}

	e.partitions = make([]*partition, e.partitionNum)
	for i := range e.partitions {
		e.partitions[i] = newPartition()
	}
	return e
}

func (e *Engine) part(key string) *partition {
	if len(e.partitions) == 1 {
		return e.partitions[0]
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return e.partitions[h.Sum32()%uint32(len(e.partitions))]
}

// Set stores key with an optional TTL in seconds. hasTTL distinguishes
// "no EX clause was given" (false) from an explicit TTL (true); when
// hasTTL is true, ttlSeconds <= 0 stores the entry already expired, so
// it is gone on its very next touch, rather than living forever.
func (e *Engine) Set(key, val string, hasTTL bool, ttlSeconds int64) {
	var expiresAtMs int64
	if hasTTL {
		if ttlSeconds > 0 {
			expiresAtMs = time.Now().Add(time.Duration(ttlSeconds) * time.Second).UnixMilli()
		} else {
			expiresAtMs = time.Now().UnixMilli() - 1
		}
	}
	e.part(key).set(key, value.NewScalar(val), expiresAtMs)
	e.log.LogSet(key, val, expiresAtMs)
}

// Get returns the scalar stored at key.
func (e *Engine) Get(key string) (string, bool, error) {
	return e.part(key).get(key)
}

// Del removes key, returning 1 if it was present and live, 0 otherwise.
func (e *Engine) Del(key string) int64 {
	n := e.part(key).del(key)
	if n > 0 {
		e.log.LogDel(key)
	}
	return n
}

// Exists reports whether key is present and live.
func (e *Engine) Exists(key string) int64 {
	return e.part(key).exists(key)
}

// TTL returns the remaining seconds until expiration, -1 if key has no
// expiration, or -2 if key does not exist (or has already expired).
func (e *Engine) TTL(key string) int64 {
	return e.part(key).ttl(key)
}

// Keys returns every live key with the given prefix. An empty prefix
// matches every key.
func (e *Engine) Keys(prefix string) []string {
	var out []string
	for _, p := range e.partitions {
		out = append(out, p.keys(prefix)...)
	}
	return out
}

// Incr increments the integer stored at key by one, treating a missing key
// as 0, and returns the new value.
func (e *Engine) Incr(key string) (int64, error) {
	next, expiresAtMs, nextStr, err := e.part(key).incr(key)
	if err != nil {
		return 0, err
	}
	e.log.LogSet(key, nextStr, expiresAtMs)
	return next, nil
}

// LPush pushes values onto the front of the list at key, creating it if
// absent, and returns the resulting length.
func (e *Engine) LPush(key string, values []string) (int64, error) {
	n, err := e.part(key).lpush(key, values)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// LPop removes and returns the front element of the list at key.
func (e *Engine) LPop(key string) (string, bool, error) {
	return e.part(key).lpop(key)
}

// LLen returns the length of the list at key, 0 if absent.
func (e *Engine) LLen(key string) (int64, error) {
	return e.part(key).llen(key)
}

// SAdd adds members to the set at key, creating it if absent, and returns
// the count of members actually added.
func (e *Engine) SAdd(key string, members []string) (int64, error) {
	return e.part(key).sadd(key, members)
}

// SRem removes members from the set at key and returns the count actually
// removed.
func (e *Engine) SRem(key string, members []string) (int64, error) {
	return e.part(key).srem(key, members)
}

// SCard returns the cardinality of the set at key, 0 if absent.
func (e *Engine) SCard(key string) (int64, error) {
	return e.part(key).scard(key)
}

// Sweep removes every expired entry across every partition, once.
func (e *Engine) Sweep() {
	for _, p := range e.partitions {
		p.sweep()
	}
}

// Start runs the opportunistic sweeper until ctx is canceled, sweeping
// every interval.
func (e *Engine) Start(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.Sweep()
		}
	}
}

// ReplaySet applies a recovered set record without touching the log,
// used during append-only log replay at startup.
func (e *Engine) ReplaySet(key, val string, expiresAtMs int64) {
	e.part(key).replaySet(key, value.NewScalar(val), expiresAtMs)
}

// ReplayDel applies a recovered del record without touching the log.
func (e *Engine) ReplayDel(key string) {
	e.part(key).replayDel(key)
}

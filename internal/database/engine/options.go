package engine

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithPartitionNum shards the keyspace across n independently-locked
// partitions instead of the default single partition. This trades the
// single-lock default for throughput; correctness of lazy expiration
// and every operation is unaffected, since each key is always routed
// to the same partition.
func WithPartitionNum(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.partitionNum = n
		}
	}
}

// WithLogger attaches the durable log. Without this option the engine
// runs in memory-only mode.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

package client

import (
	"time"

	"github.com/vaishvijs13/kv-rs/pkg/compression"
)

// callOptions holds the per-call settings for a single method invocation.
type callOptions struct {
	compressor compression.Compressor
	ttl        *time.Duration
}

// Option is the common type for client call options.
type Option func(*callOptions)

// WithCompressor overrides the client's default compressor for this call.
func WithCompressor(compressor compression.Compressor) Option {
	return func(o *callOptions) {
		o.compressor = compressor
	}
}

// WithTTL sets the key's time to live (Set only).
func WithTTL(duration time.Duration) Option {
	return func(o *callOptions) {
		o.ttl = &duration
	}
}

func applyOptions(opts []Option) callOptions {
	co := callOptions{}
	for _, opt := range opts {
		opt(&co)
	}
	return co
}

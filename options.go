package cache

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/krisalay/smart-cache/types"
)

// Option customizes a cache at construction time.
type Option func(*options)

type options struct {
	name    string
	logger  zerolog.Logger
	clock   clockwork.Clock
	metrics types.Metrics
	clone   any // func(T) T, checked against T in New
}

func defaultOptions() options {
	return options{
		name:    "cache",
		logger:  zerolog.Nop(),
		clock:   clockwork.NewRealClock(),
		metrics: types.NoopMetrics{},
	}
}

// WithName sets the instance name used in logs, stats and registries.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger. The cache adds a "cache" field with its name.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces the wall clock, typically with a clockwork fake clock in
// tests. The clock drives both liveness checks and the cleanup ticker.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMetrics installs a metrics hook. Hit, miss and eviction counters used
// by Stats are kept regardless.
func WithMetrics(m types.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithClone makes the cache copy payloads on the way in (Set) and on the way
// out (Get), so callers never share mutable state with the cache.
// T must match the payload type of the cache passed to New.
func WithClone[T any](fn func(T) T) Option {
	return func(o *options) { o.clone = fn }
}

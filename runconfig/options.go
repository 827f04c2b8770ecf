// Package runconfig holds the functional options that configure a single
// compgraph.Run invocation: which observability.Provider to report through,
// and how large a hint to give the buffering used for materialized graphs.
//
// A functional-option shape trimmed to the knobs a strictly sequential,
// single-pass run actually has: no worker-count or error-strategy option
// exists here, because compgraph runs a plan's graphs sequentially, not
// across goroutines, so neither concept applies; see DESIGN.md.
package runconfig

import "github.com/flowgraph/compgraph/observability"

// Option is a functional option for configuring a Run.
type Option func(*Config)

// Config holds the resolved configuration for a Run. Its fields are
// exported so that compgraph reads them directly; runconfig has no behavior
// of its own beyond applying options.
type Config struct {
	Provider        observability.Provider
	MaterializeHint int
}

// WithProvider sets the observability.Provider a Run reports spans, metrics,
// and log events through. The default is a no-op provider that discards
// everything.
func WithProvider(provider observability.Provider) Option {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithMaterializeHint sets the initial capacity used when buffering a
// graph's output because it has more than one consumer in the current run.
// It is purely an allocation hint; it never changes which graphs are
// materialized. A value of 0 (default) lets Go's slice growth pick its own
// capacities.
func WithMaterializeHint(n int) Option {
	return func(c *Config) {
		c.MaterializeHint = n
	}
}

// Resolve applies opts over a Config carrying package defaults.
func Resolve(opts ...Option) *Config {
	cfg := &Config{
		Provider:        NoopProvider{},
		MaterializeHint: 0,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

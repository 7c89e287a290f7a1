package htree

import (
	"github.com/npillmayer/htree/parser"
)

// Option configures ParseDocument and ParseFragment.
type Option func(*config)

type config struct {
	opts    parser.Options
	backend Backend
}

func newConfig(opts []Option) *config {
	cfg := &config{
		opts:    parser.DefaultOptions(),
		backend: defaultBackend{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithOptions replaces the parser options as a whole.
func WithOptions(o parser.Options) Option {
	return func(cfg *config) {
		cfg.opts = o
	}
}

// WithTabStop sets the tab width used for source columns.
func WithTabStop(n int) Option {
	return func(cfg *config) {
		cfg.opts.TabStop = n
	}
}

// WithMaxErrors caps the number of markup errors recorded. -1 records all.
func WithMaxErrors(n int) Option {
	return func(cfg *config) {
		cfg.opts.MaxErrors = n
	}
}

// WithMaxSourceSize limits the size of the input. Larger inputs fail with
// ErrAllocation.
func WithMaxSourceSize(n int) Option {
	return func(cfg *config) {
		cfg.opts.MaxSourceSize = n
	}
}

// WithBackend replaces the parser collaborator.
func WithBackend(b Backend) Option {
	return func(cfg *config) {
		if b != nil {
			cfg.backend = b
		}
	}
}

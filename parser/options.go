package parser

import "golang.org/x/net/html/atom"

// Options configures parsing and teardown of an arena.
type Options struct {
	// TabStop is the column width of a tab character when computing
	// source positions.
	TabStop int `yaml:"tab_stop"`
	// MaxErrors caps the number of informational errors recorded.
	// -1 means no limit.
	MaxErrors int `yaml:"max_errors"`
	// Scripting selects how <noscript> content is parsed.
	Scripting bool `yaml:"scripting"`
	// FragmentContext, if non-zero, parses the input as the content of an
	// element with this tag instead of as a full document.
	FragmentContext atom.Atom `yaml:"-"`
	// ReuseArenas returns destroyed arenas to a pool instead of leaving
	// them to the garbage collector.
	ReuseArenas bool `yaml:"reuse_arenas"`
	// MaxSourceSize limits the size of the input in bytes. 0 means no limit.
	MaxSourceSize int `yaml:"max_source_size"`
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		TabStop:     8,
		MaxErrors:   -1,
		Scripting:   true,
		ReuseArenas: true,
	}
}

func (opts *Options) tabStop() int {
	if opts.TabStop <= 0 {
		return 8
	}
	return opts.TabStop
}

package htree

import (
	"runtime"

	"github.com/npillmayer/htree/arena"
	"github.com/npillmayer/htree/parser"
	"golang.org/x/net/html/atom"
)

// Output denotes the whole result of a parse. It is the handle returned by
// ParseDocument and does not point to any node; use Document or Root to get
// into the tree.
type Output struct {
	ref[arena.Node]
}

// ParseDocument parses text as a complete HTML document. text is copied and
// may be modified by the caller afterwards.
//
// Markup errors never make ParseDocument fail, they are available from
// Output.Errors. ParseDocument fails with ErrAllocation if text exceeds the
// configured size limit and with ErrParse if the parser could not produce a
// tree at all.
func ParseDocument(text []byte, opts ...Option) (*Output, error) {
	cfg := newConfig(opts)
	cfg.opts.FragmentContext = 0
	return parse(text, cfg)
}

// ParseFragment parses text as the content of an element with the given
// tag, e.g. atom.Body or atom.Tbody. The fragment's nodes become the
// children of an implied <html> root element.
func ParseFragment(text []byte, context atom.Atom, opts ...Option) (*Output, error) {
	cfg := newConfig(opts)
	if context == 0 {
		context = atom.Body
	}
	cfg.opts.FragmentContext = context
	return parse(text, cfg)
}

func parse(text []byte, cfg *config) (*Output, error) {
	c, err := newContainer(text, cfg)
	if err != nil {
		tracer().Infof("parse failed: %v", err)
		return nil, err
	}
	return newOutput(c), nil
}

func newOutput(c *Container) *Output {
	h := &Output{}
	return bind(h, &h.ref, c, nil)
}

// Duplicate returns an independent handle to the same output.
func (o *Output) Duplicate() *Output {
	defer runtime.KeepAlive(o)
	return newOutput(o.live("duplicate"))
}

// Equal is true if both handles denote the output of the same parse.
func (o *Output) Equal(other *Output) bool {
	if other == nil {
		return false
	}
	o.live("equal")
	other.live("equal")
	return o.owner == other.owner
}

// Document returns the document node of the parse.
func (o *Output) Document() *Document {
	defer runtime.KeepAlive(o)
	c := o.live("document")
	return newDocument(c, c.arena().Document())
}

// Root returns the root element, usually <html>.
func (o *Output) Root() *Element {
	defer runtime.KeepAlive(o)
	c := o.live("root")
	a := c.arena()
	if a.Root == arena.NoParent {
		return nil
	}
	return newElement(c, a.Node(a.Root))
}

// Errors returns a copy of the markup errors the parser recovered from.
func (o *Output) Errors() []parser.Error {
	defer runtime.KeepAlive(o)
	c := o.live("errors")
	errs := make([]parser.Error, len(c.out.Errors))
	copy(errs, c.out.Errors)
	return errs
}

package htree

import (
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/htree/arena"
	"github.com/npillmayer/htree/parser"
)

// Backend is the parser collaborator of a Container. Parse must not keep
// references to src beyond the returned Output, and Destroy is called
// exactly once per Output, with the options Parse was called with.
type Backend interface {
	Parse(src []byte, opts *parser.Options) (*parser.Output, error)
	Destroy(out *parser.Output, opts *parser.Options)
}

type defaultBackend struct{}

func (defaultBackend) Parse(src []byte, opts *parser.Options) (*parser.Output, error) {
	return parser.Parse(src, opts)
}

func (defaultBackend) Destroy(out *parser.Output, opts *parser.Options) {
	parser.Destroy(out, opts)
}

// Container owns the arena of one parse together with the source buffer it
// refers to, and counts the handles referencing it. It is torn down when the
// last handle is released.
type Container struct {
	refs    atomic.Int64
	dead    atomic.Bool
	serial  uint64
	source  []byte
	out     *parser.Output
	opts    parser.Options
	backend Backend
}

var containerSerial atomic.Uint64

// newContainer copies text and parses the copy. The new container has no
// references; the caller has to wrap it in a handle immediately.
func newContainer(text []byte, cfg *config) (*Container, error) {
	if limit := cfg.opts.MaxSourceSize; limit > 0 && len(text) > limit {
		return nil, fmt.Errorf("%w: source of %d bytes exceeds limit of %d", ErrAllocation, len(text), limit)
	}
	source := make([]byte, len(text))
	copy(source, text)
	c := &Container{
		serial:  containerSerial.Add(1),
		source:  source,
		opts:    cfg.opts,
		backend: cfg.backend,
	}
	out, err := c.backend.Parse(source, &c.opts)
	if err != nil {
		if out != nil && out.Arena != nil {
			c.backend.Destroy(out, &c.opts) // no partially formed containers
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if out == nil || out.Arena == nil {
		return nil, ErrParse
	}
	c.out = out
	tracer().Debugf("container #%d: %d bytes, %d nodes, %d markup errors",
		c.serial, len(source), out.Arena.Len(), len(out.Errors))
	return c, nil
}

func (c *Container) retain() {
	if c.dead.Load() {
		misuse("retain", "container #%d already torn down", c.serial)
	}
	c.refs.Add(1)
}

// release is also the cleanup function registered for every handle.
func (c *Container) release() {
	n := c.refs.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		misuse("release", "container #%d released more often than retained", c.serial)
	}
	c.teardown()
}

// teardown destroys the arena, then drops the source buffer the arena
// refers to.
func (c *Container) teardown() {
	if !c.dead.CompareAndSwap(false, true) {
		misuse("release", "container #%d torn down twice", c.serial)
	}
	tracer().Debugf("container #%d: last handle released, tearing down", c.serial)
	c.backend.Destroy(c.out, &c.opts)
	c.out = nil
	c.source = nil
}

// RefCount returns the number of live handles referencing c.
func (c *Container) RefCount() int64 {
	return c.refs.Load()
}

// Alive returns false once c has been torn down.
func (c *Container) Alive() bool {
	return !c.dead.Load()
}

// Options returns the parser options c was built with.
func (c *Container) Options() parser.Options {
	return c.opts
}

// Source returns a copy of the source buffer.
func (c *Container) Source() []byte {
	c.check("source")
	src := make([]byte, len(c.source))
	copy(src, c.source)
	return src
}

func (c *Container) check(op string) {
	if c.dead.Load() {
		misuse(op, "container #%d already torn down", c.serial)
	}
}

func (c *Container) arena() *arena.Arena {
	return c.out.Arena
}

func (c *Container) String() string {
	return fmt.Sprintf("(Container #%d refs=%d alive=%v)", c.serial, c.RefCount(), c.Alive())
}

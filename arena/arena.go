package arena

import (
	"sync"

	"golang.org/x/net/html"
)

// Arena holds an entire parse tree in one block: node records, attribute
// records and the source buffer they point into.
//
// An arena is filled by a single builder and then frozen. After Freeze,
// all exported fields are read-only and pointers into Nodes and Attrs stay
// valid until the arena is released.
type Arena struct {
	Nodes   []Node      // Nodes[0] is the document
	Attrs   []Attribute // attribute records of all elements
	Source  []byte      // the buffer all spans refer to
	Doctype Doctype     // summary of the <!DOCTYPE>, if any
	Root    int32       // id of the root element, or NoParent if there is none

	index  map[*html.Node]int32
	frozen bool
}

var pool = sync.Pool{
	New: func() any {
		return &Arena{index: make(map[*html.Node]int32, 64)}
	},
}

// Acquire returns an empty arena, possibly recycled.
func Acquire(source []byte) *Arena {
	a := pool.Get().(*Arena)
	a.Source = source
	a.Root = NoParent
	return a
}

// Release wipes the arena and returns it to the pool. The arena and every
// pointer into it must not be used afterwards.
func (a *Arena) Release() {
	if a == nil {
		return
	}
	tracer().Debugf("arena: release %d nodes, %d attributes to pool", len(a.Nodes), len(a.Attrs))
	a.reset()
	pool.Put(a)
}

// Clear wipes the arena without recycling it, leaving the memory to the
// garbage collector.
func (a *Arena) Clear() {
	if a == nil {
		return
	}
	tracer().Debugf("arena: clear %d nodes, %d attributes", len(a.Nodes), len(a.Attrs))
	a.reset()
	a.Nodes, a.Attrs, a.index = nil, nil, nil
}

func (a *Arena) reset() {
	clear(a.Nodes) // drop references to html nodes and child slices
	a.Nodes = a.Nodes[:0]
	clear(a.Attrs)
	a.Attrs = a.Attrs[:0]
	clear(a.index)
	a.Source = nil
	a.Doctype = Doctype{}
	a.Root = NoParent
	a.frozen = false
}

// --- Building --------------------------------------------------------------

// NewNode appends a node record of kind k built from h and returns its id.
// Parent and index are set by AppendChild.
func (a *Arena) NewNode(k Kind, h *html.Node) int32 {
	assertThat(!a.frozen, "cannot add node to frozen arena")
	id := int32(len(a.Nodes))
	a.Nodes = append(a.Nodes, Node{ID: id, Kind: k, Parent: NoParent, html: h})
	if h != nil {
		if a.index == nil {
			a.index = make(map[*html.Node]int32)
		}
		a.index[h] = id
	}
	return id
}

// At returns the node record with the given id for modification while
// building. The pointer is only valid until the next NewNode call.
func (a *Arena) At(id int32) *Node {
	assertThat(!a.frozen, "cannot modify node of frozen arena")
	return &a.Nodes[id]
}

// AppendChild links child as the last child of parent.
func (a *Arena) AppendChild(parent, child int32) {
	assertThat(!a.frozen, "cannot link nodes of frozen arena")
	p := &a.Nodes[parent]
	c := &a.Nodes[child]
	c.Parent = parent
	c.Index = len(p.Children)
	p.Children = append(p.Children, child)
}

// AddAttribute appends an attribute record to element owner and returns its id.
func (a *Arena) AddAttribute(owner int32, attr Attribute) int32 {
	assertThat(!a.frozen, "cannot add attribute to frozen arena")
	id := int32(len(a.Attrs))
	attr.ID = id
	attr.Owner = owner
	a.Attrs = append(a.Attrs, attr)
	a.Nodes[owner].Attrs = append(a.Nodes[owner].Attrs, id)
	return id
}

// Freeze ends the building phase.
func (a *Arena) Freeze() {
	a.frozen = true
	tracer().Debugf("arena: frozen with %d nodes, %d attributes", len(a.Nodes), len(a.Attrs))
}

// --- Reading ---------------------------------------------------------------

// Frozen returns true once the arena is immutable.
func (a *Arena) Frozen() bool {
	return a.frozen
}

// Document returns the document node.
func (a *Arena) Document() *Node {
	return &a.Nodes[0]
}

// Node returns the node with the given id.
func (a *Arena) Node(id int32) *Node {
	return &a.Nodes[id]
}

// Attribute returns the attribute with the given id.
func (a *Arena) Attribute(id int32) *Attribute {
	return &a.Attrs[id]
}

// Parent returns the parent of n, or nil for the document.
func (a *Arena) Parent(n *Node) *Node {
	if n.Parent == NoParent {
		return nil
	}
	return &a.Nodes[n.Parent]
}

// Lookup finds the node record built from an html.Node.
func (a *Arena) Lookup(h *html.Node) (*Node, bool) {
	id, ok := a.index[h]
	if !ok {
		return nil, false
	}
	return &a.Nodes[id], true
}

// Len returns the number of nodes.
func (a *Arena) Len() int {
	return len(a.Nodes)
}

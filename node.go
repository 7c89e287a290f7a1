package htree

import (
	"fmt"
	"runtime"

	"github.com/npillmayer/htree/arena"
	"github.com/npillmayer/htree/maybe"
)

// Kind discriminates the node types of a parse tree.
type Kind = arena.Kind

// Position is a location in the source: 1-based line and column, 0-based
// byte offset.
type Position = arena.Position

// Namespace is the namespace of an element.
type Namespace = arena.Namespace

// Node is a handle to any node of the tree, regardless of its kind.
type Node struct {
	ref[arena.Node]
}

func newNode(c *Container, n *arena.Node) *Node {
	h := &Node{}
	return bind(h, &h.ref, c, n)
}

func nodeList(c *Container, ids []int32) []*Node {
	a := c.arena()
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = newNode(c, a.Node(id))
	}
	return nodes
}

// Duplicate returns an independent handle to the same node.
func (n *Node) Duplicate() *Node {
	defer runtime.KeepAlive(n)
	return newNode(n.live("duplicate"), n.target)
}

// Equal is true if both handles point to the same node of the same parse.
func (n *Node) Equal(other *Node) bool {
	if other == nil {
		return false
	}
	n.live("equal")
	other.live("equal")
	return n.owner == other.owner && n.target == other.target
}

// Compare orders nodes of one parse in document order. Nodes of different
// parses are ordered by parse.
func (n *Node) Compare(other *Node) int {
	defer runtime.KeepAlive(n)
	defer runtime.KeepAlive(other)
	n.live("compare")
	other.live("compare")
	return compareRecords(n.owner, other.owner, n.target.ID, other.target.ID)
}

// Key returns the identity of the node.
func (n *Node) Key() Key {
	defer runtime.KeepAlive(n)
	n.live("key")
	return Key{owner: n.owner, id: n.target.ID}
}

// Kind returns the kind of the node.
func (n *Node) Kind() Kind {
	defer runtime.KeepAlive(n)
	n.live("kind")
	return n.target.Kind
}

// Parent returns the parent node, or Nothing for the document node.
func (n *Node) Parent() maybe.Maybe[*Node] {
	defer runtime.KeepAlive(n)
	c := n.live("parent")
	p := c.arena().Parent(n.target)
	if p == nil {
		return maybe.Nothing[*Node]()
	}
	return maybe.Just(newNode(c, p))
}

// ParentElement is like Parent, but only returns elements. The top-level
// nodes of a document have no parent element.
func (n *Node) ParentElement() maybe.Maybe[*Element] {
	defer runtime.KeepAlive(n)
	c := n.live("parent-element")
	p := c.arena().Parent(n.target)
	if p == nil || !p.Kind.IsElement() {
		return maybe.Nothing[*Element]()
	}
	return maybe.Just(newElement(c, p))
}

// Index returns the position of the node within its parent's children.
func (n *Node) Index() int {
	defer runtime.KeepAlive(n)
	n.live("index")
	return n.target.Index
}

// Children returns the child nodes in document order, including text,
// whitespace and comment nodes. Each child is an independent handle.
func (n *Node) Children() []*Node {
	defer runtime.KeepAlive(n)
	c := n.live("children")
	return nodeList(c, n.target.Children)
}

// FirstChild returns the first child, or Nothing for a leaf.
func (n *Node) FirstChild() maybe.Maybe[*Node] {
	defer runtime.KeepAlive(n)
	c := n.live("first-child")
	if len(n.target.Children) == 0 {
		return maybe.Nothing[*Node]()
	}
	return maybe.Just(newNode(c, c.arena().Node(n.target.Children[0])))
}

// NextSibling returns the following sibling, or Nothing for the last child.
func (n *Node) NextSibling() maybe.Maybe[*Node] {
	return n.sibling("next-sibling", +1)
}

// PrevSibling returns the preceding sibling, or Nothing for the first child.
func (n *Node) PrevSibling() maybe.Maybe[*Node] {
	return n.sibling("prev-sibling", -1)
}

func (n *Node) sibling(op string, dir int) maybe.Maybe[*Node] {
	defer runtime.KeepAlive(n)
	c := n.live(op)
	a := c.arena()
	p := a.Parent(n.target)
	if p == nil {
		return maybe.Nothing[*Node]()
	}
	i := n.target.Index + dir
	if i < 0 || i >= len(p.Children) {
		return maybe.Nothing[*Node]()
	}
	return maybe.Just(newNode(c, a.Node(p.Children[i])))
}

// Value returns the kind-specific view of the node.
func (n *Node) Value() Value {
	defer runtime.KeepAlive(n)
	c := n.live("value")
	switch k := n.target.Kind; {
	case k == arena.DocumentKind:
		return value{doc: newDocument(c, n.target)}
	case k.IsElement():
		return value{elem: newElement(c, n.target)}
	}
	return value{text: newText(c, n.target)}
}

// AsDocument returns the document view. It panics if n is not the document.
func (n *Node) AsDocument() *Document {
	defer runtime.KeepAlive(n)
	c := n.live("as-document")
	if n.target.Kind != arena.DocumentKind {
		misuse("as-document", "node is of kind %s", n.target.Kind)
	}
	return newDocument(c, n.target)
}

// AsElement returns the element view. It panics if n is neither an element
// nor a template.
func (n *Node) AsElement() *Element {
	defer runtime.KeepAlive(n)
	c := n.live("as-element")
	if !n.target.Kind.IsElement() {
		misuse("as-element", "node is of kind %s", n.target.Kind)
	}
	return newElement(c, n.target)
}

// AsText returns the text view. It panics if n carries no character data.
func (n *Node) AsText() *Text {
	defer runtime.KeepAlive(n)
	c := n.live("as-text")
	if !n.target.Kind.IsText() {
		misuse("as-text", "node is of kind %s", n.target.Kind)
	}
	return newText(c, n.target)
}

func (n *Node) String() string {
	defer runtime.KeepAlive(n)
	if n.dropped.Load() || !n.owner.Alive() {
		return "(Node dropped)"
	}
	return n.target.String()
}

// --- Kind dispatch ---------------------------------------------------------

// Value is the kind-specific view of a node: a *Document, an *Element
// (elements and templates) or a *Text (text, whitespace, comments, CDATA).
//
//	var e *htree.Element
//	var t *htree.Text
//	switch m := node.Value().Match(); m {
//	case m.Element(&e):
//	    …
//	case m.Text(&t):
//	    …
//	}
type Value interface {
	Match() ValueMatcher
	Kind() Kind
}

// ValueMatcher matches a Value against its variants. A method returns nil if
// the variant does not match and does not touch its argument then.
type ValueMatcher interface {
	Document(**Document) ValueMatcher
	Element(**Element) ValueMatcher
	Text(**Text) ValueMatcher
}

type value struct {
	doc  *Document
	elem *Element
	text *Text
}

func (v value) Match() ValueMatcher {
	return valueMatcher{v: v}
}

func (v value) Kind() Kind {
	switch {
	case v.doc != nil:
		return v.doc.target.Kind
	case v.elem != nil:
		return v.elem.target.Kind
	}
	return v.text.target.Kind
}

func (v value) String() string {
	switch {
	case v.doc != nil:
		return fmt.Sprintf("Document%v", v.doc.target)
	case v.elem != nil:
		return fmt.Sprintf("Element%v", v.elem.target)
	}
	return fmt.Sprintf("Text%v", v.text.target)
}

type valueMatcher struct {
	v value
}

func (vm valueMatcher) Document(d **Document) ValueMatcher {
	if vm.v.doc != nil {
		*d = vm.v.doc
		return vm
	}
	return nil
}

func (vm valueMatcher) Element(e **Element) ValueMatcher {
	if vm.v.elem != nil {
		*e = vm.v.elem
		return vm
	}
	return nil
}

func (vm valueMatcher) Text(t **Text) ValueMatcher {
	if vm.v.text != nil {
		*t = vm.v.text
		return vm
	}
	return nil
}

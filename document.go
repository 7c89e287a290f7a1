package htree

import (
	"runtime"

	"github.com/npillmayer/htree/arena"
)

// Document is a handle to the document node.
type Document struct {
	ref[arena.Node]
}

func newDocument(c *Container, n *arena.Node) *Document {
	h := &Document{}
	return bind(h, &h.ref, c, n)
}

// Duplicate returns an independent handle to the document.
func (d *Document) Duplicate() *Document {
	defer runtime.KeepAlive(d)
	return newDocument(d.live("duplicate"), d.target)
}

// Equal is true if both handles point to the document of the same parse.
func (d *Document) Equal(other *Document) bool {
	if other == nil {
		return false
	}
	d.live("equal")
	other.live("equal")
	return d.owner == other.owner && d.target == other.target
}

// Node returns the generic node view of the document.
func (d *Document) Node() *Node {
	defer runtime.KeepAlive(d)
	return newNode(d.live("node"), d.target)
}

// HasDoctype is true if the source contains a <!DOCTYPE>.
func (d *Document) HasDoctype() bool {
	defer runtime.KeepAlive(d)
	c := d.live("has-doctype")
	return c.arena().Doctype.Present
}

// Name returns the name of the doctype, usually "html".
func (d *Document) Name() string {
	defer runtime.KeepAlive(d)
	c := d.live("name")
	return c.arena().Doctype.Name
}

// PublicIdentifier returns the public identifier of the doctype.
func (d *Document) PublicIdentifier() string {
	defer runtime.KeepAlive(d)
	c := d.live("public-identifier")
	return c.arena().Doctype.PublicIdentifier
}

// SystemIdentifier returns the system identifier of the doctype.
func (d *Document) SystemIdentifier() string {
	defer runtime.KeepAlive(d)
	c := d.live("system-identifier")
	return c.arena().Doctype.SystemIdentifier
}

// Children returns the top-level nodes: comments and the root element.
// The doctype is not a child, see HasDoctype.
func (d *Document) Children() []*Node {
	defer runtime.KeepAlive(d)
	c := d.live("children")
	return nodeList(c, d.target.Children)
}

// --- Character data --------------------------------------------------------

// Text is a handle to a node carrying character data: text, whitespace,
// comment or CDATA.
type Text struct {
	ref[arena.Node]
}

func newText(c *Container, n *arena.Node) *Text {
	h := &Text{}
	return bind(h, &h.ref, c, n)
}

// Duplicate returns an independent handle to the same text node.
func (t *Text) Duplicate() *Text {
	defer runtime.KeepAlive(t)
	return newText(t.live("duplicate"), t.target)
}

// Equal is true if both handles point to the same node of the same parse.
func (t *Text) Equal(other *Text) bool {
	if other == nil {
		return false
	}
	t.live("equal")
	other.live("equal")
	return t.owner == other.owner && t.target == other.target
}

// Node returns the generic node view.
func (t *Text) Node() *Node {
	defer runtime.KeepAlive(t)
	return newNode(t.live("node"), t.target)
}

// Kind tells text, whitespace, comment and CDATA apart.
func (t *Text) Kind() Kind {
	defer runtime.KeepAlive(t)
	t.live("kind")
	return t.target.Kind
}

// Text returns the character data with character references resolved.
// For comments, this is the comment's content.
func (t *Text) Text() string {
	defer runtime.KeepAlive(t)
	t.live("text")
	return t.target.Text
}

// OriginalText returns the text as written in the source, including
// comment or CDATA delimiters.
func (t *Text) OriginalText() string {
	defer runtime.KeepAlive(t)
	c := t.live("original-text")
	return t.target.Original.Slice(c.arena().Source)
}

// StartPos returns the position of the first character.
func (t *Text) StartPos() Position {
	defer runtime.KeepAlive(t)
	t.live("start-pos")
	return t.target.Start
}

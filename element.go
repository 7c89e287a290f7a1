package htree

import (
	"runtime"
	"strings"

	"github.com/npillmayer/htree/arena"
	"golang.org/x/net/html/atom"
)

// Element is a handle to an element or template node.
type Element struct {
	ref[arena.Node]
}

func newElement(c *Container, n *arena.Node) *Element {
	h := &Element{}
	return bind(h, &h.ref, c, n)
}

// Duplicate returns an independent handle to the same element.
func (e *Element) Duplicate() *Element {
	defer runtime.KeepAlive(e)
	return newElement(e.live("duplicate"), e.target)
}

// Equal is true if both handles point to the same element of the same parse.
func (e *Element) Equal(other *Element) bool {
	if other == nil {
		return false
	}
	e.live("equal")
	other.live("equal")
	return e.owner == other.owner && e.target == other.target
}

// Compare orders elements in document order.
func (e *Element) Compare(other *Element) int {
	defer runtime.KeepAlive(e)
	defer runtime.KeepAlive(other)
	e.live("compare")
	other.live("compare")
	return compareRecords(e.owner, other.owner, e.target.ID, other.target.ID)
}

// Key returns the identity of the element; it equals the key of its node view.
func (e *Element) Key() Key {
	defer runtime.KeepAlive(e)
	e.live("key")
	return Key{owner: e.owner, id: e.target.ID}
}

// Node returns the generic node view of the element.
func (e *Element) Node() *Node {
	defer runtime.KeepAlive(e)
	return newNode(e.live("node"), e.target)
}

// Tag returns the tag of the element, or 0 for tags unknown to the parser.
func (e *Element) Tag() atom.Atom {
	defer runtime.KeepAlive(e)
	e.live("tag")
	return e.target.Tag
}

// TagName returns the normalized tag name, also for unknown tags.
func (e *Element) TagName() string {
	defer runtime.KeepAlive(e)
	e.live("tag-name")
	return e.target.Name
}

// Namespace returns the namespace of the element.
func (e *Element) Namespace() Namespace {
	defer runtime.KeepAlive(e)
	e.live("namespace")
	return e.target.Namespace
}

// IsTemplate is true for <template> elements.
func (e *Element) IsTemplate() bool {
	defer runtime.KeepAlive(e)
	e.live("is-template")
	return e.target.Kind == arena.TemplateKind
}

// OriginalTag returns the start tag as written in the source, e.g.
// `<A HREF=x>`. It is empty for elements implied by the parser.
func (e *Element) OriginalTag() string {
	defer runtime.KeepAlive(e)
	c := e.live("original-tag")
	return e.target.Original.Slice(c.arena().Source)
}

// OriginalEndTag returns the end tag as written in the source, or "" if the
// source has none.
func (e *Element) OriginalEndTag() string {
	defer runtime.KeepAlive(e)
	c := e.live("original-end-tag")
	return e.target.OriginalEnd.Slice(c.arena().Source)
}

// StartPos returns the position of the start tag.
func (e *Element) StartPos() Position {
	defer runtime.KeepAlive(e)
	e.live("start-pos")
	return e.target.Start
}

// EndPos returns the position of the end tag.
func (e *Element) EndPos() Position {
	defer runtime.KeepAlive(e)
	e.live("end-pos")
	return e.target.End
}

// Children returns the child nodes in document order.
func (e *Element) Children() []*Node {
	defer runtime.KeepAlive(e)
	c := e.live("children")
	return nodeList(c, e.target.Children)
}

// Attributes returns the attributes in source order.
func (e *Element) Attributes() []*Attribute {
	defer runtime.KeepAlive(e)
	c := e.live("attributes")
	a := c.arena()
	attrs := make([]*Attribute, len(e.target.Attrs))
	for i, id := range e.target.Attrs {
		attrs[i] = newAttribute(c, a.Attribute(id))
	}
	return attrs
}

// Attribute finds an attribute by name. Names are compared
// case-insensitively.
func (e *Element) Attribute(name string) (*Attribute, bool) {
	defer runtime.KeepAlive(e)
	c := e.live("attribute")
	a := c.arena()
	for _, id := range e.target.Attrs {
		if attr := a.Attribute(id); strings.EqualFold(attr.Name, name) {
			return newAttribute(c, attr), true
		}
	}
	return nil, false
}

// TextContent concatenates the character data of all descendant text,
// whitespace and CDATA nodes. Comments are skipped.
func (e *Element) TextContent() string {
	defer runtime.KeepAlive(e)
	c := e.live("text-content")
	var sb strings.Builder
	textContent(c.arena(), e.target, &sb)
	return sb.String()
}

func textContent(a *arena.Arena, n *arena.Node, sb *strings.Builder) {
	for _, id := range n.Children {
		ch := a.Node(id)
		switch ch.Kind {
		case arena.TextKind, arena.WhitespaceKind, arena.CDATAKind:
			sb.WriteString(ch.Text)
		case arena.ElementKind, arena.TemplateKind:
			textContent(a, ch, sb)
		}
	}
}

func (e *Element) String() string {
	defer runtime.KeepAlive(e)
	if e.dropped.Load() || !e.owner.Alive() {
		return "(Element dropped)"
	}
	return e.target.String()
}

// TagString returns the normalized name of a tag.
func TagString(tag atom.Atom) string {
	if tag == 0 {
		return "unknown"
	}
	return tag.String()
}

// --- Attributes ------------------------------------------------------------

// Attribute is a handle to an attribute of an element.
type Attribute struct {
	ref[arena.Attribute]
}

func newAttribute(c *Container, a *arena.Attribute) *Attribute {
	h := &Attribute{}
	return bind(h, &h.ref, c, a)
}

// Duplicate returns an independent handle to the same attribute.
func (at *Attribute) Duplicate() *Attribute {
	defer runtime.KeepAlive(at)
	return newAttribute(at.live("duplicate"), at.target)
}

// Equal is true if both handles point to the same attribute of the same parse.
func (at *Attribute) Equal(other *Attribute) bool {
	if other == nil {
		return false
	}
	at.live("equal")
	other.live("equal")
	return at.owner == other.owner && at.target == other.target
}

// Compare orders attributes in source order.
func (at *Attribute) Compare(other *Attribute) int {
	defer runtime.KeepAlive(at)
	defer runtime.KeepAlive(other)
	at.live("compare")
	other.live("compare")
	return compareRecords(at.owner, other.owner, at.target.ID, other.target.ID)
}

// Key returns the identity of the attribute.
func (at *Attribute) Key() Key {
	defer runtime.KeepAlive(at)
	at.live("key")
	return Key{owner: at.owner, id: at.target.ID, attr: true}
}

// Owner returns the element carrying the attribute.
func (at *Attribute) Owner() *Element {
	defer runtime.KeepAlive(at)
	c := at.live("owner")
	return newElement(c, c.arena().Node(at.target.Owner))
}

// Namespace returns the namespace of the attribute, which is only set for
// attributes of foreign elements, e.g. xlink:href.
func (at *Attribute) Namespace() arena.AttrNamespace {
	defer runtime.KeepAlive(at)
	at.live("namespace")
	return at.target.Namespace
}

// Name returns the normalized name.
func (at *Attribute) Name() string {
	defer runtime.KeepAlive(at)
	at.live("name")
	return at.target.Name
}

// OriginalName returns the name as written in the source.
func (at *Attribute) OriginalName() string {
	defer runtime.KeepAlive(at)
	c := at.live("original-name")
	return at.target.OriginalName.Slice(c.arena().Source)
}

// Value returns the value with character references resolved.
func (at *Attribute) Value() string {
	defer runtime.KeepAlive(at)
	at.live("value")
	return at.target.Value
}

// OriginalValue returns the value as written, including quotes.
func (at *Attribute) OriginalValue() string {
	defer runtime.KeepAlive(at)
	c := at.live("original-value")
	return at.target.OriginalValue.Slice(c.arena().Source)
}

// Original returns the whole attribute as written, e.g. `href="x"`.
func (at *Attribute) Original() string {
	defer runtime.KeepAlive(at)
	c := at.live("original")
	return at.target.Original.Slice(c.arena().Source)
}

// NameStart returns the position of the first character of the name.
func (at *Attribute) NameStart() Position {
	defer runtime.KeepAlive(at)
	at.live("name-start")
	return at.target.NameStart
}

// NameEnd returns the position just behind the name.
func (at *Attribute) NameEnd() Position {
	defer runtime.KeepAlive(at)
	at.live("name-end")
	return at.target.NameEnd
}

// ValueStart returns the position of the value, or of the opening quote.
func (at *Attribute) ValueStart() Position {
	defer runtime.KeepAlive(at)
	at.live("value-start")
	return at.target.ValueStart
}

// ValueEnd returns the position just behind the value.
func (at *Attribute) ValueEnd() Position {
	defer runtime.KeepAlive(at)
	at.live("value-end")
	return at.target.ValueEnd
}

func (at *Attribute) String() string {
	defer runtime.KeepAlive(at)
	if at.dropped.Load() || !at.owner.Alive() {
		return "(Attribute dropped)"
	}
	return "(Attribute " + at.target.Name + "=" + at.target.Value + ")"
}

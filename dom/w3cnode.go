package dom

import (
	"fmt"
	"strings"

	"github.com/npillmayer/htree"
	"github.com/npillmayer/htree/arena"
	"github.com/npillmayer/htree/dom/w3cdom"
	"golang.org/x/net/html"
)

// W3CNode is an adapter for htree nodes, implementing w3cdom.Node.
type W3CNode struct {
	node *htree.Node
}

var _ w3cdom.Node = &W3CNode{}

// NodeFromHandle wraps an htree node. It returns nil for nil.
func NodeFromHandle(n *htree.Node) *W3CNode {
	if n == nil {
		return nil
	}
	return &W3CNode{node: n}
}

// FromDocument returns the W3C view of a parsed document.
func FromDocument(doc *htree.Document) *W3CNode {
	return NodeFromHandle(doc.Node())
}

// Handle returns the htree node underlying w.
func (w *W3CNode) Handle() *htree.Node {
	return w.node
}

// NodeType returns the type of the node, in terms of golang.org/x/net/html.
// Whitespace and CDATA sections are text nodes.
//
// Interface w3cdom.Node
func (w *W3CNode) NodeType() html.NodeType {
	switch k := w.node.Kind(); {
	case k == arena.DocumentKind:
		return html.DocumentNode
	case k.IsElement():
		return html.ElementNode
	case k == arena.CommentKind:
		return html.CommentNode
	}
	return html.TextNode
}

// NodeName returns the tag name for elements and "#text", "#comment",
// "#cdata-section" or "#document" for other nodes.
//
// Interface w3cdom.Node
func (w *W3CNode) NodeName() string {
	switch k := w.node.Kind(); {
	case k == arena.DocumentKind:
		return "#document"
	case k.IsElement():
		return w.node.AsElement().TagName()
	case k == arena.CommentKind:
		return "#comment"
	case k == arena.CDATAKind:
		return "#cdata-section"
	}
	return "#text"
}

// NodeValue returns the character data of text-like nodes and "" for the
// document and for elements.
//
// Interface w3cdom.Node
func (w *W3CNode) NodeValue() string {
	if w.node.Kind().IsText() {
		return w.node.AsText().Text()
	}
	return ""
}

// HasAttributes returns true for elements with at least one attribute.
//
// Interface w3cdom.Node
func (w *W3CNode) HasAttributes() bool {
	return w.Attributes().Length() > 0
}

// ParentNode returns the parent, or nil for the document.
//
// Interface w3cdom.Node
func (w *W3CNode) ParentNode() w3cdom.Node {
	if p, ok := w.node.Parent().Get(); ok {
		return NodeFromHandle(p)
	}
	return nil
}

// HasChildNodes returns true if w is not a leaf.
//
// Interface w3cdom.Node
func (w *W3CNode) HasChildNodes() bool {
	return !w.node.FirstChild().IsNothing()
}

// ChildNodes returns all children, including text and comments.
//
// Interface w3cdom.Node
func (w *W3CNode) ChildNodes() w3cdom.NodeList {
	return w.childNodes(false)
}

// Children returns the element children.
//
// Interface w3cdom.Node
func (w *W3CNode) Children() w3cdom.NodeList {
	return w.childNodes(true)
}

func (w *W3CNode) childNodes(elementsOnly bool) *NodeList {
	kids := w.node.Children()
	nl := &NodeList{nodes: make([]*W3CNode, 0, len(kids))}
	for _, ch := range kids {
		if elementsOnly && !ch.Kind().IsElement() {
			continue
		}
		nl.nodes = append(nl.nodes, NodeFromHandle(ch))
	}
	return nl
}

// FirstChild returns the first child, or nil for a leaf.
//
// Interface w3cdom.Node
func (w *W3CNode) FirstChild() w3cdom.Node {
	if ch, ok := w.node.FirstChild().Get(); ok {
		return NodeFromHandle(ch)
	}
	return nil
}

// NextSibling returns the following sibling, or nil for the last child.
//
// Interface w3cdom.Node
func (w *W3CNode) NextSibling() w3cdom.Node {
	if sib, ok := w.node.NextSibling().Get(); ok {
		return NodeFromHandle(sib)
	}
	return nil
}

// Attributes returns the attributes of an element. For other nodes the map
// is empty.
//
// Interface w3cdom.Node
func (w *W3CNode) Attributes() w3cdom.NamedNodeMap {
	if !w.node.Kind().IsElement() {
		return &NamedNodeMap{}
	}
	return &NamedNodeMap{attrs: w.node.AsElement().Attributes()}
}

// Style returns the declarations of the style attribute of an element.
// Nodes without one, and style attributes which cannot be parsed, yield an
// empty declaration.
//
// Interface w3cdom.Node
func (w *W3CNode) Style() w3cdom.StyleDeclaration {
	if !w.node.Kind().IsElement() {
		return &Declarations{}
	}
	attr, ok := w.node.AsElement().Attribute("style")
	if !ok {
		return &Declarations{}
	}
	decls, err := ParseInlineStyle(attr.Value())
	if err != nil {
		tracer().Infof("ignoring style attribute at %v: %v", attr.ValueStart(), err)
		return &Declarations{}
	}
	return decls
}

// TextContent returns the character data of a text-like node, or the
// concatenated text of all descendants of an element. The document itself
// has no text content.
//
// Interface w3cdom.Node
func (w *W3CNode) TextContent() (string, error) {
	switch k := w.node.Kind(); {
	case k == arena.DocumentKind:
		return "", fmt.Errorf("dom: text content of %s not defined", w.NodeName())
	case k.IsElement():
		return w.node.AsElement().TextContent(), nil
	}
	return w.node.AsText().Text(), nil
}

// IsElement is a shortcut for NodeType() == html.ElementNode.
func (w *W3CNode) IsElement() bool {
	return w.node.Kind().IsElement()
}

func (w *W3CNode) String() string {
	if w.IsElement() {
		return "<" + w.NodeName() + ">"
	}
	return w.NodeName()
}

// --- NodeList --------------------------------------------------------------

// NodeList is an adapter for interface w3cdom.NodeList.
type NodeList struct {
	nodes []*W3CNode
}

var _ w3cdom.NodeList = &NodeList{}

// Length returns the number of nodes in the list.
func (nl *NodeList) Length() int {
	return len(nl.nodes)
}

// Item returns the node at index i, or nil if i is out of range.
func (nl *NodeList) Item(i int) w3cdom.Node {
	if i < 0 || i >= len(nl.nodes) {
		return nil
	}
	return nl.nodes[i]
}

// Nodes returns the nodes as a slice.
func (nl *NodeList) Nodes() []*W3CNode {
	return nl.nodes
}

func (nl *NodeList) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, n := range nl.nodes {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(n.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// --- Attributes ------------------------------------------------------------

// Attr is an adapter for interface w3cdom.Attr.
type Attr struct {
	attr *htree.Attribute
}

var _ w3cdom.Attr = Attr{}

// Namespace returns the namespace prefix of the attribute, e.g. "xlink".
func (a Attr) Namespace() string {
	return a.attr.Namespace().String()
}

// Key returns the normalized name of the attribute.
func (a Attr) Key() string {
	return a.attr.Name()
}

// Value returns the value of the attribute.
func (a Attr) Value() string {
	return a.attr.Value()
}

// Handle returns the htree attribute underlying a.
func (a Attr) Handle() *htree.Attribute {
	return a.attr
}

// NamedNodeMap is an adapter for interface w3cdom.NamedNodeMap.
type NamedNodeMap struct {
	attrs []*htree.Attribute
}

var _ w3cdom.NamedNodeMap = &NamedNodeMap{}

// Length returns the number of attributes.
func (nnm *NamedNodeMap) Length() int {
	return len(nnm.attrs)
}

// Item returns the attribute at index i, or nil if i is out of range.
func (nnm *NamedNodeMap) Item(i int) w3cdom.Attr {
	if i < 0 || i >= len(nnm.attrs) {
		return nil
	}
	return Attr{nnm.attrs[i]}
}

// GetNamedItem finds an attribute by name, ignoring case. It returns nil if
// there is no such attribute.
func (nnm *NamedNodeMap) GetNamedItem(name string) w3cdom.Attr {
	for _, a := range nnm.attrs {
		if strings.EqualFold(a.Name(), name) {
			return Attr{a}
		}
	}
	return nil
}

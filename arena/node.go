package arena

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind discriminates the node types of a parse tree.
type Kind uint8

// Node kinds. Every node is exactly one of these.
const (
	DocumentKind Kind = iota
	ElementKind
	TemplateKind
	TextKind
	WhitespaceKind
	CommentKind
	CDATAKind
)

var kindNames = [...]string{"document", "element", "template", "text", "whitespace", "comment", "cdata"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsElement is true for elements and templates.
func (k Kind) IsElement() bool {
	return k == ElementKind || k == TemplateKind
}

// IsText is true for every kind carrying character data.
func (k Kind) IsText() bool {
	return k >= TextKind
}

// Namespace is the namespace of an element.
type Namespace uint8

// Element namespaces.
const (
	HTMLNamespace Namespace = iota
	SVGNamespace
	MathMLNamespace
)

func (ns Namespace) String() string {
	switch ns {
	case SVGNamespace:
		return "svg"
	case MathMLNamespace:
		return "math"
	}
	return "html"
}

// NamespaceOf maps the namespace string of golang.org/x/net/html.
func NamespaceOf(ns string) Namespace {
	switch ns {
	case "svg":
		return SVGNamespace
	case "math":
		return MathMLNamespace
	}
	return HTMLNamespace
}

// AttrNamespace is the namespace of an attribute. Only attributes of foreign
// elements carry one.
type AttrNamespace uint8

// Attribute namespaces.
const (
	NoAttrNamespace AttrNamespace = iota
	XLinkNamespace
	XMLNamespace
	XMLNSNamespace
)

func (ns AttrNamespace) String() string {
	switch ns {
	case XLinkNamespace:
		return "xlink"
	case XMLNamespace:
		return "xml"
	case XMLNSNamespace:
		return "xmlns"
	}
	return ""
}

// AttrNamespaceOf maps the attribute namespace string of golang.org/x/net/html.
func AttrNamespaceOf(ns string) AttrNamespace {
	switch ns {
	case "xlink":
		return XLinkNamespace
	case "xml":
		return XMLNamespace
	case "xmlns":
		return XMLNSNamespace
	}
	return NoAttrNamespace
}

// Position is a location in the source buffer. Line and column are 1-based,
// the byte offset is 0-based. The zero value denotes a node which has no
// counterpart in the source, e.g. an implied <body>.
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsValid returns true if the position points into the source.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d(@%d)", p.Line, p.Column, p.Offset)
}

// Span is a byte range [Start, End) into the source buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Slice copies the bytes of the span out of src.
func (s Span) Slice(src []byte) string {
	if s.IsEmpty() || s.Start < 0 || s.End > len(src) {
		return ""
	}
	return string(src[s.Start:s.End])
}

// NoParent is the parent id of the document node.
const NoParent int32 = -1

// Node is a record of the arena. Which fields are meaningful depends on Kind.
type Node struct {
	ID       int32   // slot in Arena.Nodes, follows document order
	Kind     Kind    // discriminant
	Parent   int32   // id of the parent or NoParent
	Index    int     // position within the parent's children
	Children []int32 // child ids in document order
	Attrs    []int32 // attribute ids in source order (elements only)

	Tag       atom.Atom // 0 for unknown tags
	Name      string    // tag name as normalized by the parser
	Namespace Namespace

	Text string // character data for text-like kinds

	Original    Span     // start tag, or raw text of text-like kinds
	OriginalEnd Span     // end tag, if present in source
	Start       Position // start of the start tag or of the text
	End         Position // start of the end tag, if present

	html *html.Node
}

// HTMLNode returns the node of golang.org/x/net/html this record was built from.
func (n *Node) HTMLNode() *html.Node {
	return n.html
}

func (n *Node) String() string {
	switch {
	case n.Kind.IsElement():
		return fmt.Sprintf("(%s #%d <%s> #ch=%d)", n.Kind, n.ID, n.Name, len(n.Children))
	case n.Kind.IsText():
		return fmt.Sprintf("(%s #%d %q)", n.Kind, n.ID, n.Text)
	}
	return fmt.Sprintf("(%s #%d #ch=%d)", n.Kind, n.ID, len(n.Children))
}

// Attribute is an attribute record of the arena.
type Attribute struct {
	ID        int32
	Owner     int32 // id of the element carrying this attribute
	Namespace AttrNamespace
	Name      string
	Value     string

	Original      Span // the whole attribute as written, e.g. `href="x"`
	OriginalName  Span
	OriginalValue Span // including quotes, if any
	NameStart     Position
	NameEnd       Position
	ValueStart    Position
	ValueEnd      Position
}

// Doctype summarizes the document type declaration.
type Doctype struct {
	Present          bool
	Name             string
	PublicIdentifier string
	SystemIdentifier string
}

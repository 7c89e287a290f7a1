package parser

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/htree/arena"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Output is the result of a parse: the arena holding the tree and the
// markup errors the parser recovered from.
type Output struct {
	Arena  *arena.Arena
	Errors []Error
}

// Parse builds an arena from src. src is referenced by the arena and must
// not be modified afterwards. If opts is nil, DefaultOptions are used.
//
// Parse fails only if no tree can be produced at all. Markup errors are
// reported in Output.Errors.
func Parse(src []byte, opts *Options) (*Output, error) {
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	if opts.MaxSourceSize > 0 && len(src) > opts.MaxSourceSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrSourceTooLarge, len(src), opts.MaxSourceSize)
	}
	doc, err := parseTree(src, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTree, err)
	}
	if doc == nil {
		return nil, ErrNoTree
	}
	lines := newLineIndex(src, opts.tabStop())
	b := &builder{
		arena:   arena.Acquire(src),
		index:   scan(src, lines),
		lines:   lines,
		leaves:  make(map[*html.Node]leaf),
		content: make(map[*html.Node]int),
	}
	b.locate(doc)
	b.document(doc)
	b.arena.Freeze()
	out := &Output{Arena: b.arena, Errors: capErrors(b.index.errors, opts.MaxErrors)}
	tracer().Debugf("parsed %d bytes into %d nodes, %d errors", len(src), b.arena.Len(), len(out.Errors))
	return out, nil
}

// Destroy tears down the arena of out. It must be called exactly once per
// Output, with the options used to create it.
func Destroy(out *Output, opts *Options) {
	assertThat(out != nil && out.Arena != nil, "destroy of nil or already destroyed output")
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	if opts.ReuseArenas {
		out.Arena.Release()
	} else {
		out.Arena.Clear()
	}
	out.Arena = nil
	out.Errors = nil
}

func parseTree(src []byte, opts *Options) (*html.Node, error) {
	popts := []html.ParseOption{html.ParseOptionEnableScripting(opts.Scripting)}
	if opts.FragmentContext == 0 {
		return html.ParseWithOptions(bytes.NewReader(src), popts...)
	}
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     opts.FragmentContext.String(),
		DataAtom: opts.FragmentContext,
	}
	nodes, err := html.ParseFragmentWithOptions(bytes.NewReader(src), context, popts...)
	if err != nil {
		return nil, err
	}
	// Fragments hang off an implied <html> root, as in a full document.
	doc := &html.Node{Type: html.DocumentNode}
	root := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	doc.AppendChild(root)
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		root.AppendChild(n)
	}
	return doc, nil
}

func capErrors(errs []Error, limit int) []Error {
	if limit >= 0 && len(errs) > limit {
		return errs[:limit]
	}
	return errs
}

// --- Tree builder ----------------------------------------------------------

type builder struct {
	arena    *arena.Arena
	index    *sourceIndex
	lines    *lineIndex
	textCur  int                 // cursor into index.texts
	commCur  int                 // cursor into index.comments
	leaves   map[*html.Node]leaf // text and comment nodes found in the source
	content  map[*html.Node]int  // offset of the earliest content of an element
	haveRoot bool
}

type leaf struct {
	span  arena.Span
	cdata bool
}

// locate pairs the text and comment nodes below h with their tokens, in tree
// order, and returns the offset of the earliest of them, or -1. Start tags
// are paired afterwards: an element's start tag has to precede its content.
func (b *builder) locate(h *html.Node) int {
	first := -1
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		at := -1
		switch c.Type {
		case html.TextNode:
			if span, cdata, ok := b.index.takeText(c.Data, &b.textCur); ok {
				b.leaves[c] = leaf{span: span, cdata: cdata}
				at = span.Start
			}
		case html.CommentNode:
			if span, ok := b.index.takeComment(c.Data, &b.commCur); ok {
				b.leaves[c] = leaf{span: span}
				at = span.Start
			}
		case html.ElementNode:
			at = b.locate(c)
		}
		if at >= 0 && (first < 0 || at < first) {
			first = at
		}
	}
	if h.Type == html.ElementNode && first >= 0 {
		b.content[h] = first
	}
	return first
}

func (b *builder) document(doc *html.Node) {
	id := b.arena.NewNode(arena.DocumentKind, doc)
	if !b.index.doctype.IsEmpty() {
		n := b.arena.At(id)
		n.Original = b.index.doctype
		n.Start = b.lines.position(b.index.doctype.Start)
	}
	b.children(doc, id, nil)
}

// anchor is the start tag of the nearest enclosing element found in the
// source, nil if there is none.
func (b *builder) children(h *html.Node, parent int32, anchor *tagToken) {
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		b.node(c, parent, anchor)
	}
}

func (b *builder) node(h *html.Node, parent int32, anchor *tagToken) {
	switch h.Type {
	case html.DoctypeNode:
		b.doctype(h)
	case html.ElementNode:
		b.element(h, parent, anchor)
	case html.TextNode:
		b.text(h, parent)
	case html.CommentNode:
		b.comment(h, parent)
	default:
		tracer().Debugf("skipping node of type %d", h.Type)
	}
}

func (b *builder) doctype(h *html.Node) {
	dt := arena.Doctype{Present: true, Name: h.Data}
	for _, a := range h.Attr {
		switch a.Key {
		case "public":
			dt.PublicIdentifier = a.Val
		case "system":
			dt.SystemIdentifier = a.Val
		}
	}
	b.arena.Doctype = dt
}

func (b *builder) element(h *html.Node, parent int32, anchor *tagToken) {
	kind := arena.ElementKind
	if h.DataAtom == atom.Template && h.Namespace == "" {
		kind = arena.TemplateKind
	}
	id := b.arena.NewNode(kind, h)
	n := b.arena.At(id)
	n.Tag = h.DataAtom
	n.Name = h.Data
	n.Namespace = arena.NamespaceOf(h.Namespace)
	lo, hi := -1, math.MaxInt
	if anchor != nil {
		lo = anchor.raw.Start
		if anchor.closed && !ignoresEndTag(anchor.name) {
			hi = anchor.end.Start
		}
	}
	if at, ok := b.content[h]; ok {
		hi = min(hi, at)
	}
	tok := b.index.takeStartTag(h, lo, hi)
	if tok != nil {
		anchor = tok
		n.Original = tok.raw
		n.Start = b.lines.position(tok.raw.Start)
		if tok.closed {
			n.OriginalEnd = tok.end
			n.End = b.lines.position(tok.end.Start)
		}
	}
	b.attributes(id, h, tok)
	b.arena.AppendChild(parent, id)
	if !b.haveRoot && parent == 0 {
		b.arena.Root = id
		b.haveRoot = true
	}
	b.children(h, id, anchor)
}

func (b *builder) attributes(owner int32, h *html.Node, tok *tagToken) {
	var used []bool
	if tok != nil {
		used = make([]bool, len(tok.attrs))
	}
	for _, a := range h.Attr {
		rec := arena.Attribute{
			Namespace: arena.AttrNamespaceOf(a.Namespace),
			Name:      a.Key,
			Value:     a.Val,
		}
		if tok != nil {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			if at, ok := findAttr(tok.attrs, used, name); ok {
				rec.Original = at.whole
				rec.OriginalName = at.name
				rec.OriginalValue = at.value
				rec.NameStart, rec.NameEnd = b.lines.span(at.name)
				rec.ValueStart, rec.ValueEnd = b.lines.span(at.value)
			}
		}
		b.arena.AddAttribute(owner, rec)
	}
}

func (b *builder) text(h *html.Node, parent int32) {
	kind := arena.TextKind
	if strings.TrimLeft(h.Data, " \t\n\f\r") == "" {
		kind = arena.WhitespaceKind
	}
	id := b.arena.NewNode(kind, h)
	n := b.arena.At(id)
	n.Text = h.Data
	if lf, ok := b.leaves[h]; ok {
		n.Original = lf.span
		n.Start = b.lines.position(lf.span.Start)
		if lf.cdata {
			n.Kind = arena.CDATAKind
		}
	}
	b.arena.AppendChild(parent, id)
}

func (b *builder) comment(h *html.Node, parent int32) {
	id := b.arena.NewNode(arena.CommentKind, h)
	n := b.arena.At(id)
	n.Text = h.Data
	if lf, ok := b.leaves[h]; ok {
		n.Original = lf.span
		n.Start = b.lines.position(lf.span.Start)
	}
	b.arena.AppendChild(parent, id)
}
